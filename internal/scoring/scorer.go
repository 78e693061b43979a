// Package scoring computes a 0-100 suspicion confidence for every Symbol
// via an additive point recipe -- base-by-kind, then reachability, usage
// count, decorator and naming penalties, and noqa suppression -- rather
// than the teacher's piecewise-linear Interpolate breakpoint curve:
// dead-code confidence isn't a continuous metric like complexity, it's a
// sum of independent signals, each either present or absent for a given
// symbol.
package scoring

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ingo-eichhorst/deadcode/internal/reachability"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// Config holds the rule-specific knobs the Scorer applies. Defaults match
// the stock recipe; IgnoreDecorators and IgnoreNames come from the
// project's linting.* configuration.
type Config struct {
	IgnoreDecorators []string // decorator dotted-paths or substrings treated as intentional
	IgnoreNames      []string // glob patterns matched against a symbol's bare name

	DeleteThreshold int // confidence >= this -> "delete"
	ReviewThreshold int // confidence >= this -> "review"; below -> "keep"
}

// Default returns the stock configuration with no user overrides.
func Default() Config {
	return Config{
		DeleteThreshold: 80,
		ReviewThreshold: 50,
	}
}

// Scorer computes DependencyNode confidence from a Config.
type Scorer struct {
	cfg Config
}

// New builds a Scorer with cfg.
func New(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

func baseByKind(kind types.SymbolKind) int {
	switch kind {
	case types.KindImport:
		return 70
	case types.KindClass:
		return 55
	default: // FUNCTION, METHOD, VARIABLE
		return 60
	}
}

// Score computes the DependencyNode for one symbol given the project-wide
// reachability result.
func (s *Scorer) Score(sym *types.Symbol, result *reachability.Result) types.DependencyNode {
	var reasons []string

	score := baseByKind(sym.Kind)
	reasons = append(reasons, fmt.Sprintf("base score for %s: %d", strings.ToLower(string(sym.Kind)), score))

	if result.OrphanedFiles[sym.Location.File] {
		score = 100
		reasons = append(reasons, fmt.Sprintf("orphaned file: %s", sym.Location.File))
		return s.finish(sym, 100, true, reasons, 0)
	}

	reachable := result.Reachable[sym.QualifiedName]
	switch {
	case sym.IsEntrypoint:
		score -= 40
		reasons = append(reasons, "recognized entrypoint: -40")
	case !reachable:
		score += 30
		reasons = append(reasons, "not reachable from any entrypoint: +30")
	}

	usageCount := result.UsageCount[sym.QualifiedName]
	if usageCount == 0 {
		score += 20
		reasons = append(reasons, "zero resolved usages: +20")
	} else {
		delta := -min(40, 10*usageCount)
		score += delta
		reasons = append(reasons, fmt.Sprintf("%d resolved usage(s): %d", usageCount, delta))
	}

	matchedPlugins := 0
	for _, reason := range sym.EntrypointReasons {
		_, matched, ok := strings.Cut(reason, ": ")
		if !ok {
			continue
		}
		for _, dec := range sym.Decorators {
			if dec == matched {
				matchedPlugins++
				break
			}
		}
	}
	if matchedPlugins > 0 {
		delta := -min(40, 20*matchedPlugins)
		score += delta
		reasons = append(reasons, fmt.Sprintf("%d entrypoint plugin(s) matched a decorator: %d", matchedPlugins, delta))
	}
	for _, dec := range sym.Decorators {
		if decoratorIgnored(dec, s.cfg.IgnoreDecorators) {
			score -= 50
			reasons = append(reasons, fmt.Sprintf("decorator %q matches ignore_decorators: -50", dec))
		}
	}

	if isDunder(sym.Name) {
		score -= 40
		reasons = append(reasons, "dunder name: -40")
	} else if strings.HasPrefix(sym.Name, "_") {
		// Orphaned files returned above, so the symbol's module is reachable here.
		score -= 10
		reasons = append(reasons, "leading-underscore private name in a reachable module: -10")
	}
	if nameIgnored(sym.Name, s.cfg.IgnoreNames) {
		score -= 50
		reasons = append(reasons, "name matches ignore_names: -50")
	}

	if len(sym.NoqaCodes) > 0 {
		score -= 50
		reasons = append(reasons, "suppressed by noqa comment: -50")
	}

	return s.finish(sym, score, reachable, reasons, usageCount)
}

func (s *Scorer) finish(sym *types.Symbol, score int, reachable bool, reasons []string, usageCount int) types.DependencyNode {
	return types.DependencyNode{
		Symbol:     sym,
		Confidence: clamp(score, 0, 100),
		Reachable:  reachable,
		Reasons:    reasons,
		UsageCount: usageCount,
	}
}

// Action classifies a confidence score into a suggested action.
func (s *Scorer) Action(confidence int) types.SuggestedAction {
	switch {
	case confidence >= s.cfg.DeleteThreshold:
		return types.ActionDelete
	case confidence >= s.cfg.ReviewThreshold:
		return types.ActionReview
	default:
		return types.ActionKeep
	}
}

// Band buckets a confidence score into the summary's high/medium/low
// counts, using the same two thresholds as Action.
func (s *Scorer) Band(confidence int) types.ConfidenceBand {
	switch {
	case confidence >= s.cfg.DeleteThreshold:
		return types.BandHigh
	case confidence >= s.cfg.ReviewThreshold:
		return types.BandMedium
	default:
		return types.BandLow
	}
}

// itemTypeFor maps a symbol kind to its externally serialized item type.
func itemTypeFor(kind types.SymbolKind) types.ItemType {
	switch kind {
	case types.KindFunction:
		return types.TypeUnusedFunction
	case types.KindMethod:
		return types.TypeUnusedMethod
	case types.KindClass:
		return types.TypeUnusedClass
	case types.KindVariable:
		return types.TypeUnusedVariable
	case types.KindImport:
		return types.TypeUnusedImport
	default:
		return types.TypeUnusedVariable
	}
}

// ToItem converts a scored DependencyNode into the externally serialized
// DeadCodeItem record.
func (s *Scorer) ToItem(node types.DependencyNode) types.DeadCodeItem {
	sym := node.Symbol
	return types.DeadCodeItem{
		QualifiedName:   sym.QualifiedName,
		Name:            sym.Name,
		Type:            itemTypeFor(sym.Kind),
		File:            sym.Location.File,
		Line:            sym.Location.Line,
		Decorators:      sym.Decorators,
		Confidence:      node.Confidence,
		Reasons:         node.Reasons,
		SuggestedAction: s.Action(node.Confidence),
	}
}

func decoratorIgnored(decorator string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(decorator, p) {
			return true
		}
	}
	return false
}

func nameIgnored(name string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := filepath.Match(g, name); ok {
			return true
		}
	}
	return false
}

func isDunder(name string) bool {
	return strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") && len(name) > 4
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
