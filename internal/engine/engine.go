// Package engine wires discovery, parsing, collection, resolution,
// entrypoint recognition, reachability, and scoring into the single
// synchronous Analyze(ctx, root, config) -> Report call, grounded on the
// teacher's Pipeline.Run stage sequence (internal/pipeline/pipeline.go)
// but reworked as a pure function instead of a stateful object writing
// to an io.Writer.
package engine

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ingo-eichhorst/deadcode/internal/collector"
	"github.com/ingo-eichhorst/deadcode/internal/config"
	"github.com/ingo-eichhorst/deadcode/internal/discovery"
	"github.com/ingo-eichhorst/deadcode/internal/entrypoint"
	"github.com/ingo-eichhorst/deadcode/internal/noqa"
	"github.com/ingo-eichhorst/deadcode/internal/parser"
	"github.com/ingo-eichhorst/deadcode/internal/reachability"
	"github.com/ingo-eichhorst/deadcode/internal/resolver"
	"github.com/ingo-eichhorst/deadcode/internal/scoring"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// Analyze runs the full discover -> parse -> collect -> resolve ->
// recognize -> reachability -> score pipeline (spec.md section 4) and
// assembles the Report; serializing it is left to internal/output.
// Discovery, parsing and noqa indexing run sequentially; only per-file
// collection fans out via errgroup, and the later stages run on the
// complete project once every file is collected. Per
// section 5, cancellation is checked at each stage boundary and a
// cancelled analysis returns no Report.
func Analyze(ctx context.Context, root string, cfg config.Config) (*types.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	walker := discovery.NewWalker(cfg.Analysis.Include, cfg.Analysis.Exclude)
	scan, err := walker.Discover(root)
	if err != nil {
		return nil, err
	}

	var sourceFiles []types.DiscoveredFile
	for _, f := range scan.Files {
		if f.Class != types.ClassExcluded {
			sourceFiles = append(sourceFiles, f)
		}
	}
	if len(sourceFiles) == 0 {
		return nil, &types.ConfigError{Field: "root", Message: fmt.Sprintf("no Python source files found under %s", root)}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ts, err := parser.NewTreeSitterParser()
	if err != nil {
		return nil, err
	}
	defer ts.Close()
	parsedFiles, diags := ts.ParseFiles(sourceFiles)
	defer parser.CloseAll(parsedFiles)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var noqaIndex noqa.Index
	if cfg.Linting.RespectNoqa {
		contents := make(map[types.FilePath][]byte, len(parsedFiles))
		for _, pf := range parsedFiles {
			contents[pf.RelPath] = pf.Content
		}
		var noqaDiags []types.Diagnostic
		noqaIndex, noqaDiags = noqa.Build(contents)
		diags = append(diags, noqaDiags...)
	}

	symbols, usages, collectDiags := collectAll(ctx, parsedFiles, noqaIndex)
	diags = append(diags, collectDiags...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := resolver.New(parsedFiles)
	edges, resolveDiags := res.ResolveAll(parsedFiles)
	diags = append(diags, resolveDiags...)

	entrypoint.RecognizeEnabled(symbols, cfg.Plugins.Enabled)
	applyExtraEntrypoints(symbols, cfg.Entrypoints.Extra)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files := make([]types.FilePath, 0, len(parsedFiles))
	for _, pf := range parsedFiles {
		files = append(files, pf.RelPath)
	}
	reach := reachability.Compute(&reachability.Graph{Symbols: symbols, Usages: usages, Edges: edges, Files: files})
	diags = append(diags, reach.Diagnostics...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scorerCfg := scoring.Default()
	scorerCfg.IgnoreDecorators = cfg.Linting.IgnoreDecorators
	scorerCfg.IgnoreNames = cfg.Linting.IgnoreNames
	cfg.Override.ApplyToScoringConfig(&scorerCfg)
	scorer := scoring.New(scorerCfg)

	report := buildReport(symbols, scorer, reach, diags)
	return report, nil
}

// collectAll runs the collector over every parsed file concurrently.
// Per-file failures are impossible here (Collect has no error return) but
// the fan-out still goes through errgroup so a future per-file timeout or
// cancellation path has somewhere to plug in, matching the teacher's
// per-analyzer errgroup shape in Pipeline.Run.
func collectAll(ctx context.Context, parsedFiles []*parser.ParsedFile, idx noqa.Index) ([]*types.Symbol, []types.Usage, []types.Diagnostic) {
	col := collector.New(idx)

	type perFile struct {
		symbols []*types.Symbol
		usages  []types.Usage
		diags   []types.Diagnostic
	}
	results := make([]perFile, len(parsedFiles))

	g, _ := errgroup.WithContext(ctx)
	for i, pf := range parsedFiles {
		i, pf := i, pf
		g.Go(func() error {
			symbols, usages, diags := col.Collect(pf)
			results[i] = perFile{symbols: symbols, usages: usages, diags: diags}
			return nil
		})
	}
	_ = g.Wait()

	var symbols []*types.Symbol
	var usages []types.Usage
	var diags []types.Diagnostic
	for _, r := range results {
		symbols = append(symbols, r.symbols...)
		usages = append(usages, r.usages...)
		diags = append(diags, r.diags...)
	}
	return symbols, usages, diags
}

func applyExtraEntrypoints(symbols []*types.Symbol, extra []string) {
	if len(extra) == 0 {
		return
	}
	set := make(map[string]bool, len(extra))
	for _, e := range extra {
		set[e] = true
	}
	for _, sym := range symbols {
		if set[sym.QualifiedName] {
			sym.IsEntrypoint = true
			sym.EntrypointReasons = append(sym.EntrypointReasons, "infrastructure-scan: entrypoints.extra")
		}
	}
}

func buildReport(symbols []*types.Symbol, scorer *scoring.Scorer, reach *reachability.Result, diags []types.Diagnostic) *types.Report {
	items := make([]types.DeadCodeItem, 0, len(symbols))
	var entrypoints []string
	summary := types.Summary{OrphanedFiles: len(reach.OrphanedFiles)}

	for _, sym := range symbols {
		if sym.IsEntrypoint {
			entrypoints = append(entrypoints, sym.QualifiedName)
		}
		node := scorer.Score(sym, reach)
		items = append(items, scorer.ToItem(node))
		summary.Total++
		switch scorer.Band(node.Confidence) {
		case types.BandHigh:
			summary.High++
		case types.BandMedium:
			summary.Medium++
		default:
			summary.Low++
		}
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.QualifiedName < b.QualifiedName
	})
	sort.Strings(entrypoints)

	return &types.Report{
		Summary:     summary,
		Items:       items,
		Entrypoints: entrypoints,
		Diagnostics: diags,
	}
}
