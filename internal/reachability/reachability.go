// Package reachability propagates reachability from recognized
// entrypoints through the call graph, import graph, and class/method
// containment relation via fixed-point worklist processing -- the same
// tri-color worklist shape the teacher uses for circular-dependency
// detection, repurposed here to mark symbols live instead of cyclic.
package reachability

import (
	"strings"

	"github.com/ingo-eichhorst/deadcode/internal/resolver"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// conventionalEntryFiles lists module-root filenames that a Python web
// project's process manager (gunicorn, celery worker, manage.py) imports
// directly, so their top-level code always executes even with zero
// incoming ImportEdges.
var conventionalEntryFiles = map[string]bool{
	"app":      true,
	"main":     true,
	"manage":   true,
	"wsgi":     true,
	"asgi":     true,
	"run":      true,
	"celery":   true,
	"worker":   true,
	"settings": true,
}

// Graph holds the inputs reachability propagation needs.
type Graph struct {
	Symbols []*types.Symbol
	Usages  []types.Usage
	Edges   []types.ImportEdge
	Files   []types.FilePath // every discovered source file, for orphan detection
}

// Result is the computed reachability and usage-count annotation for
// every input symbol, plus the set of files that turned out orphaned.
type Result struct {
	Reachable     map[string]bool // qualified name -> reachable
	UsageCount    map[string]int  // qualified name -> number of resolved references
	OrphanedFiles map[types.FilePath]bool
	Diagnostics   []types.Diagnostic // ambiguous leaf-name resolutions (section 7)
}

// Compute runs the fixed-point worklist over g and returns per-symbol
// reachability, usage counts, and orphaned-file status.
func Compute(g *Graph) *Result {
	byName := indexByQualifiedName(g.Symbols)
	byLeaf := indexByLeafName(g.Symbols)
	methodsByClass := indexMethodsByClass(g.Symbols)
	usagesByCaller := indexUsagesByCaller(g.Usages)

	importedModules := importedModuleSet(g.Edges)

	reachable := make(map[string]bool)
	var queue []string
	queued := make(map[string]bool)

	enqueue := func(name string) {
		if name == "" || queued[name] {
			return
		}
		if _, ok := byName[name]; !ok {
			return
		}
		queued[name] = true
		queue = append(queue, name)
	}

	for _, sym := range g.Symbols {
		if sym.IsEntrypoint {
			enqueue(sym.QualifiedName)
		}
	}

	// Module-level code executes whenever its module is imported, or when
	// the module is a conventional process entry point. Seed the targets
	// of its top-level usages directly -- the module-level statement
	// itself has no Symbol to mark reachable, only its call targets do.
	for _, u := range g.Usages {
		if u.Caller != "" {
			continue
		}
		mod := fileModule(u.Location.File)
		if mod != "" && !importedModules[mod] && !conventionalEntryFiles[lastSegment(mod)] {
			continue
		}
		for _, target := range resolveUsage(u, byLeaf) {
			enqueue(target.QualifiedName)
		}
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if reachable[name] {
			continue
		}
		reachable[name] = true

		sym := byName[name]

		// Containment: a reachable class makes every method assignable
		// from it reachable too, since Python dispatches methods
		// dynamically and static call-site matching can't rule them out.
		if sym.Kind == types.KindClass {
			for _, m := range methodsByClass[name] {
				enqueue(m.QualifiedName)
			}
		}

		for _, u := range usagesByCaller[name] {
			for _, target := range resolveUsage(u, byLeaf) {
				enqueue(target.QualifiedName)
			}
		}
	}

	orphaned := computeOrphanedFiles(g, reachable, importedModules)

	// Usage count is a full project-wide tally of resolved references,
	// independent of the caller's own reachability, excluding usages that
	// live inside an orphaned file per SPEC section 4.7's exclusion rule.
	// A leaf-name lookup that matches more than one Symbol is an ambiguous
	// resolution (section 7): it's recorded as a Diagnostic on the usage's
	// file, and every candidate still receives the usage credit rather than
	// splitting or discarding it, so the ambiguity never drags a real
	// Symbol's usage count down to zero.
	usageCount := make(map[string]int)
	var diags []types.Diagnostic
	for _, u := range g.Usages {
		if orphaned[u.Location.File] {
			continue
		}
		targets := resolveUsage(u, byLeaf)
		if len(targets) > 1 {
			diags = append(diags, ambiguityDiagnostic(u, targets))
		}
		for _, target := range targets {
			if u.Caller == target.QualifiedName {
				continue // exclude the definition site's self-reference
			}
			usageCount[target.QualifiedName]++
		}
	}

	return &Result{Reachable: reachable, UsageCount: usageCount, OrphanedFiles: orphaned, Diagnostics: diags}
}

// ambiguityDiagnostic records that u's leaf name resolved to more than one
// candidate Symbol, per the ResolveAmbiguity error kind (section 7): this
// never fails the analysis, it only surfaces the ambiguity to the caller.
func ambiguityDiagnostic(u types.Usage, targets []*types.Symbol) types.Diagnostic {
	candidates := make([]string, len(targets))
	for i, t := range targets {
		candidates[i] = t.QualifiedName
	}
	err := &types.ResolveAmbiguity{
		FromModule: fileModule(u.Location.File),
		ImportText: u.Name,
		Candidates: candidates,
	}
	return types.Diagnostic{Kind: types.DiagResolveAmbiguity, File: u.Location.File, Message: err.Error()}
}

// computeOrphanedFiles determines, per SPEC section 4.7, which files are
// orphaned: their module is unreached by any import chain from a reachable
// module, and the file itself defines no entrypoint.
func computeOrphanedFiles(g *Graph, reachable map[string]bool, importedModules map[string]bool) map[types.FilePath]bool {
	moduleOfFile := make(map[types.FilePath]string, len(g.Files))
	filesByModule := make(map[string][]types.FilePath)
	for _, f := range g.Files {
		mod := fileModule(f)
		moduleOfFile[f] = mod
		filesByModule[mod] = append(filesByModule[mod], f)
	}

	hasEntrypoint := make(map[string]bool)
	moduleReachable := make(map[string]bool)
	for _, sym := range g.Symbols {
		mod := fileModule(sym.Location.File)
		if sym.IsEntrypoint {
			hasEntrypoint[mod] = true
			moduleReachable[mod] = true
		}
		if reachable[sym.QualifiedName] {
			moduleReachable[mod] = true
		}
	}

	// Propagate import reachability: a reachable module's imports execute
	// too, to a fixed point.
	changed := true
	for changed {
		changed = false
		for _, e := range g.Edges {
			if e.External || e.ToModule == "" {
				continue
			}
			if moduleReachable[string(e.FromModule)] && !moduleReachable[string(e.ToModule)] {
				moduleReachable[string(e.ToModule)] = true
				changed = true
			}
		}
	}

	orphaned := make(map[types.FilePath]bool)
	for _, f := range g.Files {
		mod := moduleOfFile[f]
		if !moduleReachable[mod] && !hasEntrypoint[mod] {
			orphaned[f] = true
		}
	}
	return orphaned
}

func resolveUsage(u types.Usage, byLeaf map[string][]*types.Symbol) []*types.Symbol {
	name := u.Name
	if name == "" {
		return nil
	}
	candidates := byLeaf[name]
	var out []*types.Symbol
	for _, c := range candidates {
		if c.Kind == types.KindImport {
			continue
		}
		out = append(out, c)
	}
	return out
}

func indexByQualifiedName(symbols []*types.Symbol) map[string]*types.Symbol {
	m := make(map[string]*types.Symbol, len(symbols))
	for _, s := range symbols {
		m[s.QualifiedName] = s
	}
	return m
}

func indexByLeafName(symbols []*types.Symbol) map[string][]*types.Symbol {
	m := make(map[string][]*types.Symbol)
	for _, s := range symbols {
		m[s.Name] = append(m[s.Name], s)
	}
	return m
}

func indexMethodsByClass(symbols []*types.Symbol) map[string][]*types.Symbol {
	m := make(map[string][]*types.Symbol)
	for _, s := range symbols {
		if s.Kind == types.KindMethod && s.ParentClass != "" {
			m[s.ParentClass] = append(m[s.ParentClass], s)
		}
	}
	return m
}

func indexUsagesByCaller(usages []types.Usage) map[string][]types.Usage {
	m := make(map[string][]types.Usage)
	for _, u := range usages {
		if u.Caller == "" {
			continue
		}
		m[u.Caller] = append(m[u.Caller], u)
	}
	return m
}

// importedModuleSet returns the set of modules with at least one
// incoming (non-external) import edge.
func importedModuleSet(edges []types.ImportEdge) map[string]bool {
	m := make(map[string]bool)
	for _, e := range edges {
		if !e.External && e.ToModule != "" {
			m[string(e.ToModule)] = true
		}
	}
	return m
}

func fileModule(file types.FilePath) string {
	return string(resolver.FileToModule(file))
}

func lastSegment(mod string) string {
	parts := strings.Split(mod, ".")
	return parts[len(parts)-1]
}
