// Package types holds the data model shared across the deadcode analysis
// pipeline: discovered files, parsed symbols and usages, and the scored
// results that flow out to the serializer.
package types

import "fmt"

// FileClass categorizes a discovered source file.
type FileClass int

const (
	ClassSource   FileClass = iota // regular Python source file
	ClassTest                      // test file (test_*.py, *_test.py, conftest.py)
	ClassExcluded                  // excluded (gitignore, explicit exclude glob, dot/underscore-prefixed file name)
)

// String returns the human-readable name for a FileClass.
func (fc FileClass) String() string {
	switch fc {
	case ClassSource:
		return "source"
	case ClassTest:
		return "test"
	case ClassExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// DiscoveredFile represents a file found during directory walking, before
// parsing. RelPath is always a FilePath in canonical (forward-slash,
// no leading "./") form.
type DiscoveredFile struct {
	Path          string // absolute path on disk
	RelPath       string // canonical FilePath, project-root relative
	Class         FileClass
	ExcludeReason string // "gitignore" or "exclude-glob"; empty otherwise, including name-based exclusions
}

// ScanResult is the output of the Source Walker (component 1).
type ScanResult struct {
	RootDir        string
	TotalFiles     int
	SourceCount    int
	TestCount      int
	ExcludedCount  int
	GitignoreCount int
	Files          []DiscoveredFile // sorted lexicographically by RelPath
}

// FilePath is a repository-relative POSIX path: forward slashes, no
// leading "./".
type FilePath string

// ModulePath is the dotted module name derived from a FilePath.
type ModulePath string

// Location identifies a definition or reference site.
type Location struct {
	File FilePath
	Line int // 1-based
	Col  int // 0-based
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// SymbolKind tags the variant of a Symbol.
type SymbolKind string

const (
	KindFunction SymbolKind = "FUNCTION"
	KindMethod   SymbolKind = "METHOD"
	KindClass    SymbolKind = "CLASS"
	KindVariable SymbolKind = "VARIABLE"
	KindImport   SymbolKind = "IMPORT"
)

// Symbol is a definition site: a function, method, class, module-level
// variable, or import binding.
type Symbol struct {
	QualifiedName     string // <ModulePath>.<local_name>, or <ModulePath>.<Class>.<method> for methods
	Name              string // leaf identifier
	Kind              SymbolKind
	Location          Location
	Decorators        []string // normalized, in source order
	IsEntrypoint      bool
	EntrypointReasons []string // every matching plugin reason, first-match-wins order preserved
	ParentClass       string   // qualified name of the enclosing class; "" outside a class body
	Bases             []string // base class dotted names, classes only
	NoqaCodes         map[string]struct{}
}

// HasNoqa reports whether code (or the "ALL" sentinel) suppresses this symbol.
func (s *Symbol) HasNoqa(code string) bool {
	if len(s.NoqaCodes) == 0 {
		return false
	}
	if _, ok := s.NoqaCodes["ALL"]; ok {
		return true
	}
	_, ok := s.NoqaCodes[code]
	return ok
}

// UsageKind tags the variant of a Usage reference.
type UsageKind string

const (
	UsageCall         UsageKind = "CALL"
	UsageAttribute    UsageKind = "ATTRIBUTE"
	UsageImportRef    UsageKind = "IMPORT_REF"
	UsageNameRef      UsageKind = "NAME_REF"
	UsageDecoratorRef UsageKind = "DECORATOR_REF"
)

// Usage is a reference to an identifier: a call, attribute access, bare
// name, decorator application, or import reference.
type Usage struct {
	Name           string // leaf identifier
	AttributeChain string // full dotted form when known, e.g. "app.route"
	Kind           UsageKind
	Location       Location
	Caller         string // qualified name of enclosing FUNCTION/METHOD; "" at module scope
}

// ImportEdge is a resolved or unresolved import statement.
type ImportEdge struct {
	FromModule   ModulePath
	ToModule     ModulePath
	ImportedName string // symbol imported from ToModule, if any
	Alias        string // local binding name, if aliased
	IsStar       bool
	External     bool // resolves outside the project; ignored by reachability
}

// DependencyNode wraps a Symbol with computed reachability and confidence.
type DependencyNode struct {
	Symbol     *Symbol
	Confidence int // 0..100
	Reachable  bool
	Reasons    []string // human-readable, in rule-application order
	UsageCount int
}

// SuggestedAction classifies a DeadCodeItem by confidence band.
type SuggestedAction string

const (
	ActionDelete SuggestedAction = "delete"
	ActionReview SuggestedAction = "review"
	ActionKeep   SuggestedAction = "keep"
)

// ItemType is the externally serialized symbol-kind label.
type ItemType string

const (
	TypeUnusedFunction ItemType = "unused_function"
	TypeUnusedMethod   ItemType = "unused_method"
	TypeUnusedClass    ItemType = "unused_class"
	TypeUnusedVariable ItemType = "unused_variable"
	TypeUnusedImport   ItemType = "unused_import"
)

// DeadCodeItem is the externally serialized candidate record.
type DeadCodeItem struct {
	QualifiedName   string
	Name            string
	Type            ItemType
	File            FilePath
	Line            int
	Decorators      []string
	Confidence      int
	Reasons         []string
	SuggestedAction SuggestedAction
}

// DiagnosticKind tags a non-fatal diagnostic accumulated during analysis.
type DiagnosticKind string

const (
	DiagIO               DiagnosticKind = "io_error"
	DiagParse            DiagnosticKind = "parse_error"
	DiagResolveAmbiguity DiagnosticKind = "resolve_ambiguity"
	DiagRedefinition     DiagnosticKind = "redefinition"
)

// Diagnostic is a non-fatal issue encountered during analysis.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    FilePath
	Message string
}

// ConfidenceBand buckets a confidence score for the summary counts.
type ConfidenceBand string

const (
	BandHigh   ConfidenceBand = "high"
	BandMedium ConfidenceBand = "medium"
	BandLow    ConfidenceBand = "low"
)

// Summary holds the confidence-band counts surfaced in the results document.
type Summary struct {
	High          int
	Medium        int
	Low           int
	Total         int
	OrphanedFiles int
}

// Report is the full output of a single Analyze call.
type Report struct {
	Summary     Summary
	Items       []DeadCodeItem
	Entrypoints []string
	Diagnostics []Diagnostic
}
