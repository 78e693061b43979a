// Package resolver resolves Python import statements to project-local
// modules, producing the ImportEdge graph the reachability engine walks.
package resolver

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/deadcode/internal/astutil"
	"github.com/ingo-eichhorst/deadcode/internal/parser"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// Resolver resolves import statements against a fixed set of known
// project modules.
type Resolver struct {
	knownModules map[types.ModulePath]types.FilePath
}

// New builds a Resolver knowing about every file in files.
func New(files []*parser.ParsedFile) *Resolver {
	known := make(map[types.ModulePath]types.FilePath, len(files))
	for _, f := range files {
		known[FileToModule(f.RelPath)] = f.RelPath
	}
	return &Resolver{knownModules: known}
}

// FileToModule converts a project-relative file path to a dotted Python
// module name, e.g. "pkg/sub/foo.py" -> "pkg.sub.foo", and collapses
// package-root "__init__.py" files to their containing package name.
func FileToModule(relPath types.FilePath) types.ModulePath {
	name := strings.TrimSuffix(string(relPath), ".py")
	name = strings.TrimSuffix(name, ".pyi")
	name = strings.ReplaceAll(name, "/", ".")
	name = strings.TrimSuffix(name, ".__init__")
	if name == "__init__" {
		name = ""
	}
	return types.ModulePath(name)
}

// ResolveRelative resolves a dotted relative import ("." / ".." / etc.
// prefix) against the module it appears in.
func ResolveRelative(fromModule types.ModulePath, relImport string) types.ModulePath {
	dots := 0
	for _, c := range relImport {
		if c == '.' {
			dots++
		} else {
			break
		}
	}

	parts := strings.Split(string(fromModule), ".")
	if dots > len(parts) {
		return ""
	}
	base := strings.Join(parts[:len(parts)-dots], ".")
	rest := relImport[dots:]
	switch {
	case rest == "":
		return types.ModulePath(base)
	case base == "":
		return types.ModulePath(rest)
	default:
		return types.ModulePath(base + "." + rest)
	}
}

// ResolveFile walks one file's AST and emits an ImportEdge per import
// statement / imported binding found in it.
func (r *Resolver) ResolveFile(f *parser.ParsedFile) ([]types.ImportEdge, []types.Diagnostic) {
	var edges []types.ImportEdge
	var diags []types.Diagnostic

	fromModule := FileToModule(f.RelPath)
	root := f.Tree.RootNode()

	astutil.WalkTree(root, func(node *tree_sitter.Node) {
		switch node.Kind() {
		case "import_statement":
			for _, child := range astutil.Children(node) {
				switch child.Kind() {
				case "dotted_name":
					r.emitAbsolute(fromModule, astutil.NodeText(child, f.Content), "", &edges)
				case "aliased_import":
					nameNode := child.ChildByFieldName("name")
					aliasNode := child.ChildByFieldName("alias")
					alias := ""
					if aliasNode != nil {
						alias = astutil.NodeText(aliasNode, f.Content)
					}
					if nameNode != nil {
						r.emitAbsolute(fromModule, astutil.NodeText(nameNode, f.Content), alias, &edges)
					}
				}
			}

		case "import_from_statement":
			modNode := node.ChildByFieldName("module_name")
			if modNode == nil {
				for _, child := range astutil.Children(node) {
					if child.Kind() == "dotted_name" || child.Kind() == "relative_import" {
						modNode = child
						break
					}
				}
			}
			if modNode == nil {
				return
			}
			modText := astutil.NodeText(modNode, f.Content)
			toModule := types.ModulePath(modText)
			if strings.HasPrefix(modText, ".") {
				toModule = ResolveRelative(fromModule, modText)
			}

			isStar := false
			var importedNames []string
			for _, child := range astutil.Children(node) {
				switch child.Kind() {
				case "wildcard_import":
					isStar = true
				case "aliased_import":
					nameNode := child.ChildByFieldName("name")
					if nameNode != nil {
						importedNames = append(importedNames, astutil.NodeText(nameNode, f.Content))
					}
				case "dotted_name":
					if child.StartByte() != modNode.StartByte() {
						importedNames = append(importedNames, astutil.NodeText(child, f.Content))
					}
				}
			}

			if isStar {
				edges = append(edges, r.buildEdge(fromModule, toModule, "", "", true))
				return
			}
			if len(importedNames) == 0 {
				edges = append(edges, r.buildEdge(fromModule, toModule, "", "", false))
				return
			}
			for _, name := range importedNames {
				edges = append(edges, r.buildEdge(fromModule, toModule, name, "", false))
			}
		}
	})

	return edges, diags
}

func (r *Resolver) emitAbsolute(fromModule types.ModulePath, modText, alias string, edges *[]types.ImportEdge) {
	*edges = append(*edges, r.buildEdge(fromModule, types.ModulePath(modText), "", alias, false))
}

func (r *Resolver) buildEdge(from, to types.ModulePath, importedName, alias string, isStar bool) types.ImportEdge {
	_, known := r.knownModules[to]
	return types.ImportEdge{
		FromModule:   from,
		ToModule:     to,
		ImportedName: importedName,
		Alias:        alias,
		IsStar:       isStar,
		External:     !known,
	}
}

// ResolveAll resolves every file's imports and returns the combined edge
// list alongside any diagnostics raised along the way.
func (r *Resolver) ResolveAll(files []*parser.ParsedFile) ([]types.ImportEdge, []types.Diagnostic) {
	var edges []types.ImportEdge
	var diags []types.Diagnostic
	for _, f := range files {
		e, d := r.ResolveFile(f)
		edges = append(edges, e...)
		diags = append(diags, d...)
	}
	return edges, diags
}
