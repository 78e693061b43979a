// Package collector walks a parsed Python file once, emitting the Symbol
// (definition) and Usage (reference) records the rest of the pipeline
// builds its graph from.
package collector

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/deadcode/internal/astutil"
	"github.com/ingo-eichhorst/deadcode/internal/noqa"
	"github.com/ingo-eichhorst/deadcode/internal/parser"
	"github.com/ingo-eichhorst/deadcode/internal/resolver"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// identParentSkip lists parent node kinds whose identifier children are
// definition/declaration sites rather than usages, so they're excluded
// from bare-name reference collection.
var identParentSkip = map[string]bool{
	"function_definition":    true,
	"class_definition":       true,
	"parameters":             true,
	"typed_parameter":        true,
	"default_parameter":      true,
	"typed_default_parameter": true,
	"lambda_parameters":       true,
	"dotted_name":             true, // handled at the import/attribute level
	"import_statement":        true,
	"import_from_statement":   true,
	"aliased_import":          true,
	"decorator":               true,
	"attribute":                true, // handled as a unit, not per-identifier
	"global_statement":        true,
	"nonlocal_statement":      true,
	"as_pattern":              true,
	"keyword_argument":        true, // name field only; value handled by recursion
}

// Collector builds Symbol and Usage records for one parsed file.
type Collector struct {
	noqa noqa.Index
}

// New creates a Collector that annotates symbols with suppression codes
// found in idx.
func New(idx noqa.Index) *Collector {
	return &Collector{noqa: idx}
}

// state threads scope information through the recursive walk.
type state struct {
	module   types.ModulePath
	file     types.FilePath
	content  []byte
	class    string // qualified class name, "" outside a class body
	function string // qualified enclosing function/method name, "" at module/class scope
}

// Collect walks f's AST and returns every Symbol and Usage found in it.
func (c *Collector) Collect(f *parser.ParsedFile) ([]*types.Symbol, []types.Usage, []types.Diagnostic) {
	var diags []types.Diagnostic
	module := resolver.FileToModule(f.RelPath)
	st := &state{module: module, file: f.RelPath, content: f.Content}

	var symbols []*types.Symbol
	var usages []types.Usage

	root := f.Tree.RootNode()
	if root == nil {
		diags = append(diags, types.Diagnostic{
			Kind:    types.DiagParse,
			File:    f.RelPath,
			Message: "empty syntax tree",
		})
		return symbols, usages, diags
	}

	c.walkBlock(root, st, &symbols, &usages)
	return symbols, usages, diags
}

// walkBlock processes a sequence of statements at module, class, or
// function-body scope, looking for definitions and assignments, then
// recurses into every statement for usages and nested scopes.
func (c *Collector) walkBlock(block *tree_sitter.Node, st *state, symbols *[]*types.Symbol, usages *[]types.Usage) {
	for _, child := range astutil.Children(block) {
		c.walkStatement(child, st, symbols, usages)
	}
}

func (c *Collector) walkStatement(node *tree_sitter.Node, st *state, symbols *[]*types.Symbol, usages *[]types.Usage) {
	switch node.Kind() {
	case "decorated_definition":
		decorators := c.collectDecorators(node, st, usages)
		for _, inner := range astutil.Children(node) {
			switch inner.Kind() {
			case "function_definition":
				c.handleFunction(inner, st, decorators, symbols, usages)
				return
			case "class_definition":
				c.handleClass(inner, st, decorators, symbols, usages)
				return
			}
		}

	case "function_definition":
		c.handleFunction(node, st, nil, symbols, usages)

	case "class_definition":
		c.handleClass(node, st, nil, symbols, usages)

	case "import_statement", "import_from_statement":
		c.handleImport(node, st, symbols)
		c.walkExpr(node, st, usages)

	case "expression_statement":
		*symbols = append(*symbols, c.handleAssignment(node, st)...)
		c.walkExpr(node, st, usages)

	default:
		c.walkExpr(node, st, usages)
	}
}

// collectDecorators normalizes each decorator on a decorated_definition
// and emits a DECORATOR_REF usage for each one.
func (c *Collector) collectDecorators(node *tree_sitter.Node, st *state, usages *[]types.Usage) []string {
	var out []string
	for _, child := range astutil.Children(node) {
		if child.Kind() != "decorator" {
			continue
		}
		norm := normalizeDecorator(child, st.content)
		out = append(out, norm)

		expr := decoratorExpr(child)
		fn := expr
		if expr != nil && expr.Kind() == "call" {
			fn = expr.ChildByFieldName("function")
		}
		*usages = append(*usages, types.Usage{
			Name:           leafName(fn, st.content),
			AttributeChain: dottedPath(fn, st.content),
			Kind:           types.UsageDecoratorRef,
			Location:       loc(st.file, child),
			Caller:         st.function,
		})
	}
	return out
}

func (c *Collector) handleFunction(node *tree_sitter.Node, st *state, decorators []string, symbols *[]*types.Symbol, usages *[]types.Usage) {
	nameNode := node.ChildByFieldName("name")
	name := astutil.NodeText(nameNode, st.content)

	kind := types.KindFunction
	qualified := qualify(st.module, name)
	if st.class != "" {
		kind = types.KindMethod
		qualified = st.class + "." + name
	}

	sym := &types.Symbol{
		QualifiedName: qualified,
		Name:          name,
		Kind:          kind,
		Location:      loc(st.file, node),
		Decorators:    decorators,
		ParentClass:   st.class,
		NoqaCodes:     c.codesAt(st.file, node),
	}
	*symbols = append(*symbols, sym)

	inner := *st
	inner.function = qualified
	// A method body no longer runs at class scope.
	inner.class = ""

	if params := node.ChildByFieldName("parameters"); params != nil {
		c.walkExpr(params, &inner, usages)
	}
	if body := node.ChildByFieldName("body"); body != nil {
		c.walkBlock(body, &inner, symbols, usages)
	}
}

func (c *Collector) handleClass(node *tree_sitter.Node, st *state, decorators []string, symbols *[]*types.Symbol, usages *[]types.Usage) {
	nameNode := node.ChildByFieldName("name")
	name := astutil.NodeText(nameNode, st.content)
	qualified := qualify(st.module, name)

	var bases []string
	if superclasses := node.ChildByFieldName("superclasses"); superclasses != nil {
		for _, arg := range astutil.Children(superclasses) {
			switch arg.Kind() {
			case "(", ")", ",":
				continue
			case "keyword_argument":
				continue
			default:
				bases = append(bases, dottedPath(arg, st.content))
				*usages = append(*usages, types.Usage{
					Name:           leafName(arg, st.content),
					AttributeChain: dottedPath(arg, st.content),
					Kind:           types.UsageNameRef,
					Location:       loc(st.file, arg),
					Caller:         st.function,
				})
			}
		}
	}

	sym := &types.Symbol{
		QualifiedName: qualified,
		Name:          name,
		Kind:          types.KindClass,
		Location:      loc(st.file, node),
		Decorators:    decorators,
		ParentClass:   st.class,
		Bases:         bases,
		NoqaCodes:     c.codesAt(st.file, node),
	}
	*symbols = append(*symbols, sym)

	inner := *st
	inner.class = qualified
	inner.function = ""

	if body := node.ChildByFieldName("body"); body != nil {
		c.walkBlock(body, &inner, symbols, usages)
	}
}

// handleImport emits an IMPORT Symbol per name bound by an import
// statement (the resolver separately builds module-to-module ImportEdges).
func (c *Collector) handleImport(node *tree_sitter.Node, st *state, symbols *[]*types.Symbol) {
	switch node.Kind() {
	case "import_statement":
		for _, child := range astutil.Children(node) {
			switch child.Kind() {
			case "dotted_name":
				full := astutil.NodeText(child, st.content)
				bound := strings.SplitN(full, ".", 2)[0]
				*symbols = append(*symbols, c.importSymbol(bound, node, st))
			case "aliased_import":
				aliasNode := child.ChildByFieldName("alias")
				bound := astutil.NodeText(aliasNode, st.content)
				*symbols = append(*symbols, c.importSymbol(bound, node, st))
			}
		}

	case "import_from_statement":
		modNode := node.ChildByFieldName("module_name")
		for _, child := range astutil.Children(node) {
			switch child.Kind() {
			case "aliased_import":
				aliasNode := child.ChildByFieldName("alias")
				bound := astutil.NodeText(aliasNode, st.content)
				*symbols = append(*symbols, c.importSymbol(bound, node, st))
			case "wildcard_import":
				// star imports bind no statically-known name
			case "dotted_name":
				if modNode != nil && child.StartByte() == modNode.StartByte() {
					continue // the module imported from, not a bound name
				}
				bound := astutil.NodeText(child, st.content)
				*symbols = append(*symbols, c.importSymbol(bound, node, st))
			}
		}
	}
}

func (c *Collector) importSymbol(name string, node *tree_sitter.Node, st *state) *types.Symbol {
	return &types.Symbol{
		QualifiedName: qualify(st.module, name),
		Name:          name,
		Kind:          types.KindImport,
		Location:      loc(st.file, node),
		ParentClass:   st.class,
		NoqaCodes:     c.codesAt(st.file, node),
	}
}

// handleAssignment recognizes "name = expr", "a, b = expr" (tuple/list
// unpacking), and "name += expr" (augmented assignment) at module or class
// scope, emitting one VARIABLE symbol per bound name. Instance attribute
// assignment (self.x = ...) and assignment inside function bodies other
// than class-body constants are intentionally not tracked as symbols --
// too noisy for dead-code review.
func (c *Collector) handleAssignment(node *tree_sitter.Node, st *state) []*types.Symbol {
	if st.function != "" {
		return nil
	}
	target := firstChildOfKind(node, "assignment")
	if target == nil {
		target = firstChildOfKind(node, "augmented_assignment")
	}
	if target == nil {
		return nil
	}
	left := target.ChildByFieldName("left")
	if left == nil {
		return nil
	}

	var symbols []*types.Symbol
	for _, ident := range assignmentTargets(left) {
		name := astutil.NodeText(ident, st.content)

		qualified := qualify(st.module, name)
		if st.class != "" {
			qualified = st.class + "." + name
		}

		symbols = append(symbols, &types.Symbol{
			QualifiedName: qualified,
			Name:          name,
			Kind:          types.KindVariable,
			Location:      loc(st.file, node),
			ParentClass:   st.class,
			NoqaCodes:     c.codesAt(st.file, node),
		})
	}
	return symbols
}

// assignmentTargets flattens an assignment's left-hand side down to the
// bare identifiers it binds: a single name, or every name in a tuple/list
// unpacking pattern ("a, b = ...", "(a, b) = ...", "[a, b] = ...").
// Non-identifier targets (attribute, subscript, starred patterns) are
// skipped -- they don't introduce a new module/class-level name.
func assignmentTargets(left *tree_sitter.Node) []*tree_sitter.Node {
	switch left.Kind() {
	case "identifier":
		return []*tree_sitter.Node{left}
	case "pattern_list", "tuple_pattern", "list_pattern":
		var out []*tree_sitter.Node
		for _, child := range astutil.Children(left) {
			out = append(out, assignmentTargets(child)...)
		}
		return out
	default:
		return nil
	}
}

// walkExpr recurses through node collecting Usage records (calls,
// attributes, bare name references), without re-entering nested
// definitions already handled by walkStatement.
func (c *Collector) walkExpr(node *tree_sitter.Node, st *state, usages *[]types.Usage) {
	if node == nil {
		return
	}

	switch node.Kind() {
	case "function_definition", "class_definition", "decorated_definition":
		// handled by walkStatement at the owning scope
		return

	case "call":
		fn := node.ChildByFieldName("function")
		*usages = append(*usages, types.Usage{
			Name:           leafName(fn, st.content),
			AttributeChain: dottedPath(fn, st.content),
			Kind:           types.UsageCall,
			Location:       loc(st.file, node),
			Caller:         st.function,
		})
		if args := node.ChildByFieldName("arguments"); args != nil {
			c.walkExpr(args, st, usages)
		}
		return

	case "attribute":
		*usages = append(*usages, types.Usage{
			Name:           leafName(node, st.content),
			AttributeChain: dottedPath(node, st.content),
			Kind:           types.UsageAttribute,
			Location:       loc(st.file, node),
			Caller:         st.function,
		})
		return

	case "identifier":
		parent := node.Parent()
		parentKind := ""
		if parent != nil {
			parentKind = parent.Kind()
		}
		if parentKind == "keyword_argument" {
			if value := parent.ChildByFieldName("value"); value == nil || value.StartByte() != node.StartByte() {
				return
			}
		} else if identParentSkip[parentKind] {
			return
		}
		name := astutil.NodeText(node, st.content)
		if name == "self" || name == "cls" {
			return
		}
		*usages = append(*usages, types.Usage{
			Name:     name,
			Kind:     types.UsageNameRef,
			Location: loc(st.file, node),
			Caller:   st.function,
		})
		return
	}

	for _, child := range astutil.Children(node) {
		c.walkExpr(child, st, usages)
	}
}

func (c *Collector) codesAt(file types.FilePath, node *tree_sitter.Node) map[string]struct{} {
	if c.noqa == nil {
		return nil
	}
	line := int(node.StartPosition().Row) + 1
	return c.noqa.CodesAt(file, line)
}

func qualify(module types.ModulePath, name string) string {
	if module == "" {
		return name
	}
	return string(module) + "." + name
}

func loc(file types.FilePath, node *tree_sitter.Node) types.Location {
	pos := node.StartPosition()
	return types.Location{File: file, Line: int(pos.Row) + 1, Col: int(pos.Column)}
}

func leafName(node *tree_sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	if node.Kind() == "attribute" {
		attr := node.ChildByFieldName("attribute")
		return astutil.NodeText(attr, content)
	}
	return astutil.NodeText(node, content)
}

func firstChildOfKind(node *tree_sitter.Node, kind string) *tree_sitter.Node {
	for _, child := range astutil.Children(node) {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}
