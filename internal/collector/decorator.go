package collector

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/ingo-eichhorst/deadcode/internal/astutil"
)

// maxDecoratorArgText bounds how much of a decorator's literal argument
// text is kept in its normalized form, so e.g. long route docstrings
// don't blow up the symbol table.
const maxDecoratorArgText = 40

// normalizeDecorator renders a decorator node as a dotted-path string,
// with a truncated representation of its call arguments when present,
// e.g. "@app.route('/users', methods=['GET'])" -> "app.route(/users, methods=['GET'])".
func normalizeDecorator(node *tree_sitter.Node, content []byte) string {
	expr := decoratorExpr(node)
	if expr == nil {
		return astutil.NodeText(node, content)
	}

	if expr.Kind() == "call" {
		fn := expr.ChildByFieldName("function")
		path := dottedPath(fn, content)
		args := expr.ChildByFieldName("arguments")
		return path + "(" + summarizeArgs(args, content) + ")"
	}

	return dottedPath(expr, content)
}

// decoratorExpr returns the expression a decorator node wraps, skipping
// the leading "@" token.
func decoratorExpr(node *tree_sitter.Node) *tree_sitter.Node {
	for _, child := range astutil.Children(node) {
		if child.Kind() != "@" {
			return child
		}
	}
	return nil
}

// dottedPath renders an attribute/identifier chain as "a.b.c".
func dottedPath(node *tree_sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "attribute":
		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		return dottedPath(obj, content) + "." + astutil.NodeText(attr, content)
	case "call":
		fn := node.ChildByFieldName("function")
		return dottedPath(fn, content)
	default:
		return astutil.NodeText(node, content)
	}
}

// summarizeArgs renders a truncated, deterministic representation of a
// decorator's call arguments for display and plugin prefix matching.
func summarizeArgs(args *tree_sitter.Node, content []byte) string {
	if args == nil {
		return ""
	}
	var parts []string
	for _, child := range astutil.Children(args) {
		switch child.Kind() {
		case "(", ")", ",":
			continue
		}
		text := astutil.NodeText(child, content)
		text = strings.Trim(text, "'\"")
		if len(text) > maxDecoratorArgText {
			text = text[:maxDecoratorArgText] + "..."
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}
