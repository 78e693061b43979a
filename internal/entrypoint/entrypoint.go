// Package entrypoint recognizes symbols a Flask/Celery web application
// reaches from outside the call graph -- route handlers, tasks, test
// functions, CLI commands -- via a table of independent plugins, the way
// internal/agent/metrics registers one entry per MECE metric.
package entrypoint

import (
	"strings"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// Plugin decides whether a symbol should be treated as an external
// entrypoint, and if so why.
type Plugin interface {
	ID() string
	Match(sym *types.Symbol) (bool, string)
}

// allPlugins holds singleton instances of each built-in plugin, in the
// order they're tried. A symbol is an entrypoint if ANY plugin matches;
// every matching plugin's reason is recorded.
var allPlugins = []Plugin{
	flaskPlugin{},
	flaskRestPlugin{},
	celeryPlugin{},
	sqlalchemyPlugin{},
	pydanticPlugin{},
	pytestPlugin{},
	clickPlugin{},
	mainBlockPlugin{},
}

// AllPlugins returns every registered entrypoint plugin.
func AllPlugins() []Plugin {
	return allPlugins
}

// Recognize annotates every symbol in place: IsEntrypoint is set true and
// EntrypointReasons populated whenever at least one plugin matches.
func Recognize(symbols []*types.Symbol) {
	recognizeWith(symbols, allPlugins)
}

// configPluginIDs maps a plugins.enabled configuration name (spec.md
// section 6) to the Plugin.ID() it activates. "typer" shares the click
// plugin's decorator-prefix matching rather than getting its own table
// entry, since click.command()/typer.command() normalize identically.
var configPluginIDs = map[string]string{
	"flask":          "flask",
	"flask-restplus": "flask-restx",
	"celery":         "celery",
	"sqlalchemy":     "sqlalchemy",
	"pydantic":       "pydantic",
	"pytest":         "pytest",
	"click":          "click",
	"typer":          "click",
}

// RecognizeEnabled is like Recognize but restricts the plugin table to
// the ones named in enabled (plugins.enabled config). main-block always
// runs: it isn't a framework integration a project can opt out of, it's
// how the engine finds the script's own entry function. An empty enabled
// list runs every built-in plugin, matching config.Default().
func RecognizeEnabled(symbols []*types.Symbol, enabled []string) {
	if len(enabled) == 0 {
		recognizeWith(symbols, allPlugins)
		return
	}

	active := map[string]bool{"main-block": true}
	for _, name := range enabled {
		if id, ok := configPluginIDs[name]; ok {
			active[id] = true
		}
	}

	var plugins []Plugin
	for _, p := range allPlugins {
		if active[p.ID()] {
			plugins = append(plugins, p)
		}
	}
	recognizeWith(symbols, plugins)
}

func recognizeWith(symbols []*types.Symbol, plugins []Plugin) {
	for _, sym := range symbols {
		for _, p := range plugins {
			if ok, reason := p.Match(sym); ok {
				sym.IsEntrypoint = true
				sym.EntrypointReasons = append(sym.EntrypointReasons, reason)
			}
		}
	}
}

// hasDecoratorPrefix reports whether any of sym's normalized decorators
// matches one of the given dotted-path patterns: "*.name" matches any
// receiver calling ".name" (e.g. "app.route"), "*.name_*" matches any
// receiver calling a ".name_" prefixed segment (e.g. "app.teardown_request",
// "app.teardown_appcontext"), and a plain pattern matches by prefix.
func hasDecoratorPrefix(sym *types.Symbol, prefixes ...string) (string, bool) {
	for _, dec := range sym.Decorators {
		for _, prefix := range prefixes {
			if decoratorMatchesPattern(dec, prefix) {
				return dec, true
			}
		}
	}
	return "", false
}

func decoratorMatchesPattern(dec, pattern string) bool {
	if strings.HasPrefix(pattern, "*.") {
		rest := strings.TrimPrefix(pattern, "*.")
		if strings.HasSuffix(rest, "*") {
			return strings.Contains(dec, "."+strings.TrimSuffix(rest, "*"))
		}
		return strings.Contains(dec, "."+rest)
	}
	return strings.HasPrefix(dec, pattern)
}

func hasBase(sym *types.Symbol, names ...string) (string, bool) {
	for _, base := range sym.Bases {
		leaf := base
		if idx := strings.LastIndex(base, "."); idx >= 0 {
			leaf = base[idx+1:]
		}
		for _, name := range names {
			if leaf == name {
				return base, true
			}
		}
	}
	return "", false
}

// flaskPlugin matches Flask/FastAPI-style route and hook decorators.
type flaskPlugin struct{}

func (flaskPlugin) ID() string { return "flask" }

func (flaskPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindFunction && sym.Kind != types.KindMethod {
		return false, ""
	}
	if sym.Name == "create_app" {
		return true, "flask: create_app factory function"
	}
	prefixes := []string{
		"*.route", "*.get", "*.post", "*.put", "*.patch", "*.delete",
		"*.before_request", "*.after_request", "*.teardown_*",
		"*.before_first_request", "*.errorhandler", "*.app_errorhandler",
		"*.cli.command", "blueprint.route",
	}
	if dec, ok := hasDecoratorPrefix(sym, prefixes...); ok {
		return true, "flask: " + dec
	}
	return false, ""
}

// flaskRestPlugin matches Flask-RESTX/RESTPlus Resource (and MethodView)
// subclasses, and every METHOD named after an HTTP verb. The verb check
// looks at the method name only: the enclosing class's bases are not
// consulted, so a get() on any class matches.
type flaskRestPlugin struct{}

func (flaskRestPlugin) ID() string { return "flask-restx" }

func (flaskRestPlugin) Match(sym *types.Symbol) (bool, string) {
	switch sym.Kind {
	case types.KindClass:
		if base, ok := hasBase(sym, "Resource", "MethodView"); ok {
			return true, "flask-restx: " + base
		}
	case types.KindMethod:
		verbs := map[string]bool{"get": true, "post": true, "put": true, "patch": true, "delete": true, "head": true, "options": true}
		if verbs[strings.ToLower(sym.Name)] {
			return true, "flask-restx: verb method " + sym.Name
		}
	}
	return false, ""
}

// celeryPlugin matches Celery task decorators.
type celeryPlugin struct{}

func (celeryPlugin) ID() string { return "celery" }

func (celeryPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindFunction && sym.Kind != types.KindMethod {
		return false, ""
	}
	prefixes := []string{"*.task", "celery.task", "shared_task"}
	if dec, ok := hasDecoratorPrefix(sym, prefixes...); ok {
		return true, "celery: " + dec
	}
	return false, ""
}

// sqlalchemyPlugin matches ORM model classes, recognized via Base
// subclassing or declarative-mixin naming.
type sqlalchemyPlugin struct{}

func (sqlalchemyPlugin) ID() string { return "sqlalchemy" }

func (sqlalchemyPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindClass {
		return false, ""
	}
	if base, ok := hasBase(sym, "Base", "Model", "DeclarativeBase"); ok {
		return true, "sqlalchemy: " + base
	}
	return false, ""
}

// pydanticPlugin matches Pydantic/marshmallow schema classes, which are
// instantiated reflectively by validation/serialization frameworks.
type pydanticPlugin struct{}

func (pydanticPlugin) ID() string { return "pydantic" }

func (pydanticPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindClass {
		return false, ""
	}
	if base, ok := hasBase(sym, "BaseModel", "Schema", "BaseSettings"); ok {
		return true, "pydantic: " + base
	}
	return false, ""
}

// pytestPlugin matches pytest test functions, methods, and fixtures.
type pytestPlugin struct{}

func (pytestPlugin) ID() string { return "pytest" }

func (pytestPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindFunction && sym.Kind != types.KindMethod {
		return false, ""
	}
	if strings.HasPrefix(sym.Name, "test_") {
		return true, "pytest: test function naming"
	}
	if dec, ok := hasDecoratorPrefix(sym, "pytest.fixture", "*.fixture", "pytest.mark."); ok {
		return true, "pytest: " + dec
	}
	return false, ""
}

// clickPlugin matches click/typer CLI command functions.
type clickPlugin struct{}

func (clickPlugin) ID() string { return "click" }

func (clickPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind != types.KindFunction {
		return false, ""
	}
	if dec, ok := hasDecoratorPrefix(sym, "*.command", "*.group", "click.command", "click.group", "app.command", "typer.command"); ok {
		return true, "click: " + dec
	}
	return false, ""
}

// mainBlockPlugin matches every FUNCTION named "main". It does not look
// for an "if __name__ == '__main__'" guard, and functions called from
// such a guard under any other name are not matched by it.
type mainBlockPlugin struct{}

func (mainBlockPlugin) ID() string { return "main-block" }

func (mainBlockPlugin) Match(sym *types.Symbol) (bool, string) {
	if sym.Kind == types.KindFunction && sym.Name == "main" {
		return true, "main-block: def main()"
	}
	return false, ""
}
