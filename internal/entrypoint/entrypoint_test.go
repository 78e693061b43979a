package entrypoint

import (
	"testing"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func TestRecognizeFlaskRoute(t *testing.T) {
	sym := &types.Symbol{
		Kind:       types.KindFunction,
		Name:       "list_users",
		Decorators: []string{"app.route(/users)"},
	}
	Recognize([]*types.Symbol{sym})
	if !sym.IsEntrypoint {
		t.Fatal("expected flask route to be recognized as entrypoint")
	}
	if len(sym.EntrypointReasons) != 1 {
		t.Errorf("expected 1 reason, got %v", sym.EntrypointReasons)
	}
}

func TestRecognizeFlaskRestxResource(t *testing.T) {
	cls := &types.Symbol{Kind: types.KindClass, Name: "UserResource", Bases: []string{"Resource"}}
	method := &types.Symbol{Kind: types.KindMethod, Name: "get", ParentClass: "api.UserResource"}
	Recognize([]*types.Symbol{cls, method})
	if !cls.IsEntrypoint {
		t.Error("expected Resource subclass to be an entrypoint")
	}
	if !method.IsEntrypoint {
		t.Error("expected get() verb method to be an entrypoint")
	}
}

func TestRecognizeCreateAppFactory(t *testing.T) {
	sym := &types.Symbol{Kind: types.KindFunction, Name: "create_app"}
	Recognize([]*types.Symbol{sym})
	if !sym.IsEntrypoint {
		t.Fatal("expected create_app to be recognized as a flask entrypoint")
	}
}

func TestRecognizeTeardownAppContextWildcard(t *testing.T) {
	sym := &types.Symbol{
		Kind:       types.KindFunction,
		Name:       "close_db",
		Decorators: []string{"app.teardown_appcontext"},
	}
	Recognize([]*types.Symbol{sym})
	if !sym.IsEntrypoint {
		t.Fatal("expected app.teardown_appcontext to match the *.teardown_* wildcard")
	}
}

func TestRecognizePytestNaming(t *testing.T) {
	sym := &types.Symbol{Kind: types.KindFunction, Name: "test_creates_user"}
	Recognize([]*types.Symbol{sym})
	if !sym.IsEntrypoint {
		t.Error("expected test_ prefixed function to be an entrypoint")
	}
}

func TestRecognizeOrdinaryFunctionNotEntrypoint(t *testing.T) {
	sym := &types.Symbol{Kind: types.KindFunction, Name: "helper"}
	Recognize([]*types.Symbol{sym})
	if sym.IsEntrypoint {
		t.Error("plain helper function should not be an entrypoint")
	}
}

func TestRecognizeMultiplePluginsAccumulateReasons(t *testing.T) {
	sym := &types.Symbol{
		Kind:       types.KindMethod,
		Name:       "get",
		ParentClass: "api.Widget",
		Bases:      nil,
		Decorators: []string{"celery.app.task"},
	}
	Recognize([]*types.Symbol{sym})
	if len(sym.EntrypointReasons) < 1 {
		t.Errorf("expected at least one matching plugin, got %v", sym.EntrypointReasons)
	}
}
