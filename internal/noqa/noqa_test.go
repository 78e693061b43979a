package noqa

import (
	"testing"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func TestBuildBareNoqa(t *testing.T) {
	content := []byte("import os  # noqa\nx = 1\n")
	idx, diags := Build(map[types.FilePath][]byte{"a.py": content})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	codes := idx.CodesAt("a.py", 1)
	if _, ok := codes[All]; !ok {
		t.Errorf("expected ALL sentinel on line 1, got %v", codes)
	}
	if idx.CodesAt("a.py", 2) != nil {
		t.Errorf("line 2 should have no suppression")
	}
}

func TestBuildScopedCodes(t *testing.T) {
	content := []byte("from foo import bar  # noqa: F401, F811\n")
	idx, _ := Build(map[types.FilePath][]byte{"a.py": content})
	codes := idx.CodesAt("a.py", 1)
	if _, ok := codes["F401"]; !ok {
		t.Errorf("expected F401 in %v", codes)
	}
	if _, ok := codes["F811"]; !ok {
		t.Errorf("expected F811 in %v", codes)
	}
	if _, ok := codes[All]; ok {
		t.Errorf("scoped noqa should not set ALL sentinel")
	}
}

func TestBuildTypeIgnore(t *testing.T) {
	content := []byte("result = risky()  # type: ignore\n")
	idx, _ := Build(map[types.FilePath][]byte{"a.py": content})
	codes := idx.CodesAt("a.py", 1)
	if _, ok := codes["type-ignore"]; !ok {
		t.Errorf("expected type-ignore in %v", codes)
	}
}

func TestSymbolHasNoqa(t *testing.T) {
	sym := &types.Symbol{NoqaCodes: map[string]struct{}{"F401": {}}}
	if !sym.HasNoqa("F401") {
		t.Error("expected HasNoqa(F401) to be true")
	}
	if sym.HasNoqa("F811") {
		t.Error("expected HasNoqa(F811) to be false")
	}

	all := &types.Symbol{NoqaCodes: map[string]struct{}{All: {}}}
	if !all.HasNoqa("anything") {
		t.Error("ALL sentinel should suppress any code")
	}
}
