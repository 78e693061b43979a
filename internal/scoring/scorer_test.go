package scoring

import (
	"testing"

	"github.com/ingo-eichhorst/deadcode/internal/reachability"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func emptyResult() *reachability.Result {
	return &reachability.Result{
		Reachable:     map[string]bool{},
		UsageCount:    map[string]int{},
		OrphanedFiles: map[types.FilePath]bool{},
	}
}

func TestScoreUnreachableFunctionIsHighConfidence(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{QualifiedName: "services.unused_helper", Name: "unused_helper", Kind: types.KindFunction}

	node := s.Score(sym, emptyResult())

	if node.Reachable {
		t.Error("expected node to be unreachable")
	}
	if s.Action(node.Confidence) != types.ActionDelete {
		t.Errorf("confidence = %d, Action = %s, want delete", node.Confidence, s.Action(node.Confidence))
	}
}

func TestScoreReachableEntrypointIsLowConfidence(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{
		QualifiedName:     "views.list_users",
		Name:              "list_users",
		Kind:              types.KindFunction,
		IsEntrypoint:      true,
		EntrypointReasons: []string{"flask: app.route(/users)"},
	}
	result := emptyResult()
	result.Reachable["views.list_users"] = true
	result.UsageCount["views.list_users"] = 3

	node := s.Score(sym, result)

	if s.Action(node.Confidence) != types.ActionKeep {
		t.Errorf("confidence = %d, Action = %s, want keep", node.Confidence, s.Action(node.Confidence))
	}
}

func TestScoreDunderMethodNeverDelete(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{QualifiedName: "models.User.__init__", Name: "__init__", Kind: types.KindMethod}

	node := s.Score(sym, emptyResult())

	if s.Action(node.Confidence) == types.ActionDelete {
		t.Errorf("dunder method scored %d, should never reach delete threshold", node.Confidence)
	}
}

func TestScoreOrphanedFileShortCircuitsToMaxConfidence(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{
		QualifiedName: "legacy.reports.build",
		Name:          "build",
		Kind:          types.KindFunction,
		Location:      types.Location{File: "legacy/reports.py"},
	}
	result := emptyResult()
	result.OrphanedFiles["legacy/reports.py"] = true

	node := s.Score(sym, result)

	if node.Confidence != 100 {
		t.Errorf("confidence = %d, want 100 for a symbol in an orphaned file", node.Confidence)
	}
}

func TestScoreNoqaSuppressionLowersConfidence(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{
		QualifiedName: "legacy.old_helper",
		Name:          "old_helper",
		Kind:          types.KindFunction,
		NoqaCodes:     map[string]struct{}{"dead-code": {}},
	}
	withNoqa := s.Score(sym, emptyResult())

	sym2 := &types.Symbol{QualifiedName: "legacy.old_helper2", Name: "old_helper2", Kind: types.KindFunction}
	withoutNoqa := s.Score(sym2, emptyResult())

	if withNoqa.Confidence >= withoutNoqa.Confidence {
		t.Errorf("noqa-suppressed confidence %d should be lower than unsuppressed %d", withNoqa.Confidence, withoutNoqa.Confidence)
	}
}

func TestScoreIgnoreNamesGlobLowersConfidence(t *testing.T) {
	cfg := Default()
	cfg.IgnoreNames = []string{"legacy_*"}
	s := New(cfg)
	sym := &types.Symbol{QualifiedName: "pkg.legacy_shim", Name: "legacy_shim", Kind: types.KindFunction}

	node := s.Score(sym, emptyResult())

	plain := New(Default()).Score(&types.Symbol{QualifiedName: "pkg.other", Name: "other", Kind: types.KindFunction}, emptyResult())
	if node.Confidence >= plain.Confidence {
		t.Errorf("ignore_names match should lower confidence below the unmatched baseline")
	}
}

func TestToItemMapsSymbolKindToItemType(t *testing.T) {
	s := New(Default())
	sym := &types.Symbol{
		QualifiedName: "services.unused_helper",
		Name:          "unused_helper",
		Kind:          types.KindFunction,
		Location:      types.Location{File: "services.py", Line: 10},
	}
	node := s.Score(sym, emptyResult())

	item := s.ToItem(node)

	if item.Type != types.TypeUnusedFunction {
		t.Errorf("Type = %s, want %s", item.Type, types.TypeUnusedFunction)
	}
	if item.File != "services.py" || item.Line != 10 {
		t.Errorf("unexpected location: %+v", item)
	}
}
