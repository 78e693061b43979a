package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func sampleReport() *types.Report {
	return &types.Report{
		Summary: types.Summary{High: 1, Medium: 0, Low: 0, Total: 1, OrphanedFiles: 0},
		Items: []types.DeadCodeItem{
			{
				QualifiedName:   "services.legacy.unused",
				Name:            "unused",
				Type:            types.TypeUnusedFunction,
				File:            "services/legacy.py",
				Line:            3,
				Confidence:      90,
				Reasons:         []string{"base score for function: 60", "not reachable from any entrypoint: +30"},
				SuggestedAction: types.ActionDelete,
			},
		},
		Entrypoints: []string{"app.summary"},
	}
}

func TestBuildJSONReportMapsFields(t *testing.T) {
	jr := BuildJSONReport(sampleReport())
	if jr.Summary.High != 1 {
		t.Errorf("Summary.High = %d, want 1", jr.Summary.High)
	}
	if len(jr.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(jr.Items))
	}
	if jr.Items[0].SuggestedAction != "delete" {
		t.Errorf("SuggestedAction = %s, want delete", jr.Items[0].SuggestedAction)
	}
}

func TestRenderJSONProducesSnakeCaseKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded["summary"]; !ok {
		t.Error("expected top-level \"summary\" key")
	}
	if _, ok := decoded["items"]; !ok {
		t.Error("expected top-level \"items\" key")
	}
	if _, ok := decoded["entrypoints"]; !ok {
		t.Error("expected top-level \"entrypoints\" key")
	}
}
