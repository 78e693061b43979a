package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

func TestRenderSummaryIncludesCounts(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleReport(), false)
	out := buf.String()

	if !strings.Contains(out, "Symbols examined:") {
		t.Error("missing \"Symbols examined:\" line")
	}
	if !strings.Contains(out, "services.legacy.unused") {
		t.Error("missing candidate qualified name")
	}
	if !strings.Contains(out, "Recognized entrypoints:") {
		t.Error("missing entrypoints line")
	}
}

func TestRenderSummaryVerboseIncludesReasons(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, sampleReport(), true)
	out := buf.String()

	if !strings.Contains(out, "base score for function") {
		t.Error("verbose output missing reason detail")
	}
}

func TestRenderSummaryEmptyReport(t *testing.T) {
	var buf bytes.Buffer
	RenderSummary(&buf, &types.Report{}, false)
	if !strings.Contains(buf.String(), "No dead code candidates found.") {
		t.Error("expected empty-report message")
	}
}

func TestRenderDiagnosticsFormatsWarnings(t *testing.T) {
	var buf bytes.Buffer
	RenderDiagnostics(&buf, []types.Diagnostic{
		{Kind: types.DiagParse, File: "app.py", Message: "unexpected token"},
	})
	out := buf.String()
	if !strings.Contains(out, "Warning: app.py: unexpected token") {
		t.Errorf("unexpected diagnostic format: %q", out)
	}
}
