// Package output renders a Report as the results document (JSON) or a
// terminal summary (plain text with color), grounded on the teacher's
// internal/output/json.go and terminal.go rendering conventions.
package output

import (
	"encoding/json"
	"io"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// JSONSummary mirrors Summary with the snake_case field names spec.md
// section 6 requires of the results document.
type JSONSummary struct {
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	Total         int `json:"total"`
	OrphanedFiles int `json:"orphaned_files"`
}

// JSONItem mirrors DeadCodeItem for external serialization.
type JSONItem struct {
	QualifiedName   string   `json:"qualified_name"`
	Name            string   `json:"name"`
	Type            string   `json:"type"`
	File            string   `json:"file"`
	Line            int      `json:"line"`
	Decorators      []string `json:"decorators"`
	Confidence      int      `json:"confidence"`
	Reasons         []string `json:"reasons"`
	SuggestedAction string   `json:"suggested_action"`
}

// JSONReport is the top-level results document (spec.md section 6).
type JSONReport struct {
	Summary     JSONSummary `json:"summary"`
	Items       []JSONItem  `json:"items"`
	Entrypoints []string    `json:"entrypoints"`
}

// BuildJSONReport converts a Report into its externally serialized shape.
// Unknown fields in this document must be treated as opaque by
// downstream consumers (spec.md section 4.1's collaborator contract), so
// this conversion only ever adds fields, never repurposes one.
func BuildJSONReport(report *types.Report) *JSONReport {
	jr := &JSONReport{
		Summary: JSONSummary{
			High:          report.Summary.High,
			Medium:        report.Summary.Medium,
			Low:           report.Summary.Low,
			Total:         report.Summary.Total,
			OrphanedFiles: report.Summary.OrphanedFiles,
		},
		Entrypoints: report.Entrypoints,
	}

	jr.Items = make([]JSONItem, 0, len(report.Items))
	for _, item := range report.Items {
		jr.Items = append(jr.Items, JSONItem{
			QualifiedName:   item.QualifiedName,
			Name:            item.Name,
			Type:            string(item.Type),
			File:            string(item.File),
			Line:            item.Line,
			Decorators:      item.Decorators,
			Confidence:      item.Confidence,
			Reasons:         item.Reasons,
			SuggestedAction: string(item.SuggestedAction),
		})
	}
	return jr
}

// RenderJSON writes report to w as pretty-printed JSON.
func RenderJSON(w io.Writer, report *types.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONReport(report))
}
