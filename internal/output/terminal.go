package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// Display limits for terminal output.
const verboseReasonsPerItem = 3

// RenderSummary writes a human-readable scan summary to w: a header, the
// confidence-band counts, then the ranked item list. Color is suppressed
// automatically when w isn't a terminal (piped output, CI), the same
// isatty check the teacher's Spinner uses to suppress animation.
func RenderSummary(w io.Writer, report *types.Report, verbose bool) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)

	if f, ok := w.(*os.File); ok && !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		color.NoColor = true
	}

	bold.Fprintln(w, "deadcode scan")
	fmt.Fprintln(w, "────────────────────────────────────────")
	fmt.Fprintf(w, "Symbols examined: %s\n", humanize.Comma(int64(report.Summary.Total)))
	red.Fprintf(w, "  High confidence:   %s\n", humanize.Comma(int64(report.Summary.High)))
	yellow.Fprintf(w, "  Medium confidence: %s\n", humanize.Comma(int64(report.Summary.Medium)))
	green.Fprintf(w, "  Low confidence:    %s\n", humanize.Comma(int64(report.Summary.Low)))
	if report.Summary.OrphanedFiles > 0 {
		fmt.Fprintf(w, "  Orphaned files:    %s\n", humanize.Comma(int64(report.Summary.OrphanedFiles)))
	}
	fmt.Fprintf(w, "Recognized entrypoints: %s\n", humanize.Comma(int64(len(report.Entrypoints))))

	if len(report.Items) == 0 {
		fmt.Fprintln(w, "\nNo dead code candidates found.")
		return
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Candidates:")
	for _, item := range report.Items {
		bandColor := green
		switch {
		case item.Confidence >= 80:
			bandColor = red
		case item.Confidence >= 50:
			bandColor = yellow
		}
		bandColor.Fprintf(w, "  [%3d] ", item.Confidence)
		fmt.Fprintf(w, "%s  %s:%d  (%s, %s)\n", item.QualifiedName, item.File, item.Line, item.Type, item.SuggestedAction)
		if verbose {
			for i, reason := range item.Reasons {
				if i >= verboseReasonsPerItem {
					fmt.Fprintf(w, "         ... %d more\n", len(item.Reasons)-verboseReasonsPerItem)
					break
				}
				fmt.Fprintf(w, "         - %s\n", reason)
			}
		}
	}
}

// RenderDiagnostics writes one "Warning: ..." line per diagnostic to w,
// matching the teacher's Pipeline.Run warning-printing idiom.
func RenderDiagnostics(w io.Writer, diagnostics []types.Diagnostic) {
	for _, d := range diagnostics {
		if d.File != "" {
			fmt.Fprintf(w, "Warning: %s: %s (%s)\n", d.File, d.Message, d.Kind)
		} else {
			fmt.Fprintf(w, "Warning: %s (%s)\n", d.Message, d.Kind)
		}
	}
}
