// Package cmd provides the deadcode CLI, a single scan subcommand that
// loads configuration, runs internal/engine.Analyze, and renders either
// a JSON results document or a terminal summary. Grounded on the
// teacher's cmd/root.go + cmd/scan.go (cobra, PersistentFlags,
// SilenceErrors/SilenceUsage, ExitError-carried exit codes).
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
	"github.com/ingo-eichhorst/deadcode/pkg/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:     "deadcode",
	Short:   "Find dead code in Python/Flask/Celery projects",
	Long:    "deadcode builds a cross-module symbol graph of a Python web application,\nrecognizes framework entrypoints (Flask routes, Celery tasks, pytest tests,\nand friends), and reports symbols unreachable from any of them.",
	Version: version.Version,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show per-item reasons and diagnostics")
	rootCmd.SilenceErrors = true
}

// Execute runs the root command and exits with code 1 on error. An
// *types.ExitError carries its own exit code instead.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *types.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
