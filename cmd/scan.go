package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingo-eichhorst/deadcode/internal/config"
	"github.com/ingo-eichhorst/deadcode/internal/engine"
	"github.com/ingo-eichhorst/deadcode/internal/output"
	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

var (
	configPath string
	jsonOutput bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <directory>",
	Short: "Scan a Python project for dead code",
	Long: `Scan a Python project directory for dead code.

Recognizes Flask routes, Flask-RESTX resources, Celery tasks, SQLAlchemy
models, Pydantic schemas, pytest tests, and Click/Typer commands as
entrypoints, then reports every symbol unreachable from one of them.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("cannot resolve path: %w", err)
		}
		if err := validateProject(dir); err != nil {
			return err
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		override, err := config.LoadProjectOverride(dir, "")
		if err != nil {
			return fmt.Errorf("load project override: %w", err)
		}
		cfg.Override = override

		report, err := engine.Analyze(context.Background(), dir, cfg)
		if err != nil {
			var cfgErr *types.ConfigError
			if errors.As(err, &cfgErr) {
				return types.NewExitError(2, "%s", cfgErr.Error())
			}
			return err
		}

		if jsonOutput {
			if err := output.RenderJSON(cmd.OutOrStdout(), report); err != nil {
				return fmt.Errorf("render JSON: %w", err)
			}
		} else {
			output.RenderSummary(cmd.OutOrStdout(), report, verbose)
		}
		if verbose {
			output.RenderDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)
		}

		return nil
	},
}

func init() {
	scanCmd.Flags().StringVar(&configPath, "config", "", "path to JSON analysis config file")
	scanCmd.Flags().BoolVar(&jsonOutput, "json", false, "output the results document as JSON")
	rootCmd.AddCommand(scanCmd)
}

// validateProject checks that dir exists and is a directory. Whether it
// holds any Python source file is checked later, by engine.Analyze.
func validateProject(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", dir)
	}
	if err != nil {
		return fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", dir)
	}
	return nil
}
