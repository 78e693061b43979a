// Package config loads the JSON analysis configuration document and the
// optional YAML project override layer, the way the teacher loads
// .arsrc.yml on top of its built-in scoring defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ingo-eichhorst/deadcode/pkg/types"
)

// AnalysisConfig controls file discovery.
type AnalysisConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LintingConfig controls noqa handling and user-declared exemptions.
type LintingConfig struct {
	RespectNoqa      bool     `json:"respect_noqa"`
	NoqaPatterns     []string `json:"noqa_patterns"`
	IgnoreDecorators []string `json:"ignore_decorators"`
	IgnoreNames      []string `json:"ignore_names"`
}

// EntrypointsConfig lists qualified names supplied by an external
// infrastructure scanner, treated as additional reachable roots.
type EntrypointsConfig struct {
	Extra []string `json:"extra"`
}

// PluginsConfig selects which entrypoint plugins run.
type PluginsConfig struct {
	Enabled []string `json:"enabled"`
}

// Config is the recognized JSON configuration document (spec.md section 6).
type Config struct {
	Analysis    AnalysisConfig    `json:"analysis"`
	Linting     LintingConfig     `json:"linting"`
	Entrypoints EntrypointsConfig `json:"entrypoints"`
	Plugins     PluginsConfig     `json:"plugins"`

	// Override carries the optional .deadcoderc.yml project layer (see
	// project.go). It isn't part of the JSON document itself; the CLI
	// loads it separately and attaches it here so internal/engine has a
	// single Config to read scoring overrides from.
	Override *ProjectOverride `json:"-"`
}

// Default returns the built-in configuration applied when the caller
// supplies no document and no project override names a key.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{
			Include: []string{"**/*.py"},
			Exclude: nil,
		},
		Linting: LintingConfig{
			RespectNoqa: true,
		},
		Plugins: PluginsConfig{
			Enabled: []string{"flask", "celery", "flask-restplus", "sqlalchemy", "pydantic", "pytest", "click", "typer"},
		},
	}
}

// Load reads and parses a JSON config document at path, filling in
// Default() for any key the document doesn't set. An empty path returns
// Default() unmodified.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &types.ConfigError{Field: "path", Message: fmt.Sprintf("read config %s: %v", path, err)}
	}

	var doc Config
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, &types.ConfigError{Field: "(document)", Message: fmt.Sprintf("parse config %s: %v", path, err)}
	}

	if len(doc.Analysis.Include) > 0 {
		cfg.Analysis.Include = doc.Analysis.Include
	}
	cfg.Analysis.Exclude = doc.Analysis.Exclude

	if doc.Linting.NoqaPatterns != nil || doc.Linting.IgnoreDecorators != nil || doc.Linting.IgnoreNames != nil {
		cfg.Linting.NoqaPatterns = doc.Linting.NoqaPatterns
		cfg.Linting.IgnoreDecorators = doc.Linting.IgnoreDecorators
		cfg.Linting.IgnoreNames = doc.Linting.IgnoreNames
	}
	cfg.Linting.RespectNoqa = respectNoqaOrDefault(data, cfg.Linting.RespectNoqa)

	cfg.Entrypoints.Extra = doc.Entrypoints.Extra

	if len(doc.Plugins.Enabled) > 0 {
		cfg.Plugins.Enabled = doc.Plugins.Enabled
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// respectNoqaOrDefault re-inspects the raw document so an explicit
// "respect_noqa": false survives unmarshaling into a bool whose zero
// value is indistinguishable from "unset".
func respectNoqaOrDefault(data []byte, fallback bool) bool {
	var probe struct {
		Linting struct {
			RespectNoqa *bool `json:"respect_noqa"`
		} `json:"linting"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || probe.Linting.RespectNoqa == nil {
		return fallback
	}
	return *probe.Linting.RespectNoqa
}

var knownPlugins = map[string]bool{
	"flask": true, "celery": true, "flask-restplus": true, "sqlalchemy": true,
	"pydantic": true, "pytest": true, "click": true, "typer": true,
}

// Validate rejects a config document referencing unknown plugins.
func (c Config) Validate() error {
	for _, p := range c.Plugins.Enabled {
		if !knownPlugins[p] {
			return &types.ConfigError{Field: "plugins.enabled", Message: fmt.Sprintf("unknown plugin %q", p)}
		}
	}
	return nil
}
