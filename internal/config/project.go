package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ingo-eichhorst/deadcode/internal/scoring"
)

// ProjectOverride represents the optional .deadcoderc.yml file, mirroring
// the teacher's .arsrc.yml -> ScoringConfig override wiring.
type ProjectOverride struct {
	Version int `yaml:"version"`
	Scoring struct {
		DeleteThreshold *int     `yaml:"delete_threshold"`
		ReviewThreshold *int     `yaml:"review_threshold"`
		IgnoreDecorators []string `yaml:"ignore_decorators"`
		IgnoreNames      []string `yaml:"ignore_names"`
	} `yaml:"scoring"`
}

// LoadProjectOverride looks for .deadcoderc.yml then .deadcoderc.yaml in
// dir, or loads explicitPath if given. Returns nil, nil when no file is
// found -- defaults apply.
func LoadProjectOverride(dir, explicitPath string) (*ProjectOverride, error) {
	path := explicitPath
	if path == "" {
		for _, candidate := range []string{".deadcoderc.yml", ".deadcoderc.yaml"} {
			p := filepath.Join(dir, candidate)
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project override %s: %w", path, err)
	}

	override := &ProjectOverride{}
	if err := yaml.Unmarshal(data, override); err != nil {
		return nil, fmt.Errorf("parse project override %s: %w", path, err)
	}
	if override.Version != 0 && override.Version != 1 {
		return nil, fmt.Errorf("unsupported project override version %d (expected 1)", override.Version)
	}
	return override, nil
}

// ApplyToScoringConfig layers the override's scoring knobs onto sc.
func (o *ProjectOverride) ApplyToScoringConfig(sc *scoring.Config) {
	if o == nil || sc == nil {
		return
	}
	if o.Scoring.DeleteThreshold != nil {
		sc.DeleteThreshold = *o.Scoring.DeleteThreshold
	}
	if o.Scoring.ReviewThreshold != nil {
		sc.ReviewThreshold = *o.Scoring.ReviewThreshold
	}
	if o.Scoring.IgnoreDecorators != nil {
		sc.IgnoreDecorators = o.Scoring.IgnoreDecorators
	}
	if o.Scoring.IgnoreNames != nil {
		sc.IgnoreNames = o.Scoring.IgnoreNames
	}
}
