package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ingo-eichhorst/deadcode/internal/scoring"
)

func TestLoadProjectOverrideValidYml(t *testing.T) {
	tmpDir := t.TempDir()
	content := `version: 1
scoring:
  delete_threshold: 85
  review_threshold: 55
  ignore_names:
    - "legacy_*"
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".deadcoderc.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	override, err := LoadProjectOverride(tmpDir, "")
	if err != nil {
		t.Fatalf("LoadProjectOverride() error: %v", err)
	}
	if override == nil {
		t.Fatal("expected non-nil override")
	}
	if *override.Scoring.DeleteThreshold != 85 {
		t.Errorf("DeleteThreshold = %v, want 85", *override.Scoring.DeleteThreshold)
	}
}

func TestLoadProjectOverrideMissingFile(t *testing.T) {
	tmpDir := t.TempDir()
	override, err := LoadProjectOverride(tmpDir, "")
	if err != nil {
		t.Fatalf("LoadProjectOverride() error: %v", err)
	}
	if override != nil {
		t.Errorf("expected nil override for missing file, got %+v", override)
	}
}

func TestLoadProjectOverrideInvalidVersion(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, ".deadcoderc.yml"), []byte("version: 99\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadProjectOverride(tmpDir, "")
	if err == nil {
		t.Fatal("expected error for unsupported version")
	}
}

func TestApplyToScoringConfigOverridesThresholds(t *testing.T) {
	sc := scoring.Default()
	deleteThreshold, reviewThreshold := 90, 60
	override := &ProjectOverride{}
	override.Scoring.DeleteThreshold = &deleteThreshold
	override.Scoring.ReviewThreshold = &reviewThreshold

	override.ApplyToScoringConfig(&sc)

	if sc.DeleteThreshold != 90 {
		t.Errorf("DeleteThreshold = %d, want 90", sc.DeleteThreshold)
	}
	if sc.ReviewThreshold != 60 {
		t.Errorf("ReviewThreshold = %d, want 60", sc.ReviewThreshold)
	}
}
