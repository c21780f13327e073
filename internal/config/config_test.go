// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `
paths = ["./src"]
languages = ["go", "python"]
exclude = ["vendor/**", "*.gen.go"]

[filters]
min_lines = 10
max_file_size_mb = 5.0

[thresholds]
max_complexity_score = 12.5
max_cyclomatic_complexity = 20

[output]
format = "json"
limit = 50

[walk]
include_hidden = true
max_depth = 4
`
	path := filepath.Join(t.TempDir(), "codescope.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Paths) != 1 || cfg.Paths[0] != "./src" {
		t.Errorf("unexpected paths: %v", cfg.Paths)
	}
	if len(cfg.Languages) != 2 {
		t.Errorf("unexpected languages: %v", cfg.Languages)
	}
	if cfg.Filters.MinLines != 10 {
		t.Errorf("expected min_lines 10, got %d", cfg.Filters.MinLines)
	}
	if cfg.Filters.MaxFileSizeMB != 5.0 {
		t.Errorf("expected max_file_size_mb 5, got %f", cfg.Filters.MaxFileSizeMB)
	}
	if cfg.Thresholds.MaxComplexityScore != 12.5 {
		t.Errorf("expected max_complexity_score 12.5, got %f", cfg.Thresholds.MaxComplexityScore)
	}
	if cfg.Thresholds.MaxCyclomatic != 20 {
		t.Errorf("expected max_cyclomatic_complexity 20, got %d", cfg.Thresholds.MaxCyclomatic)
	}
	// Unset thresholds fall back to defaults.
	if cfg.Thresholds.MaxLinesOfCode != 500 {
		t.Errorf("expected default max_lines_of_code 500, got %d", cfg.Thresholds.MaxLinesOfCode)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Limit != 50 {
		t.Errorf("expected limit 50, got %d", cfg.Output.Limit)
	}
	if !cfg.Walk.IncludeHidden || cfg.Walk.MaxDepth != 4 {
		t.Errorf("unexpected walk config: %+v", cfg.Walk)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}

	def := Default()
	if cfg.Output.Format != def.Output.Format {
		t.Errorf("expected default format, got %s", cfg.Output.Format)
	}
	if cfg.Thresholds != def.Thresholds {
		t.Errorf("expected default thresholds, got %+v", cfg.Thresholds)
	}
	if cfg.Filters.MaxFileSizeMB != 10 {
		t.Errorf("expected default max_file_size_mb 10, got %f", cfg.Filters.MaxFileSizeMB)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("paths = [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestDefaultThresholds(t *testing.T) {
	cfg := Default()
	if cfg.Thresholds.MaxComplexityScore != 10.0 {
		t.Errorf("expected 10.0, got %f", cfg.Thresholds.MaxComplexityScore)
	}
	if cfg.Thresholds.MaxCyclomatic != 15 {
		t.Errorf("expected 15, got %d", cfg.Thresholds.MaxCyclomatic)
	}
	if cfg.Thresholds.MaxFunctionsPerFile != 25 {
		t.Errorf("expected 25, got %d", cfg.Thresholds.MaxFunctionsPerFile)
	}
}
