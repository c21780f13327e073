// # internal/config/config.go
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths      []string   `toml:"paths"`
	Languages  []string   `toml:"languages"`
	Exclude    []string   `toml:"exclude"`
	Filters    Filters    `toml:"filters"`
	Thresholds Thresholds `toml:"thresholds"`
	Output     Output     `toml:"output"`
	Walk       Walk       `toml:"walk"`
}

type Filters struct {
	MinLines      int     `toml:"min_lines"`
	MaxLines      int     `toml:"max_lines"` // 0 means no upper bound
	MinFunctions  int     `toml:"min_functions"`
	MinClasses    int     `toml:"min_classes"`
	MaxFileSizeMB float64 `toml:"max_file_size_mb"`
}

type Thresholds struct {
	MaxComplexityScore  float64 `toml:"max_complexity_score"`
	MaxCyclomatic       int     `toml:"max_cyclomatic_complexity"`
	MaxLinesOfCode      int     `toml:"max_lines_of_code"`
	MaxFunctionsPerFile int     `toml:"max_functions_per_file"`
}

type Output struct {
	Format  string `toml:"format"` // table, json, csv, both
	File    string `toml:"file"`
	Compact bool   `toml:"compact"`
	Limit   int    `toml:"limit"` // 0 means unlimited rows
}

type Walk struct {
	IncludeHidden bool `toml:"include_hidden"`
	MaxDepth      int  `toml:"max_depth"` // 0 means unbounded
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Paths: []string{"."},
		Filters: Filters{
			MaxFileSizeMB: 10,
		},
		Thresholds: Thresholds{
			MaxComplexityScore:  10.0,
			MaxCyclomatic:       15,
			MaxLinesOfCode:      500,
			MaxFunctionsPerFile: 25,
		},
		Output: Output{
			Format: "table",
		},
	}
}

// Load reads a TOML config file and fills unset fields with defaults. A
// missing file is not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}

	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}
	if cfg.Filters.MaxFileSizeMB <= 0 {
		cfg.Filters.MaxFileSizeMB = 10
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
	applyThresholdDefaults(&cfg.Thresholds)

	return cfg, nil
}

func applyThresholdDefaults(t *Thresholds) {
	if t.MaxComplexityScore <= 0 {
		t.MaxComplexityScore = 10.0
	}
	if t.MaxCyclomatic <= 0 {
		t.MaxCyclomatic = 15
	}
	if t.MaxLinesOfCode <= 0 {
		t.MaxLinesOfCode = 500
	}
	if t.MaxFunctionsPerFile <= 0 {
		t.MaxFunctionsPerFile = 25
	}
}
