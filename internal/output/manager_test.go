// # internal/output/manager_test.go
package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"table", "json", "csv", "both"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if got, err := ParseFormat(" JSON "); err != nil || got != FormatJSON {
		t.Errorf("expected case-insensitive parse, got %v %v", got, err)
	}
	if _, err := ParseFormat("xml"); err != nil {
		if !strings.Contains(err.Error(), "invalid output format") {
			t.Errorf("unexpected error %v", err)
		}
	} else {
		t.Error("expected error for unknown format")
	}
}

func TestGenerateTable(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	opts := Options{Format: FormatTable, SortBy: SortByLines}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Code Analysis Report") {
		t.Errorf("expected terminal report in output")
	}
}

func TestGenerateJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	var buf strings.Builder
	opts := Options{Format: FormatJSON, SortBy: SortByComplexity, OutputFile: path}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	loaded, err := ImportFromFile(path)
	if err != nil {
		t.Fatalf("exported file invalid: %v", err)
	}
	// Export applies the requested sorting.
	if loaded.Files[0].Path != "b.py" {
		t.Errorf("expected files sorted by complexity, got %v", loaded.Files[0].Path)
	}
	if buf.Len() != 0 {
		t.Errorf("json format should not write to the terminal, got %q", buf.String())
	}
}

func TestGenerateJSONDefaultPath(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	var buf strings.Builder
	opts := Options{Format: FormatJSON, SortBy: SortByLines}
	m := NewManager(&buf, opts)
	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "analysis.json")); err != nil {
		t.Errorf("expected default analysis.json: %v", err)
	}
}

func TestGenerateBoth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	var buf strings.Builder
	opts := Options{Format: FormatBoth, SortBy: SortByLines, OutputFile: path}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Code Analysis Report") {
		t.Error("expected terminal report")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected JSON file: %v", err)
	}
}

func TestGenerateJSONOnlySuppressesTerminal(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	var buf strings.Builder
	opts := Options{Format: FormatTable, SortBy: SortByLines, JSONOnly: true, OutputFile: path}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("json-only run should keep the terminal quiet, got %q", buf.String())
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected JSON file: %v", err)
	}
}

func TestGenerateCSVToWriter(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	opts := Options{Format: FormatCSV, SortBy: SortByLines}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "path,language,") {
		t.Errorf("expected CSV on the writer, got %q", buf.String())
	}
}

func TestGenerateCompact(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	opts := Options{Format: FormatTable, SortBy: SortByLines, Compact: true}
	m := NewManager(&buf, opts)

	if err := m.Generate(sampleReport(), opts); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Project Summary:") {
		t.Errorf("compact mode should skip the summary, got %q", out)
	}
	if !strings.Contains(out, "a.go") {
		t.Errorf("expected file rows, got %q", out)
	}
}
