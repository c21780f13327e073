// # internal/output/terminal_test.go
package output

import (
	"strings"
	"testing"

	"codescope/internal/analyzer"
	"codescope/internal/metrics"
	"codescope/internal/parser"
)

func TestSeverityIndicator(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score    float64
		expected string
	}{
		{0.5, "🟢"},
		{4.99, "🟢"},
		{5.0, "🟡"},
		{9.99, "🟡"},
		{10.0, "🔴"},
		{25.0, "🔴"},
	}
	for _, tc := range cases {
		if got := severityIndicator(tc.score); got != tc.expected {
			t.Errorf("score %.2f: expected %s, got %s", tc.score, tc.expected, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in       int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := formatNumber(tc.in); got != tc.expected {
			t.Errorf("%d: expected %s, got %s", tc.in, tc.expected, got)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	r := NewTerminalReporter(&strings.Builder{}).WithBasePath("/repo")

	if got := r.displayPath("/repo/internal/a.go"); got != "internal/a.go" {
		t.Errorf("expected relative path, got %q", got)
	}
	if got := r.displayPath("/elsewhere/b.go"); got != "/elsewhere/b.go" {
		t.Errorf("expected absolute fallback, got %q", got)
	}

	long := "/repo/" + strings.Repeat("nested/", 12) + "file.go"
	got := r.displayPath(long)
	if len(got) != maxPathDisplayLen {
		t.Errorf("expected truncation to %d chars, got %d (%q)", maxPathDisplayLen, len(got), got)
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("expected ... prefix, got %q", got)
	}
	if !strings.HasSuffix(got, "file.go") {
		t.Errorf("expected tail preserved, got %q", got)
	}
}

func TestDisplayReport(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	r := NewTerminalReporter(&buf).ColorEnabled(false)

	report := sampleReport()
	report.Files = append(report.Files, metrics.FileAnalysis{
		Path: "huge.py", Language: "python", LinesOfCode: 800,
		Functions: 30, CyclomaticComplexity: 25, ComplexityScore: 15.2,
	})
	report.Summary = analyzer.Summarize(report.Files)

	if err := r.DisplayReport(report, SortByLines, 10); err != nil {
		t.Fatalf("DisplayReport failed: %v", err)
	}
	out := buf.String()

	for _, expected := range []string{
		"Code Analysis Report",
		"Project Summary:",
		"Files analyzed: 3",
		"Languages:",
		"Refactoring Candidates (1 file need attention):",
		"huge.py",
		"All Files (showing 3 of 3, sorted by lines)",
		"Legend:",
		"Warnings (1):",
		"⚠ Syntax",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %q", expected)
		}
	}
}

func TestDisplayCompactTable(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	r := NewTerminalReporter(&buf).ColorEnabled(false)

	files := sampleReport().Files
	r.DisplayCompactTable(files, SortByLines, 1)
	out := buf.String()

	if !strings.Contains(out, "b.py") {
		t.Errorf("expected highest-line file in output: %s", out)
	}
	if strings.Contains(out, "a.go") {
		t.Errorf("expected limit to drop a.go: %s", out)
	}
	if !strings.Contains(out, "(showing 1 of 2 files)") {
		t.Errorf("expected truncation note: %s", out)
	}
}

func TestDisplayFileTableEmpty(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	r := NewTerminalReporter(&buf).ColorEnabled(false)
	if err := r.DisplayFileTable(nil, SortByLines, 0); err != nil {
		t.Fatalf("DisplayFileTable failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No files found") {
		t.Errorf("expected empty-state message, got %q", buf.String())
	}
}

func TestDisplayWarningsLocations(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	r := NewTerminalReporter(&buf).ColorEnabled(false)

	r.DisplayWarnings([]parser.Warning{
		{
			FilePath: "bad.ts",
			Type:     parser.WarningSyntaxError,
			Message:  "Parse errors detected near 2:5 (ERROR)",
			Locations: []parser.WarningLocation{
				{Line: 2, Column: 5, Kind: "ERROR", Snippet: "const = ;"},
				{Line: 4, Column: 1, Kind: "MISSING"},
				{Line: 6, Column: 1, Kind: "ERROR"},
				{Line: 8, Column: 1, Kind: "ERROR"},
			},
		},
		{FilePath: "weird.py", Type: parser.WarningEncodingError, Message: "invalid UTF-8 encoding"},
	})
	out := buf.String()

	if !strings.Contains(out, "Warnings (2):") {
		t.Errorf("expected warning count header: %s", out)
	}
	if !strings.Contains(out, "at 2:5 (ERROR)") || !strings.Contains(out, "const = ;") {
		t.Errorf("expected first location with snippet: %s", out)
	}
	if strings.Contains(out, "at 8:1") {
		t.Errorf("expected locations capped at 3: %s", out)
	}
	if !strings.Contains(out, "⚠ Encoding") {
		t.Errorf("expected encoding label: %s", out)
	}
}
