// # internal/output/sort_test.go
package output

import (
	"testing"

	"codescope/internal/metrics"
)

func sampleFiles() []metrics.FileAnalysis {
	return []metrics.FileAnalysis{
		{Path: "b/medium.go", LinesOfCode: 50, Functions: 2, Classes: 1, ComplexityScore: 3.0},
		{Path: "a/large.py", LinesOfCode: 200, Functions: 8, Classes: 0, ComplexityScore: 9.0},
		{Path: "c/small.rs", LinesOfCode: 10, Functions: 5, Classes: 3, ComplexityScore: 1.0},
	}
}

func TestParseSortBy(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"lines", "functions", "classes", "name", "path", "complexity"} {
		if _, err := ParseSortBy(valid); err != nil {
			t.Errorf("expected %q to parse, got %v", valid, err)
		}
	}
	if _, err := ParseSortBy("size"); err == nil {
		t.Error("expected error for unknown sort key")
	}
	if got, err := ParseSortBy("  LINES "); err != nil || got != SortByLines {
		t.Errorf("expected case-insensitive parse, got %v %v", got, err)
	}
}

func TestApplySorting(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		by       SortBy
		expected []string
	}{
		{name: "Lines", by: SortByLines, expected: []string{"a/large.py", "b/medium.go", "c/small.rs"}},
		{name: "Functions", by: SortByFunctions, expected: []string{"a/large.py", "c/small.rs", "b/medium.go"}},
		{name: "Classes", by: SortByClasses, expected: []string{"c/small.rs", "b/medium.go", "a/large.py"}},
		{name: "Name", by: SortByName, expected: []string{"a/large.py", "b/medium.go", "c/small.rs"}},
		{name: "Path", by: SortByPath, expected: []string{"a/large.py", "b/medium.go", "c/small.rs"}},
		{name: "Complexity", by: SortByComplexity, expected: []string{"a/large.py", "b/medium.go", "c/small.rs"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			files := sampleFiles()
			ApplySorting(files, tc.by)
			for i, path := range tc.expected {
				if files[i].Path != path {
					t.Fatalf("position %d: expected %s, got %s", i, path, files[i].Path)
				}
			}
		})
	}
}
