// # internal/output/sort.go
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"codescope/internal/metrics"
)

// SortBy selects the ordering of file tables and exports.
type SortBy string

const (
	SortByLines      SortBy = "lines"
	SortByFunctions  SortBy = "functions"
	SortByClasses    SortBy = "classes"
	SortByName       SortBy = "name"
	SortByPath       SortBy = "path"
	SortByComplexity SortBy = "complexity"
)

// ParseSortBy validates a user-supplied sort key.
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortByLines:
		return SortByLines, nil
	case SortByFunctions:
		return SortByFunctions, nil
	case SortByClasses:
		return SortByClasses, nil
	case SortByName:
		return SortByName, nil
	case SortByPath:
		return SortByPath, nil
	case SortByComplexity:
		return SortByComplexity, nil
	default:
		return "", fmt.Errorf("invalid sort key %q (lines, functions, classes, name, path, complexity)", s)
	}
}

// ApplySorting sorts files in place. Count-based keys sort descending;
// name and path sort ascending.
func ApplySorting(files []metrics.FileAnalysis, by SortBy) {
	switch by {
	case SortByFunctions:
		sort.SliceStable(files, func(i, j int) bool { return files[i].Functions > files[j].Functions })
	case SortByClasses:
		sort.SliceStable(files, func(i, j int) bool { return files[i].Classes > files[j].Classes })
	case SortByName:
		sort.SliceStable(files, func(i, j int) bool {
			return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
		})
	case SortByPath:
		sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	case SortByComplexity:
		sort.SliceStable(files, func(i, j int) bool { return files[i].ComplexityScore > files[j].ComplexityScore })
	default: // SortByLines
		sort.SliceStable(files, func(i, j int) bool { return files[i].LinesOfCode > files[j].LinesOfCode })
	}
}
