// # internal/analyzer/report.go
package analyzer

import (
	"sort"
	"time"

	"codescope/internal/metrics"
	"codescope/internal/parser"
)

// LanguageStats aggregates per-language metrics.
type LanguageStats struct {
	FileCount           int     `json:"file_count"`
	TotalLines          int     `json:"total_lines"`
	AvgFunctionsPerFile float64 `json:"avg_functions_per_file"`
	AvgMethodsPerFile   float64 `json:"avg_methods_per_file"`
	AvgClassesPerFile   float64 `json:"avg_classes_per_file"`
}

// ProjectSummary holds project-wide aggregates.
type ProjectSummary struct {
	TotalFiles        int                      `json:"total_files"`
	TotalLines        int                      `json:"total_lines"`
	TotalFunctions    int                      `json:"total_functions"`
	TotalMethods      int                      `json:"total_methods"`
	TotalClasses      int                      `json:"total_classes"`
	LanguageBreakdown map[string]LanguageStats `json:"language_breakdown"`
	LargestFiles      []metrics.FileAnalysis   `json:"largest_files"`
	MostComplexFiles  []metrics.FileAnalysis   `json:"most_complex_files"`
}

// AnalysisConfig records the settings a report was produced with.
type AnalysisConfig struct {
	TargetPath    string   `json:"target_path"`
	Languages     []string `json:"languages"`
	MinLines      int      `json:"min_lines"`
	MaxLines      int      `json:"max_lines,omitempty"`
	IncludeHidden bool     `json:"include_hidden"`
	MaxFileSizeMB float64  `json:"max_file_size_mb"`
}

// AnalysisReport is the complete output of one run.
type AnalysisReport struct {
	RunID       string                 `json:"run_id"`
	Files       []metrics.FileAnalysis `json:"files"`
	Summary     ProjectSummary         `json:"summary"`
	Config      AnalysisConfig         `json:"config"`
	GeneratedAt time.Time              `json:"generated_at"`
	Warnings    []parser.Warning       `json:"warnings,omitempty"`
}

const topFileCount = 10

// Summarize builds project-wide aggregates from per-file results.
func Summarize(files []metrics.FileAnalysis) ProjectSummary {
	summary := ProjectSummary{
		TotalFiles:        len(files),
		LanguageBreakdown: make(map[string]LanguageStats),
	}

	type langTotals struct {
		functions, methods, classes int
	}
	totals := make(map[string]*langTotals)

	for _, f := range files {
		summary.TotalLines += f.TotalLines()
		summary.TotalFunctions += f.Functions
		summary.TotalMethods += f.Methods
		summary.TotalClasses += f.Classes

		stats := summary.LanguageBreakdown[f.Language]
		stats.FileCount++
		stats.TotalLines += f.TotalLines()
		summary.LanguageBreakdown[f.Language] = stats

		t := totals[f.Language]
		if t == nil {
			t = &langTotals{}
			totals[f.Language] = t
		}
		t.functions += f.Functions
		t.methods += f.Methods
		t.classes += f.Classes
	}

	for language, stats := range summary.LanguageBreakdown {
		t := totals[language]
		n := float64(stats.FileCount)
		stats.AvgFunctionsPerFile = float64(t.functions) / n
		stats.AvgMethodsPerFile = float64(t.methods) / n
		stats.AvgClassesPerFile = float64(t.classes) / n
		summary.LanguageBreakdown[language] = stats
	}

	summary.LargestFiles = topBy(files, func(a, b metrics.FileAnalysis) bool {
		return a.TotalLines() > b.TotalLines()
	})
	summary.MostComplexFiles = topBy(files, func(a, b metrics.FileAnalysis) bool {
		return a.ComplexityScore > b.ComplexityScore
	})

	return summary
}

func topBy(files []metrics.FileAnalysis, less func(a, b metrics.FileAnalysis) bool) []metrics.FileAnalysis {
	sorted := make([]metrics.FileAnalysis, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topFileCount {
		sorted = sorted[:topFileCount]
	}
	return sorted
}
