// # internal/metrics/metrics.go
package metrics

// FileAnalysis holds the measured metrics for a single source file.
type FileAnalysis struct {
	Path                 string  `json:"path"`
	Language             string  `json:"language"`
	LinesOfCode          int     `json:"lines_of_code"`
	BlankLines           int     `json:"blank_lines"`
	CommentLines         int     `json:"comment_lines"`
	Functions            int     `json:"functions"`
	Methods              int     `json:"methods"`
	Classes              int     `json:"classes"`
	CyclomaticComplexity int     `json:"cyclomatic_complexity"`
	MaxNestingDepth      int     `json:"max_nesting_depth"`
	ComplexityScore      float64 `json:"complexity_score"`
}

// TotalLines returns code + blank + comment lines.
func (f *FileAnalysis) TotalLines() int {
	return f.LinesOfCode + f.BlankLines + f.CommentLines
}
