// # internal/output/csv.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"codescope/internal/core/errors"
	"codescope/internal/metrics"
)

// csvHeader is the fixed column order of CSV exports.
var csvHeader = []string{
	"path",
	"language",
	"lines_of_code",
	"blank_lines",
	"comment_lines",
	"functions",
	"methods",
	"classes",
	"cyclomatic_complexity",
	"max_nesting_depth",
	"complexity_score",
}

// CSVExporter writes per-file metrics as CSV.
type CSVExporter struct{}

// NewCSVExporter returns a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Write streams the header and one row per file to w.
func (e *CSVExporter) Write(files []metrics.FileAnalysis, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to write CSV header")
	}

	for _, f := range files {
		record := []string{
			f.Path,
			f.Language,
			strconv.Itoa(f.LinesOfCode),
			strconv.Itoa(f.BlankLines),
			strconv.Itoa(f.CommentLines),
			strconv.Itoa(f.Functions),
			strconv.Itoa(f.Methods),
			strconv.Itoa(f.Classes),
			strconv.Itoa(f.CyclomaticComplexity),
			strconv.Itoa(f.MaxNestingDepth),
			fmt.Sprintf("%.2f", f.ComplexityScore),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(err, errors.CodeInternal, "failed to write CSV record")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to flush CSV output")
	}
	return nil
}

// ExportToFile writes the CSV to a file.
func (e *CSVExporter) ExportToFile(files []metrics.FileAnalysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidPath, "failed to create CSV file")
	}
	defer f.Close()
	return e.Write(files, f)
}

// Format returns the CSV as a string.
func (e *CSVExporter) Format(files []metrics.FileAnalysis) (string, error) {
	var b strings.Builder
	if err := e.Write(files, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
