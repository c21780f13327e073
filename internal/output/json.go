// # internal/output/json.go
package output

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"codescope/internal/analyzer"
	"codescope/internal/core/errors"
	"codescope/internal/metrics"
	"codescope/internal/shared/util"
)

// JSONExporter serializes reports and file lists.
type JSONExporter struct {
	pretty bool
}

// NewJSONExporter returns a pretty-printing exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{pretty: true}
}

// Pretty toggles indentation.
func (e *JSONExporter) Pretty(pretty bool) *JSONExporter {
	e.pretty = pretty
	return e
}

func (e *JSONExporter) marshal(v interface{}) ([]byte, error) {
	if e.pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// Format returns the report as a JSON string.
func (e *JSONExporter) Format(report *analyzer.AnalysisReport) (string, error) {
	data, err := e.marshal(report)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to serialize report")
	}
	return string(data), nil
}

// ExportToFile writes the full report, creating parent directories.
func (e *JSONExporter) ExportToFile(report *analyzer.AnalysisReport, path string) error {
	data, err := e.marshal(report)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to serialize report")
	}
	if err := util.WriteFileWithDirs(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeInvalidPath, "failed to write report file")
	}
	return nil
}

// ExportFilesOnly writes only the per-file records as a JSON array.
func (e *JSONExporter) ExportFilesOnly(files []metrics.FileAnalysis, path string) error {
	if files == nil {
		files = []metrics.FileAnalysis{}
	}
	data, err := e.marshal(files)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to serialize file list")
	}
	if err := util.WriteFileWithDirs(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeInvalidPath, "failed to write file list")
	}
	return nil
}

// ExportSummaryOnly writes only the project summary.
func (e *JSONExporter) ExportSummaryOnly(summary *analyzer.ProjectSummary, path string) error {
	data, err := e.marshal(summary)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to serialize summary")
	}
	if err := util.WriteFileWithDirs(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(err, errors.CodeInvalidPath, "failed to write summary file")
	}
	return nil
}

// ImportFromFile reads a previously exported report.
func ImportFromFile(path string) (*analyzer.AnalysisReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidPath, "failed to read report file")
	}
	var report analyzer.AnalysisReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, errors.Wrap(err, errors.CodeValidationError, "invalid report file")
	}
	return &report, nil
}

// ValidateReportFile checks that a file parses as a report.
func ValidateReportFile(path string) error {
	_, err := ImportFromFile(path)
	return err
}

// MergeReports combines several reports into one: files and warnings are
// concatenated and the summary recomputed. The merged report takes the
// first report's config and a fresh run ID.
func MergeReports(reports []*analyzer.AnalysisReport) (*analyzer.AnalysisReport, error) {
	if len(reports) == 0 {
		return nil, errors.New(errors.CodeValidationError, "no reports to merge")
	}

	merged := &analyzer.AnalysisReport{
		RunID:       uuid.NewString(),
		Config:      reports[0].Config,
		GeneratedAt: time.Now().UTC(),
	}
	for _, r := range reports {
		merged.Files = append(merged.Files, r.Files...)
		merged.Warnings = append(merged.Warnings, r.Warnings...)
	}
	merged.Summary = analyzer.Summarize(merged.Files)

	return merged, nil
}
