// # internal/output/manager.go
package output

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"codescope/internal/analyzer"
	"codescope/internal/core/errors"
	"codescope/internal/metrics"
)

// Format selects which renderers a run uses.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatBoth  Format = "both"
)

// ParseFormat validates a user-supplied output format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatBoth:
		return FormatBoth, nil
	default:
		return "", fmt.Errorf("invalid output format %q (table, json, csv, both)", s)
	}
}

// Options configures one output run.
type Options struct {
	Format     Format
	SortBy     SortBy
	Limit      int
	OutputFile string
	JSONOnly   bool
	Compact    bool
	Verbose    bool
	BasePath   string
	Thresholds metrics.RefactoringThresholds
}

// Manager routes a report to the configured renderers.
type Manager struct {
	w        io.Writer
	terminal *TerminalReporter
	json     *JSONExporter
	csv      *CSVExporter
}

// NewManager builds a manager writing terminal output to w.
func NewManager(w io.Writer, opts Options) *Manager {
	terminal := NewTerminalReporter(w).
		ShowSummary(!opts.JSONOnly).
		WithBasePath(opts.BasePath).
		WithThresholds(opts.Thresholds)

	return &Manager{
		w:        w,
		terminal: terminal,
		json:     NewJSONExporter().Pretty(!opts.Compact),
		csv:      NewCSVExporter(),
	}
}

// Generate renders the report per the options. Formats writing to files
// require OutputFile; the default file name is derived from the format.
func (m *Manager) Generate(report *analyzer.AnalysisReport, opts Options) error {
	showTerminal := (opts.Format == FormatTable || opts.Format == FormatBoth) && !opts.JSONOnly
	writeJSON := opts.Format == FormatJSON || opts.Format == FormatBoth || opts.JSONOnly
	writeCSV := opts.Format == FormatCSV

	if !showTerminal && !writeJSON && !writeCSV {
		return errors.New(errors.CodeValidationError, "no output format specified")
	}

	if showTerminal {
		if opts.Compact {
			m.terminal.DisplayCompactTable(report.Files, opts.SortBy, opts.Limit)
		} else if err := m.terminal.DisplayReport(report, opts.SortBy, opts.Limit); err != nil {
			return err
		}
	}

	if writeJSON {
		path := opts.OutputFile
		if path == "" {
			path = "analysis.json"
		}

		sorted := make([]metrics.FileAnalysis, len(report.Files))
		copy(sorted, report.Files)
		ApplySorting(sorted, opts.SortBy)
		exported := *report
		exported.Files = sorted

		if err := m.json.ExportToFile(&exported, path); err != nil {
			return err
		}
		if opts.Verbose {
			slog.Info("JSON report saved", "path", path)
		}
	}

	if writeCSV {
		if opts.OutputFile != "" {
			if err := m.csv.ExportToFile(report.Files, opts.OutputFile); err != nil {
				return err
			}
			if opts.Verbose {
				slog.Info("CSV report saved", "path", opts.OutputFile)
			}
		} else if err := m.csv.Write(report.Files, m.w); err != nil {
			return err
		}
	}

	return nil
}
