// # internal/parser/analyzer.go
package parser

import (
	"os"
	"time"
	"unicode/utf8"

	"codescope/internal/core/errors"
	"codescope/internal/lang"
	"codescope/internal/metrics"
	"codescope/internal/shared/observability"
)

// FileAnalyzer turns one file path into a metrics record. It holds no
// parser state; each AnalyzeFile call constructs and closes its own parser,
// so a single FileAnalyzer may be shared across goroutines.
type FileAnalyzer struct {
	catalog          *lang.Catalog
	maxFileSizeBytes int64
}

// NewFileAnalyzer builds an analyzer with a size gate in megabytes.
func NewFileAnalyzer(catalog *lang.Catalog, maxFileSizeMB float64) *FileAnalyzer {
	return &FileAnalyzer{
		catalog:          catalog,
		maxFileSizeBytes: int64(maxFileSizeMB * 1024 * 1024),
	}
}

// MaxFileSizeBytes returns the size gate.
func (a *FileAnalyzer) MaxFileSizeBytes() int64 {
	return a.maxFileSizeBytes
}

// CanAnalyze reports whether the path passes the language and size gates.
func (a *FileAnalyzer) CanAnalyze(path string) bool {
	if !a.catalog.IsSupportedPath(path) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() <= a.maxFileSizeBytes
}

// AnalyzeFile runs the full per-file pipeline: detect, size gate, read,
// UTF-8 validation, parse, metric extraction, scoring. Warnings are returned
// even when the analysis itself fails.
func (a *FileAnalyzer) AnalyzeFile(path string) (metrics.FileAnalysis, []Warning, error) {
	var warnings []Warning

	language, ok := a.catalog.Detect(path)
	if !ok {
		err := errors.New(errors.CodeUnsupportedLanguage, "unsupported file type")
		return metrics.FileAnalysis{}, nil, errors.AddContext(err, errors.CtxPath, path)
	}

	// Size gate runs on metadata before the file is read.
	info, err := os.Stat(path)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInvalidPath, "failed to stat file")
		return metrics.FileAnalysis{}, nil, errors.AddContext(err, errors.CtxPath, path)
	}
	if info.Size() > a.maxFileSizeBytes {
		err = errors.Newf(errors.CodeFileTooLarge, "file too large: %d bytes", info.Size())
		return metrics.FileAnalysis{}, nil, errors.AddContext(err, errors.CtxPath, path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInvalidPath, "failed to read file")
		return metrics.FileAnalysis{}, nil, errors.AddContext(err, errors.CtxPath, path)
	}

	if !utf8.Valid(source) {
		warnings = append(warnings, encodingWarning(path, "invalid UTF-8 encoding"))
		err = errors.New(errors.CodeInvalidEncoding, "invalid UTF-8 encoding")
		return metrics.FileAnalysis{}, warnings, errors.AddContext(err, errors.CtxPath, path)
	}

	p, err := lang.NewParser(language)
	if err != nil {
		err = errors.Wrap(err, errors.CodeInternal, "failed to construct parser")
		return metrics.FileAnalysis{}, warnings, errors.AddContext(err, errors.CtxLanguage, language.String())
	}
	defer p.Close()

	start := time.Now()
	tree, parseWarnings, err := ParseSource(p, source, language, path)
	observability.ParsingDuration.WithLabelValues(language.DisplayName()).Observe(time.Since(start).Seconds())
	if err != nil {
		return metrics.FileAnalysis{}, warnings, errors.AddContext(err, errors.CtxPath, path)
	}
	defer tree.Close()
	warnings = append(warnings, parseWarnings...)

	analysis := metrics.Extract(tree, string(source), language)
	analysis.Path = path

	return analysis, warnings, nil
}
