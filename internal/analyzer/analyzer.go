// # internal/analyzer/analyzer.go
package analyzer

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"codescope/internal/core/errors"
	"codescope/internal/gitdiff"
	"codescope/internal/lang"
	"codescope/internal/metrics"
	"codescope/internal/parser"
	"codescope/internal/shared/observability"
	"codescope/internal/walker"
)

// Options configures one analysis run.
type Options struct {
	// Languages restricts analysis; empty means all supported languages.
	Languages []lang.Language

	MinLines     int
	MaxLines     int // 0 means no upper bound
	MinFunctions int
	MinClasses   int

	MaxFileSizeMB   float64
	IncludeHidden   bool
	ExcludePatterns []string
	MaxDepth        int

	// OnlyChangedSince switches discovery to git-changed files since the
	// given ref.
	OnlyChangedSince string

	// Workers bounds analysis concurrency; 0 means GOMAXPROCS.
	Workers int
	Verbose bool
}

// Engine orchestrates discovery, parallel per-file analysis, filtering, and
// summarization into a report.
type Engine struct {
	opts         Options
	catalog      *lang.Catalog
	fileAnalyzer *parser.FileAnalyzer
	walker       *walker.Walker
}

// New builds an engine, compiling exclude patterns up front.
func New(opts Options) (*Engine, error) {
	if opts.MaxFileSizeMB <= 0 {
		opts.MaxFileSizeMB = 10
	}

	var catalog *lang.Catalog
	if len(opts.Languages) == 0 {
		catalog = lang.NewCatalog()
	} else {
		catalog = lang.NewCatalogWithLanguages(opts.Languages)
	}

	w, err := walker.New(catalog, walker.Options{
		MaxFileSizeBytes: int64(opts.MaxFileSizeMB * 1024 * 1024),
		IncludeHidden:    opts.IncludeHidden,
		ExcludePatterns:  opts.ExcludePatterns,
		MaxDepth:         opts.MaxDepth,
		Verbose:          opts.Verbose,
	})
	if err != nil {
		return nil, err
	}

	return &Engine{
		opts:         opts,
		catalog:      catalog,
		fileAnalyzer: parser.NewFileAnalyzer(catalog, opts.MaxFileSizeMB),
		walker:       w,
	}, nil
}

// Analyze runs the full pipeline over targetPath.
func (e *Engine) Analyze(ctx context.Context, targetPath string) (*AnalysisReport, error) {
	runStart := time.Now()
	defer func() {
		observability.AnalysisDuration.Observe(time.Since(runStart).Seconds())
	}()

	files, stats, err := e.discover(targetPath)
	if err != nil {
		return nil, err
	}

	slog.Info("file discovery completed",
		"target", targetPath,
		"found", len(files),
		"summary", stats.Summary(),
	)

	if len(files) == 0 {
		return nil, errors.New(errors.CodeNoFilesFound,
			"no supported files found in the specified directory")
	}

	results, warnings, err := e.analyzeFiles(ctx, files)
	if err != nil {
		return nil, err
	}

	results = e.applyFilters(results)
	summary := Summarize(results)

	languages := make([]string, 0, len(e.catalog.EnabledLanguages()))
	for _, l := range e.catalog.EnabledLanguages() {
		languages = append(languages, l.String())
	}

	report := &AnalysisReport{
		RunID:   uuid.NewString(),
		Files:   results,
		Summary: summary,
		Config: AnalysisConfig{
			TargetPath:    targetPath,
			Languages:     languages,
			MinLines:      e.opts.MinLines,
			MaxLines:      e.opts.MaxLines,
			IncludeHidden: e.opts.IncludeHidden,
			MaxFileSizeMB: e.opts.MaxFileSizeMB,
		},
		GeneratedAt: time.Now().UTC(),
		Warnings:    warnings,
	}

	slog.Info("analysis completed",
		"run_id", report.RunID,
		"files", len(report.Files),
		"total_lines", report.Summary.TotalLines,
		"warnings", len(report.Warnings),
	)

	return report, nil
}

func (e *Engine) discover(targetPath string) ([]string, walker.Stats, error) {
	start := time.Now()
	defer func() {
		observability.DiscoveryDuration.Observe(time.Since(start).Seconds())
	}()

	if ref := e.opts.OnlyChangedSince; ref != "" {
		changed, err := gitdiff.ChangedFiles(targetPath, ref)
		if err != nil {
			return nil, walker.Stats{}, err
		}

		// Changed paths pass through the same language and size gates as
		// walked paths.
		var files []string
		for _, path := range changed {
			if e.fileAnalyzer.CanAnalyze(path) {
				files = append(files, path)
			}
		}

		slog.Debug("git discovery", "ref", ref, "changed", len(changed), "analyzable", len(files))
		return files, walker.Stats{EntriesScanned: len(changed), FilesFound: len(files)}, nil
	}

	return e.walker.Discover(targetPath)
}

// analyzeFiles fans the file list out over a bounded worker pool. Per-file
// failures are logged and counted; the run only fails when no file succeeds.
func (e *Engine) analyzeFiles(ctx context.Context, files []string) ([]metrics.FileAnalysis, []parser.Warning, error) {
	workers := e.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu       sync.Mutex
		results  []metrics.FileAnalysis
		warnings []parser.Warning
		failed   int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			analysis, fileWarnings, err := e.fileAnalyzer.AnalyzeFile(file)

			mu.Lock()
			defer mu.Unlock()

			for _, w := range fileWarnings {
				observability.WarningsTotal.WithLabelValues(string(w.Type)).Inc()
			}
			warnings = append(warnings, fileWarnings...)

			if err != nil {
				failed++
				observability.FilesFailedTotal.Inc()
				slog.Warn("failed to analyze file", "path", file, "error", err)
				return nil
			}

			observability.FilesAnalyzedTotal.WithLabelValues(analysis.Language).Inc()
			results = append(results, analysis)

			if e.opts.Verbose {
				slog.Debug("analyzed file",
					"path", file,
					"lines", analysis.LinesOfCode,
					"functions", analysis.Functions,
					"score", analysis.ComplexityScore,
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeInternal, "analysis interrupted")
	}

	if len(results) == 0 {
		return nil, nil, errors.Newf(errors.CodeAllFilesFailed,
			"failed to analyze any files successfully (%d failures)", failed)
	}

	if failed > 0 {
		slog.Warn("some files failed analysis", "failed", failed, "succeeded", len(results))
	}

	return results, warnings, nil
}

func (e *Engine) applyFilters(results []metrics.FileAnalysis) []metrics.FileAnalysis {
	filtered := results[:0]
	for _, r := range results {
		if r.LinesOfCode < e.opts.MinLines {
			continue
		}
		if e.opts.MaxLines > 0 && r.LinesOfCode > e.opts.MaxLines {
			continue
		}
		if r.Functions < e.opts.MinFunctions {
			continue
		}
		if r.Classes < e.opts.MinClasses {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
