// # internal/ui/cli/runtime.go
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"codescope/internal/analyzer"
	"codescope/internal/config"
	"codescope/internal/core/errors"
	"codescope/internal/lang"
	"codescope/internal/metrics"
	"codescope/internal/output"
	"codescope/internal/shared/observability"
)

// Run executes one analysis invocation and returns the process exit code.
func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("codescope %s\n", versionString)
		return 0
	}

	configureLogging(opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "path", opts.configPath, "error", err)
		return 1
	}

	targetPath := resolveTargetPath(cfg, opts)

	languages, err := resolveLanguages(cfg, opts)
	if err != nil {
		slog.Error("invalid language selection", "error", err)
		return 2
	}

	thresholds := resolveThresholds(cfg, opts)
	engineOpts := resolveEngineOptions(cfg, opts, languages)

	outputOpts, err := resolveOutputOptions(cfg, opts, targetPath, thresholds)
	if err != nil {
		slog.Error("invalid output options", "error", err)
		return 2
	}

	engine, err := analyzer.New(engineOpts)
	if err != nil {
		slog.Error("failed to initialize analyzer", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.metricsAddr != "" {
		srv := observability.NewServer(opts.metricsAddr, versionString)
		if err := srv.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(shutdownCtx)
		}()
	}

	report, err := engine.Analyze(ctx, targetPath)
	if err != nil {
		slog.Error("analysis failed", "target", targetPath, "code", errors.CodeOf(err), "error", err)
		return 1
	}

	manager := output.NewManager(os.Stdout, outputOpts)
	if err := manager.Generate(report, outputOpts); err != nil {
		slog.Error("failed to generate output", "error", err)
		return 1
	}

	return 0
}

// resolveTargetPath prefers the positional argument, then the config file,
// then the current directory.
func resolveTargetPath(cfg *config.Config, opts cliOptions) string {
	if len(opts.args) > 0 {
		return opts.args[0]
	}
	if len(cfg.Paths) > 0 {
		return cfg.Paths[0]
	}
	return "."
}

func resolveLanguages(cfg *config.Config, opts cliOptions) ([]lang.Language, error) {
	names := cfg.Languages
	if opts.isSet("languages") {
		names = splitCommaList(opts.languages)
	}
	if len(names) == 0 {
		return nil, nil
	}
	return lang.ParseList(names)
}

func resolveThresholds(cfg *config.Config, opts cliOptions) metrics.RefactoringThresholds {
	t := metrics.RefactoringThresholds{
		MaxComplexityScore:  cfg.Thresholds.MaxComplexityScore,
		MaxCyclomatic:       cfg.Thresholds.MaxCyclomatic,
		MaxLinesOfCode:      cfg.Thresholds.MaxLinesOfCode,
		MaxFunctionsPerFile: cfg.Thresholds.MaxFunctionsPerFile,
	}
	if opts.isSet("max-complexity-score") {
		t.MaxComplexityScore = opts.maxComplexityScore
	}
	if opts.isSet("max-cc") {
		t.MaxCyclomatic = opts.maxCyclomatic
	}
	if opts.isSet("max-loc") {
		t.MaxLinesOfCode = opts.maxLinesOfCode
	}
	if opts.isSet("max-functions-per-file") {
		t.MaxFunctionsPerFile = opts.maxFunctionsPer
	}

	def := metrics.DefaultThresholds()
	if t.MaxComplexityScore <= 0 {
		t.MaxComplexityScore = def.MaxComplexityScore
	}
	if t.MaxCyclomatic <= 0 {
		t.MaxCyclomatic = def.MaxCyclomatic
	}
	if t.MaxLinesOfCode <= 0 {
		t.MaxLinesOfCode = def.MaxLinesOfCode
	}
	if t.MaxFunctionsPerFile <= 0 {
		t.MaxFunctionsPerFile = def.MaxFunctionsPerFile
	}
	return t
}

func resolveEngineOptions(cfg *config.Config, opts cliOptions, languages []lang.Language) analyzer.Options {
	engineOpts := analyzer.Options{
		Languages:        languages,
		MinLines:         cfg.Filters.MinLines,
		MaxLines:         cfg.Filters.MaxLines,
		MinFunctions:     cfg.Filters.MinFunctions,
		MinClasses:       cfg.Filters.MinClasses,
		MaxFileSizeMB:    cfg.Filters.MaxFileSizeMB,
		IncludeHidden:    cfg.Walk.IncludeHidden,
		ExcludePatterns:  cfg.Exclude,
		MaxDepth:         cfg.Walk.MaxDepth,
		OnlyChangedSince: opts.onlyChangedSince,
		Workers:          opts.workers,
		Verbose:          opts.verbose,
	}

	if opts.isSet("min-lines") {
		engineOpts.MinLines = opts.minLines
	}
	if opts.isSet("max-lines") {
		engineOpts.MaxLines = opts.maxLines
	}
	if opts.isSet("min-functions") {
		engineOpts.MinFunctions = opts.minFunctions
	}
	if opts.isSet("min-classes") {
		engineOpts.MinClasses = opts.minClasses
	}
	if opts.isSet("max-file-size-mb") {
		engineOpts.MaxFileSizeMB = opts.maxFileSizeMB
	}
	if opts.isSet("include-hidden") {
		engineOpts.IncludeHidden = opts.includeHidden
	}
	if opts.isSet("exclude") {
		engineOpts.ExcludePatterns = splitCommaList(opts.exclude)
	}
	if opts.isSet("max-depth") {
		engineOpts.MaxDepth = opts.maxDepth
	}
	return engineOpts
}

func resolveOutputOptions(cfg *config.Config, opts cliOptions, targetPath string, thresholds metrics.RefactoringThresholds) (output.Options, error) {
	formatName := cfg.Output.Format
	if opts.isSet("output") {
		formatName = opts.format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return output.Options{}, err
	}

	sortBy, err := output.ParseSortBy(opts.sortBy)
	if err != nil {
		return output.Options{}, err
	}

	outputFile := cfg.Output.File
	if opts.isSet("output-file") {
		outputFile = opts.outputFile
	}

	limit := cfg.Output.Limit
	if opts.isSet("limit") || limit <= 0 {
		limit = opts.limit
	}

	compact := cfg.Output.Compact
	if opts.isSet("compact") {
		compact = opts.compact
	}

	return output.Options{
		Format:     format,
		SortBy:     sortBy,
		Limit:      limit,
		OutputFile: outputFile,
		JSONOnly:   opts.jsonOnly,
		Compact:    compact,
		Verbose:    opts.verbose,
		BasePath:   targetPath,
		Thresholds: thresholds,
	}, nil
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
