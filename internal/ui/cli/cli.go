// # internal/ui/cli/cli.go
package cli

import "flag"

const versionString = "0.3.0"
const defaultConfigPath = "./codescope.toml"

type cliOptions struct {
	configPath         string
	languages          string
	exclude            string
	minLines           int
	maxLines           int
	minFunctions       int
	minClasses         int
	maxFileSizeMB      float64
	includeHidden      bool
	maxDepth           int
	format             string
	outputFile         string
	jsonOnly           bool
	compact            bool
	limit              int
	sortBy             string
	onlyChangedSince   string
	workers            int
	maxComplexityScore float64
	maxCyclomatic      int
	maxLinesOfCode     int
	maxFunctionsPer    int
	metricsAddr        string
	verbose            bool
	version            bool
	args               []string
	set                map[string]bool
}

// isSet reports whether the named flag was given on the command line, which
// decides whether it overrides the config file.
func (o cliOptions) isSet(name string) bool {
	return o.set[name]
}

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("codescope", flag.ContinueOnError)

	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "Path to config file")
	fs.StringVar(&opts.languages, "languages", "", "Comma-separated languages to analyze (default: all supported)")
	fs.StringVar(&opts.exclude, "exclude", "", "Comma-separated glob patterns to exclude")
	fs.IntVar(&opts.minLines, "min-lines", 0, "Only include files with at least this many lines of code")
	fs.IntVar(&opts.maxLines, "max-lines", 0, "Only include files with at most this many lines of code (0 = no limit)")
	fs.IntVar(&opts.minFunctions, "min-functions", 0, "Only include files with at least this many functions")
	fs.IntVar(&opts.minClasses, "min-classes", 0, "Only include files with at least this many classes")
	fs.Float64Var(&opts.maxFileSizeMB, "max-file-size-mb", 10, "Skip files larger than this size in megabytes")
	fs.BoolVar(&opts.includeHidden, "include-hidden", false, "Include hidden files and directories")
	fs.IntVar(&opts.maxDepth, "max-depth", 0, "Maximum directory depth to walk (0 = unbounded)")
	fs.StringVar(&opts.format, "output", "table", "Output format: table, json, csv, both")
	fs.StringVar(&opts.outputFile, "output-file", "", "Write JSON or CSV output to this path")
	fs.BoolVar(&opts.jsonOnly, "json-only", false, "Write JSON output and suppress the terminal report")
	fs.BoolVar(&opts.compact, "compact", false, "Use the compact table layout")
	fs.IntVar(&opts.limit, "limit", 20, "Maximum table rows to display (0 = all)")
	fs.StringVar(&opts.sortBy, "sort", "lines", "Sort key: lines, functions, classes, name, path, complexity")
	fs.StringVar(&opts.onlyChangedSince, "only-changed-since", "", "Analyze only files changed since this git ref")
	fs.IntVar(&opts.workers, "workers", 0, "Analysis worker count (0 = number of CPUs)")
	fs.Float64Var(&opts.maxComplexityScore, "max-complexity-score", 0, "Refactoring threshold for the complexity score (0 = default)")
	fs.IntVar(&opts.maxCyclomatic, "max-cc", 0, "Refactoring threshold for cyclomatic complexity (0 = default)")
	fs.IntVar(&opts.maxLinesOfCode, "max-loc", 0, "Refactoring threshold for lines of code (0 = default)")
	fs.IntVar(&opts.maxFunctionsPer, "max-functions-per-file", 0, "Refactoring threshold for functions per file (0 = default)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Expose Prometheus metrics and health on this address")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.args = fs.Args()
	return opts, nil
}
