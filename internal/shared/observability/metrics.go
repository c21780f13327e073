package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "codescope_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesAnalyzedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_files_analyzed_total",
		Help: "Total number of files successfully analyzed.",
	}, []string{"language"})

	FilesFailedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codescope_files_failed_total",
		Help: "Total number of files whose analysis failed.",
	})

	WarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codescope_warnings_total",
		Help: "Total number of analysis warnings emitted.",
	}, []string{"type"})

	DiscoveryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codescope_discovery_seconds",
		Help:    "Time spent discovering candidate files.",
		Buckets: prometheus.DefBuckets,
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "codescope_analysis_seconds",
		Help:    "End-to-end time for one analysis run.",
		Buckets: prometheus.DefBuckets,
	})
)
