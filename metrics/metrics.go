package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "api_queries_total",
		Help:      "GraphQL queries issued upstream, by query template.",
	}, []string{"query"})

	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "api_errors_total",
		Help:      "GraphQL queries that failed after retries, by query template.",
	}, []string{"query"})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "cache_hits_total",
		Help:      "Responses served from the disk cache.",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "cache_misses_total",
		Help:      "Responses not found in the disk cache.",
	})

	ReportsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "reports_analyzed_total",
		Help:      "Reports fully processed into the result store.",
	})

	ReportsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "reports_skipped_total",
		Help:      "Reports skipped during analysis, by stage.",
	}, []string{"stage"})

	MetricsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "metrics_failed_total",
		Help:      "Configured metrics that failed evaluation, by kind.",
	}, []string{"kind"})

	AnalysisRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wow_check",
		Name:      "analysis_runs_total",
		Help:      "Completed analysis runs (all reports of one request).",
	})
)
