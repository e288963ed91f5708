package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search engine Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesift",
			Name:      "searches_total",
			Help:      "Total number of search invocations",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "filesift",
			Name:      "search_duration_seconds",
			Help:      "End-to-end search invocation duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SearchResultFiles = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "filesift",
			Name:      "search_result_files",
			Help:      "Number of files in the final result collection",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	OccurrenceLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "filesift",
			Name:      "occurrence_lookups_total",
			Help:      "Total occurrence store lookups issued by enrichment filters",
		},
		[]string{"status"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResultFiles)
	prometheus.MustRegister(OccurrenceLookupsTotal)
	searchMetricsRegistered = true
}

// ObserveSearch records the outcome of one search invocation.
func ObserveSearch(status string, d time.Duration, resultCount int) {
	SearchesTotal.WithLabelValues(status).Inc()
	SearchDuration.Observe(d.Seconds())
	if status == "ok" {
		SearchResultFiles.Observe(float64(resultCount))
	}
}
