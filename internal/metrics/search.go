package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labdex",
			Name:      "search_requests_total",
			Help:      "Total number of sample searches",
		},
		[]string{"paginated", "filtered", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "labdex",
			Name:      "search_request_duration_seconds",
			Help:      "Sample search duration in seconds, executor included",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"paginated"},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "labdex",
			Name:      "search_results_returned",
			Help:      "Number of samples returned per search",
			Buckets:   []float64{0, 1, 5, 15, 50, 100, 500, 1000},
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchRequestDuration)
	prometheus.MustRegister(SearchResultsReturned)
	searchMetricsRegistered = true
}

// ObserveSearch records one search outcome.
func ObserveSearch(paginated, filtered bool, err error, returned int, seconds float64) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p := strconv.FormatBool(paginated)
	SearchRequestsTotal.WithLabelValues(p, strconv.FormatBool(filtered), status).Inc()
	SearchRequestDuration.WithLabelValues(p).Observe(seconds)
	if err == nil {
		SearchResultsReturned.Observe(float64(returned))
	}
}
