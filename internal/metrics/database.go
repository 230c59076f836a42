package metrics

import "github.com/prometheus/client_golang/prometheus"

// Database Prometheus metrics.
var (
	DBQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "labdex",
			Name:      "db_queries_total",
			Help:      "Total number of SQL statements executed",
		},
		[]string{"status"},
	)

	DBQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "labdex",
			Name:      "db_query_duration_seconds",
			Help:      "SQL statement duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	DBSlowQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "labdex",
			Name:      "db_slow_queries_total",
			Help:      "SQL statements slower than the configured threshold",
		},
	)

	DBRowsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "labdex",
			Name:      "db_rows_affected",
			Help:      "Rows returned or affected per SQL statement",
			Buckets:   []float64{0, 1, 15, 100, 1000, 10000},
		},
	)
)

var dbMetricsRegistered bool

// RegisterDatabaseMetrics registers Prometheus database metrics. Must be called once from main.
func RegisterDatabaseMetrics() {
	if dbMetricsRegistered {
		return
	}
	prometheus.MustRegister(DBQueriesTotal)
	prometheus.MustRegister(DBQueryDuration)
	prometheus.MustRegister(DBSlowQueriesTotal)
	prometheus.MustRegister(DBRowsReturned)
	dbMetricsRegistered = true
}

// ObserveQuery records one SQL statement. rows is ignored when negative.
func ObserveQuery(seconds float64, rows int64, failed, slow bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	DBQueriesTotal.WithLabelValues(status).Inc()
	DBQueryDuration.Observe(seconds)
	if slow {
		DBSlowQueriesTotal.Inc()
	}
	if rows >= 0 {
		DBRowsReturned.Observe(float64(rows))
	}
}
