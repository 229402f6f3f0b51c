package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records repository operation latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chirp_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// RepositoryOperations counts repository operations by outcome code.
	RepositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chirp_repository_operations_total",
		Help: "Total repository operations by operation and outcome",
	}, []string{"operation", "outcome"})
)

// DatabaseMetrics records repository latency and outcomes.
type DatabaseMetrics struct {
	table string
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance for the table.
func NewDatabaseMetrics(table string) *DatabaseMetrics {
	return &DatabaseMetrics{table: table}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, m.table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, start)
	}
}

// RecordOutcome counts one finished operation. Outcome is "ok" or an error code.
func (m *DatabaseMetrics) RecordOutcome(operation, outcome string) {
	RepositoryOperations.WithLabelValues(m.table+"."+operation, outcome).Inc()
}
