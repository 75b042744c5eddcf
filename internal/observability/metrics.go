package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// query service.
type Metrics struct {
	QueriesTotal  *prometheus.CounterVec // label: plan={limit_zero,date_index,condition_index,full_scan}
	QueryResults  prometheus.Histogram
	QueryDuration prometheus.Histogram

	DatasetRecords  prometheus.Gauge
	DatasetLoadedAt prometheus.Gauge

	HTTPResponses *prometheus.CounterVec // label: code
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueryResults,
		m.QueryDuration,
		m.DatasetRecords,
		m.DatasetLoadedAt,
		m.HTTPResponses,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_query",
			Name:      "queries_total",
			Help:      "Queries executed, by plan chosen.",
		}, []string{"plan"}),
		QueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_query",
			Name:      "query_results",
			Help:      "Number of observations returned per query.",
			Buckets:   []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_query",
			Name:      "query_duration_seconds",
			Help:      "Planner execution time per query.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 8),
		}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_query",
			Name:      "dataset_records",
			Help:      "Number of observations loaded at startup.",
		}),
		DatasetLoadedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_query",
			Name:      "dataset_loaded_timestamp_seconds",
			Help:      "Unix time at which the dataset finished loading.",
		}),
		HTTPResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_query",
			Name:      "http_responses_total",
			Help:      "HTTP responses from the query endpoint, by status code.",
		}, []string{"code"}),
	}
}
