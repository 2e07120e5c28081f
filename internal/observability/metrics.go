package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the query API.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec   // labels: route, status
	HTTPRequestDuration *prometheus.HistogramVec // labels: route

	// Dataset metrics, set once at startup.
	DatasetRows         *prometheus.GaugeVec // labels: dataset={climate,rainfall}
	DatasetLoadDuration *prometheus.GaugeVec // labels: dataset

	StatsCache *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_api",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_api",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"route"}),
		DatasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "climate_api",
			Name:      "dataset_rows",
			Help:      "Rows loaded per dataset.",
		}, []string{"dataset"}),
		DatasetLoadDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "climate_api",
			Name:      "dataset_load_duration_seconds",
			Help:      "Time taken to load each dataset at startup.",
		}, []string{"dataset"}),
		StatsCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_api",
			Name:      "stats_cache_total",
			Help:      "Column statistics cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPRequestDuration,
		m.DatasetRows,
		m.DatasetLoadDuration,
		m.StatsCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		HTTPRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_api", Name: "http_requests_total"}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "climate_api", Name: "http_request_duration_seconds"}, []string{"route"}),
		DatasetRows:         prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "climate_api", Name: "dataset_rows"}, []string{"dataset"}),
		DatasetLoadDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{Namespace: "climate_api", Name: "dataset_load_duration_seconds"}, []string{"dataset"}),
		StatsCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_api", Name: "stats_cache_total"}, []string{"result"}),
	}
}
