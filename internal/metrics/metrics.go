package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the catalog
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	PartsCreatedTotal   *prometheus.CounterVec
	DetailsMergedTotal  *prometheus.CounterVec
	ComparisonsTotal    prometheus.Counter
	RateLimitedRequests prometheus.Counter

	// Catalog gauges, refreshed by the catalog monitor
	CatalogParts            *prometheus.GaugeVec
	CatalogPartsWithDetails *prometheus.GaugeVec
}

// NewMetricsRegistry registers every metric on reg. Pass
// prometheus.DefaultRegisterer in the server and a fresh registry in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_db_queries_total",
				Help: "Total store operations by operation and outcome",
			},
			[]string{"query_type", "outcome"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_db_query_duration_seconds",
				Help:    "Store operation time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		PartsCreatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_parts_created_total",
				Help: "Parts created, by client and whether seed details were attached",
			},
			[]string{"client", "seeded"},
		),
		DetailsMergedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_details_merged_total",
				Help: "Detail create-or-merge operations by result",
			},
			[]string{"result"},
		),
		ComparisonsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_comparisons_total",
				Help: "Successful part comparisons",
			},
		),
		RateLimitedRequests: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "catalog_rate_limited_requests_total",
				Help: "Requests rejected by the rate limiter",
			},
		),

		CatalogParts: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_parts",
				Help: "Parts in the catalog by category",
			},
			[]string{"category"},
		),
		CatalogPartsWithDetails: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "catalog_parts_with_details",
				Help: "Parts with a details record by category",
			},
			[]string{"category"},
		),
	}
}
