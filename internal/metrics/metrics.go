package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPResponseSize      *prometheus.HistogramVec
	HTTPActiveConnections *prometheus.GaugeVec

	// Database metrics
	DatabaseQueryDuration *prometheus.HistogramVec
	DatabaseQueriesTotal  *prometheus.CounterVec

	// Recommendation metrics
	RecommendationRequests   *prometheus.CounterVec
	RecommendationDuration   prometheus.Histogram
	RecommendationCandidates prometheus.Histogram
	SimilarityMatches        *prometheus.CounterVec
	SimilarityTableRelations prometheus.Gauge

	// Error metrics
	ErrorsTotal *prometheus.CounterVec
}

// namespace prefixes every series this service exports
const namespace = "bookwise"

var (
	instance *Metrics
	once     sync.Once
)

// Initialize creates and registers all Prometheus metrics
func Initialize() *Metrics {
	once.Do(func() {
		instance = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "http_requests_total",
					Help:      "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "http_request_duration_seconds",
					Help:      "HTTP request latency in seconds",
					Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path", "status"},
			),
			HTTPResponseSize: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "http_response_size_bytes",
					Help:      "HTTP response size in bytes",
					Buckets:   prometheus.ExponentialBuckets(100, 10, 7),
				},
				[]string{"method", "path", "status"},
			),
			HTTPActiveConnections: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: namespace,
					Name:      "http_active_connections",
					Help:      "Number of currently active HTTP connections",
				},
				[]string{"method", "path"},
			),

			DatabaseQueryDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "database_query_duration_seconds",
					Help:      "Database query latency in seconds",
					Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
				},
				[]string{"operation"},
			),
			DatabaseQueriesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "database_queries_total",
					Help:      "Total number of database queries",
				},
				[]string{"operation", "status"},
			),

			RecommendationRequests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "recommendation_requests_total",
					Help:      "Recommendation requests by outcome",
				},
				[]string{"outcome"},
			),
			RecommendationDuration: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "recommendation_duration_seconds",
					Help:      "Time to fetch, score and rank candidates",
					Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
			),
			RecommendationCandidates: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: namespace,
					Name:      "recommendation_candidates",
					Help:      "Number of candidate books scored per request",
					Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
				},
			),
			SimilarityMatches: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "similarity_matches_total",
					Help:      "Genre comparisons by the rule that produced the score",
				},
				[]string{"kind"},
			),
			SimilarityTableRelations: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: namespace,
					Name:      "similarity_table_relations",
					Help:      "Number of directed relations in the loaded genre table",
				},
			),

			ErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: namespace,
					Name:      "errors_total",
					Help:      "Total number of errors by type",
				},
				[]string{"error_type", "endpoint"},
			),
		}
	})
	return instance
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Initialize()
}
