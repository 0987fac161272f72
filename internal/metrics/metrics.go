// Package metrics exposes Prometheus collectors for the catalog server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "library",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "library",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	queryEvaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "library",
			Name:      "query_evaluations_total",
			Help:      "Items checked against a search query, by outcome",
		},
		[]string{"collection", "result"},
	)

	queryFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "library",
			Name:      "query_failures_total",
			Help:      "Search queries that could not be evaluated and matched nothing",
		},
		[]string{"collection"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(queryEvaluations)
	prometheus.MustRegister(queryFailures)
}

// ObserveQueryEvaluations records how many items of a collection matched and
// were rejected by a search query.
func ObserveQueryEvaluations(collection string, matched, rejected int) {
	if matched > 0 {
		queryEvaluations.WithLabelValues(collection, "match").Add(float64(matched))
	}
	if rejected > 0 {
		queryEvaluations.WithLabelValues(collection, "no_match").Add(float64(rejected))
	}
}

// RecordQueryFailure counts a query that failed closed.
func RecordQueryFailure(collection string) {
	queryFailures.WithLabelValues(collection).Inc()
}

// Handler serves the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
