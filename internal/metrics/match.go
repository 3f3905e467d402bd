package metrics

import "github.com/prometheus/client_golang/prometheus"

// Matching engine Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vibescout",
			Name:      "match_requests_total",
			Help:      "Total number of match requests",
		},
		[]string{"mode", "outcome"}, // mode: "matches" / "surprise"; outcome: "ok" / "fallback" / "error"
	)

	MatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vibescout",
			Name:      "match_duration_seconds",
			Help:      "Ranking pass duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"},
	)

	MatchResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vibescout",
			Name:      "match_results_returned",
			Help:      "Number of results returned per request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"mode"},
	)

	CatalogVenues = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vibescout",
			Name:      "catalog_venues",
			Help:      "Number of venues in the loaded catalog",
		},
	)

	CatalogTags = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vibescout",
			Name:      "catalog_tags",
			Help:      "Size of the tag embedding vocabulary",
		},
	)
)

// RegisterMatchMetrics registers engine metrics explicitly (no init()),
// so library embedders of the engine pay nothing for them.
func RegisterMatchMetrics() {
	prometheus.MustRegister(MatchRequestsTotal)
	prometheus.MustRegister(MatchDuration)
	prometheus.MustRegister(MatchResultsReturned)
	prometheus.MustRegister(CatalogVenues)
	prometheus.MustRegister(CatalogTags)
}
