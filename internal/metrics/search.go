package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopsearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests by retrieval mode and status",
		},
		[]string{"mode", "status"}, // mode: "semantic" / "filter_only"
	)

	SearchCandidatesReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shopsearch",
			Name:      "search_candidates_returned",
			Help:      "Number of candidates returned per search",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
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
	prometheus.MustRegister(SearchCandidatesReturned)
	searchMetricsRegistered = true
}
