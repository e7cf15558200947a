package provider

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landmarknav_provider_requests_total",
			Help: "Number of upstream provider requests",
		},
		[]string{"source", "operation"},
	)

	fetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landmarknav_provider_errors_total",
			Help: "Number of upstream provider requests that failed",
		},
		[]string{"source", "operation"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landmarknav_provider_request_duration_seconds",
			Help:    "Upstream provider request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source", "operation"},
	)

	chainServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landmarknav_chain_results_total",
			Help: "Which source ultimately served each chain fetch",
		},
		[]string{"chain", "source"},
	)
)

// observe records one upstream request for source.
func observe(source, operation string, start time.Time) {
	fetchTotal.WithLabelValues(source, operation).Inc()
	fetchDuration.WithLabelValues(source, operation).Observe(time.Since(start).Seconds())
}
