package gateway

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess     = "success"
	statusFallback    = "fallback"
	statusError       = "error"
	statusConfigError = "config_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journey_gateway_requests_total",
			Help: "Total number of generation requests sent to the model.",
		},
		[]string{"provider", "model", "status"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journey_gateway_request_duration_seconds",
			Help:    "Histogram of generation request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)
)

func observe(provider, model, status string, started time.Time) {
	requestsTotal.WithLabelValues(provider, model, status).Inc()
	if !started.IsZero() {
		requestDuration.WithLabelValues(provider, model).Observe(time.Since(started).Seconds())
	}
}
