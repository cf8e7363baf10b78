package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "etl_console"
)

var (
	// Backend transport metrics
	BackendRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests sent to the ETL backend.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status_class"})

	BackendRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Count of requests sent to the ETL backend by outcome.",
	}, []string{"method", "outcome"})

	// Screen metrics
	ScreenActivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screen_activations_total",
		Help:      "Count of screen activations by screen and terminal phase.",
	}, []string{"screen", "phase"})

	JobTriggersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_triggers_total",
		Help:      "Count of manual job run triggers by outcome.",
	}, []string{"outcome"})

	ViewSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "view_subscribers",
		Help:      "Number of connected view-state stream subscribers.",
	})
)

// StatusClass buckets an HTTP status code into 2xx, 4xx, ... or "network"
// when no response was received.
func StatusClass(code int) string {
	if code <= 0 {
		return "network"
	}
	return strconv.Itoa(code/100) + "xx"
}
