package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics are registered per router so tests can use private registries.
type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	writes   *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		// Labels: method, route (gin full path), status
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itemkeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled by the collection API",
		}, []string{"method", "route", "status"}),
		// Labels: method, route
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "itemkeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		// Labels: op (create, update, delete), mode (ephemeral, persistent)
		writes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "itemkeeper",
			Subsystem: "collection",
			Name:      "writes_total",
			Help:      "Acknowledged collection writes",
		}, []string{"op", "mode"}),
	}
}
