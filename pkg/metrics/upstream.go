package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics records request metadata for calls to the external services.
type UpstreamMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewUpstreamMetrics registers the upstream call metrics on the provided registerer.
func NewUpstreamMetrics(reg prometheus.Registerer) *UpstreamMetrics {
	if reg == nil {
		return &UpstreamMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of upstream service calls in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"service", "operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_success",
		Help: "Successful upstream service calls.",
	}, []string{"service", "operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_request_failure",
		Help: "Failed upstream service calls.",
	}, []string{"service", "operation"})
	reg.MustRegister(duration, success, failure)
	return &UpstreamMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records one upstream call outcome.
func (u *UpstreamMetrics) Observe(service, operation string, duration time.Duration, err error) {
	if u == nil {
		return
	}
	service = normalizeLabel(service)
	operation = normalizeLabel(operation)
	if u.duration != nil {
		u.duration.WithLabelValues(service, operation).Observe(duration.Seconds())
	}
	if err != nil {
		if u.failure != nil {
			u.failure.WithLabelValues(service, operation).Inc()
		}
		return
	}
	if u.success != nil {
		u.success.WithLabelValues(service, operation).Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
