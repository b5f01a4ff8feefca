package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/relay/pkg/config"
)

// RequestMetrics tracks chat requests and inbound HTTP traffic.
//
// Metrics:
//   - relay_chat_requests_total: Route calls by provider and outcome
//   - relay_chat_request_duration_seconds: Route duration by provider
//   - relay_http_requests_total: inbound requests by path and status
//   - relay_http_request_duration_seconds: inbound request duration by path
type RequestMetrics struct {
	chatTotal    *prometheus.CounterVec
	chatDuration *prometheus.HistogramVec
	httpTotal    *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		chatTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_requests_total",
				Help:      "Total number of chat requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),

		chatDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "chat_request_duration_seconds",
				Help:      "Duration of chat requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"provider"},
		),

		httpTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of inbound HTTP requests",
			},
			[]string{"path", "status"},
		),

		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of inbound HTTP requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"path"},
		),
	}

	registry.MustRegister(
		rm.chatTotal,
		rm.chatDuration,
		rm.httpTotal,
		rm.httpDuration,
	)

	return rm
}

// RecordChat records a completed chat request.
func (rm *RequestMetrics) RecordChat(provider, outcome string, duration time.Duration) {
	rm.chatTotal.WithLabelValues(provider, outcome).Inc()
	rm.chatDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordHTTP records a completed inbound HTTP request.
func (rm *RequestMetrics) RecordHTTP(path, status string, duration time.Duration) {
	rm.httpTotal.WithLabelValues(path, status).Inc()
	rm.httpDuration.WithLabelValues(path).Observe(duration.Seconds())
}
