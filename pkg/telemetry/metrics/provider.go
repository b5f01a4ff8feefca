package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/relay/pkg/config"
)

// ProviderMetrics tracks outbound calls to upstream providers.
//
// Metrics:
//   - relay_provider_latency_seconds: provider API latency
//   - relay_provider_errors_total: provider error count by kind
type ProviderMetrics struct {
	latency *prometheus.HistogramVec
	errors  *prometheus.CounterVec
}

// NewProviderMetrics creates and registers provider metrics with the provided registry.
func NewProviderMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_latency_seconds",
				Help:      "Provider API call latency in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"provider"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_errors_total",
				Help:      "Total number of provider errors by type",
			},
			[]string{"provider", "error_type"},
		),
	}

	registry.MustRegister(
		pm.latency,
		pm.errors,
	)

	return pm
}

// RecordLatency records the latency of a provider API call in seconds.
func (pm *ProviderMetrics) RecordLatency(provider string, latencySeconds float64) {
	pm.latency.WithLabelValues(provider).Observe(latencySeconds)
}

// RecordError records an error from a provider.
//
// Error types are the stable kinds from the providers package:
//   - "missing_credential": no API key, no call made
//   - "provider_http": non-2xx response
//   - "malformed_response": 2xx without reply text
//   - "transport": the round trip did not complete
func (pm *ProviderMetrics) RecordError(provider, errorType string) {
	pm.errors.WithLabelValues(provider, errorType).Inc()
}
