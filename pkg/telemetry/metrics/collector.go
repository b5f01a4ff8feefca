package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"mercator-hq/relay/pkg/config"
)

// OtherLabel replaces label values once the cardinality limit is reached.
const OtherLabel = "other"

// DefaultMaxCardinality bounds the number of distinct HTTP path labels.
const DefaultMaxCardinality = 1000

// Collector owns the relay's Prometheus registry and every metric in it.
// A nil or disabled Collector accepts every Record call and does nothing,
// so callers never need to check whether metrics are on.
type Collector struct {
	config   config.MetricsConfig
	registry *prometheus.Registry

	// Chat request metrics
	requestMetrics *RequestMetrics

	// Provider call metrics
	providerMetrics *ProviderMetrics

	// Cardinality tracking for HTTP paths
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
// The configuration is copied; missing namespace and buckets get defaults.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(DefaultMaxCardinality),
	}
	if cfg != nil {
		c.config = *cfg
	}

	if c.config.Namespace == "" {
		c.config.Namespace = config.DefaultMetricsNamespace
	}
	if len(c.config.RequestDurationBuckets) == 0 {
		c.config.RequestDurationBuckets = config.DefaultRequestDurationBuckets
	}

	if !c.config.Enabled {
		return c
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.requestMetrics = NewRequestMetrics(&c.config, registry)
	c.providerMetrics = NewProviderMetrics(&c.config, registry)

	return c
}

// Enabled reports whether metrics are being recorded.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordChat records the outcome of one Route call.
//
// Parameters:
//   - provider: provider label ("openai", "anthropic", "gemini" or "unsupported")
//   - outcome: "success" or an error kind such as "provider_http"
//   - duration: time spent in the router, including the provider call
func (c *Collector) RecordChat(provider, outcome string, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	c.requestMetrics.RecordChat(provider, outcome, duration)
}

// RecordProviderLatency records the latency of one outbound provider call.
func (c *Collector) RecordProviderLatency(provider string, latency time.Duration) {
	if !c.Enabled() {
		return
	}

	c.providerMetrics.RecordLatency(provider, latency.Seconds())
}

// RecordProviderError records a failed provider call.
//
// Parameters:
//   - provider: provider label
//   - errorType: error kind (e.g., "missing_credential", "provider_http", "transport")
func (c *Collector) RecordProviderError(provider, errorType string) {
	if !c.Enabled() {
		return
	}

	c.providerMetrics.RecordError(provider, errorType)
}

// RecordHTTPRequest records a completed inbound HTTP request. Paths beyond
// the cardinality limit are folded into OtherLabel.
func (c *Collector) RecordHTTPRequest(path string, status int, duration time.Duration) {
	if !c.Enabled() {
		return
	}

	if !c.cardinalityLimiter.Allow(path) {
		path = OtherLabel
	}

	c.requestMetrics.RecordHTTP(path, strconv.Itoa(status), duration)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
