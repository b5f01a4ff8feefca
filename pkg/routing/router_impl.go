package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel/trace"

	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providerfactory"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/telemetry/logging"
	"mercator-hq/relay/pkg/telemetry/metrics"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

// UnsupportedLabel is the metric label used for provider IDs outside the
// supported set, which keeps label cardinality bounded.
const UnsupportedLabel = "unsupported"

// OutcomeSuccess is the outcome label of a successful Route call.
// Failures are labelled with providers.Kind.
const OutcomeSuccess = "success"

// DefaultRouter implements the Router interface with a fixed dispatch table.
type DefaultRouter struct {
	// adapters maps each provider to its adapter
	adapters map[providers.ProviderID]providers.Adapter

	// stats tracks routing statistics
	stats *AtomicRoutingStats

	metrics *metrics.Collector
	tracer  *tracing.Tracer
	logger  *slog.Logger
}

// Option configures a DefaultRouter.
type Option func(*DefaultRouter)

// WithMetrics records every Route call on collector.
func WithMetrics(collector *metrics.Collector) Option {
	return func(r *DefaultRouter) { r.metrics = collector }
}

// WithTracer wraps every Route call in a "router.Route" span.
func WithTracer(tracer *tracing.Tracer) Option {
	return func(r *DefaultRouter) { r.tracer = tracer }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *DefaultRouter) { r.logger = logger }
}

// New builds a router from adapters. It fails if an adapter serves a
// provider outside providers.All or if two adapters serve the same provider.
// A router with missing providers is allowed; Validate reports it.
func New(adapters []providers.Adapter, opts ...Option) (*DefaultRouter, error) {
	r := &DefaultRouter{
		adapters: make(map[providers.ProviderID]providers.Adapter, len(adapters)),
		stats:    NewAtomicRoutingStats(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, adapter := range adapters {
		if adapter == nil {
			return nil, fmt.Errorf("adapter cannot be nil")
		}
		id := adapter.ID()
		if !id.Valid() {
			return nil, &UnknownAdapterError{Provider: id}
		}
		if _, exists := r.adapters[id]; exists {
			return nil, &DuplicateAdapterError{Provider: id}
		}
		r.adapters[id] = adapter
	}

	return r, nil
}

// NewFromConfig builds an adapter for every supported provider from cfg,
// with credentials resolved through creds, and checks that the dispatch
// table is complete.
func NewFromConfig(cfg *config.Config, creds providers.CredentialSource, opts ...Option) (*DefaultRouter, error) {
	r, err := New(nil, opts...)
	if err != nil {
		return nil, err
	}

	adapters, err := providerfactory.NewAdapters(cfg, providerfactory.Options{
		Credentials: creds,
		Logger:      r.logger,
	})
	if err != nil {
		return nil, err
	}

	for _, adapter := range adapters {
		r.adapters[adapter.ID()] = adapter
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate reports every supported provider without an adapter.
func (r *DefaultRouter) Validate() error {
	var missing []providers.ProviderID
	for _, id := range providers.All() {
		if _, ok := r.adapters[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return &IncompleteDispatchError{Missing: missing}
	}
	return nil
}

// Route dispatches req to the adapter registered for req.Provider.
// The adapter's reply and error are returned unchanged.
func (r *DefaultRouter) Route(ctx context.Context, req providers.ChatRequest) (string, error) {
	start := time.Now()
	r.stats.IncrementTotal()

	label := metricLabel(req.Provider)
	ctx = logging.WithProvider(ctx, string(req.Provider))

	ctx, span := r.tracer.Start(ctx, "router.Route")
	defer span.End()
	tracing.SetChatAttributes(span, label, len(req.Messages), req.MaxTokens, req.Temperature)

	id, err := providers.ParseProviderID(string(req.Provider))
	if err != nil {
		r.recordFailure(ctx, span, label, err, time.Since(start))
		return "", err
	}

	adapter, ok := r.adapters[id]
	if !ok {
		err := &providers.UnsupportedProviderError{Provider: string(id)}
		r.recordFailure(ctx, span, label, err, time.Since(start))
		return "", err
	}

	r.stats.IncrementProvider(string(id))

	reply, err := adapter.Send(ctx, req.Messages, req.MaxTokens, req.Temperature)
	elapsed := time.Since(start)
	r.metrics.RecordProviderLatency(label, elapsed)

	if err != nil {
		r.recordFailure(ctx, span, label, err, elapsed)
		return "", err
	}

	r.metrics.RecordChat(label, OutcomeSuccess, elapsed)
	tracing.SetSuccess(span, len(reply))

	r.logger.DebugContext(ctx, "chat routed",
		"messages", len(req.Messages),
		"duration_ms", elapsed.Milliseconds(),
	)

	return reply, nil
}

// recordFailure records err on every observability channel. It never
// changes err.
func (r *DefaultRouter) recordFailure(ctx context.Context, span trace.Span, label string, err error, elapsed time.Duration) {
	kind := providers.Kind(err)

	r.stats.IncrementErrors(kind)
	r.metrics.RecordChat(label, kind, elapsed)
	r.metrics.RecordProviderError(label, kind)
	tracing.SetErrorAttributes(span, err, kind)

	r.logger.WarnContext(ctx, "chat routing failed",
		"error_kind", kind,
		"error", err,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// Providers returns the providers with a registered adapter, sorted.
func (r *DefaultRouter) Providers() []providers.ProviderID {
	ids := make([]providers.ProviderID, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// GetStats returns current routing statistics.
func (r *DefaultRouter) GetStats() *RoutingStats {
	return r.stats.Snapshot()
}

// metricLabel bounds provider label values to the supported set.
func metricLabel(id providers.ProviderID) string {
	if id.Valid() {
		return string(id)
	}
	return UnsupportedLabel
}
