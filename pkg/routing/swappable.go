package routing

import (
	"context"
	"sync/atomic"

	"mercator-hq/relay/pkg/providers"
)

// Swappable holds the active router and lets a configuration reload replace
// it without locking the request path. A request keeps the router it loaded
// for its whole lifetime.
type Swappable struct {
	current atomic.Pointer[DefaultRouter]
}

// NewSwappable returns a Swappable serving r.
func NewSwappable(r *DefaultRouter) *Swappable {
	s := &Swappable{}
	s.current.Store(r)
	return s
}

// Swap installs next and returns the router it replaced.
func (s *Swappable) Swap(next *DefaultRouter) *DefaultRouter {
	return s.current.Swap(next)
}

// Current returns the active router.
func (s *Swappable) Current() *DefaultRouter {
	return s.current.Load()
}

// Route implements Router using the active router.
func (s *Swappable) Route(ctx context.Context, req providers.ChatRequest) (string, error) {
	return s.current.Load().Route(ctx, req)
}

// Providers implements Router using the active router.
func (s *Swappable) Providers() []providers.ProviderID {
	return s.current.Load().Providers()
}

// GetStats implements Router using the active router.
func (s *Swappable) GetStats() *RoutingStats {
	return s.current.Load().GetStats()
}
