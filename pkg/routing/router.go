package routing

import (
	"context"

	"mercator-hq/relay/pkg/providers"
)

// Router dispatches a chat request to the adapter of the provider it names.
//
// Dispatch is an exact, case-sensitive match against the closed set returned
// by providers.All. A request naming any other provider fails with
// *providers.UnsupportedProviderError before any adapter is called. The
// router never retries, never falls back to another provider and keeps no
// state between calls, so implementations are safe for concurrent use.
//
// Example usage:
//
//	router, err := routing.NewFromConfig(ctx, cfg, chain)
//	if err != nil {
//	    return err
//	}
//
//	reply, err := router.Route(ctx, providers.ChatRequest{
//	    Provider:    providers.Gemini,
//	    Messages:    []providers.ChatMessage{{Role: "user", Content: "hi"}},
//	    MaxTokens:   providers.DefaultMaxTokens,
//	    Temperature: providers.DefaultTemperature,
//	})
type Router interface {
	// Route sends the request's messages, MaxTokens and Temperature
	// unmodified to the selected adapter and returns its reply or error
	// unchanged.
	Route(ctx context.Context, req providers.ChatRequest) (string, error)

	// Providers returns the providers with a registered adapter, sorted.
	Providers() []providers.ProviderID

	// GetStats returns a snapshot of routing statistics.
	GetStats() *RoutingStats
}
