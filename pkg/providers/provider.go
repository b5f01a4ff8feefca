package providers

import "context"

// Adapter translates a provider-agnostic chat into exactly one call against
// a specific provider's API and normalizes the answer to plain text.
//
// Implementations are stateless between calls and safe for concurrent use.
// They must not retry, cache, or alter the returned text.
type Adapter interface {
	// ID returns the provider this adapter serves.
	ID() ProviderID

	// Send performs a single outbound request and returns the reply text.
	//
	// Failures are one of MissingCredentialError, ProviderHTTPError,
	// MalformedResponseError, or TransportError.
	Send(ctx context.Context, messages []ChatMessage, maxTokens int, temperature float64) (string, error)
}
