// Package providers defines the provider-agnostic chat types, the Adapter
// contract and the error taxonomy shared by every upstream provider.
//
// # Overview
//
// A chat request names one provider from a closed set (see All), carries an
// ordered list of messages, and two generation parameters. The router picks
// the Adapter for that provider; the Adapter performs exactly one HTTP call
// and returns the reply text verbatim.
//
// # Architecture
//
//  1. Types - ProviderID, ChatMessage, ChatRequest, ChatReply
//  2. Adapter - the single-call contract every provider implements
//  3. Client - the shared credential lookup and JSON POST used by adapters
//  4. Adapters - openai, anthropic and gemini subpackages
//
// # Errors
//
// Adapters fail with one of:
//
//   - MissingCredentialError: no credential under the configured key; no call made
//   - ProviderHTTPError: non-2xx status, carrying the raw body
//   - MalformedResponseError: 2xx with no reply text at the expected path
//   - TransportError: the round trip did not complete
//
// The router adds UnsupportedProviderError and the HTTP layer adds
// ValidationError. Use Kind to get a stable label for any of them.
//
// Nothing in this package retries, caches or streams.
//
// # Basic Usage
//
//	p, err := openai.NewProvider(openai.Config{Credentials: secrets.NewEnvSource()})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := p.Send(ctx, []providers.ChatMessage{
//	    {Role: "user", Content: "Hello!"},
//	}, providers.DefaultMaxTokens, providers.DefaultTemperature)
//	if err != nil {
//	    var httpErr *providers.ProviderHTTPError
//	    if errors.As(err, &httpErr) {
//	        log.Printf("status %d: %s", httpErr.Status, httpErr.Body)
//	    }
//	    return err
//	}
//	fmt.Println(reply)
package providers
