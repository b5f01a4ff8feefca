package providerfactory

import (
	"fmt"
	"log/slog"
	"net/http"

	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/providers/anthropic"
	"mercator-hq/relay/pkg/providers/gemini"
	"mercator-hq/relay/pkg/providers/openai"
)

// Options carries the dependencies shared by every adapter.
type Options struct {
	// Credentials resolves API keys on every call. Required.
	Credentials providers.CredentialSource

	// HTTPClient overrides the adapters' HTTP client (mainly for tests).
	HTTPClient *http.Client

	// Logger receives adapter debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// NewAdapter creates the adapter for id from its configuration section.
// Empty fields in cfg take the adapter's defaults.
//
// Example:
//
//	adapter, err := providerfactory.NewAdapter(providers.Gemini,
//	    cfg.Provider("gemini"),
//	    providerfactory.Options{Credentials: chain},
//	)
func NewAdapter(id providers.ProviderID, cfg config.ProviderConfig, opts Options) (providers.Adapter, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("creating provider adapter",
		"provider", id,
		"base_url", cfg.BaseURL,
		"model", cfg.Model,
		"credential_key", cfg.CredentialKey,
	)

	var (
		adapter providers.Adapter
		err     error
	)

	switch id {
	case providers.OpenAI:
		adapter, err = openai.NewProvider(openai.Config{
			BaseURL:       cfg.BaseURL,
			Model:         cfg.Model,
			CredentialKey: cfg.CredentialKey,
			Timeout:       cfg.Timeout,
			Credentials:   opts.Credentials,
			HTTPClient:    opts.HTTPClient,
			Logger:        logger,
		})

	case providers.Anthropic:
		adapter, err = anthropic.NewProvider(anthropic.Config{
			BaseURL:       cfg.BaseURL,
			Model:         cfg.Model,
			CredentialKey: cfg.CredentialKey,
			Timeout:       cfg.Timeout,
			Credentials:   opts.Credentials,
			HTTPClient:    opts.HTTPClient,
			Logger:        logger,
		})

	case providers.Gemini:
		adapter, err = gemini.NewProvider(gemini.Config{
			BaseURL:       cfg.BaseURL,
			Model:         cfg.Model,
			CredentialKey: cfg.CredentialKey,
			Timeout:       cfg.Timeout,
			Credentials:   opts.Credentials,
			HTTPClient:    opts.HTTPClient,
			Logger:        logger,
		})

	default:
		return nil, &providers.UnsupportedProviderError{Provider: string(id)}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create provider %q: %w", id, err)
	}

	return adapter, nil
}

// NewAdapters creates one adapter for every supported provider, in the
// order of providers.All. Providers without a configuration section get
// their defaults.
func NewAdapters(cfg *config.Config, opts Options) ([]providers.Adapter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	ids := providers.All()
	adapters := make([]providers.Adapter, 0, len(ids))
	for _, id := range ids {
		adapter, err := NewAdapter(id, cfg.Provider(string(id)), opts)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}

	return adapters, nil
}
