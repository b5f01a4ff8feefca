package providerfactory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/providers/anthropic"
	"mercator-hq/relay/pkg/providers/gemini"
	"mercator-hq/relay/pkg/providers/openai"
)

// ErrNoCredentials is returned by CheckCredentials when no provider can
// authenticate.
var ErrNoCredentials = errors.New("no provider credentials configured")

// CredentialKey returns the key the adapter for id reads its API key from:
// the configured credential_key, or the adapter default.
func CredentialKey(id providers.ProviderID, cfg config.ProviderConfig) string {
	if cfg.CredentialKey != "" {
		return cfg.CredentialKey
	}
	switch id {
	case providers.OpenAI:
		return openai.DefaultCredentialKey
	case providers.Anthropic:
		return anthropic.DefaultCredentialKey
	case providers.Gemini:
		return gemini.DefaultCredentialKey
	default:
		return ""
	}
}

// CheckCredentials looks up every provider's credential and reports the
// providers that have one. It fails with ErrNoCredentials only when none
// do, since a relay with one usable provider can still serve traffic.
// Lookup errors are returned as is.
func CheckCredentials(ctx context.Context, cfg *config.Config, creds providers.CredentialSource) ([]providers.ProviderID, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	var (
		available []providers.ProviderID
		missing   []string
	)
	for _, id := range providers.All() {
		key := CredentialKey(id, cfg.Provider(string(id)))
		value, err := creds.Lookup(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("credential lookup for %s: %w", id, err)
		}
		if value == "" {
			missing = append(missing, key)
			continue
		}
		available = append(available, id)
	}

	if len(available) == 0 {
		return nil, fmt.Errorf("%w (missing %s)", ErrNoCredentials, strings.Join(missing, ", "))
	}
	return available, nil
}
