package secrets

import (
	"context"
	"fmt"
	"log/slog"
)

// Chain tries multiple sources in order.
//
// The first source returning a non-empty value wins. A source error stops
// the lookup immediately so a broken backend is never masked by a later
// fallback. Nothing is cached.
type Chain struct {
	sources []Source
}

// NewChain creates a chain over the given sources.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Lookup returns the first non-empty value, or "" when no source has it.
func (c *Chain) Lookup(ctx context.Context, key string) (string, error) {
	for _, src := range c.sources {
		value, err := src.Lookup(ctx, key)
		if err != nil {
			return "", fmt.Errorf("%s source: %w", src.Name(), err)
		}
		if value != "" {
			slog.Debug("credential resolved", "source", src.Name(), "key", key)
			return value, nil
		}
	}

	slog.Debug("credential not found in any source", "key", key)
	return "", nil
}

// Name returns the source name.
func (c *Chain) Name() string {
	return "chain"
}

// Sources returns the configured sources in lookup order.
func (c *Chain) Sources() []Source {
	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}
