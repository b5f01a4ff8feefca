package anthropic

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/relay/pkg/providers"
)

const (
	// DefaultBaseURL is the public Anthropic API endpoint.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "claude-3-5-haiku-latest"

	// DefaultCredentialKey is the key the API key is read from.
	DefaultCredentialKey = "ANTHROPIC_API_KEY"

	// DefaultAnthropicVersion is the API version to use
	DefaultAnthropicVersion = "2023-06-01"

	messagesPath = "/v1/messages"
)

// Config configures the Anthropic adapter. Empty fields take the package defaults.
type Config struct {
	BaseURL       string
	Model         string
	CredentialKey string
	Timeout       time.Duration
	Credentials   providers.CredentialSource
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Provider is the Anthropic adapter.
// It implements providers.Adapter for Anthropic's Messages API.
type Provider struct {
	client *providers.Client
	model  string
}

// NewProvider creates a new Anthropic adapter.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.CredentialKey == "" {
		cfg.CredentialKey = DefaultCredentialKey
	}

	client, err := providers.NewClient(providers.ClientConfig{
		Provider:      providers.Anthropic,
		BaseURL:       cfg.BaseURL,
		CredentialKey: cfg.CredentialKey,
		Credentials:   cfg.Credentials,
		Timeout:       cfg.Timeout,
		HTTPClient:    cfg.HTTPClient,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, err
	}

	return &Provider{client: client, model: cfg.Model}, nil
}

// ID implements providers.Adapter.
func (p *Provider) ID() providers.ProviderID {
	return providers.Anthropic
}

// Model returns the configured model.
func (p *Provider) Model() string {
	return p.model
}

// Send implements providers.Adapter.
func (p *Provider) Send(ctx context.Context, messages []providers.ChatMessage, maxTokens int, temperature float64) (string, error) {
	apiKey, err := p.client.Credential(ctx)
	if err != nil {
		return "", err
	}

	headers := map[string]string{
		"x-api-key":         apiKey,
		"anthropic-version": DefaultAnthropicVersion,
	}

	body, err := p.client.Post(ctx, messagesPath, headers, transformRequest(p.model, messages, maxTokens, temperature))
	if err != nil {
		return "", err
	}

	var resp AnthropicResponse
	if err := p.client.Decode(body, &resp); err != nil {
		return "", err
	}

	return extractReply(&resp)
}
