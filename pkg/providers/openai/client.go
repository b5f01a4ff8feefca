package openai

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mercator-hq/relay/pkg/providers"
)

const (
	// DefaultBaseURL is the public OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o-mini"

	// DefaultCredentialKey is the key the API key is read from.
	DefaultCredentialKey = "OPENAI_API_KEY"

	completionsPath = "/v1/chat/completions"
)

// Config configures the OpenAI adapter. Empty fields take the package defaults.
type Config struct {
	BaseURL       string
	Model         string
	CredentialKey string
	Timeout       time.Duration
	Credentials   providers.CredentialSource
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Provider is the OpenAI adapter.
// It implements providers.Adapter for the chat completions API.
type Provider struct {
	client *providers.Client
	model  string
}

// NewProvider creates a new OpenAI adapter.
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
		Provider:      providers.OpenAI,
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
	return providers.OpenAI
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
		"Authorization": "Bearer " + apiKey,
	}

	body, err := p.client.Post(ctx, completionsPath, headers, transformRequest(p.model, messages, maxTokens, temperature))
	if err != nil {
		return "", err
	}

	var resp OpenAIResponse
	if err := p.client.Decode(body, &resp); err != nil {
		return "", err
	}

	return extractReply(&resp)
}
