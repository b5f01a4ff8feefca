package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"mercator-hq/relay/pkg/providers"
)

const (
	// DefaultBaseURL is the public Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-1.5-flash"

	// DefaultCredentialKey is the key the API key is read from.
	DefaultCredentialKey = "GEMINI_API_KEY"
)

// Config configures the Gemini adapter. Empty fields take the package defaults.
type Config struct {
	BaseURL       string
	Model         string
	CredentialKey string
	Timeout       time.Duration
	Credentials   providers.CredentialSource
	HTTPClient    *http.Client
	Logger        *slog.Logger
}

// Provider is the Gemini adapter.
// It implements providers.Adapter for the generateContent API.
type Provider struct {
	client *providers.Client
	model  string
}

// NewProvider creates a new Gemini adapter.
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
		Provider:      providers.Gemini,
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
	return providers.Gemini
}

// Model returns the configured model.
func (p *Provider) Model() string {
	return p.model
}

// generatePath returns the generateContent path for the configured model.
func (p *Provider) generatePath() string {
	return fmt.Sprintf("/v1beta/models/%s:generateContent", url.PathEscape(p.model))
}

// Send implements providers.Adapter.
//
// The key is sent in the x-goog-api-key header so it never appears in a URL.
func (p *Provider) Send(ctx context.Context, messages []providers.ChatMessage, maxTokens int, temperature float64) (string, error) {
	apiKey, err := p.client.Credential(ctx)
	if err != nil {
		return "", err
	}

	headers := map[string]string{
		"x-goog-api-key": apiKey,
	}

	body, err := p.client.Post(ctx, p.generatePath(), headers, transformRequest(messages, maxTokens, temperature))
	if err != nil {
		return "", err
	}

	var resp GeminiResponse
	if err := p.client.Decode(body, &resp); err != nil {
		return "", err
	}

	return extractReply(&resp)
}
