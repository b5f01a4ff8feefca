package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mercator-hq/relay/pkg/telemetry/tracing"
)

// maxResponseBytes bounds how much of a provider response is read.
const maxResponseBytes = 8 << 20

// CredentialSource resolves a credential by key.
// An empty value with a nil error means the credential is absent.
type CredentialSource interface {
	Lookup(ctx context.Context, key string) (string, error)
}

// ClientConfig configures the shared HTTP client used by the adapters.
type ClientConfig struct {
	// Provider is the provider this client talks to
	Provider ProviderID

	// BaseURL is the scheme and host of the provider API, without a trailing slash
	BaseURL string

	// CredentialKey is the key the API credential is looked up under
	CredentialKey string

	// Credentials resolves CredentialKey on every call
	Credentials CredentialSource

	// Timeout bounds the outbound call. Zero means no client-side timeout.
	Timeout time.Duration

	// HTTPClient overrides the default client (mainly for tests)
	HTTPClient *http.Client

	// Logger receives debug output. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client performs the single outbound round trip every adapter shares:
// credential lookup, one JSON POST, and translation of non-2xx responses.
// It never retries.
type Client struct {
	provider      ProviderID
	baseURL       string
	credentialKey string
	credentials   CredentialSource
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, &ConfigError{Provider: cfg.Provider, Field: "base_url", Message: "base URL is required"}
	}
	if cfg.CredentialKey == "" {
		return nil, &ConfigError{Provider: cfg.Provider, Field: "credential_key", Message: "credential key is required"}
	}
	if cfg.Credentials == nil {
		return nil, &ConfigError{Provider: cfg.Provider, Field: "credentials", Message: "credential source is required"}
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
			Timeout: cfg.Timeout,
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		provider:      cfg.Provider,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		credentialKey: cfg.CredentialKey,
		credentials:   cfg.Credentials,
		httpClient:    httpClient,
		logger:        logger,
	}, nil
}

// Provider returns the provider this client serves.
func (c *Client) Provider() ProviderID {
	return c.provider
}

// CredentialKey returns the key the credential is looked up under.
func (c *Client) CredentialKey() string {
	return c.credentialKey
}

// Credential resolves the API credential. An absent or empty value yields a
// MissingCredentialError.
func (c *Client) Credential(ctx context.Context) (string, error) {
	value, err := c.credentials.Lookup(ctx, c.credentialKey)
	if err != nil {
		return "", fmt.Errorf("failed to read credential %s: %w", c.credentialKey, err)
	}
	if value == "" {
		return "", &MissingCredentialError{Key: c.credentialKey}
	}
	return value, nil
}

// Post sends payload as JSON to path and returns the body of a 2xx response.
//
// A non-2xx response is returned as a ProviderHTTPError carrying the raw
// body text. A failure to complete the round trip is a TransportError.
func (c *Client) Post(ctx context.Context, path string, headers map[string]string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.Inject(ctx, req.Header)

	c.logger.Debug("sending request to provider",
		"provider", c.provider,
		"url", url,
		"bytes", len(body),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Provider: c.provider, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Provider: c.provider, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	c.logger.Debug("provider responded",
		"provider", c.provider,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ProviderHTTPError{
			Provider: c.provider,
			Status:   resp.StatusCode,
			Body:     string(respBody),
		}
	}

	return respBody, nil
}

// Decode unmarshals a successful response body, reporting failures as a
// MalformedResponseError.
func (c *Client) Decode(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponseError{Provider: c.provider, Reason: "invalid JSON", Cause: err}
	}
	return nil
}
