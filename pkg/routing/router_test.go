package routing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	mockrouting "mercator-hq/relay/internal/routing"
	"mercator-hq/relay/pkg/config"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/security/secrets"
	"mercator-hq/relay/pkg/telemetry/metrics"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

func chatRequest(provider providers.ProviderID) providers.ChatRequest {
	return providers.ChatRequest{
		Provider:    provider,
		Messages:    []providers.ChatMessage{{Role: "user", Content: "hi"}},
		MaxTokens:   512,
		Temperature: 0.7,
	}
}

func TestRoute_DispatchesToExactlyOneAdapter(t *testing.T) {
	for _, target := range providers.All() {
		t.Run(string(target), func(t *testing.T) {
			mocks, adapters := mockrouting.MockAdapters()
			mocks[target].SetReply("reply from " + string(target))

			r, err := New(adapters)
			require.NoError(t, err)

			reply, err := r.Route(context.Background(), chatRequest(target))
			require.NoError(t, err)
			require.Equal(t, "reply from "+string(target), reply)

			for id, m := range mocks {
				if id == target {
					require.Equal(t, 1, m.CallCount(), "target adapter %s", id)
				} else {
					require.Zero(t, m.CallCount(), "adapter %s must not be called", id)
				}
			}
		})
	}
}

func TestRoute_PassesParametersUnmodified(t *testing.T) {
	mocks, adapters := mockrouting.MockAdapters()
	r, err := New(adapters)
	require.NoError(t, err)

	req := providers.ChatRequest{
		Provider: providers.Anthropic,
		Messages: []providers.ChatMessage{
			{Role: "system", Content: "be brief"},
			{Role: "user", Content: "hi"},
		},
		MaxTokens:   -3,
		Temperature: 7.5,
	}

	_, err = r.Route(context.Background(), req)
	require.NoError(t, err)

	call, ok := mocks[providers.Anthropic].LastCall()
	require.True(t, ok)
	require.Equal(t, req.Messages, call.Messages)
	require.Equal(t, -3, call.MaxTokens)
	require.Equal(t, 7.5, call.Temperature)
}

func TestRoute_ReplyReturnedVerbatim(t *testing.T) {
	mocks, adapters := mockrouting.MockAdapters()
	mocks[providers.OpenAI].SetReply("  hello\n")

	r, err := New(adapters)
	require.NoError(t, err)

	reply, err := r.Route(context.Background(), chatRequest(providers.OpenAI))
	require.NoError(t, err)
	require.Equal(t, "  hello\n", reply)
}

func TestRoute_UnsupportedProvider(t *testing.T) {
	tests := []providers.ProviderID{"unknown-llm", "OpenAI", "", "openai "}

	for _, id := range tests {
		t.Run(string(id), func(t *testing.T) {
			mocks, adapters := mockrouting.MockAdapters()
			r, err := New(adapters)
			require.NoError(t, err)

			_, err = r.Route(context.Background(), chatRequest(id))

			var unsupported *providers.UnsupportedProviderError
			require.ErrorAs(t, err, &unsupported)
			require.Equal(t, "Unsupported provider: "+string(id), err.Error())

			for _, m := range mocks {
				require.Zero(t, m.CallCount())
			}
		})
	}
}

func TestRoute_AdapterErrorReturnedUnchanged(t *testing.T) {
	mocks, adapters := mockrouting.MockAdapters()
	want := &providers.ProviderHTTPError{Provider: providers.OpenAI, Status: 401, Body: "invalid api key"}
	mocks[providers.OpenAI].SetError(want)

	r, err := New(adapters)
	require.NoError(t, err)

	_, err = r.Route(context.Background(), chatRequest(providers.OpenAI))
	require.Same(t, want, err)
	require.Equal(t, "OpenAI error: 401 invalid api key", err.Error())
	require.Equal(t, 1, mocks[providers.OpenAI].CallCount(), "router must not retry")
}

func TestNew_Errors(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		_, err := New([]providers.Adapter{
			mockrouting.NewMockAdapter(providers.Gemini),
			mockrouting.NewMockAdapter(providers.Gemini),
		})
		require.ErrorIs(t, err, ErrDuplicateAdapter)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := New([]providers.Adapter{mockrouting.NewMockAdapter("mistral")})
		require.ErrorIs(t, err, ErrUnknownAdapter)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := New([]providers.Adapter{nil})
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	_, adapters := mockrouting.MockAdapters()
	full, err := New(adapters)
	require.NoError(t, err)
	require.NoError(t, full.Validate())

	partial, err := New([]providers.Adapter{mockrouting.NewMockAdapter(providers.OpenAI)})
	require.NoError(t, err)

	err = partial.Validate()
	require.ErrorIs(t, err, ErrIncompleteDispatch)

	var incomplete *IncompleteDispatchError
	require.ErrorAs(t, err, &incomplete)
	require.Equal(t, []providers.ProviderID{providers.Anthropic, providers.Gemini}, incomplete.Missing)
	require.Equal(t, "no adapter registered for providers: anthropic, gemini", err.Error())

	_, err = partial.Route(context.Background(), chatRequest(providers.Gemini))
	var unsupported *providers.UnsupportedProviderError
	require.ErrorAs(t, err, &unsupported)
}

func TestProviders(t *testing.T) {
	_, adapters := mockrouting.MockAdapters()
	r, err := New(adapters)
	require.NoError(t, err)
	require.Equal(t, providers.All(), r.Providers())
}

func TestNewFromConfig(t *testing.T) {
	r, err := NewFromConfig(config.NewDefault(), secrets.StaticSource{})
	require.NoError(t, err)
	require.Equal(t, providers.All(), r.Providers())

	_, err = r.Route(context.Background(), chatRequest(providers.Gemini))
	var missing *providers.MissingCredentialError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "Missing GEMINI_API_KEY", err.Error())
}

func TestNewFromConfig_NilConfig(t *testing.T) {
	_, err := NewFromConfig(nil, secrets.StaticSource{})
	require.Error(t, err)
}

func TestRoute_RecordsMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{
		Enabled:   true,
		Namespace: "test",
	}, registry)

	mocks, adapters := mockrouting.MockAdapters()
	mocks[providers.Anthropic].SetError(&providers.MalformedResponseError{Provider: providers.Anthropic, Reason: "no text block"})

	r, err := New(adapters, WithMetrics(collector))
	require.NoError(t, err)

	_, err = r.Route(context.Background(), chatRequest(providers.Gemini))
	require.NoError(t, err)
	_, err = r.Route(context.Background(), chatRequest(providers.Anthropic))
	require.Error(t, err)
	_, err = r.Route(context.Background(), chatRequest("unknown-llm"))
	require.Error(t, err)

	expected := `
# HELP test_chat_requests_total Total number of chat requests by provider and outcome
# TYPE test_chat_requests_total counter
test_chat_requests_total{outcome="malformed_response",provider="anthropic"} 1
test_chat_requests_total{outcome="success",provider="gemini"} 1
test_chat_requests_total{outcome="unsupported_provider",provider="unsupported"} 1
`
	require.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "test_chat_requests_total"))
}

func TestRoute_RecordsSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer, err := tracing.New(&config.TracingConfig{
		Enabled:     true,
		Sampler:     tracing.SamplerAlways,
		ServiceName: "relay-test",
	}, tracing.WithExporter(exporter))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracer.Shutdown(context.Background()) })

	mocks, adapters := mockrouting.MockAdapters()
	mocks[providers.OpenAI].SetError(errors.New("boom"))

	r, err := New(adapters, WithTracer(tracer))
	require.NoError(t, err)

	_, err = r.Route(context.Background(), chatRequest(providers.OpenAI))
	require.EqualError(t, err, "boom")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "router.Route", spans[0].Name)

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "openai", attrs[tracing.AttrProvider])
	require.Equal(t, "1", attrs[tracing.AttrMessages])
	require.Equal(t, "internal", attrs[tracing.AttrErrorKind])
}

func TestGetStats(t *testing.T) {
	mocks, adapters := mockrouting.MockAdapters()
	mocks[providers.Gemini].SetError(&providers.MissingCredentialError{Key: "GEMINI_API_KEY"})

	r, err := New(adapters)
	require.NoError(t, err)

	_, _ = r.Route(context.Background(), chatRequest(providers.OpenAI))
	_, _ = r.Route(context.Background(), chatRequest(providers.OpenAI))
	_, _ = r.Route(context.Background(), chatRequest(providers.Gemini))
	_, _ = r.Route(context.Background(), chatRequest("nope"))

	stats := r.GetStats()
	require.EqualValues(t, 4, stats.TotalRequests)
	require.EqualValues(t, 2, stats.RequestsPerProvider["openai"])
	require.EqualValues(t, 1, stats.RequestsPerProvider["gemini"])
	require.EqualValues(t, 2, stats.Errors)
	require.EqualValues(t, 1, stats.ErrorsPerKind[providers.KindMissingCredential])
	require.EqualValues(t, 1, stats.ErrorsPerKind[providers.KindUnsupportedProvider])
}
