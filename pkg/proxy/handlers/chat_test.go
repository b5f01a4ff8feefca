package handlers

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	internalproviders "mercator-hq/relay/internal/providers"
	internalrouting "mercator-hq/relay/internal/routing"
	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/providers/openai"
	"mercator-hq/relay/pkg/proxy/types"
	"mercator-hq/relay/pkg/routing"
)

// newMockRouter builds a router over counting mock adapters.
func newMockRouter(t *testing.T) (*routing.DefaultRouter, map[providers.ProviderID]*internalrouting.MockAdapter) {
	t.Helper()
	mocks, adapters := internalrouting.MockAdapters()
	router, err := routing.New(adapters)
	require.NoError(t, err)
	return router, mocks
}

// newOpenAIRouter builds a router whose OpenAI adapter talks to server.
func newOpenAIRouter(t *testing.T, server *internalproviders.MockServer) *routing.DefaultRouter {
	t.Helper()

	adapter, err := openai.NewProvider(openai.Config{
		BaseURL:     server.URL(),
		Credentials: internalproviders.TestCredentials{"OPENAI_API_KEY": "sk-test"},
	})
	require.NoError(t, err)

	_, adapters := internalrouting.MockAdapters()
	for i, a := range adapters {
		if a.ID() == providers.OpenAI {
			adapters[i] = adapter
		}
	}

	router, err := routing.New(adapters)
	require.NoError(t, err)
	return router
}

func serveChat(t *testing.T, router routing.Router, method, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewChatHandler(NewChatService(router, nil), 0)

	req := httptest.NewRequest(method, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChatHandler_OpenAISuccess(t *testing.T) {
	server := internalproviders.NewMockServer()
	defer server.Close()
	server.SetResponse("/v1/chat/completions", internalproviders.MockResponse{
		StatusCode: http.StatusOK,
		Body:       internalproviders.MockOpenAIResponse("Hello there", "gpt-4o-mini"),
	})

	w := serveChat(t, newOpenAIRouter(t, server), http.MethodPost,
		`{"provider":"openai","messages":[{"role":"user","content":"hi"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))
	require.JSONEq(t, `{"provider":"openai","reply":"Hello there"}`, w.Body.String())
	require.Equal(t, 1, server.GetRequestCount())
}

func TestChatHandler_OpenAIHTTPError(t *testing.T) {
	server := internalproviders.NewMockServer()
	defer server.Close()
	server.SetResponse("/v1/chat/completions", internalproviders.MockTextError(http.StatusUnauthorized, "invalid api key"))

	w := serveChat(t, newOpenAIRouter(t, server), http.MethodPost,
		`{"provider":"openai","messages":[{"role":"user","content":"hi"}]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"OpenAI error: 401 invalid api key"}`, w.Body.String())
}

func TestChatHandler_UnsupportedProvider(t *testing.T) {
	router, mocks := newMockRouter(t)

	w := serveChat(t, router, http.MethodPost,
		`{"provider":"unknown-llm","messages":[{"role":"user","content":"hi"}]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Unsupported provider: unknown-llm"}`, w.Body.String())
	for id, mock := range mocks {
		require.Zero(t, mock.CallCount(), "adapter %s should not be called", id)
	}
}

func TestChatHandler_EmptyMessages(t *testing.T) {
	router, mocks := newMockRouter(t)

	w := serveChat(t, router, http.MethodPost, `{"messages":[]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"messages[] required: [{ role, content }]"}`, w.Body.String())
	for _, mock := range mocks {
		require.Zero(t, mock.CallCount())
	}
	require.Zero(t, router.GetStats().TotalRequests)
}

func TestChatHandler_ObjectContentRejected(t *testing.T) {
	router, mocks := newMockRouter(t)

	w := serveChat(t, router, http.MethodPost, `{"messages":[{"role":"user","content":{"text":"hi"}}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"messages must be an array of { role, content } objects"}`, w.Body.String())
	for _, mock := range mocks {
		require.Zero(t, mock.CallCount())
	}
}

func TestChatService_RejectionLogsValidationKind(t *testing.T) {
	router, _ := newMockRouter(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	service := NewChatService(router, logger)

	status, _ := service.Chat(context.Background(), []byte(`{"messages":[]}`))

	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, buf.String(), "chat request rejected")
	require.Contains(t, buf.String(), "error_kind=validation")
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	router, _ := newMockRouter(t)

	w := serveChat(t, router, http.MethodPost, `{"messages":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"error":"invalid JSON body"}`, w.Body.String())
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	router, _ := newMockRouter(t)

	w := serveChat(t, router, http.MethodGet, ``)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	require.JSONEq(t, `{"error":"method not allowed"}`, w.Body.String())
}

func TestChatHandler_BodyTooLarge(t *testing.T) {
	router, _ := newMockRouter(t)
	handler := NewChatHandler(NewChatService(router, nil), 32)

	body := `{"messages":[{"role":"user","content":"` + strings.Repeat("x", 64) + `"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestChatHandler_RoutesToSelectedProvider(t *testing.T) {
	for _, id := range providers.All() {
		t.Run(string(id), func(t *testing.T) {
			router, mocks := newMockRouter(t)
			mocks[id].SetReply("hello")

			w := serveChat(t, router, http.MethodPost,
				`{"provider":"`+string(id)+`","maxTokens":100,"temperature":0.2,"messages":[{"role":"user","content":"hi"}]}`)

			require.Equal(t, http.StatusOK, w.Code)
			require.JSONEq(t, `{"provider":"`+string(id)+`","reply":"hello"}`, w.Body.String())

			for other, mock := range mocks {
				if other == id {
					require.Equal(t, 1, mock.CallCount())
					call, ok := mock.LastCall()
					require.True(t, ok)
					require.Equal(t, 100, call.MaxTokens)
					require.InDelta(t, 0.2, call.Temperature, 1e-9)
					continue
				}
				require.Zero(t, mock.CallCount())
			}
		})
	}
}

func TestChatService_Defaults(t *testing.T) {
	router, mocks := newMockRouter(t)
	service := NewChatService(router, nil)

	status, _ := service.Chat(context.Background(), []byte(`{"messages":[{"role":"user","content":"hi"}]}`))

	require.Equal(t, http.StatusOK, status)
	call, ok := mocks[providers.OpenAI].LastCall()
	require.True(t, ok)
	require.Equal(t, providers.DefaultMaxTokens, call.MaxTokens)
	require.InDelta(t, providers.DefaultTemperature, call.Temperature, 1e-9)
}

func TestChatService_AdapterErrorSurfaces(t *testing.T) {
	router, mocks := newMockRouter(t)
	mocks[providers.Anthropic].SetError(&providers.MissingCredentialError{Key: "ANTHROPIC_API_KEY"})
	service := NewChatService(router, nil)

	status, body := service.Chat(context.Background(),
		[]byte(`{"provider":"anthropic","messages":[{"role":"user","content":"hi"}]}`))

	require.Equal(t, http.StatusInternalServerError, status)
	errBody, ok := body.(*types.ErrorResponse)
	require.True(t, ok, "expected *types.ErrorResponse, got %T", body)
	require.Equal(t, "Missing ANTHROPIC_API_KEY", errBody.Error)
}
