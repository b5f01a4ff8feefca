package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/proxy"
	"mercator-hq/relay/pkg/proxy/types"
	"mercator-hq/relay/pkg/routing"
)

// ChatService turns decoded chat requests into responses. It is shared by
// the HTTP handler and the Lambda entrypoint so both surfaces answer
// identically.
type ChatService struct {
	router routing.Router
	logger *slog.Logger
}

// NewChatService creates a chat service over router.
func NewChatService(router routing.Router, logger *slog.Logger) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{router: router, logger: logger}
}

// Chat decodes a raw request body and routes it. It returns the HTTP
// status and the value to encode as the response body.
func (s *ChatService) Chat(ctx context.Context, body []byte) (int, any) {
	req, err := proxy.DecodeChatRequest(body)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.Handle(ctx, req)
}

// Handle routes an already decoded request.
func (s *ChatService) Handle(ctx context.Context, req *providers.ChatRequest) (int, any) {
	reply, err := s.router.Route(ctx, *req)
	if err != nil {
		return s.fail(ctx, err)
	}

	return http.StatusOK, &types.ChatResponse{
		Provider: string(req.Provider),
		Reply:    reply,
	}
}

func (s *ChatService) fail(ctx context.Context, err error) (int, any) {
	status, body := proxy.HandleError(err)

	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx, "chat request failed",
			"error", err,
			"error_kind", providers.Kind(err),
		)
	} else {
		s.logger.InfoContext(ctx, "chat request rejected",
			"status", status,
			"error", err,
			"error_kind", providers.Kind(err),
		)
	}

	return status, body
}

// ChatHandler serves POST /api/chat.
type ChatHandler struct {
	service      *ChatService
	maxBodyBytes int64
}

// NewChatHandler creates the chat endpoint handler. A non-positive
// maxBodyBytes uses proxy.DefaultMaxBodyBytes.
func NewChatHandler(service *ChatService, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{service: service, maxBodyBytes: maxBodyBytes}
}

// ServeHTTP implements http.Handler.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.write(ctx, w, http.StatusMethodNotAllowed, types.NewErrorResponse(types.MessageMethodNotAllowed))
		return
	}

	req, err := proxy.ParseChatRequest(w, r, h.maxBodyBytes)
	if err != nil {
		status, body := h.service.fail(ctx, err)
		h.write(ctx, w, status, body)
		return
	}

	status, body := h.service.Handle(ctx, req)
	h.write(ctx, w, status, body)
}

func (h *ChatHandler) write(ctx context.Context, w http.ResponseWriter, status int, body any) {
	if err := proxy.WriteJSONResponse(w, status, body); err != nil {
		h.service.logger.ErrorContext(ctx, "failed to write response", "error", err)
	}
}
