package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"mercator-hq/relay/pkg/proxy"
	"mercator-hq/relay/pkg/proxy/handlers"
	"mercator-hq/relay/pkg/proxy/types"
	"mercator-hq/relay/pkg/server"
	"mercator-hq/relay/pkg/telemetry/health"
	"mercator-hq/relay/pkg/telemetry/logging"
	"mercator-hq/relay/pkg/telemetry/tracing"
)

// flushTimeout bounds the span export at the end of each invocation.
const flushTimeout = 2 * time.Second

// Handler adapts API Gateway proxy events to the chat service.
type Handler struct {
	chat         *handlers.ChatService
	checker      *health.Checker
	tracer       *tracing.Tracer
	maxBodyBytes int64
	logger       *slog.Logger
}

// NewHandler creates a Lambda handler. A non-positive maxBodyBytes uses
// proxy.DefaultMaxBodyBytes. Buffered spans of tracer are flushed after
// every invocation; a nil tracer disables that.
func NewHandler(chat *handlers.ChatService, checker *health.Checker, tracer *tracing.Tracer, maxBodyBytes int64, logger *slog.Logger) (*Handler, error) {
	if chat == nil {
		return nil, errors.New("chat service is required")
	}
	if checker == nil {
		return nil, errors.New("health checker is required")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = proxy.DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{chat: chat, checker: checker, tracer: tracer, maxBodyBytes: maxBodyBytes, logger: logger}, nil
}

// Handle serves one API Gateway event.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	requestID := req.RequestContext.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = tracing.ExtractFromMap(ctx, req.Headers)
	ctx = logging.WithRequestID(ctx, requestID)
	defer h.flush(ctx)

	status, body, allow := h.dispatch(ctx, req)

	resp, err := h.respond(status, body)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode response", "error", err)
		return events.APIGatewayProxyResponse{}, err
	}
	resp.Headers[proxy.RequestIDHeader] = requestID
	if allow != "" {
		resp.Headers["Allow"] = allow
	}

	h.logger.InfoContext(ctx, "request completed",
		"method", req.HTTPMethod,
		"path", req.Path,
		"status", status,
	)
	return resp, nil
}

// flush exports buffered spans before the execution environment freezes.
func (h *Handler) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if err := h.tracer.ForceFlush(ctx); err != nil {
		h.logger.WarnContext(ctx, "failed to flush spans", "error", err)
	}
}

func (h *Handler) dispatch(ctx context.Context, req events.APIGatewayProxyRequest) (int, any, string) {
	switch req.Path {
	case server.ChatPath:
		if req.HTTPMethod != http.MethodPost {
			return http.StatusMethodNotAllowed, types.NewErrorResponse(types.MessageMethodNotAllowed), http.MethodPost
		}
		body, err := decodeBody(req)
		if err != nil {
			return http.StatusBadRequest, types.NewErrorResponse(types.MessageInvalidJSON), ""
		}
		if int64(len(body)) > h.maxBodyBytes {
			return http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.MessageBodyTooLarge), ""
		}
		status, resp := h.chat.Chat(ctx, body)
		return status, resp, ""

	case server.HealthPath:
		if req.HTTPMethod != http.MethodGet && req.HTTPMethod != http.MethodHead {
			return http.StatusMethodNotAllowed, types.NewErrorResponse(types.MessageMethodNotAllowed), "GET, HEAD"
		}
		return http.StatusOK, h.checker.CheckLiveness(), ""

	default:
		return http.StatusNotFound, types.NewErrorResponse(types.MessageNotFound), ""
	}
}

func (h *Handler) respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(encoded),
	}, nil
}

func decodeBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	return base64.StdEncoding.DecodeString(req.Body)
}
