package proxy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"mercator-hq/relay/pkg/providers"
	"mercator-hq/relay/pkg/proxy/types"
)

const (
	// DefaultMaxBodyBytes is the request body limit used when none is configured (1 MiB).
	DefaultMaxBodyBytes = 1 << 20

	// RequestIDHeader is the HTTP header for request ID propagation.
	RequestIDHeader = "X-Request-ID"
)

// RequestError is a client error detected before the request reaches the
// router. Status is the HTTP status to answer with.
// Err, when set, is the underlying cause such as a providers.ValidationError.
type RequestError struct {
	Status  int
	Message string
	Field   string
	Err     error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ToErrorResponse converts the error into its response body.
func (e *RequestError) ToErrorResponse() *types.ErrorResponse {
	return types.NewErrorResponse(e.Message)
}

func badRequest(field, message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message, Field: field}
}

// ParseChatRequest reads and decodes a POST /api/chat body, enforcing the
// size limit (DefaultMaxBodyBytes when limit is not positive).
func ParseChatRequest(w http.ResponseWriter, r *http.Request, limit int64) (*providers.ChatRequest, error) {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &RequestError{
				Status:  http.StatusRequestEntityTooLarge,
				Message: types.MessageBodyTooLarge,
				Field:   "body",
			}
		}
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	return DecodeChatRequest(body)
}

// DecodeChatRequest turns a raw JSON body into a ChatRequest, applying the
// defaults for omitted or null fields:
//
//   - provider: "openai"
//   - maxTokens: 512
//   - temperature: 0.7
//
// An empty body is treated as {}. Values are not range-checked.
func DecodeChatRequest(body []byte) (*providers.ChatRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}

	var wire types.ChatRequestBody
	if err := json.Unmarshal(body, &wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, badRequest(typeErr.Field, fmt.Sprintf("invalid type for field %q", typeErr.Field))
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || !json.Valid(body) {
			return nil, badRequest("body", types.MessageInvalidJSON)
		}
		// Valid JSON that is not an object carries no messages.
		return nil, badRequest("messages", types.MessageMessagesRequired)
	}

	messages, err := decodeMessages(wire.Messages)
	if err != nil {
		return nil, err
	}

	req := &providers.ChatRequest{
		Provider:    providers.DefaultProvider,
		Messages:    messages,
		MaxTokens:   providers.DefaultMaxTokens,
		Temperature: providers.DefaultTemperature,
	}

	if wire.Provider != nil {
		req.Provider = providers.ProviderID(*wire.Provider)
	}

	if wire.MaxTokens != nil {
		v := *wire.MaxTokens
		if v != math.Trunc(v) {
			return nil, badRequest("maxTokens", "maxTokens must be an integer")
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			return nil, badRequest("maxTokens", "maxTokens is out of range")
		}
		req.MaxTokens = int(v)
	}

	if wire.Temperature != nil {
		req.Temperature = *wire.Temperature
	}

	if err := req.Validate(); err != nil {
		reqErr := badRequest("messages", types.MessageMessagesRequired)
		reqErr.Err = err
		return nil, reqErr
	}

	return req, nil
}

// decodeMessages requires a JSON array of {role, content} objects. An empty
// array is left to ChatRequest.Validate.
func decodeMessages(raw json.RawMessage) ([]providers.ChatMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, badRequest("messages", types.MessageMessagesRequired)
	}

	var items []types.MessageBody
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, badRequest("messages", types.MessageInvalidMessages)
	}

	messages := make([]providers.ChatMessage, 0, len(items))
	for _, item := range items {
		content, ok := convertMessageContent(item.Content)
		if !ok {
			return nil, badRequest("messages", types.MessageInvalidMessages)
		}
		messages = append(messages, providers.ChatMessage{
			Role:    item.Role,
			Content: content,
		})
	}
	return messages, nil
}

// convertMessageContent extracts text from a message content value.
// Strings pass through unchanged and null is empty; content part arrays
// contribute their text parts joined by a space. Any other JSON value is
// rejected.
func convertMessageContent(content any) (string, bool) {
	switch c := content.(type) {
	case nil:
		return "", true
	case string:
		return c, true
	case []any:
		var textParts []string
		for _, part := range c {
			partMap, ok := part.(map[string]any)
			if !ok {
				return "", false
			}
			if partMap["type"] != "text" {
				continue
			}
			if text, ok := partMap["text"].(string); ok {
				textParts = append(textParts, text)
			}
		}
		return strings.Join(textParts, " "), true
	default:
		return "", false
	}
}
