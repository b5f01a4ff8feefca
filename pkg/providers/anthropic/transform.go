package anthropic

import (
	"strings"

	"mercator-hq/relay/pkg/providers"
)

// Anthropic API request/response types

// AnthropicRequest represents an Anthropic messages request.
type AnthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	Messages    []AnthropicMessage `json:"messages"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
}

// AnthropicMessage represents a message in Anthropic format.
type AnthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ContentBlock represents a response content block.
type ContentBlock struct {
	Type string  `json:"type"` // "text" or "tool_use"
	Text *string `json:"text,omitempty"`
}

// AnthropicResponse represents an Anthropic messages response.
type AnthropicResponse struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	Model      string         `json:"model"`
	StopReason string         `json:"stop_reason"`
}

// transformRequest builds the Anthropic request body.
//
// The messages API takes the system prompt as a top-level field rather than
// a message, so system messages are lifted out in order and joined with a
// blank line. Other roles are passed through unchanged.
func transformRequest(model string, messages []providers.ChatMessage, maxTokens int, temperature float64) *AnthropicRequest {
	req := &AnthropicRequest{
		Model:       model,
		Messages:    make([]AnthropicMessage, 0, len(messages)),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var system []string
	for _, msg := range messages {
		if msg.Role == "system" {
			system = append(system, msg.Content)
			continue
		}
		req.Messages = append(req.Messages, AnthropicMessage{Role: msg.Role, Content: msg.Content})
	}
	req.System = strings.Join(system, "\n\n")

	return req
}

// extractReply concatenates the text of every text block in order.
func extractReply(resp *AnthropicResponse) (string, error) {
	var (
		b     strings.Builder
		found bool
	)
	for _, block := range resp.Content {
		if block.Type != "text" || block.Text == nil {
			continue
		}
		b.WriteString(*block.Text)
		found = true
	}
	if !found {
		return "", &providers.MalformedResponseError{
			Provider: providers.Anthropic,
			Reason:   "content has no text block",
		}
	}
	return b.String(), nil
}
