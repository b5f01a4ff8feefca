package openai

import (
	"mercator-hq/relay/pkg/providers"
)

// OpenAI API request/response types

// OpenAIRequest represents an OpenAI chat completion request.
type OpenAIRequest struct {
	Model       string          `json:"model"`
	Messages    []OpenAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

// OpenAIMessage represents a request message in OpenAI format.
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAIResponse represents an OpenAI chat completion response.
// Only the fields needed to locate the reply are modeled.
type OpenAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
}

// OpenAIChoice represents a completion choice in OpenAI format.
type OpenAIChoice struct {
	Index        int                   `json:"index"`
	Message      OpenAIResponseMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

// OpenAIResponseMessage is the assistant message of a choice.
// Content is null when the model answered with tool calls only.
type OpenAIResponseMessage struct {
	Role    string  `json:"role"`
	Content *string `json:"content"`
}

// transformRequest builds the OpenAI request body. Roles are passed through
// unchanged.
func transformRequest(model string, messages []providers.ChatMessage, maxTokens int, temperature float64) *OpenAIRequest {
	req := &OpenAIRequest{
		Model:       model,
		Messages:    make([]OpenAIMessage, len(messages)),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	for i, msg := range messages {
		req.Messages[i] = OpenAIMessage{Role: msg.Role, Content: msg.Content}
	}
	return req
}

// extractReply returns choices[0].message.content.
func extractReply(resp *OpenAIResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", &providers.MalformedResponseError{
			Provider: providers.OpenAI,
			Reason:   "response has no choices",
		}
	}
	content := resp.Choices[0].Message.Content
	if content == nil {
		return "", &providers.MalformedResponseError{
			Provider: providers.OpenAI,
			Reason:   "choices[0].message.content is missing",
		}
	}
	return *content, nil
}
