package gemini

import (
	"strings"

	"mercator-hq/relay/pkg/providers"
)

// Gemini API request/response types

// GeminiRequest represents a generateContent request.
type GeminiRequest struct {
	SystemInstruction *GeminiContent   `json:"systemInstruction,omitempty"`
	Contents          []GeminiContent  `json:"contents"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// GeminiContent is a role plus its parts.
type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

// GeminiPart is a single content part. Only text parts are modeled.
type GeminiPart struct {
	Text *string `json:"text,omitempty"`
}

// GenerationConfig carries the sampling parameters.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

// GeminiResponse represents a generateContent response.
type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
}

// GeminiCandidate is one generated candidate.
type GeminiCandidate struct {
	Content      *GeminiContent `json:"content"`
	FinishReason string         `json:"finishReason"`
}

// roleFor maps a chat role to Gemini's vocabulary, which names the
// assistant "model".
func roleFor(role string) string {
	if role == "assistant" {
		return "model"
	}
	return role
}

// transformRequest builds the Gemini request body. System messages become
// the systemInstruction; the rest become contents in order.
func transformRequest(messages []providers.ChatMessage, maxTokens int, temperature float64) *GeminiRequest {
	req := &GeminiRequest{
		Contents: make([]GeminiContent, 0, len(messages)),
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
		},
	}

	for _, msg := range messages {
		text := msg.Content
		if msg.Role == "system" {
			if req.SystemInstruction == nil {
				req.SystemInstruction = &GeminiContent{}
			}
			req.SystemInstruction.Parts = append(req.SystemInstruction.Parts, GeminiPart{Text: &text})
			continue
		}
		req.Contents = append(req.Contents, GeminiContent{
			Role:  roleFor(msg.Role),
			Parts: []GeminiPart{{Text: &text}},
		})
	}

	return req
}

// extractReply concatenates the text parts of the first candidate.
func extractReply(resp *GeminiResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &providers.MalformedResponseError{
			Provider: providers.Gemini,
			Reason:   "response has no candidates",
		}
	}

	content := resp.Candidates[0].Content
	if content == nil {
		return "", &providers.MalformedResponseError{
			Provider: providers.Gemini,
			Reason:   "candidates[0].content is missing",
		}
	}

	var (
		b     strings.Builder
		found bool
	)
	for _, part := range content.Parts {
		if part.Text == nil {
			continue
		}
		b.WriteString(*part.Text)
		found = true
	}
	if !found {
		return "", &providers.MalformedResponseError{
			Provider: providers.Gemini,
			Reason:   "candidates[0].content has no text parts",
		}
	}
	return b.String(), nil
}
