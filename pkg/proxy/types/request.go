package types

import "encoding/json"

// ChatRequestBody is the wire form of POST /api/chat.
//
// Optional fields are pointers so a missing or null value can be told apart
// from a zero value. Messages is kept raw because a non-array value is a
// client error with its own message rather than a JSON type error.
type ChatRequestBody struct {
	Provider    *string         `json:"provider"`
	Messages    json.RawMessage `json:"messages"`
	MaxTokens   *float64        `json:"maxTokens"`
	Temperature *float64        `json:"temperature"`
}

// MessageBody is one element of the messages array.
//
// Content is normally a string. OpenAI-style content part arrays are also
// accepted and flattened to their text parts.
type MessageBody struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}
