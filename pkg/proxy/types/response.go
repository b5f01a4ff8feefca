package types

// ChatResponse is the 200 body of POST /api/chat.
type ChatResponse struct {
	Provider string `json:"provider"`
	Reply    string `json:"reply"`
}
