package providers

import "sort"

// ProviderID identifies one of the supported upstream providers.
//
// The set is closed: every value returned by All has exactly one adapter
// registered with the router, and any other value is rejected with an
// UnsupportedProviderError before a request leaves the process.
type ProviderID string

const (
	// OpenAI is the OpenAI chat completions API.
	OpenAI ProviderID = "openai"

	// Anthropic is the Anthropic messages API.
	Anthropic ProviderID = "anthropic"

	// Gemini is the Google Gemini generateContent API.
	Gemini ProviderID = "gemini"
)

// DefaultProvider is used when a chat request does not name a provider.
const DefaultProvider = OpenAI

// Defaults applied by the HTTP surface when the client omits a field.
const (
	DefaultMaxTokens   = 512
	DefaultTemperature = 0.7
)

var displayNames = map[ProviderID]string{
	OpenAI:    "OpenAI",
	Anthropic: "Anthropic",
	Gemini:    "Gemini",
}

// All returns every supported provider in a stable order.
func All() []ProviderID {
	ids := make([]ProviderID, 0, len(displayNames))
	for id := range displayNames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ParseProviderID performs an exact, case-sensitive match against the
// supported set.
func ParseProviderID(s string) (ProviderID, error) {
	id := ProviderID(s)
	if !id.Valid() {
		return "", &UnsupportedProviderError{Provider: s}
	}
	return id, nil
}

// Valid reports whether id is a member of the supported set.
func (id ProviderID) Valid() bool {
	_, ok := displayNames[id]
	return ok
}

// DisplayName returns the human readable vendor name used in error messages.
func (id ProviderID) DisplayName() string {
	if name, ok := displayNames[id]; ok {
		return name
	}
	return string(id)
}

// String implements fmt.Stringer.
func (id ProviderID) String() string {
	return string(id)
}

// ChatMessage is a single conversational turn.
// Role is passed to the provider unchanged unless the provider's schema
// requires a different vocabulary.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the provider-agnostic request accepted by the router.
type ChatRequest struct {
	// Provider selects the adapter.
	Provider ProviderID

	// Messages is the ordered conversation. It must not be empty.
	Messages []ChatMessage

	// MaxTokens is mapped to the provider's output token limit field.
	MaxTokens int

	// Temperature is passed through without range checks.
	Temperature float64
}

// Validate checks that the request carries at least one message.
// The provider identifier is checked by the router, and generation
// parameters are left to the provider.
func (r *ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return &ValidationError{Field: "messages", Message: "must contain at least one message"}
	}
	return nil
}

// ChatReply is returned to the client on success.
type ChatReply struct {
	Provider ProviderID `json:"provider"`
	Reply    string     `json:"reply"`
}
