package providers

import (
	"errors"
	"reflect"
	"testing"
)

func TestAll(t *testing.T) {
	want := []ProviderID{Anthropic, Gemini, OpenAI}
	if got := All(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseProviderID(t *testing.T) {
	tests := []struct {
		in      string
		want    ProviderID
		wantErr bool
	}{
		{in: "openai", want: OpenAI},
		{in: "anthropic", want: Anthropic},
		{in: "gemini", want: Gemini},
		{in: "OpenAI", wantErr: true},
		{in: " openai", wantErr: true},
		{in: "", wantErr: true},
		{in: "unknown-llm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseProviderID(tt.in)
			if tt.wantErr {
				var unsupported *UnsupportedProviderError
				if !errors.As(err, &unsupported) {
					t.Fatalf("expected UnsupportedProviderError, got %v", err)
				}
				if unsupported.Provider != tt.in {
					t.Errorf("expected offending id %q, got %q", tt.in, unsupported.Provider)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := map[ProviderID]string{
		OpenAI:    "OpenAI",
		Anthropic: "Anthropic",
		Gemini:    "Gemini",
		"other":   "other",
	}
	for id, want := range tests {
		if got := id.DisplayName(); got != want {
			t.Errorf("%s: expected %q, got %q", id, want, got)
		}
	}
}

func TestChatRequestValidate(t *testing.T) {
	req := &ChatRequest{Provider: OpenAI, MaxTokens: 512, Temperature: 0.7}

	err := req.Validate()
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validation.Field != "messages" {
		t.Errorf("expected field messages, got %q", validation.Field)
	}

	req.Messages = []ChatMessage{{Role: "user", Content: "hi"}}
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	// Out of range generation parameters are left to the provider.
	req.MaxTokens = 0
	req.Temperature = 42
	if err := req.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
