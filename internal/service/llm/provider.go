package llm

import (
	"context"

	"fertilitycare/pkg/api"
)

// Message is a single conversation turn in provider-neutral form
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider defines the interface for model providers (Gemini, OpenRouter)
type Provider interface {
	// Complete sends the prior history plus the new user message and returns
	// the assistant's reply text. The system instruction is selected by language.
	Complete(ctx context.Context, history []Message, message string, language api.Language) (string, error)

	// Close releases any resources held by the provider
	Close() error
}
