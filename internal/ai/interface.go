package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Every call site (options, summary, translation) goes through Complete, so
// providers can be swapped (Gemini, OpenAI, test fakes) without touching callers.
type LLMProvider interface {
	// Complete sends prompt to the model and returns the raw text reply.
	// Failures are reported as *ProviderError.
	Complete(ctx context.Context, prompt string) (string, error)
}
