package ai

import (
	"context"
	"errors"
	"fmt"
)

// Provider names accepted by configuration.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ProviderError captures a failed call to an upstream model service
// (network, auth, quota, empty reply or deadline exceeded).
type ProviderError struct {
	// Provider is the backend name, e.g. "gemini".
	Provider string

	// Op names the failed step (e.g. "generate content", "do request").
	Op string

	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout reports whether the call failed because its deadline passed.
func (e *ProviderError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func providerErr(provider, op string, err error) error {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// IsProviderError reports whether err (or anything it wraps) is a *ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
