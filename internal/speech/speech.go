// Package speech turns summary text into playable audio.
package speech

import (
	"context"
	"errors"
)

var (
	// ErrDisabled is returned when no synthesizer is configured.
	ErrDisabled = errors.New("speech synthesis disabled")
	// ErrSynthesis wraps every failed synthesis request.
	ErrSynthesis = errors.New("speech synthesis failed")
)

// Synthesizer converts text in the given language code ("en", "hi", ...) to
// MP3 audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}

// Disabled is the Synthesizer used when speech is turned off.
type Disabled struct{}

func (Disabled) Synthesize(context.Context, string, string) ([]byte, error) {
	return nil, ErrDisabled
}
