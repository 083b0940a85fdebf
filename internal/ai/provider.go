package ai

import (
	"context"
	"fmt"

	"pathplanner/internal/config"
)

// NewProvider builds the provider selected in cfg. The returned close func
// releases client resources and is never nil.
func NewProvider(ctx context.Context, cfg config.AIConfig) (LLMProvider, func(), error) {
	switch cfg.Provider {
	case ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	case ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIURL, cfg.Model, cfg.Temperature, nil)
		if err != nil {
			return nil, func() {}, err
		}
		return p, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
