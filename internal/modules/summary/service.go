// README: Prose summary of a trip, optional translation and speech.
package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pathplanner/internal/ai"
	"pathplanner/internal/infra"
	"pathplanner/internal/speech"
)

var ErrEmptySummary = errors.New("model returned an empty summary")

type Summary struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Language    string    `json:"language"`
	Text        string    `json:"text"`
	CreatedAt   time.Time `json:"created_at"`
}

type Service struct {
	drafter       ai.LLMProvider
	translator    ai.LLMProvider
	synth         speech.Synthesizer
	speechTimeout time.Duration
	log           *zap.Logger
	pipeline      Pipeline
}

// NewService builds the summary service. drafter and translator may be the
// same provider; they are separate so each call site is instrumented on its own.
// A nil synth disables speech.
func NewService(drafter, translator ai.LLMProvider, synth speech.Synthesizer, speechTimeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if synth == nil {
		synth = speech.Disabled{}
	}
	if translator == nil {
		translator = drafter
	}
	s := &Service{drafter: drafter, translator: translator, synth: synth, speechTimeout: speechTimeout, log: log}
	s.pipeline = Pipeline{
		{Name: StageDraft, Run: s.draft},
		{Name: StageTranslate, Run: s.translate},
	}
	return s
}

// Summarize drafts an English summary and translates it when lang is not English.
func (s *Service) Summarize(ctx context.Context, source, destination, lang string) (Summary, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	req := Request{Source: source, Destination: destination, Language: lang}
	text, err := s.pipeline.Run(ctx, req)
	if err != nil {
		s.log.Warn("summary failed", zap.String("destination", destination), zap.Error(err))
		return Summary{}, err
	}
	return Summary{
		Source:      source,
		Destination: destination,
		Language:    lang,
		Text:        text,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *Service) draft(ctx context.Context, req Request, _ string) (string, error) {
	text, err := s.drafter.Complete(ctx, BuildDraftPrompt(req.Source, req.Destination))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}

func (s *Service) translate(ctx context.Context, req Request, text string) (string, error) {
	if req.Language == DefaultLanguage {
		return text, nil
	}
	out, err := s.translator.Complete(ctx, BuildTranslatePrompt(req.Language, text))
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrEmptySummary
	}
	return out, nil
}

// Speak synthesizes the summary in its own language. Errors wrap
// speech.ErrDisabled or speech.ErrSynthesis and never affect the summary.
func (s *Service) Speak(ctx context.Context, sum Summary) ([]byte, error) {
	if strings.TrimSpace(sum.Text) == "" {
		return nil, fmt.Errorf("%w: empty summary", speech.ErrSynthesis)
	}
	if s.speechTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.speechTimeout)
		defer cancel()
	}
	audio, err := s.synth.Synthesize(ctx, sum.Text, sum.Language)
	if err != nil {
		if !errors.Is(err, speech.ErrDisabled) {
			infra.SpeechFailures.Inc()
			s.log.Warn("speech synthesis failed", zap.String("language", sum.Language), zap.Error(err))
		}
		return nil, err
	}
	return audio, nil
}

// SpeechEnabled reports whether Speak can produce audio at all.
func (s *Service) SpeechEnabled() bool {
	_, disabled := s.synth.(speech.Disabled)
	return !disabled
}
