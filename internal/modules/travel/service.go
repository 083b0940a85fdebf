// README: Options pipeline: prompt, model call, parse, currency lookup.
package travel

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pathplanner/internal/ai"
	"pathplanner/internal/infra"
)

// Outcome is one successful search: the parsed options and the currency
// symbol derived from the source location.
type Outcome struct {
	Query          Query  `json:"query"`
	Result         Result `json:"result"`
	CurrencySymbol string `json:"currency_symbol"`
}

type Service struct {
	model          ai.LLMProvider
	currency       *CurrencyResolver
	geocodeTimeout time.Duration
	log            *zap.Logger
}

func NewService(model ai.LLMProvider, currency *CurrencyResolver, geocodeTimeout time.Duration, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if currency == nil {
		currency = NewCurrencyResolver(nil, nil, log)
	}
	return &Service{model: model, currency: currency, geocodeTimeout: geocodeTimeout, log: log}
}

// Search asks the model for options and normalizes the reply. Errors are
// *ai.ProviderError or *MalformedResponseError.
func (s *Service) Search(ctx context.Context, q Query) (Outcome, error) {
	result, err := s.Fetch(ctx, q)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Query: q, Result: result, CurrencySymbol: s.Currency(ctx, q.Source)}, nil
}

// Fetch sends the options prompt and parses the reply.
func (s *Service) Fetch(ctx context.Context, q Query) (Result, error) {
	raw, err := s.model.Complete(ctx, BuildOptionsPrompt(q))
	if err != nil {
		return nil, err
	}

	result, err := ParseResponse(raw)
	if err != nil {
		infra.MalformedResponses.Inc()
		s.log.Warn("model reply rejected",
			zap.String("source", q.Source),
			zap.String("destination", q.Destination),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

// Currency resolves the symbol for source within the geocode timeout.
func (s *Service) Currency(ctx context.Context, source string) string {
	if s.geocodeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.geocodeTimeout)
		defer cancel()
	}
	return s.currency.Resolve(ctx, source)
}
