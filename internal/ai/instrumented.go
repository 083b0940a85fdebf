package ai

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pathplanner/internal/infra"
)

// Call sites used as metric labels.
const (
	CallSiteOptions   = "options"
	CallSiteSummary   = "summary"
	CallSiteTranslate = "translate"
)

type instrumented struct {
	next     LLMProvider
	callSite string
	timeout  time.Duration
	log      *zap.Logger
}

// Instrument wraps p so every call is bounded by timeout (0 disables it),
// logged and recorded in Prometheus under callSite.
func Instrument(p LLMProvider, callSite string, timeout time.Duration, log *zap.Logger) LLMProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &instrumented{next: p, callSite: callSite, timeout: timeout, log: log.With(zap.String("call_site", callSite))}
}

func (i *instrumented) Complete(ctx context.Context, prompt string) (string, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := i.next.Complete(ctx, prompt)
	elapsed := time.Since(start)
	infra.ModelRequestDuration.WithLabelValues(i.callSite).Observe(elapsed.Seconds())

	if err != nil {
		infra.ModelRequests.WithLabelValues(i.callSite, "error").Inc()
		i.log.Warn("model call failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		if !IsProviderError(err) {
			err = providerErr("model", "complete", err)
		}
		return "", err
	}

	infra.ModelRequests.WithLabelValues(i.callSite, "ok").Inc()
	i.log.Debug("model call completed", zap.Duration("elapsed", elapsed), zap.Int("reply_bytes", len(text)))
	return text, nil
}
