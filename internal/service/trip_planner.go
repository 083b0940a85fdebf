package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
)

// TripPlanner runs one search for a session: the options request and the
// summary request go out together, then the reply is parsed, priced in the
// source currency and stored.
type TripPlanner struct {
	travel   *travel.Service
	summary  *summary.Service
	sessions *session.Service
	log      *zap.Logger
}

// NewTripPlanner creates a TripPlanner. A nil summary service skips summaries.
func NewTripPlanner(travelSvc *travel.Service, summarySvc *summary.Service, sessions *session.Service, log *zap.Logger) *TripPlanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripPlanner{travel: travelSvc, summary: summarySvc, sessions: sessions, log: log}
}

// Search runs q for the session and returns the updated session. The session
// is saved on every outcome; a returned error is the options failure
// (*ai.ProviderError or *travel.MalformedResponseError). Summary failures are
// recorded on the session only.
func (p *TripPlanner) Search(ctx context.Context, sessionID string, q travel.Query) (*session.Session, error) {
	sess, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.State == session.StateRequesting {
		// A search that never finished, e.g. the process stopped mid-request.
		sess.State = session.StateIdle
		if sess.HasResult() {
			sess.State = session.StateReady
		}
	}
	previous := sess.State
	if err := sess.Transition(session.StateRequesting); err != nil {
		return nil, err
	}
	sess.LastError = nil
	if err := p.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	log := p.log.With(zap.String("session_id", sess.ID))

	var (
		result     travel.Result
		sum        *summary.Summary
		summaryErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = p.travel.Fetch(gctx, q)
		return err
	})
	if p.summary != nil {
		lang := sess.Settings.Language
		g.Go(func() error {
			s, err := p.summary.Summarize(gctx, q.Source, q.Destination, lang)
			if err != nil {
				summaryErr = err
				return nil
			}
			sum = &s
			return nil
		})
	}
	fetchErr := g.Wait()

	if fetchErr != nil {
		return p.fail(ctx, sess, previous, fetchErr, log)
	}

	if err := sess.Transition(session.StateParsed); err != nil {
		return nil, err
	}
	if err := sess.Transition(session.StateNormalizing); err != nil {
		return nil, err
	}
	sess.Settings.CurrencySymbol = p.travel.Currency(ctx, q.Source)
	sess.Query = &q
	sess.Result = result
	sess.Summary = sum
	if summaryErr != nil {
		log.Warn("summary unavailable", zap.Error(summaryErr))
		sess.LastError = &session.ErrorInfo{Kind: session.ErrorKindSummary, Message: summaryErr.Error()}
	}
	if err := sess.Transition(session.StateReady); err != nil {
		return nil, err
	}

	if err := p.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	log.Info("search completed",
		zap.String("source", q.Source),
		zap.String("destination", q.Destination),
		zap.String("currency", sess.Settings.CurrencySymbol),
	)
	return sess, nil
}

func (p *TripPlanner) fail(ctx context.Context, sess *session.Session, previous session.State, cause error, log *zap.Logger) (*session.Session, error) {
	var me *travel.MalformedResponseError
	if errors.As(cause, &me) {
		sess.LastError = &session.ErrorInfo{
			Kind:       session.ErrorKindMalformed,
			Message:    "The model reply is not in the expected format.",
			Raw:        me.Raw,
			Diagnostic: me.Diagnostic,
		}
		if err := sess.Transition(session.StateMalformedResponse); err != nil {
			return nil, err
		}
	} else {
		sess.LastError = &session.ErrorInfo{Kind: session.ErrorKindProvider, Message: cause.Error()}
		if err := sess.Transition(previous); err != nil {
			return nil, err
		}
	}

	if err := p.sessions.Save(ctx, sess); err != nil {
		log.Error("save session after failed search", zap.Error(err))
	}
	log.Warn("search failed", zap.Error(cause))
	return sess, cause
}
