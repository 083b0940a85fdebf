package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
)

var ErrUnknownLanguage = errors.New("unknown language")

// SettingsUpdate carries the display settings a user changed. Nil fields are
// left as they are.
type SettingsUpdate struct {
	SortBy   *string `json:"sort_by"`
	Language *string `json:"language"`
}

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// LoadOrCreate returns the session for id, or a fresh saved session when id
// is empty, malformed or expired. created reports the latter.
func (s *Service) LoadOrCreate(ctx context.Context, id string) (sess *Session, created bool, err error) {
	if _, perr := uuid.Parse(id); perr == nil {
		sess, err = s.store.Get(ctx, id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
	}

	sess = New(uuid.NewString())
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, false, fmt.Errorf("save new session: %w", err)
	}
	s.log.Debug("session created", zap.String("session_id", sess.ID))
	return sess, true, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Save(ctx context.Context, sess *Session) error {
	sess.UpdatedAt = time.Now().UTC()
	return s.store.Save(ctx, sess)
}

// ApplySettings changes sort mode and language only. Stored results are
// re-presented as they are; the model is never consulted.
func (s *Service) ApplySettings(ctx context.Context, id string, upd SettingsUpdate) (*Session, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	settings := sess.Settings
	if upd.SortBy != nil {
		mode, err := travel.ParseSortMode(*upd.SortBy)
		if err != nil {
			return nil, err
		}
		settings.SortBy = mode
	}
	if upd.Language != nil {
		code, ok := summary.ParseLanguage(*upd.Language)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, *upd.Language)
		}
		settings.Language = code
	}
	sess.Settings = settings

	if sess.State == StateReady {
		if err := sess.Transition(StateReady); err != nil {
			return nil, err
		}
	}
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}
