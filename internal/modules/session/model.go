// README: Per-visitor state: last query, parsed options, display settings, summary.
package session

import (
	"errors"
	"fmt"
	"time"

	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
)

type State string

const (
	StateIdle              State = "idle"
	StateRequesting        State = "requesting"
	StateParsed            State = "parsed"
	StateMalformedResponse State = "malformed_response"
	StateNormalizing       State = "normalizing"
	StateReady             State = "ready"
)

// AllowedTransitions is the query lifecycle as code. A failed provider call
// reverts Requesting to whatever state preceded it.
var AllowedTransitions = map[State][]State{
	StateIdle:              {StateRequesting},
	StateRequesting:        {StateParsed, StateMalformedResponse, StateIdle, StateReady},
	StateParsed:            {StateNormalizing},
	StateNormalizing:       {StateReady},
	StateReady:             {StateReady, StateRequesting},
	StateMalformedResponse: {StateRequesting},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrNotFound          = errors.New("session not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNoResult          = errors.New("no travel options yet")
	ErrNoSummary         = errors.New("no summary yet")
)

// Error kinds recorded on a session.
const (
	ErrorKindProvider  = "provider"
	ErrorKindMalformed = "malformed_response"
	ErrorKindSummary   = "summary"
	ErrorKindInput     = "input"
)

// ErrorInfo is the last failure shown to the user. Raw and Diagnostic are set
// for malformed model replies.
type ErrorInfo struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Raw        string `json:"raw,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Session is the planner state of one visitor.
type Session struct {
	ID        string                 `json:"id"`
	State     State                  `json:"state"`
	Query     *travel.Query          `json:"query,omitempty"`
	Result    travel.Result          `json:"result,omitempty"`
	Settings  travel.DisplaySettings `json:"settings"`
	Summary   *summary.Summary       `json:"summary,omitempty"`
	LastError *ErrorInfo             `json:"last_error,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// New returns an idle session with default settings.
func New(id string) *Session {
	return &Session{
		ID:        id,
		State:     StateIdle,
		Settings:  travel.DefaultDisplaySettings(),
		UpdatedAt: time.Now().UTC(),
	}
}

// Transition moves the session to another state if the lifecycle allows it.
func (s *Session) Transition(to State) error {
	if !CanTransition(s.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.State, to)
	}
	s.State = to
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// HasResult reports whether options have been fetched at least once.
func (s *Session) HasResult() bool {
	return s.Result != nil
}
