// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/ai"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/speech"
)

type errorResponse struct {
	Error      string `json:"error"`
	Raw        string `json:"raw,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeSearchError(c *gin.Context, err error) {
	_ = c.Error(err)

	var malformed *travel.MalformedResponseError
	var stage *summary.StageError
	switch {
	case errors.Is(err, travel.ErrBadRequest),
		errors.Is(err, travel.ErrUnknownPreference),
		errors.Is(err, travel.ErrUnknownSortMode),
		errors.Is(err, session.ErrUnknownLanguage):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &malformed):
		writeJSON(c, http.StatusUnprocessableEntity, errorResponse{
			Error:      "model reply is not in the expected format",
			Raw:        malformed.Raw,
			Diagnostic: malformed.Diagnostic,
		})
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrNoResult),
		errors.Is(err, session.ErrNoSummary):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrInvalidTransition):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, speech.ErrDisabled):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case ai.IsProviderError(err), errors.As(err, &stage), errors.Is(err, speech.ErrSynthesis):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// optionsResponse is the JSON view of a session's current results.
type optionsResponse struct {
	SessionID  string                 `json:"session_id"`
	State      session.State          `json:"state"`
	Query      *travel.Query          `json:"query,omitempty"`
	Settings   travel.DisplaySettings `json:"settings"`
	Categories []travel.CategoryView  `json:"categories"`
	Summary    *summary.Summary       `json:"summary,omitempty"`
	Warning    *session.ErrorInfo     `json:"warning,omitempty"`
}

func newOptionsResponse(sess *session.Session, booking travel.BookingTable) optionsResponse {
	return optionsResponse{
		SessionID:  sess.ID,
		State:      sess.State,
		Query:      sess.Query,
		Settings:   sess.Settings,
		Categories: travel.Present(sess.Result, sess.Settings, booking),
		Summary:    sess.Summary,
		Warning:    sess.LastError,
	}
}
