// README: Summary text and audio handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
)

type SummaryHandler struct {
	sessions *session.Service
	summary  *summary.Service
}

func NewSummaryHandler(sessions *session.Service, summarySvc *summary.Service) *SummaryHandler {
	return &SummaryHandler{sessions: sessions, summary: summarySvc}
}

func (h *SummaryHandler) current(c *gin.Context) (*summary.Summary, error) {
	sess, err := h.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		return nil, err
	}
	if sess.Summary == nil {
		return nil, session.ErrNoSummary
	}
	return sess.Summary, nil
}

// Get handles GET /api/summary.
func (h *SummaryHandler) Get(c *gin.Context) {
	sum, err := h.current(c)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"summary":        sum,
		"speech_enabled": h.summary.SpeechEnabled(),
	})
}

// Audio handles GET /summary/audio and GET /api/summary/audio.
func (h *SummaryHandler) Audio(c *gin.Context) {
	sum, err := h.current(c)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	audio, err := h.summary.Speak(c.Request.Context(), *sum)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
