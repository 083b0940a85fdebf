package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/travel"
)

type SettingsHandler struct {
	sessions *session.Service
	booking  travel.BookingTable
}

func NewSettingsHandler(sessions *session.Service, booking travel.BookingTable) *SettingsHandler {
	return &SettingsHandler{sessions: sessions, booking: booking}
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req session.SettingsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	sess, err := h.sessions.ApplySettings(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newOptionsResponse(sess, h.booking))
}
