// README: JSON search and options handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/service"
)

type SearchHandler struct {
	planner  *service.TripPlanner
	sessions *session.Service
	booking  travel.BookingTable
}

func NewSearchHandler(planner *service.TripPlanner, sessions *session.Service, booking travel.BookingTable) *SearchHandler {
	return &SearchHandler{planner: planner, sessions: sessions, booking: booking}
}

type searchReq struct {
	Source      string `json:"source" form:"source"`
	Destination string `json:"destination" form:"destination"`
	Preference  string `json:"preference" form:"preference"`
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	q, err := travel.NewQuery(req.Source, req.Destination, req.Preference)
	if err != nil {
		writeSearchError(c, err)
		return
	}

	sess, err := h.planner.Search(c.Request.Context(), middleware.SessionID(c), q)
	if err != nil {
		writeSearchError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newOptionsResponse(sess, h.booking))
}

// Options handles GET /api/options. It re-presents stored results only.
func (h *SearchHandler) Options(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeSearchError(c, err)
		return
	}
	if !sess.HasResult() {
		writeSearchError(c, session.ErrNoResult)
		return
	}
	writeJSON(c, http.StatusOK, newOptionsResponse(sess, h.booking))
}
