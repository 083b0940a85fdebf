// README: HTML page and form handlers; forms post and redirect back to /.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/service"
)

type PageHandler struct {
	planner  *service.TripPlanner
	sessions *session.Service
	summary  *summary.Service
	booking  travel.BookingTable
	log      *zap.Logger
}

func NewPageHandler(planner *service.TripPlanner, sessions *session.Service, summarySvc *summary.Service, booking travel.BookingTable, log *zap.Logger) *PageHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageHandler{planner: planner, sessions: sessions, summary: summarySvc, booking: booking, log: log}
}

type pageData struct {
	Query         *travel.Query
	Preference    travel.Preference
	Preferences   []travel.Preference
	SortModes     []travel.SortMode
	Languages     []summary.Language
	Settings      travel.DisplaySettings
	Views         []travel.CategoryView
	Summary       *summary.Summary
	LastError     *session.ErrorInfo
	SpeechEnabled bool
}

// Index handles GET /.
func (h *PageHandler) Index(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		writeSearchError(c, err)
		return
	}

	data := pageData{
		Query:         sess.Query,
		Preference:    travel.PreferenceCheapest,
		Preferences:   travel.Preferences,
		SortModes:     travel.SortModes,
		Languages:     summary.Languages,
		Settings:      sess.Settings,
		Summary:       sess.Summary,
		LastError:     sess.LastError,
		SpeechEnabled: h.summary.SpeechEnabled(),
	}
	if sess.Query != nil {
		data.Preference = sess.Query.Preference
	}
	if sess.HasResult() && sess.Query != nil {
		data.Views = travel.Present(sess.Result, sess.Settings, h.booking)
	}
	c.HTML(http.StatusOK, "index.html", data)
}

// Search handles POST /search. Failures are stored on the session and shown
// by Index.
func (h *PageHandler) Search(c *gin.Context) {
	var req searchReq
	_ = c.ShouldBind(&req)

	q, err := travel.NewQuery(req.Source, req.Destination, req.Preference)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, travel.ErrBadRequest) {
			msg = "Please enter both source and destination."
		}
		h.recordInputError(c, msg)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if _, err := h.planner.Search(c.Request.Context(), middleware.SessionID(c), q); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type settingsForm struct {
	SortBy   string `form:"sort_by"`
	Language string `form:"language"`
}

// Settings handles POST /settings.
func (h *PageHandler) Settings(c *gin.Context) {
	var form settingsForm
	_ = c.ShouldBind(&form)

	upd := session.SettingsUpdate{}
	if form.SortBy != "" {
		upd.SortBy = &form.SortBy
	}
	if form.Language != "" {
		upd.Language = &form.Language
	}
	if _, err := h.sessions.ApplySettings(c.Request.Context(), middleware.SessionID(c), upd); err != nil {
		_ = c.Error(err)
		if errors.Is(err, travel.ErrUnknownSortMode) || errors.Is(err, session.ErrUnknownLanguage) {
			h.recordInputError(c, err.Error())
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) recordInputError(c *gin.Context, msg string) {
	ctx := c.Request.Context()
	sess, err := h.sessions.Get(ctx, middleware.SessionID(c))
	if err != nil {
		h.log.Warn("load session for input error", zap.Error(err))
		return
	}
	sess.LastError = &session.ErrorInfo{Kind: session.ErrorKindInput, Message: msg}
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.log.Warn("save session input error", zap.Error(err))
	}
}
