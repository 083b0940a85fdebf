// README: HTTP router registration.
package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"pathplanner/internal/http/handlers"
	"pathplanner/internal/http/middleware"
	"pathplanner/internal/http/web"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/service"
)

type RouterDeps struct {
	Planner     *service.TripPlanner
	Sessions    *session.Service
	Summary     *summary.Service
	Booking     travel.BookingTable
	SessionTTL  time.Duration
	CORSOrigins []string
	Log         *zap.Logger
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(log), middleware.Recovery(log))
	if len(deps.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.SessionHeader},
			ExposeHeaders:    []string{middleware.SessionHeader, "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}
	r.SetHTMLTemplate(tmpl)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/health", handlers.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	searchHandler := handlers.NewSearchHandler(deps.Planner, deps.Sessions, deps.Booking)
	settingsHandler := handlers.NewSettingsHandler(deps.Sessions, deps.Booking)
	summaryHandler := handlers.NewSummaryHandler(deps.Sessions, deps.Summary)
	pageHandler := handlers.NewPageHandler(deps.Planner, deps.Sessions, deps.Summary, deps.Booking, log)

	app := r.Group("/", middleware.Session(deps.Sessions, deps.SessionTTL))
	{
		app.GET("/", pageHandler.Index)
		app.POST("/search", pageHandler.Search)
		app.POST("/settings", pageHandler.Settings)
		app.GET("/summary/audio", summaryHandler.Audio)
	}

	api := r.Group("/api", middleware.Session(deps.Sessions, deps.SessionTTL))
	{
		api.POST("/search", searchHandler.Search)
		api.GET("/options", searchHandler.Options)
		api.PUT("/settings", settingsHandler.Update)
		api.GET("/summary", summaryHandler.Get)
		api.GET("/summary/audio", summaryHandler.Audio)
	}
	r.GET("/api/languages", handlers.Languages)

	return r, nil
}
