package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
)

// Languages handles GET /api/languages.
func Languages(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{
		"languages":   summary.Languages,
		"preferences": travel.Preferences,
		"sort_modes":  travel.SortModes,
	})
}

func Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
