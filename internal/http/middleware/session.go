// README: Session middleware; resolves the visitor's session from cookie or header.
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pathplanner/internal/modules/session"
)

const (
	// SessionCookie carries the session id for browser clients.
	SessionCookie = "pathplanner_session"
	// SessionHeader lets API clients pass the session id explicitly.
	SessionHeader = "X-Session-ID"

	sessionIDKey = "session_id"
)

// Session loads or creates the caller's session and refreshes the cookie.
// Handlers read the id with SessionID.
func Session(svc *session.Service, ttl time.Duration) gin.HandlerFunc {
	maxAge := int(ttl.Seconds())
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}

		sess, _, err := svc.LoadOrCreate(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
			return
		}

		c.Set(sessionIDKey, sess.ID)
		c.Header(SessionHeader, sess.ID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sess.ID, maxAge, "/", "", false, true)
		c.Next()
	}
}

// SessionID returns the session id set by Session, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
