// README: Tests for session, request id and recovery middleware.
package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) (*session.Session, error) {
	return nil, session.ErrNotFound
}

func (failingStore) Save(context.Context, *session.Session) error {
	return errors.New("redis down")
}

func newTestRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Recovery(zap.NewNop()), middleware.Session(session.NewService(store, nil), time.Hour))
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.SessionID(c))
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestSession_CreatesAndSetsCookie(t *testing.T) {
	r := newTestRouter(session.NewMemoryStore(time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	id := w.Body.String()
	if id == "" {
		t.Fatal("expected a session id")
	}
	if w.Header().Get(middleware.SessionHeader) != id {
		t.Errorf("expected header %s, got %q", id, w.Header().Get(middleware.SessionHeader))
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookie || cookies[0].Value != id {
		t.Errorf("expected session cookie with id %s, got %v", id, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
}

func TestSession_ReusesCookie(t *testing.T) {
	r := newTestRouter(session.NewMemoryStore(time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	id := w.Body.String()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: id})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != id {
		t.Errorf("expected session %s to be reused, got %s", id, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(middleware.SessionHeader, id)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != id {
		t.Errorf("expected header session %s to be reused, got %s", id, w.Body.String())
	}
}

func TestSession_StoreFailure(t *testing.T) {
	r := newTestRouter(failingStore{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestRequestID_EchoesHeader(t *testing.T) {
	r := newTestRouter(session.NewMemoryStore(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("expected request id abc-123, got %q", got)
	}
}

func TestRecovery_Returns500(t *testing.T) {
	r := newTestRouter(session.NewMemoryStore(time.Hour))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}
