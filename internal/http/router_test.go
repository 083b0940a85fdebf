// README: Integration tests for the HTTP surface over fake collaborators.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathplanner/internal/ai"
	apphttp "pathplanner/internal/http"
	"pathplanner/internal/http/middleware"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/service"
	"pathplanner/internal/speech"
)

const optionsReply = "```json\n" + `{
  "flights": [
    {"provider": "Air India", "price": 5000, "duration": "3h", "notes": "Direct"},
    {"provider": "IndiGo", "price": 3500, "duration": "3h 30m"}
  ],
  "trains": [{"provider": "IRCTC", "price": 1500, "duration": "16h"}],
  "buses": [{"provider": "Unavailable", "price": 0, "duration": "N/A", "description": "Too far"}],
  "cabs": [{"provider": "Uber", "price": 20000, "duration": "24h"}]
}` + "\n```"

type fakeModel struct {
	mu      sync.Mutex
	options string
	err     error
	calls   int
}

func (m *fakeModel) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if strings.Contains(prompt, "valid JSON") {
		return m.options, nil
	}
	return "**Fly** if you can.", nil
}

func (m *fakeModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type fakeGeocoder struct{}

func (fakeGeocoder) Geocode(context.Context, string) (string, error) {
	return "New Delhi, Delhi, India", nil
}

type fakeSynth struct{}

func (fakeSynth) Synthesize(context.Context, string, string) ([]byte, error) {
	return []byte("ID3fake"), nil
}

type testApp struct {
	router *gin.Engine
	model  *fakeModel
	id     string
}

func newTestApp(t *testing.T, model *fakeModel, withSpeech bool) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := session.NewService(session.NewMemoryStore(time.Hour), nil)
	optionsModel := ai.Instrument(model, ai.CallSiteOptions, time.Second, nil)
	summaryModel := ai.Instrument(model, ai.CallSiteSummary, time.Second, nil)
	travelSvc := travel.NewService(optionsModel, travel.NewCurrencyResolver(fakeGeocoder{}, nil, nil), time.Second, nil)
	var synth speech.Synthesizer
	if withSpeech {
		synth = fakeSynth{}
	}
	summarySvc := summary.NewService(summaryModel, summaryModel, synth, time.Second, nil)

	router, err := apphttp.NewRouter(apphttp.RouterDeps{
		Planner:    service.NewTripPlanner(travelSvc, summarySvc, sessions, nil),
		Sessions:   sessions,
		Summary:    summarySvc,
		Booking:    travel.DefaultBookingTable(),
		SessionTTL: time.Hour,
	})
	require.NoError(t, err)

	app := &testApp{router: router, model: model}
	w := app.do(http.MethodGet, "/api/options", nil)
	app.id = w.Header().Get(middleware.SessionHeader)
	require.NotEmpty(t, app.id)
	return app
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.id != "" {
		req.Header.Set(middleware.SessionHeader, a.id)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) form(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: a.id})
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

type optionsBody struct {
	State      string `json:"state"`
	Settings   travel.DisplaySettings
	Categories []struct {
		Key   string        `json:"key"`
		Cards []travel.Card `json:"cards"`
	} `json:"categories"`
	Summary *summary.Summary `json:"summary"`
}

func decodeOptions(t *testing.T, w *httptest.ResponseRecorder) optionsBody {
	t.Helper()
	var body optionsBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

var delhiToMumbai = map[string]string{"source": "Delhi", "destination": "Mumbai", "preference": "Cheapest"}

func TestAPI_SearchThenResortWithoutModelCalls(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)

	w := app.do(http.MethodPost, "/api/search", delhiToMumbai)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeOptions(t, w)
	assert.Equal(t, "ready", body.State)
	assert.Equal(t, "₹", body.Settings.CurrencySymbol)
	require.Len(t, body.Categories, 4)
	assert.Equal(t, "Air India", body.Categories[0].Cards[0].Provider)
	assert.Equal(t, "₹5000", body.Categories[0].Cards[0].PriceText)
	assert.Equal(t, "https://www.airindia.com/", body.Categories[0].Cards[0].BookingURL)
	assert.True(t, body.Categories[2].Cards[0].Unavailable)
	assert.Empty(t, body.Categories[2].Cards[0].BookingURL)
	require.NotNil(t, body.Summary)

	calls := app.model.Calls()

	w = app.do(http.MethodPut, "/api/settings", map[string]string{"sort_by": "Lowest Price"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decodeOptions(t, w)
	assert.Equal(t, "IndiGo", body.Categories[0].Cards[0].Provider)

	w = app.do(http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IndiGo", decodeOptions(t, w).Categories[0].Cards[0].Provider)

	assert.Equal(t, calls, app.model.Calls())
}

func TestAPI_SearchErrors(t *testing.T) {
	tests := []struct {
		name   string
		model  *fakeModel
		body   any
		status int
	}{
		{"missing destination", &fakeModel{options: optionsReply}, map[string]string{"source": "Delhi"}, http.StatusBadRequest},
		{"unknown preference", &fakeModel{options: optionsReply}, map[string]string{"source": "A", "destination": "B", "preference": "Scenic"}, http.StatusBadRequest},
		{"malformed reply", &fakeModel{options: "no json here"}, delhiToMumbai, http.StatusUnprocessableEntity},
		{"provider failure", &fakeModel{err: errors.New("quota exceeded")}, delhiToMumbai, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, tt.model, false)
			w := app.do(http.MethodPost, "/api/search", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestAPI_MalformedBodyCarriesRaw(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: "no json here"}, false)
	w := app.do(http.MethodPost, "/api/search", delhiToMumbai)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "no json here", body["raw"])
	assert.NotEmpty(t, body["diagnostic"])
}

func TestAPI_NotFoundBeforeSearch(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/options", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/summary", nil).Code)
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/nope", nil).Code)
}

func TestAPI_SettingsValidation(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPut, "/api/settings", map[string]string{"sort_by": "random"}).Code)
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPut, "/api/settings", map[string]string{"language": "xx"}).Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodPut, "/api/settings", map[string]string{"language": "hi"}).Code)
}

func TestAPI_SummaryAudio(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, true)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/search", delhiToMumbai).Code)

	w := app.do(http.MethodGet, "/api/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fly")

	w = app.do(http.MethodGet, "/api/summary/audio", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "ID3fake", w.Body.String())
}

func TestAPI_SummaryAudioDisabled(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)
	require.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/search", delhiToMumbai).Code)
	assert.Equal(t, http.StatusServiceUnavailable, app.do(http.MethodGet, "/api/summary/audio", nil).Code)
}

func TestPage_FormFlow(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, true)

	w := app.form("/search", url.Values{"source": {"Delhi"}, "destination": {"Mumbai"}, "preference": {"Fastest"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Travel Options from Delhi to Mumbai")
	assert.Contains(t, page, "₹5000")
	assert.Contains(t, page, "<strong>Fly</strong>")
	assert.Contains(t, page, "/summary/audio")

	calls := app.model.Calls()
	w = app.form("/settings", url.Values{"sort_by": {"Lowest Price"}, "language": {"fr"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, calls, app.model.Calls())

	page = app.do(http.MethodGet, "/", nil).Body.String()
	assert.Less(t, strings.Index(page, "IndiGo"), strings.Index(page, "Air India"))
}

func TestPage_EmptyFormShowsError(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)
	w := app.form("/search", url.Values{"source": {""}, "destination": {"Mumbai"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, app.model.Calls())

	page := app.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "Please enter both source and destination.")
}

func TestPage_UnknownPreferenceShowsCause(t *testing.T) {
	app := newTestApp(t, &fakeModel{options: optionsReply}, false)
	w := app.form("/search", url.Values{"source": {"Delhi"}, "destination": {"Mumbai"}, "preference": {"Teleport"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Zero(t, app.model.Calls())

	page := app.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, page, "unknown preference")
	assert.NotContains(t, page, "Please enter both source and destination.")
}

func TestHealthAndLanguages(t *testing.T) {
	app := newTestApp(t, &fakeModel{}, false)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health", nil).Code)

	w := app.do(http.MethodGet, "/api/languages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Telugu"`)
}
