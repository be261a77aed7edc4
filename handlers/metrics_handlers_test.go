package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"chunkmetrics/api/models"
)

type stubSource struct {
	events []models.Event
	err    error
}

func (s *stubSource) FetchEvents(ctx context.Context, from, to string) ([]models.Event, error) {
	return s.events, s.err
}

func newRouter(source *stubSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMetricsHandlers(source, nil)

	r := gin.New()
	r.GET("/api/events", h.GetEvents)
	r.GET("/api/metrics/overview", h.GetOverview)
	r.GET("/api/metrics/notes", h.GetNotes)
	r.GET("/api/metrics/emails", h.GetEmails)
	return r
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetOverviewOK(t *testing.T) {
	source := &stubSource{events: []models.Event{
		{Name: "Sign Up", Properties: models.Properties{"distinct_id": "u1", "$user_id": "u1"}},
		{Name: "Search", Properties: models.Properties{"distinct_id": "u2"}},
	}}
	w := get(t, newRouter(source), "/api/metrics/overview?range=7d")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, key := range []string{"totalUsers", "userBreakdown", "dateRange", "platform", "userType", "lastUpdated"} {
		if _, ok := body[key]; !ok {
			t.Errorf("response missing %q key", key)
		}
	}
}

func TestGetOverviewBadDateRange(t *testing.T) {
	w := get(t, newRouter(&stubSource{}), "/api/metrics/overview?from=2025-01-31&to=not-a-date")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
}

func TestGetOverviewBadRangeToken(t *testing.T) {
	w := get(t, newRouter(&stubSource{}), "/api/metrics/overview?range=12d")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["error"] != "Invalid range" {
		t.Errorf("got error %q", body["error"])
	}
}

func TestGetNotesFetchFailure(t *testing.T) {
	source := &stubSource{err: errors.New("export API down")}
	w := get(t, newRouter(source), "/api/metrics/notes")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["error"] != "Failed to fetch events" {
		t.Errorf("got error %q", body["error"])
	}
}

func TestGetEventsFilters(t *testing.T) {
	source := &stubSource{events: []models.Event{
		{Name: "Search", Properties: models.Properties{"distinct_id": "u1", "mp_lib": "web"}},
		{Name: "Search", Properties: models.Properties{"distinct_id": "u2", "mp_lib": "swift", "$os": "iOS"}},
	}}
	w := get(t, newRouter(source), "/api/events?platform=web")
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var body struct {
		Count    int    `json:"count"`
		Platform string `json:"platform"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Count != 1 {
		t.Errorf("got count %d, want 1", body.Count)
	}
	if body.Platform != "web" {
		t.Errorf("got platform %q, want web", body.Platform)
	}
}

func TestGetEmailsUnconfigured(t *testing.T) {
	w := get(t, newRouter(&stubSource{}), "/api/metrics/emails")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
}
