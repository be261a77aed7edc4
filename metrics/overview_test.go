package metrics

import (
	"testing"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

func sev(name, user string, props models.Properties) models.Event {
	if props == nil {
		props = models.Properties{}
	}
	props["distinct_id"] = user
	props["time"] = float64(1735689600) // 2025-01-01 00:00:00 UTC
	return models.Event{Name: name, Properties: props}
}

func TestBuildOverviewTrendsUnderAudienceFilter(t *testing.T) {
	r := analytics.DateRange{From: "2025-01-01", To: "2025-01-01"}

	// Current period: one session from an authenticated user. Prior
	// period: one session from a visitor.
	current := []models.Event{
		sev("$ae_session", "u1", models.Properties{"$user_id": "u1"}),
	}
	previous := []models.Event{
		sev("$ae_session", "v1", nil),
	}

	m := BuildOverview(current, previous, r, "all", analytics.UserTypeAuthenticated)
	if m.TotalSessions != 1 {
		t.Fatalf("total sessions: got %d, want 1", m.TotalSessions)
	}
	// The visitor session is outside the authenticated audience, so the
	// prior-period count is 0 and the trend is the new-activity sentinel.
	if m.SessionsTrend != nil {
		t.Errorf("sessions trend: got %v, want nil", *m.SessionsTrend)
	}
	if m.UsersTrend != nil {
		t.Errorf("users trend: got %v, want nil", *m.UsersTrend)
	}

	// Without an audience filter both periods count one session.
	all := BuildOverview(current, previous, r, "all", analytics.UserTypeAll)
	if all.SessionsTrend == nil || *all.SessionsTrend != 0 {
		t.Errorf("unfiltered sessions trend: got %v, want 0", all.SessionsTrend)
	}
}
