package analytics

import (
	"testing"

	"chunkmetrics/api/models"
)

func ev(name, user string, props models.Properties) models.Event {
	if props == nil {
		props = models.Properties{}
	}
	props["distinct_id"] = user
	return models.Event{Name: name, Properties: props}
}

func TestClassifyPrecedence(t *testing.T) {
	events := []models.Event{
		ev("Page_Viewed", "u1", nil),
		ev("Login_Completed", "u2", nil),
		ev("Purchase_Completed", "u3", nil),
		ev("Page_Viewed", "u3", nil),
	}

	tiers := Classify(events)
	want := map[string]Tier{
		"u1": TierVisitor,
		"u2": TierAuthenticated,
		"u3": TierSubscriber,
	}
	for user, tier := range want {
		if tiers[user] != tier {
			t.Errorf("user %s: got tier %v, want %v", user, tiers[user], tier)
		}
	}
}

func TestClassifyOrderIndependent(t *testing.T) {
	forward := []models.Event{
		ev("Purchase_Completed", "u1", nil),
		ev("Login_Completed", "u1", nil),
		ev("Page_Viewed", "u1", nil),
	}
	backward := []models.Event{forward[2], forward[1], forward[0]}

	if Classify(forward)["u1"] != TierSubscriber {
		t.Errorf("forward order: got %v, want subscriber", Classify(forward)["u1"])
	}
	if Classify(backward)["u1"] != TierSubscriber {
		t.Errorf("backward order: got %v, want subscriber", Classify(backward)["u1"])
	}
}

func TestClassifyNeverDowngrades(t *testing.T) {
	events := []models.Event{
		ev("Purchase_Completed", "u1", nil),
		ev("Page_Viewed", "u1", nil),
		ev("Login_Completed", "u1", nil),
	}
	if got := Classify(events)["u1"]; got != TierSubscriber {
		t.Errorf("got %v, want subscriber after later weaker signals", got)
	}
}

func TestClassifyPropertySignals(t *testing.T) {
	tests := []struct {
		name  string
		event models.Event
		want  Tier
	}{
		{"plan subscribed", ev("Page_Viewed", "u", models.Properties{"$plan": "Subscribed"}), TierSubscriber},
		{"active subscription", ev("Page_Viewed", "u", models.Properties{"subscription_status": "active"}), TierSubscriber},
		{"user id present", ev("Page_Viewed", "u", models.Properties{"$user_id": "abc"}), TierAuthenticated},
		{"is_authenticated", ev("Page_Viewed", "u", models.Properties{"is_authenticated": true}), TierAuthenticated},
		{"no signals", ev("Page_Viewed", "u", nil), TierVisitor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify([]models.Event{tt.event})["u"]; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterByUserTypeAuthenticatedIncludesSubscribers(t *testing.T) {
	events := []models.Event{
		ev("Page_Viewed", "visitor", nil),
		ev("Login_Completed", "member", nil),
		ev("Purchase_Completed", "payer", nil),
	}

	authed := UniqueUsers(FilterByUserType(events, UserTypeAuthenticated))
	if _, ok := authed["payer"]; !ok {
		t.Error("subscriber should be included in the authenticated audience")
	}
	if _, ok := authed["member"]; !ok {
		t.Error("authenticated user missing from authenticated audience")
	}
	if _, ok := authed["visitor"]; ok {
		t.Error("visitor should not be in the authenticated audience")
	}

	subs := UniqueUsers(FilterByUserType(events, UserTypeSubscribers))
	if len(subs) != 1 {
		t.Errorf("got %d subscribers, want 1", len(subs))
	}
}

func TestFilterByUserTypeAllIsIdentity(t *testing.T) {
	events := []models.Event{
		ev("Page_Viewed", "u1", nil),
		ev("Login_Completed", "u2", nil),
	}
	if got := FilterByUserType(events, UserTypeAll); len(got) != len(events) {
		t.Errorf("got %d events, want %d", len(got), len(events))
	}
}

func TestCountByTierDoubleCountsSubscribers(t *testing.T) {
	events := []models.Event{
		ev("Page_Viewed", "v1", nil),
		ev("Login_Completed", "a1", nil),
		ev("Purchase_Completed", "s1", nil),
	}

	b := CountByTier(events)
	if b.Total != 3 {
		t.Errorf("total: got %d, want 3", b.Total)
	}
	if b.Visitors != 1 {
		t.Errorf("visitors: got %d, want 1", b.Visitors)
	}
	// Subscribers are a subset of authenticated users, so they appear in
	// both figures.
	if b.Authenticated != 2 {
		t.Errorf("authenticated: got %d, want 2", b.Authenticated)
	}
	if b.Subscribers != 1 {
		t.Errorf("subscribers: got %d, want 1", b.Subscribers)
	}
}

func TestParseUserType(t *testing.T) {
	tests := []struct {
		in   string
		want UserType
	}{
		{"all", UserTypeAll},
		{"visitors", UserTypeVisitors},
		{"authenticated", UserTypeAuthenticated},
		{"subscribers", UserTypeSubscribers},
		{"", UserTypeAll},
		{"bogus", UserTypeAll},
	}
	for _, tt := range tests {
		if got := ParseUserType(tt.in); got != tt.want {
			t.Errorf("ParseUserType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
