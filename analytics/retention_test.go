package analytics

import (
	"testing"

	"chunkmetrics/api/models"
)

func evAt(name, user string, ts int64) models.Event {
	return models.Event{Name: name, Properties: models.Properties{
		"distinct_id": user,
		"time":        float64(ts),
	}}
}

func TestComputeRetentionWindows(t *testing.T) {
	const day = int64(86400)
	base := int64(1700000000)

	firstTouch := []models.Event{
		evAt("$ae_first_open", "u1", base),
		evAt("$ae_first_open", "u2", base),
		evAt("$ae_first_open", "u3", base),
		evAt("$ae_first_open", "u4", base),
	}
	activity := []models.Event{
		// u1 returns the next day: day-1 retained.
		evAt("$ae_session", "u1", base+1*day),
		// u2 returns on day 8, inside the [7,14] window: day-7 retained.
		evAt("$ae_session", "u2", base+8*day),
		// u3 returns on day 45, inside [30,60]: day-30 retained.
		evAt("$ae_session", "u3", base+45*day),
		// u4 only comes back on day 3, in no window at all.
		evAt("$ae_session", "u4", base+3*day),
		// Activity from a user with no first touch is ignored.
		evAt("$ae_session", "stranger", base+1*day),
	}

	r := ComputeRetention(firstTouch, activity)
	if r.TotalNewUsers != 4 {
		t.Fatalf("total new users: got %d, want 4", r.TotalNewUsers)
	}
	if r.Day1 != 25 {
		t.Errorf("day1: got %v, want 25", r.Day1)
	}
	if r.Day7 != 25 {
		t.Errorf("day7: got %v, want 25", r.Day7)
	}
	if r.Day30 != 25 {
		t.Errorf("day30: got %v, want 25", r.Day30)
	}
}

func TestComputeRetentionEarliestFirstTouchWins(t *testing.T) {
	const day = int64(86400)
	base := int64(1700000000)

	// Duplicate first-touch events: the earliest defines the user's start.
	firstTouch := []models.Event{
		evAt("$ae_first_open", "u1", base+5*day),
		evAt("$ae_first_open", "u1", base),
	}
	activity := []models.Event{
		evAt("$ae_session", "u1", base+1*day),
	}

	r := ComputeRetention(firstTouch, activity)
	if r.TotalNewUsers != 1 {
		t.Fatalf("total new users: got %d, want 1", r.TotalNewUsers)
	}
	if r.Day1 != 100 {
		t.Errorf("day1: got %v, want 100", r.Day1)
	}
}

func TestComputeRetentionNoNewUsers(t *testing.T) {
	r := ComputeRetention(nil, []models.Event{evAt("$ae_session", "u1", 1700000000)})
	if r.TotalNewUsers != 0 || r.Day1 != 0 || r.Day7 != 0 || r.Day30 != 0 {
		t.Errorf("got %+v, want all zeros", r)
	}
}
