package analytics

import (
	"reflect"
	"testing"

	"chunkmetrics/api/models"
)

func TestCountByName(t *testing.T) {
	events := []models.Event{
		ev("Search", "u1", nil),
		ev("Search_Performed", "u1", nil),
		ev("Search Performed", "u2", nil),
		ev("Page_Viewed", "u2", nil),
	}
	if got := CountByName(events, SearchEvents...); got != 3 {
		t.Errorf("alias set count: got %d, want 3", got)
	}
	if got := CountByName(events, "Page_Viewed"); got != 1 {
		t.Errorf("single name count: got %d, want 1", got)
	}
	if got := CountByName(nil, "Page_Viewed"); got != 0 {
		t.Errorf("empty input: got %d, want 0", got)
	}
}

func TestUniqueUsersByDay(t *testing.T) {
	const day = int64(86400)
	base := int64(1735689600) // 2025-01-01 00:00:00 UTC

	events := []models.Event{
		evAt("Search", "u1", base),
		evAt("Search", "u1", base+3600),
		evAt("Search", "u2", base),
		evAt("Search", "u1", base+day),
	}
	byDay := UniqueUsersByDay(events)
	if len(byDay["2025-01-01"]) != 2 {
		t.Errorf("2025-01-01: got %d users, want 2", len(byDay["2025-01-01"]))
	}
	if len(byDay["2025-01-02"]) != 1 {
		t.Errorf("2025-01-02: got %d users, want 1", len(byDay["2025-01-02"]))
	}
}

func TestPropertyDistributionUnknownBucket(t *testing.T) {
	events := []models.Event{
		ev("Paywall_Viewed", "u1", models.Properties{"source": "settings"}),
		ev("Paywall_Viewed", "u2", models.Properties{"source": "settings"}),
		ev("Paywall_Viewed", "u3", models.Properties{"source": "onboarding"}),
		ev("Paywall_Viewed", "u4", nil),
	}
	dist := PropertyDistribution(events, "source")
	want := map[string]int{"settings": 2, "onboarding": 1, "Unknown": 1}
	if !reflect.DeepEqual(dist, want) {
		t.Errorf("got %v, want %v", dist, want)
	}
}

func TestSortedDistribution(t *testing.T) {
	got := SortedDistribution(map[string]int{"b": 2, "a": 2, "c": 5})
	want := []NameCount{{"c", 5}, {"a", 2}, {"b", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestHourlyDistribution(t *testing.T) {
	base := int64(1735689600) // 2025-01-01 00:00:00 UTC
	events := []models.Event{
		evAt("Search", "u1", base),         // hour 0
		evAt("Search", "u2", base+3600),    // hour 1
		evAt("Search", "u3", base+3600+60), // hour 1
	}
	hours := HourlyDistribution(events)
	if hours[0] != 1 || hours[1] != 2 {
		t.Errorf("got hour0=%d hour1=%d, want 1 and 2", hours[0], hours[1])
	}
}

func TestAverageProperty(t *testing.T) {
	events := []models.Event{
		ev("Research_Report_Completed", "u1", models.Properties{"word_count": float64(100)}),
		ev("Research_Report_Completed", "u2", models.Properties{"word_count": float64(300)}),
		// Missing property contributes 0 to the mean.
		ev("Research_Report_Completed", "u3", nil),
	}
	if got := AverageProperty(events, "word_count"); got != 400.0/3 {
		t.Errorf("got %v, want %v", got, 400.0/3)
	}
	if got := AverageProperty(nil, "word_count"); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
}

func TestWeeklyAndMonthlyUsers(t *testing.T) {
	const day = int64(86400)
	base := int64(1735689600) // Wednesday 2025-01-01 UTC

	events := []models.Event{
		evAt("$ae_session", "u1", base),
		evAt("$ae_session", "u2", base+day),
		evAt("$ae_session", "u1", base+7*day), // next week
		evAt("$ae_session", "u1", base+31*day), // February
	}

	weeks := WeeklyUsers(events)
	if len(weeks) != 3 {
		t.Fatalf("got %d weeks, want 3", len(weeks))
	}
	if weeks[0].Count != 2 {
		t.Errorf("first week: got %d users, want 2", weeks[0].Count)
	}

	months := MonthlyUsers(events)
	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	if months[0].Name != "2025-01" || months[0].Count != 2 {
		t.Errorf("first month: got %+v, want 2025-01 with 2 users", months[0])
	}
	if months[1].Name != "2025-02" || months[1].Count != 1 {
		t.Errorf("second month: got %+v, want 2025-02 with 1 user", months[1])
	}
}
