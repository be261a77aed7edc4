package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// UsersMetrics is the active-user view: DAU/WAU/MAU series plus session and
// geographic breakdowns. It has no user-tier dimension.
type UsersMetrics struct {
	DAU              []UsersDay          `json:"dau"`
	WAU              []UsersWeek         `json:"wau"`
	MAU              []UsersMonth        `json:"mau"`
	SessionDurations []DurationBucket    `json:"sessionDurations"`
	SessionsPerUser  []SessionsBucket    `json:"sessionsPerUser"`
	Geographic       []CountryShare      `json:"geographic"`
	DateRange        analytics.DateRange `json:"dateRange"`
	Platform         string              `json:"platform"`
	LastUpdated      string              `json:"lastUpdated"`
}

type UsersDay struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

type UsersWeek struct {
	Week  string `json:"week"`
	Users int    `json:"users"`
}

type UsersMonth struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

type DurationBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type SessionsBucket struct {
	Sessions string `json:"sessions"`
	Users    int    `json:"users"`
}

type CountryShare struct {
	Country    string  `json:"country"`
	Users      int     `json:"users"`
	Percentage float64 `json:"percentage"`
}

// BuildUsers assembles the active-user view.
func BuildUsers(events []models.Event, r analytics.DateRange, platform string) UsersMetrics {
	byDay := analytics.UniqueUsersByDay(events)
	days := analytics.EnumerateDays(r)
	dau := make([]UsersDay, 0, len(days))
	for _, day := range days {
		dau = append(dau, UsersDay{Date: day, Users: len(byDay[day])})
	}

	wau := make([]UsersWeek, 0)
	for _, w := range analytics.WeeklyUsers(events) {
		wau = append(wau, UsersWeek{Week: w.Name, Users: w.Count})
	}
	mau := make([]UsersMonth, 0)
	for _, m := range analytics.MonthlyUsers(events) {
		mau = append(mau, UsersMonth{Month: m.Name, Users: m.Count})
	}

	sessions := analytics.FilterByName(events, "$ae_session")

	durationRanges := []struct {
		label string
		min   float64
		max   float64
	}{
		{"0-30s", 0, 30},
		{"30s-1m", 30, 60},
		{"1-5m", 60, 300},
		{"5-15m", 300, 900},
		{"15-30m", 900, 1800},
		{"30m+", 1800, -1},
	}
	durations := make([]DurationBucket, len(durationRanges))
	for i, dr := range durationRanges {
		durations[i] = DurationBucket{Range: dr.label}
	}
	for _, e := range sessions {
		d := e.Properties.Num("$ae_session_length")
		if d <= 0 {
			continue
		}
		for i, dr := range durationRanges {
			if d >= dr.min && (dr.max < 0 || d < dr.max) {
				durations[i].Count++
				break
			}
		}
	}

	sessionsByUser := make(map[string]int)
	for _, e := range sessions {
		sessionsByUser[e.UserID()]++
	}
	perUser := []SessionsBucket{
		{Sessions: "1"}, {Sessions: "2-3"}, {Sessions: "4-5"}, {Sessions: "6-10"}, {Sessions: "10+"},
	}
	for _, n := range sessionsByUser {
		switch {
		case n == 1:
			perUser[0].Users++
		case n <= 3:
			perUser[1].Users++
		case n <= 5:
			perUser[2].Users++
		case n <= 10:
			perUser[3].Users++
		default:
			perUser[4].Users++
		}
	}

	// Country shares are event-weighted, top 10 only.
	countries := analytics.SortedDistribution(analytics.PropertyDistribution(events, "mp_country_code"))
	if len(countries) > 10 {
		countries = countries[:10]
	}
	geographic := make([]CountryShare, 0, len(countries))
	for _, c := range countries {
		share := 0.0
		if len(events) > 0 {
			share = 100 * float64(c.Count) / float64(len(events))
		}
		geographic = append(geographic, CountryShare{Country: c.Name, Users: c.Count, Percentage: share})
	}

	meta := NewMeta(r, platform, analytics.UserTypeAll)
	return UsersMetrics{
		DAU:              dau,
		WAU:              wau,
		MAU:              mau,
		SessionDurations: durations,
		SessionsPerUser:  perUser,
		Geographic:       geographic,
		DateRange:        meta.DateRange,
		Platform:         meta.Platform,
		LastUpdated:      meta.LastUpdated,
	}
}
