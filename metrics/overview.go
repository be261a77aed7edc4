package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// OverviewMetrics is the landing-view summary: headline totals with
// period-over-period trends, a daily series, and the user tier breakdown.
type OverviewMetrics struct {
	TotalUsers     int                     `json:"totalUsers"`
	TotalSessions  int                     `json:"totalSessions"`
	TotalSearches  int                     `json:"totalSearches"`
	ConversionRate float64                 `json:"conversionRate"`
	UsersTrend     *float64                `json:"usersTrend"`
	SessionsTrend  *float64                `json:"sessionsTrend"`
	SearchesTrend  *float64                `json:"searchesTrend"`
	DailyData      []OverviewDay           `json:"dailyData"`
	UserBreakdown  analytics.TierBreakdown `json:"userBreakdown"`
	Meta
}

// OverviewDay is one x-axis point of the overview chart.
type OverviewDay struct {
	Date     string `json:"date"`
	Users    int    `json:"users"`
	Sessions int    `json:"sessions"`
	Searches int    `json:"searches"`
}

// BuildOverview assembles the overview from platform-filtered events.
// The tier breakdown and the unique-user total are computed before the
// audience filter is applied (the breakdown describes everyone on the
// platform); the series and event counts are computed after it.
func BuildOverview(platformEvents, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) OverviewMetrics {
	events := analytics.FilterByUserType(platformEvents, ut)

	totalUsers := len(analytics.UniqueUsersByType(platformEvents, ut))
	totalSessions := analytics.CountByName(events, analytics.SessionEvents...)
	totalSearches := analytics.CountByName(events, analytics.SearchEvents...)

	uniqueSignups := len(analytics.UniqueUsersFor(events, analytics.SignupEvents...))
	conversionRate := 0.0
	if totalUsers > 0 {
		conversionRate = float64(uniqueSignups) / float64(totalUsers)
	}

	// Trends compare like with like: the prior period gets the same
	// audience filter as the current one.
	prevEvents := analytics.FilterByUserType(previous, ut)
	prevUsers := len(analytics.UniqueUsersByType(previous, ut))
	prevSessions := analytics.CountByName(prevEvents, analytics.SessionEvents...)
	prevSearches := analytics.CountByName(prevEvents, analytics.SearchEvents...)

	usersByDay := analytics.UniqueUsersByDay(events)
	sessionsByDay := analytics.CountByDay(events, analytics.SessionEvents...)
	searchesByDay := analytics.CountByDay(events, analytics.SearchEvents...)

	days := analytics.EnumerateDays(r)
	daily := make([]OverviewDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, OverviewDay{
			Date:     day,
			Users:    len(usersByDay[day]),
			Sessions: sessionsByDay[day],
			Searches: searchesByDay[day],
		})
	}

	return OverviewMetrics{
		TotalUsers:     totalUsers,
		TotalSessions:  totalSessions,
		TotalSearches:  totalSearches,
		ConversionRate: conversionRate,
		UsersTrend:     analytics.TrendCount(totalUsers, prevUsers),
		SessionsTrend:  analytics.TrendCount(totalSessions, prevSessions),
		SearchesTrend:  analytics.TrendCount(totalSearches, prevSearches),
		DailyData:      daily,
		UserBreakdown:  analytics.CountByTier(platformEvents),
		Meta:           NewMeta(r, platform, ut),
	}
}
