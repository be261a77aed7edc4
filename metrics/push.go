package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

type PushMetrics struct {
	PermissionRequested int                    `json:"permissionRequested"`
	PermissionGranted   int                    `json:"permissionGranted"`
	PermissionDenied    int                    `json:"permissionDenied"`
	NotificationsOpened int                    `json:"notificationsOpened"`
	OptInRate           float64                `json:"optInRate"`
	UsersWithOpens      int                    `json:"usersWithOpens"`
	RequestedTrend      *float64               `json:"requestedTrend"`
	GrantedTrend        *float64               `json:"grantedTrend"`
	OpenedTrend         *float64               `json:"openedTrend"`
	DailyData           []PushDay              `json:"dailyData"`
	Destinations        []DestinationCount     `json:"destinations"`
	Sources             []SourceCount          `json:"sources"`
	PermissionFunnel    []analytics.FunnelStep `json:"permissionFunnel"`
	HourlyDistribution  []HourCount            `json:"hourlyDistribution"`
	Meta
}

type PushDay struct {
	Date      string `json:"date"`
	Requested int    `json:"requested"`
	Granted   int    `json:"granted"`
	Denied    int    `json:"denied"`
	Opened    int    `json:"opened"`
}

type DestinationCount struct {
	Destination string `json:"destination"`
	Count       int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// BuildPush assembles the push notification view. Open rate against sends is
// not computable from client events alone, so the view reports distinct users
// with opens instead.
func BuildPush(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) PushMetrics {
	requested := analytics.CountByName(events, "Push_Permission_Requested")
	granted := analytics.CountByName(events, "Push_Permission_Granted")
	denied := analytics.CountByName(events, "Push_Permission_Denied")
	opened := analytics.CountByName(events, "Push_Notification_Opened")

	optInRate := 0.0
	if granted+denied > 0 {
		optInRate = 100 * float64(granted) / float64(granted+denied)
	}

	openEvents := analytics.FilterByName(events, "Push_Notification_Opened")
	requestEvents := analytics.FilterByName(events, "Push_Permission_Requested")

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Permission Requested", Count: requested},
		{Name: "Permission Granted", Count: granted},
		{Name: "Notification Opened", Count: opened},
	})

	requestedByDay := analytics.CountByDay(events, "Push_Permission_Requested")
	grantedByDay := analytics.CountByDay(events, "Push_Permission_Granted")
	deniedByDay := analytics.CountByDay(events, "Push_Permission_Denied")
	openedByDay := analytics.CountByDay(events, "Push_Notification_Opened")

	days := analytics.EnumerateDays(r)
	daily := make([]PushDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, PushDay{
			Date:      day,
			Requested: requestedByDay[day],
			Granted:   grantedByDay[day],
			Denied:    deniedByDay[day],
			Opened:    openedByDay[day],
		})
	}

	destinations := make([]DestinationCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(openEvents, "destination")) {
		destinations = append(destinations, DestinationCount{Destination: b.Name, Count: b.Count})
	}
	sources := make([]SourceCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(requestEvents, "source")) {
		sources = append(sources, SourceCount{Source: b.Name, Count: b.Count})
	}

	hourCounts := analytics.HourlyDistribution(openEvents)
	hourly := make([]HourCount, 0, len(hourCounts))
	for hour, count := range hourCounts {
		hourly = append(hourly, HourCount{Hour: hour, Count: count})
	}

	return PushMetrics{
		PermissionRequested: requested,
		PermissionGranted:   granted,
		PermissionDenied:    denied,
		NotificationsOpened: opened,
		OptInRate:           optInRate,
		UsersWithOpens:      len(analytics.UniqueUsers(openEvents)),
		RequestedTrend:      analytics.TrendCount(requested, analytics.CountByName(previous, "Push_Permission_Requested")),
		GrantedTrend:        analytics.TrendCount(granted, analytics.CountByName(previous, "Push_Permission_Granted")),
		OpenedTrend:         analytics.TrendCount(opened, analytics.CountByName(previous, "Push_Notification_Opened")),
		DailyData:           daily,
		Destinations:        destinations,
		Sources:             sources,
		PermissionFunnel:    funnel,
		HourlyDistribution:  hourly,
		Meta:                NewMeta(r, platform, ut),
	}
}
