package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

var collectionEvents = []string{
	"Collection_Created",
	"Collection_Viewed",
	"Collection_Updated",
	"Collection_Deleted",
	"Collection_URL_Added",
	"Collection_URL_Removed",
	"Collection_Chat_Started",
	"Collection_Exported",
	"Collection_Shared",
}

type CollectionsMetrics struct {
	TotalCreated          int                    `json:"totalCreated"`
	TotalViewed           int                    `json:"totalViewed"`
	TotalUpdated          int                    `json:"totalUpdated"`
	TotalDeleted          int                    `json:"totalDeleted"`
	TotalURLsAdded        int                    `json:"totalURLsAdded"`
	TotalURLsRemoved      int                    `json:"totalURLsRemoved"`
	TotalChatStarted      int                    `json:"totalChatStarted"`
	TotalExported         int                    `json:"totalExported"`
	TotalShared           int                    `json:"totalShared"`
	UniqueCollectionUsers int                    `json:"uniqueCollectionUsers"`
	CreatedTrend          *float64               `json:"createdTrend"`
	ViewedTrend           *float64               `json:"viewedTrend"`
	ChatStartedTrend      *float64               `json:"chatStartedTrend"`
	ExportedTrend         *float64               `json:"exportedTrend"`
	SharedTrend           *float64               `json:"sharedTrend"`
	CollectionsFunnel     []analytics.FunnelStep `json:"collectionsFunnel"`
	DailyData             []CollectionsDay       `json:"dailyData"`
	URLManagement         []URLManagementDay     `json:"urlManagement"`
	Meta
}

type CollectionsDay struct {
	Date        string `json:"date"`
	Created     int    `json:"created"`
	Viewed      int    `json:"viewed"`
	ChatStarted int    `json:"chatStarted"`
	Exported    int    `json:"exported"`
}

type URLManagementDay struct {
	Date    string `json:"date"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// BuildCollections assembles the collections view. The last funnel step folds
// exports and shares together since either one is a successful hand-off.
func BuildCollections(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) CollectionsMetrics {
	cols := analytics.FilterByName(events, collectionEvents...)
	prev := analytics.FilterByName(previous, collectionEvents...)

	created := analytics.CountByName(cols, "Collection_Created")
	viewed := analytics.CountByName(cols, "Collection_Viewed")
	chatStarted := analytics.CountByName(cols, "Collection_Chat_Started")
	exported := analytics.CountByName(cols, "Collection_Exported")
	shared := analytics.CountByName(cols, "Collection_Shared")

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Created", Count: created},
		{Name: "Viewed", Count: viewed},
		{Name: "Chat Started", Count: chatStarted},
		{Name: "Exported/Shared", Count: exported + shared},
	})

	createdByDay := analytics.CountByDay(cols, "Collection_Created")
	viewedByDay := analytics.CountByDay(cols, "Collection_Viewed")
	chatByDay := analytics.CountByDay(cols, "Collection_Chat_Started")
	exportedByDay := analytics.CountByDay(cols, "Collection_Exported")
	addedByDay := analytics.CountByDay(cols, "Collection_URL_Added")
	removedByDay := analytics.CountByDay(cols, "Collection_URL_Removed")

	days := analytics.EnumerateDays(r)
	daily := make([]CollectionsDay, 0, len(days))
	urls := make([]URLManagementDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, CollectionsDay{
			Date:        day,
			Created:     createdByDay[day],
			Viewed:      viewedByDay[day],
			ChatStarted: chatByDay[day],
			Exported:    exportedByDay[day],
		})
		urls = append(urls, URLManagementDay{
			Date:    day,
			Added:   addedByDay[day],
			Removed: removedByDay[day],
		})
	}

	return CollectionsMetrics{
		TotalCreated:          created,
		TotalViewed:           viewed,
		TotalUpdated:          analytics.CountByName(cols, "Collection_Updated"),
		TotalDeleted:          analytics.CountByName(cols, "Collection_Deleted"),
		TotalURLsAdded:        analytics.CountByName(cols, "Collection_URL_Added"),
		TotalURLsRemoved:      analytics.CountByName(cols, "Collection_URL_Removed"),
		TotalChatStarted:      chatStarted,
		TotalExported:         exported,
		TotalShared:           shared,
		UniqueCollectionUsers: len(analytics.UniqueUsers(cols)),
		CreatedTrend:          analytics.TrendCount(created, analytics.CountByName(prev, "Collection_Created")),
		ViewedTrend:           analytics.TrendCount(viewed, analytics.CountByName(prev, "Collection_Viewed")),
		ChatStartedTrend:      analytics.TrendCount(chatStarted, analytics.CountByName(prev, "Collection_Chat_Started")),
		ExportedTrend:         analytics.TrendCount(exported, analytics.CountByName(prev, "Collection_Exported")),
		SharedTrend:           analytics.TrendCount(shared, analytics.CountByName(prev, "Collection_Shared")),
		CollectionsFunnel:     funnel,
		DailyData:             daily,
		URLManagement:         urls,
		Meta:                  NewMeta(r, platform, ut),
	}
}
