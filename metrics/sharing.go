package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// Share creation events fire in the main app; shared-page views and save
// clicks fire on the public share pages.
var (
	shareCreationEvents = []string{"Note_Shared", "Conversation_Shared", "Research_Report_Shared", "Collection_Shared"}
	sharedViewEvents    = []string{"Shared_Note_Viewed", "Shared_Conversation_Viewed", "Shared_Research_Viewed"}
	saveClickEvents     = []string{"Save_To_Chunk_Clicked"}
)

type SharingMetrics struct {
	TotalNotesShared             int                    `json:"totalNotesShared"`
	TotalConversationsShared     int                    `json:"totalConversationsShared"`
	TotalResearchShared          int                    `json:"totalResearchShared"`
	TotalCollectionsShared       int                    `json:"totalCollectionsShared"`
	TotalSharedNoteViews         int                    `json:"totalSharedNoteViews"`
	TotalSharedConversationViews int                    `json:"totalSharedConversationViews"`
	TotalSharedResearchViews     int                    `json:"totalSharedResearchViews"`
	TotalSaveToChunkClicks       int                    `json:"totalSaveToChunkClicks"`
	NoteSharedTrend              *float64               `json:"noteSharedTrend"`
	ConversationSharedTrend      *float64               `json:"conversationSharedTrend"`
	ResearchSharedTrend          *float64               `json:"researchSharedTrend"`
	SharedViewsTrend             *float64               `json:"sharedViewsTrend"`
	SaveClickTrend               *float64               `json:"saveClickTrend"`
	ViewToShareRatio             float64                `json:"viewToShareRatio"`
	SaveToChunkClickRate         float64                `json:"saveToChunkClickRate"`
	SharesCreatedOverTime        []SharesDay            `json:"sharesCreatedOverTime"`
	SharedViewsOverTime          []SharedViewsDay       `json:"sharedViewsOverTime"`
	SharingFunnel                []analytics.FunnelStep `json:"sharingFunnel"`
	ContentTypeDistribution      []NameValue            `json:"contentTypeDistribution"`
	ViewToShareByType            []ViewShareRatio       `json:"viewToShareByType"`
	Meta
}

type SharesDay struct {
	Date         string `json:"date"`
	Note         int    `json:"note"`
	Conversation int    `json:"conversation"`
	Research     int    `json:"research"`
	Collection   int    `json:"collection"`
}

type SharedViewsDay struct {
	Date         string `json:"date"`
	Note         int    `json:"note"`
	Conversation int    `json:"conversation"`
	Research     int    `json:"research"`
}

type ViewShareRatio struct {
	Type   string  `json:"type"`
	Shares int     `json:"shares"`
	Views  int     `json:"views"`
	Ratio  float64 `json:"ratio"`
}

func ratio(views, shares int) float64 {
	if shares <= 0 {
		return 0
	}
	return float64(views) / float64(shares)
}

// BuildSharing assembles the sharing view: content shared out of the app,
// views of the public share pages and the save-to-account clicks they drive.
func BuildSharing(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) SharingMetrics {
	creation := analytics.FilterByName(events, shareCreationEvents...)
	views := analytics.FilterByName(events, sharedViewEvents...)
	clicks := analytics.FilterByName(events, saveClickEvents...)

	notesShared := analytics.CountByName(creation, "Note_Shared")
	convosShared := analytics.CountByName(creation, "Conversation_Shared")
	researchShared := analytics.CountByName(creation, "Research_Report_Shared")
	collectionsShared := analytics.CountByName(creation, "Collection_Shared")

	noteViews := analytics.CountByName(views, "Shared_Note_Viewed")
	convoViews := analytics.CountByName(views, "Shared_Conversation_Viewed")
	researchViews := analytics.CountByName(views, "Shared_Research_Viewed")

	saveClicks := len(clicks)
	totalShares := notesShared + convosShared + researchShared + collectionsShared
	totalViews := noteViews + convoViews + researchViews

	prevCreation := analytics.FilterByName(previous, shareCreationEvents...)
	prevViews := analytics.FilterByName(previous, sharedViewEvents...)
	prevClicks := analytics.FilterByName(previous, saveClickEvents...)

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Shared", Count: totalShares},
		{Name: "Viewed", Count: totalViews},
		{Name: "Save Clicked", Count: saveClicks},
	})

	noteByDay := analytics.CountByDay(creation, "Note_Shared")
	convoByDay := analytics.CountByDay(creation, "Conversation_Shared")
	researchByDay := analytics.CountByDay(creation, "Research_Report_Shared")
	collectionByDay := analytics.CountByDay(creation, "Collection_Shared")
	noteViewsByDay := analytics.CountByDay(views, "Shared_Note_Viewed")
	convoViewsByDay := analytics.CountByDay(views, "Shared_Conversation_Viewed")
	researchViewsByDay := analytics.CountByDay(views, "Shared_Research_Viewed")

	days := analytics.EnumerateDays(r)
	sharesOverTime := make([]SharesDay, 0, len(days))
	viewsOverTime := make([]SharedViewsDay, 0, len(days))
	for _, day := range days {
		sharesOverTime = append(sharesOverTime, SharesDay{
			Date:         day,
			Note:         noteByDay[day],
			Conversation: convoByDay[day],
			Research:     researchByDay[day],
			Collection:   collectionByDay[day],
		})
		viewsOverTime = append(viewsOverTime, SharedViewsDay{
			Date:         day,
			Note:         noteViewsByDay[day],
			Conversation: convoViewsByDay[day],
			Research:     researchViewsByDay[day],
		})
	}

	// Zero-share content types are dropped from the pie chart.
	contentTypes := make([]NameValue, 0, 4)
	for _, nv := range []NameValue{
		{Name: "Notes", Value: notesShared},
		{Name: "Conversations", Value: convosShared},
		{Name: "Research", Value: researchShared},
		{Name: "Collections", Value: collectionsShared},
	} {
		if nv.Value > 0 {
			contentTypes = append(contentTypes, nv)
		}
	}

	prevTotalViews := analytics.CountByName(prevViews, "Shared_Note_Viewed") +
		analytics.CountByName(prevViews, "Shared_Conversation_Viewed") +
		analytics.CountByName(prevViews, "Shared_Research_Viewed")

	return SharingMetrics{
		TotalNotesShared:             notesShared,
		TotalConversationsShared:     convosShared,
		TotalResearchShared:          researchShared,
		TotalCollectionsShared:       collectionsShared,
		TotalSharedNoteViews:         noteViews,
		TotalSharedConversationViews: convoViews,
		TotalSharedResearchViews:     researchViews,
		TotalSaveToChunkClicks:       saveClicks,
		NoteSharedTrend:              analytics.TrendCount(notesShared, analytics.CountByName(prevCreation, "Note_Shared")),
		ConversationSharedTrend:      analytics.TrendCount(convosShared, analytics.CountByName(prevCreation, "Conversation_Shared")),
		ResearchSharedTrend:          analytics.TrendCount(researchShared, analytics.CountByName(prevCreation, "Research_Report_Shared")),
		SharedViewsTrend:             analytics.TrendCount(totalViews, prevTotalViews),
		SaveClickTrend:               analytics.TrendCount(saveClicks, len(prevClicks)),
		ViewToShareRatio:             ratio(totalViews, totalShares),
		SaveToChunkClickRate:         ratio(saveClicks, totalViews),
		SharesCreatedOverTime:        sharesOverTime,
		SharedViewsOverTime:          viewsOverTime,
		SharingFunnel:                funnel,
		ContentTypeDistribution:      contentTypes,
		ViewToShareByType: []ViewShareRatio{
			{Type: "Notes", Shares: notesShared, Views: noteViews, Ratio: ratio(noteViews, notesShared)},
			{Type: "Conversations", Shares: convosShared, Views: convoViews, Ratio: ratio(convoViews, convosShared)},
			{Type: "Research", Shares: researchShared, Views: researchViews, Ratio: ratio(researchViews, researchShared)},
		},
		Meta: NewMeta(r, platform, ut),
	}
}
