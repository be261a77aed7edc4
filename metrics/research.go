package metrics

import (
	"math"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

var researchEvents = []string{
	"Research_Report_Initiated",
	"Research_Report_Completed",
	"Research_Report_Viewed",
	"Research_Report_Deleted",
	"Research_Report_Exported",
	"Research_History_Viewed",
	"Research_Settings_Changed",
	"Research_Report_Added_To_Collection",
	"Research_Report_Filtered",
	"Research_Report_Shared",
	"Research_Published",
}

// reportTypes are the selectable report formats tracked per day.
var reportTypes = []string{"deep", "research_report", "detailed_report", "outline_report", "resource_report"}

type ResearchMetrics struct {
	TotalReportsInitiated     int                      `json:"totalReportsInitiated"`
	TotalReportsCompleted     int                      `json:"totalReportsCompleted"`
	CompletionRate            float64                  `json:"completionRate"`
	TotalReportsViewed        int                      `json:"totalReportsViewed"`
	TotalExports              int                      `json:"totalExports"`
	TotalShares               int                      `json:"totalShares"`
	UniqueResearchUsers       int                      `json:"uniqueResearchUsers"`
	InitiatedTrend            *float64                 `json:"initiatedTrend"`
	CompletedTrend            *float64                 `json:"completedTrend"`
	ViewedTrend               *float64                 `json:"viewedTrend"`
	ExportsTrend              *float64                 `json:"exportsTrend"`
	SharesTrend               *float64                 `json:"sharesTrend"`
	ReportTypeDistribution    []NameValue              `json:"reportTypeDistribution"`
	ResearchFunnel            []analytics.FunnelStep   `json:"researchFunnel"`
	DailyData                 []ResearchDay            `json:"dailyData"`
	ReportTypeOverTime        []map[string]interface{} `json:"reportTypeOverTime"`
	TonePreferences           []NameValue              `json:"tonePreferences"`
	CitationFormatPreferences []FormatCount            `json:"citationFormatPreferences"`
	ExportFormatDistribution  []NameValue              `json:"exportFormatDistribution"`
	AverageSourceCount        int                      `json:"averageSourceCount"`
	AverageWordCount          int                      `json:"averageWordCount"`
	Meta
}

type ResearchDay struct {
	Date      string `json:"date"`
	Initiated int    `json:"initiated"`
	Completed int    `json:"completed"`
	Viewed    int    `json:"viewed"`
}

type FormatCount struct {
	Format string `json:"format"`
	Count  int    `json:"count"`
}

// BuildResearch assembles the research reports view.
func BuildResearch(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) ResearchMetrics {
	research := analytics.FilterByName(events, researchEvents...)
	prev := analytics.FilterByName(previous, researchEvents...)

	initiated := analytics.CountByName(research, "Research_Report_Initiated")
	completed := analytics.CountByName(research, "Research_Report_Completed")
	viewed := analytics.CountByName(research, "Research_Report_Viewed")
	exports := analytics.CountByName(research, "Research_Report_Exported")
	shares := analytics.CountByName(research, "Research_Report_Shared")

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Initiated", Count: initiated},
		{Name: "Completed", Count: completed},
		{Name: "Viewed", Count: viewed},
		{Name: "Exported/Shared", Count: exports + shares},
	})

	initiatedEvents := analytics.FilterByName(research, "Research_Report_Initiated")
	completedEvents := analytics.FilterByName(research, "Research_Report_Completed")
	exportEvents := analytics.FilterByName(research, "Research_Report_Exported")

	initiatedByDay := analytics.CountByDay(research, "Research_Report_Initiated")
	completedByDay := analytics.CountByDay(research, "Research_Report_Completed")
	viewedByDay := analytics.CountByDay(research, "Research_Report_Viewed")

	// Per-day report_type counts for the initiated events.
	typeByDay := make(map[string]map[string]int)
	for _, e := range initiatedEvents {
		day := e.Day()
		if typeByDay[day] == nil {
			typeByDay[day] = make(map[string]int)
		}
		typeByDay[day][e.Properties.Stringify("report_type")]++
	}

	days := analytics.EnumerateDays(r)
	daily := make([]ResearchDay, 0, len(days))
	typeOverTime := make([]map[string]interface{}, 0, len(days))
	for _, day := range days {
		daily = append(daily, ResearchDay{
			Date:      day,
			Initiated: initiatedByDay[day],
			Completed: completedByDay[day],
			Viewed:    viewedByDay[day],
		})
		row := map[string]interface{}{"date": day}
		for _, t := range reportTypes {
			row[t] = typeByDay[day][t]
		}
		typeOverTime = append(typeOverTime, row)
	}

	citations := make([]FormatCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(initiatedEvents, "citation_format")) {
		citations = append(citations, FormatCount{Format: b.Name, Count: b.Count})
	}

	completionRate := 0.0
	if initiated > 0 {
		completionRate = 100 * float64(completed) / float64(initiated)
	}

	avgSources := 0
	avgWords := 0
	if len(completedEvents) > 0 {
		avgSources = int(math.Round(analytics.AverageProperty(completedEvents, "source_count")))
		avgWords = int(math.Round(analytics.AverageProperty(completedEvents, "word_count")))
	}

	return ResearchMetrics{
		TotalReportsInitiated:     initiated,
		TotalReportsCompleted:     completed,
		CompletionRate:            completionRate,
		TotalReportsViewed:        viewed,
		TotalExports:              exports,
		TotalShares:               shares,
		UniqueResearchUsers:       len(analytics.UniqueUsers(research)),
		InitiatedTrend:            analytics.TrendCount(initiated, analytics.CountByName(prev, "Research_Report_Initiated")),
		CompletedTrend:            analytics.TrendCount(completed, analytics.CountByName(prev, "Research_Report_Completed")),
		ViewedTrend:               analytics.TrendCount(viewed, analytics.CountByName(prev, "Research_Report_Viewed")),
		ExportsTrend:              analytics.TrendCount(exports, analytics.CountByName(prev, "Research_Report_Exported")),
		SharesTrend:               analytics.TrendCount(shares, analytics.CountByName(prev, "Research_Report_Shared")),
		ReportTypeDistribution:    nameValues(analytics.SortedDistribution(analytics.PropertyDistribution(initiatedEvents, "report_type"))),
		ResearchFunnel:            funnel,
		DailyData:                 daily,
		ReportTypeOverTime:        typeOverTime,
		TonePreferences:           nameValues(analytics.SortedDistribution(analytics.PropertyDistribution(initiatedEvents, "tone"))),
		CitationFormatPreferences: citations,
		ExportFormatDistribution:  nameValues(analytics.SortedDistribution(analytics.PropertyDistribution(exportEvents, "format"))),
		AverageSourceCount:        avgSources,
		AverageWordCount:          avgWords,
		Meta:                      NewMeta(r, platform, ut),
	}
}
