package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

type SearchesMetrics struct {
	SearchesOverTime   []SearchesDay       `json:"searchesOverTime"`
	SearchModes        []ModeCount         `json:"searchModes"`
	ModelsUsed         []ModelCount        `json:"modelsUsed"`
	ContextUsage       []ContextUsage      `json:"contextUsage"`
	HourlyDistribution []HourCount         `json:"hourlyDistribution"`
	TotalSearches      int                 `json:"totalSearches"`
	DateRange          analytics.DateRange `json:"dateRange"`
	Platform           string              `json:"platform"`
	LastUpdated        string              `json:"lastUpdated"`
}

type SearchesDay struct {
	Date     string `json:"date"`
	Searches int    `json:"searches"`
}

type ModeCount struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

type ModelCount struct {
	Model string `json:"model"`
	Count int    `json:"count"`
}

type ContextUsage struct {
	HasContext bool `json:"hasContext"`
	Count      int  `json:"count"`
}

// BuildSearches assembles the search behavior view. Searches missing a mode
// ran the default "Auto" mode, and a missing model means the default model.
func BuildSearches(events []models.Event, r analytics.DateRange, platform string) SearchesMetrics {
	searches := analytics.FilterByName(events, analytics.SearchEvents...)

	byDay := analytics.CountByDay(searches)
	days := analytics.EnumerateDays(r)
	overTime := make([]SearchesDay, 0, len(days))
	for _, day := range days {
		overTime = append(overTime, SearchesDay{Date: day, Searches: byDay[day]})
	}

	modeDist := make(map[string]int)
	modelDist := make(map[string]int)
	withContext := 0
	for _, e := range searches {
		mode := e.Properties.Str("search_mode")
		if mode == "" {
			mode = "Auto"
		}
		modeDist[mode]++
		model := e.Properties.Str("model_used")
		if model == "" {
			model = "Default"
		}
		modelDist[model]++
		if e.Properties.Bool("has_context") {
			withContext++
		}
	}

	modes := make([]ModeCount, 0, len(modeDist))
	for _, b := range analytics.SortedDistribution(modeDist) {
		modes = append(modes, ModeCount{Mode: b.Name, Count: b.Count})
	}
	modelCounts := make([]ModelCount, 0, len(modelDist))
	for _, b := range analytics.SortedDistribution(modelDist) {
		modelCounts = append(modelCounts, ModelCount{Model: b.Name, Count: b.Count})
	}

	hourCounts := analytics.HourlyDistribution(searches)
	hourly := make([]HourCount, 0, len(hourCounts))
	for hour, count := range hourCounts {
		hourly = append(hourly, HourCount{Hour: hour, Count: count})
	}

	meta := NewMeta(r, platform, analytics.UserTypeAll)
	return SearchesMetrics{
		SearchesOverTime: overTime,
		SearchModes:      modes,
		ModelsUsed:       modelCounts,
		ContextUsage: []ContextUsage{
			{HasContext: true, Count: withContext},
			{HasContext: false, Count: len(searches) - withContext},
		},
		HourlyDistribution: hourly,
		TotalSearches:      len(searches),
		DateRange:          meta.DateRange,
		Platform:           meta.Platform,
		LastUpdated:        meta.LastUpdated,
	}
}
