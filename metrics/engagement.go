package metrics

import (
	"math"
	"net/url"
	"sort"
	"strings"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

type EngagementMetrics struct {
	DAUMAURatio        float64             `json:"dauMauRatio"`
	AvgDAU             int                 `json:"avgDAU"`
	MAU                int                 `json:"mau"`
	AvgSessionDuration int                 `json:"avgSessionDuration"`
	SearchesPerUser    float64             `json:"searchesPerUser"`
	Retention          analytics.Retention `json:"retention"`
	UserBreakdown      EngagementBreakdown `json:"userBreakdown"`
	TrafficSources     []SourceCount       `json:"trafficSources"`
	UTMSources         []SourceCount       `json:"utmSources"`
	FeatureAdoption    []FeatureAdoption   `json:"featureAdoption"`
	Meta
}

type EngagementBreakdown struct {
	Total          int     `json:"total"`
	Paid           int     `json:"paid"`
	Free           int     `json:"free"`
	PaidPercentage float64 `json:"paidPercentage"`
	Guest          int     `json:"guest"`
	Authenticated  int     `json:"authenticated"`
}

type FeatureAdoption struct {
	Feature      string  `json:"feature"`
	Users        int     `json:"users"`
	AdoptionRate float64 `json:"adoptionRate"`
}

// featureAdoptionSets pairs each feature label with the event names that
// count as using it, old client names included.
var featureAdoptionSets = []struct {
	name   string
	events []string
}{
	{"Notes", []string{"Note_Created", "Notes"}},
	{"Documents", []string{"Document_Uploaded", "Documents"}},
	{"Image Generation", []string{"Image_Generation_Started", "Image Generation"}},
	{"Collections", []string{"Collection_Created", "Collections"}},
	{"Memory", []string{"Memory_Added", "AI Memory"}},
	{"Research Reports", []string{"Research_Report_Initiated", "Research_Report_Completed"}},
	{"Writing Tools", []string{"Note_Writing_Tool_Used"}},
	{"Searches", analytics.SearchEvents},
}

// isGuestID reports whether a distinct id belongs to an anonymous guest
// rather than an account.
func isGuestID(id string) bool {
	return id == "guest-user" || strings.HasPrefix(id, "guest-")
}

// referrerDomain reduces a referrer URL to its host, dropping a leading
// "www.". Unparseable or empty referrers count as direct traffic.
func referrerDomain(referrer string) string {
	if referrer == "" {
		return "direct"
	}
	u, err := url.Parse(referrer)
	if err != nil || u.Hostname() == "" {
		return "direct"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// BuildEngagement assembles the deep engagement view: stickiness, retention,
// monetization split, traffic sources and feature adoption.
func BuildEngagement(events []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) EngagementMetrics {
	allUsers := analytics.UniqueUsers(events)
	totalUsers := len(allUsers)

	byDay := analytics.UniqueUsersByDay(events)
	days := analytics.EnumerateDays(r)
	dailySum := 0
	for _, day := range days {
		dailySum += len(byDay[day])
	}
	avgDAU := 0.0
	if len(days) > 0 {
		avgDAU = float64(dailySum) / float64(len(days))
	}
	mau := totalUsers
	stickiness := 0.0
	if mau > 0 {
		stickiness = avgDAU / float64(mau)
	}

	firstOpens := analytics.FilterByName(events, analytics.FirstOpenEvents...)
	activity := analytics.FilterByName(events, analytics.ActivityEvents...)
	retention := analytics.ComputeRetention(firstOpens, activity)

	// Paid/free covers real accounts only; guests have not decided anything.
	guests := 0
	for id := range allUsers {
		if isGuestID(id) {
			guests++
		}
	}
	accountUsers := totalUsers - guests
	purchases := analytics.FilterByName(events, append([]string{"$ae_iap"}, analytics.PurchaseCompletedEvents...)...)
	paid := len(analytics.UniqueUsers(purchases))
	free := accountUsers - paid
	paidPct := 0.0
	if accountUsers > 0 {
		paidPct = 100 * float64(paid) / float64(accountUsers)
	}

	sessionish := analytics.FilterByName(events, "Session_Started", "Marketing_Session_Started", "App_Session_Started", "Page_Viewed")
	referrers := make(map[string]int)
	utms := make(map[string]int)
	for _, e := range sessionish {
		referrers[referrerDomain(e.Properties.Str("referrer"))]++
		if utm := e.Properties.Str("utm_source"); utm != "" {
			utms[utm]++
		}
	}
	trafficSources := topSources(referrers, 10)
	utmSources := topSources(utms, 10)

	var durationSum float64
	durationCount := 0
	for _, e := range analytics.FilterByName(events, "$ae_session", "App_Session_Started", "Marketing_Session_Started") {
		// Sessions over two hours are almost always backgrounded apps, not
		// engagement.
		if d := e.Properties.Num("$ae_session_length"); d > 0 && d < 7200 {
			durationSum += d
			durationCount++
		}
	}
	avgDuration := 0.0
	if durationCount > 0 {
		avgDuration = durationSum / float64(durationCount)
	}

	searches := analytics.CountByName(events, analytics.SearchEvents...)
	searchesPerUser := 0.0
	if totalUsers > 0 {
		searchesPerUser = float64(searches) / float64(totalUsers)
	}

	adoption := make([]FeatureAdoption, 0, len(featureAdoptionSets))
	for _, set := range featureAdoptionSets {
		users := len(analytics.UniqueUsersFor(events, set.events...))
		rate := 0.0
		if totalUsers > 0 {
			rate = 100 * float64(users) / float64(totalUsers)
		}
		adoption = append(adoption, FeatureAdoption{Feature: set.name, Users: users, AdoptionRate: rate})
	}
	sortAdoption(adoption)

	return EngagementMetrics{
		DAUMAURatio:        math.Round(stickiness*100) / 100,
		AvgDAU:             int(math.Round(avgDAU)),
		MAU:                mau,
		AvgSessionDuration: int(math.Round(avgDuration)),
		SearchesPerUser:    analytics.Round1(searchesPerUser),
		Retention:          retention,
		UserBreakdown: EngagementBreakdown{
			Total:          totalUsers,
			Paid:           paid,
			Free:           free,
			PaidPercentage: analytics.Round1(paidPct),
			Guest:          guests,
			Authenticated:  totalUsers - guests,
		},
		TrafficSources:  trafficSources,
		UTMSources:      utmSources,
		FeatureAdoption: adoption,
		Meta:            NewMeta(r, platform, ut),
	}
}

func topSources(counts map[string]int, limit int) []SourceCount {
	buckets := analytics.SortedDistribution(counts)
	if len(buckets) > limit {
		buckets = buckets[:limit]
	}
	out := make([]SourceCount, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, SourceCount{Source: b.Name, Count: b.Count})
	}
	return out
}

func sortAdoption(adoption []FeatureAdoption) {
	sort.Slice(adoption, func(i, j int) bool {
		return adoption[i].AdoptionRate > adoption[j].AdoptionRate
	})
}
