package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

var marketingEvents = []string{
	"Try_For_Free_Clicked",
	"Create_Account_Clicked",
	"Feature_Page_Visited",
	"Guest_Signup_Prompt",
	"Feature_Limit_Reached",
	"Paywall_Dismissed",
	"Paywall Dismissed",
	"Marketing_Session_Started",
}

type MarketingMetrics struct {
	TotalCTAClicks                int                    `json:"totalCTAClicks"`
	TryForFreeClicks              int                    `json:"tryForFreeClicks"`
	CreateAccountClicks           int                    `json:"createAccountClicks"`
	FeaturePagesVisited           int                    `json:"featurePagesVisited"`
	GuestSignupPrompts            int                    `json:"guestSignupPrompts"`
	PaywallDismissals             int                    `json:"paywallDismissals"`
	FeatureLimitReached           int                    `json:"featureLimitReached"`
	MarketingSessions             int                    `json:"marketingSessions"`
	CTAClicksTrend                *float64               `json:"ctaClicksTrend"`
	FeaturePagesTrend             *float64               `json:"featurePagesTrend"`
	GuestPromptsTrend             *float64               `json:"guestPromptsTrend"`
	PaywallDismissalsTrend        *float64               `json:"paywallDismissalsTrend"`
	CTASourceDistribution         []SourceCount          `json:"ctaSourceDistribution"`
	FeaturePageDistribution       []PageCount            `json:"featurePageDistribution"`
	FeatureLimitDistribution      []FeatureCount         `json:"featureLimitDistribution"`
	GuestPromptSourceDistribution []SourceCount          `json:"guestPromptSourceDistribution"`
	DailyData                     []MarketingDay         `json:"dailyData"`
	MarketingCTAFunnel            []analytics.FunnelStep `json:"marketingCTAFunnel"`
	Meta
}

type MarketingDay struct {
	Date          string `json:"date"`
	TryFree       int    `json:"tryFree"`
	CreateAccount int    `json:"createAccount"`
	FeaturePages  int    `json:"featurePages"`
	GuestPrompts  int    `json:"guestPrompts"`
}

type PageCount struct {
	Page  string `json:"page"`
	Count int    `json:"count"`
}

type FeatureCount struct {
	Feature string `json:"feature"`
	Count   int    `json:"count"`
}

// BuildMarketing assembles the marketing site view: CTA performance, guest
// conversion pressure points and the session-to-prompt funnel.
func BuildMarketing(events, previous []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) MarketingMetrics {
	mkt := analytics.FilterByName(events, marketingEvents...)
	prev := analytics.FilterByName(previous, marketingEvents...)

	tryFree := analytics.CountByName(mkt, "Try_For_Free_Clicked")
	createAccount := analytics.CountByName(mkt, "Create_Account_Clicked")
	ctaClicks := tryFree + createAccount
	featurePages := analytics.CountByName(mkt, "Feature_Page_Visited")
	guestPrompts := analytics.CountByName(mkt, "Guest_Signup_Prompt")
	dismissals := analytics.CountByName(mkt, analytics.PaywallDismissedEvents...)
	limitReached := analytics.CountByName(mkt, "Feature_Limit_Reached")
	sessions := analytics.CountByName(mkt, "Marketing_Session_Started")

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Marketing Sessions", Count: sessions},
		{Name: "CTA Clicked", Count: ctaClicks},
		{Name: "Feature Pages Visited", Count: featurePages},
		{Name: "Guest Signup Prompts", Count: guestPrompts},
	})

	ctaEvents := analytics.FilterByName(mkt, "Try_For_Free_Clicked", "Create_Account_Clicked")

	ctaSources := make([]SourceCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(ctaEvents, "source")) {
		ctaSources = append(ctaSources, SourceCount{Source: b.Name, Count: b.Count})
	}
	pages := make([]PageCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(analytics.FilterByName(mkt, "Feature_Page_Visited"), "page")) {
		pages = append(pages, PageCount{Page: b.Name, Count: b.Count})
	}
	limits := make([]FeatureCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(analytics.FilterByName(mkt, "Feature_Limit_Reached"), "feature")) {
		limits = append(limits, FeatureCount{Feature: b.Name, Count: b.Count})
	}
	promptSources := make([]SourceCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(analytics.FilterByName(mkt, "Guest_Signup_Prompt"), "source")) {
		promptSources = append(promptSources, SourceCount{Source: b.Name, Count: b.Count})
	}

	tryFreeByDay := analytics.CountByDay(mkt, "Try_For_Free_Clicked")
	createByDay := analytics.CountByDay(mkt, "Create_Account_Clicked")
	pagesByDay := analytics.CountByDay(mkt, "Feature_Page_Visited")
	promptsByDay := analytics.CountByDay(mkt, "Guest_Signup_Prompt")

	days := analytics.EnumerateDays(r)
	daily := make([]MarketingDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, MarketingDay{
			Date:          day,
			TryFree:       tryFreeByDay[day],
			CreateAccount: createByDay[day],
			FeaturePages:  pagesByDay[day],
			GuestPrompts:  promptsByDay[day],
		})
	}

	prevCTA := analytics.CountByName(prev, "Try_For_Free_Clicked") + analytics.CountByName(prev, "Create_Account_Clicked")

	return MarketingMetrics{
		TotalCTAClicks:                ctaClicks,
		TryForFreeClicks:              tryFree,
		CreateAccountClicks:           createAccount,
		FeaturePagesVisited:           featurePages,
		GuestSignupPrompts:            guestPrompts,
		PaywallDismissals:             dismissals,
		FeatureLimitReached:           limitReached,
		MarketingSessions:             sessions,
		CTAClicksTrend:                analytics.TrendCount(ctaClicks, prevCTA),
		FeaturePagesTrend:             analytics.TrendCount(featurePages, analytics.CountByName(prev, "Feature_Page_Visited")),
		GuestPromptsTrend:             analytics.TrendCount(guestPrompts, analytics.CountByName(prev, "Guest_Signup_Prompt")),
		PaywallDismissalsTrend:        analytics.TrendCount(dismissals, analytics.CountByName(prev, analytics.PaywallDismissedEvents...)),
		CTASourceDistribution:         ctaSources,
		FeaturePageDistribution:       pages,
		FeatureLimitDistribution:      limits,
		GuestPromptSourceDistribution: promptSources,
		DailyData:                     daily,
		MarketingCTAFunnel:            funnel,
		Meta:                          NewMeta(r, platform, ut),
	}
}
