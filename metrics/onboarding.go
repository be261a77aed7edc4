package metrics

import (
	"strings"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

type OnboardingMetrics struct {
	Funnel            []analytics.FunnelStep `json:"funnel"`
	FunnelLabel       string                 `json:"funnelLabel"`
	SignupsOverTime   []DateCount            `json:"signupsOverTime"`
	FirstOpenToSignup []DayBucket            `json:"firstOpenToSignup"`
	TotalFirstStep    int                    `json:"totalFirstStep"`
	TotalSignups      int                    `json:"totalSignups"`
	ConversionRate    float64                `json:"conversionRate"`
	Meta
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DayBucket struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// signupPageView reports whether an event is a view of a signup-shaped page.
// The web client has no dedicated signup-screen event, so page URLs are the
// closest available proxy.
func signupPageView(e models.Event) bool {
	if e.Name != "Page_Viewed" {
		return false
	}
	page := e.Properties.Str("page")
	if page == "" {
		page = e.Properties.Str("$current_url")
	}
	page = strings.ToLower(page)
	for _, marker := range []string{"sign", "register", "auth", "try"} {
		if strings.Contains(page, marker) {
			return true
		}
	}
	return false
}

// BuildOnboarding assembles the signup funnel for one platform group. Each
// group gets its own funnel shape: mobile runs through onboarding screens,
// macOS has none, and web starts from marketing site visits.
func BuildOnboarding(events []models.Event, group string, r analytics.DateRange, ut analytics.UserType) OnboardingMetrics {
	groupEvents := analytics.FilterByGroup(events, group)

	signedUp := len(analytics.UniqueUsersFor(groupEvents, analytics.SignupEvents...))
	subscribed := len(analytics.UniqueUsersFor(groupEvents, analytics.PurchaseCompletedEvents...))

	var funnel []analytics.FunnelStep
	var label string
	switch group {
	case analytics.GroupWeb:
		visitors := len(analytics.UniqueUsers(groupEvents))
		signupPageUsers := make(map[string]struct{})
		for _, e := range groupEvents {
			if signupPageView(e) {
				signupPageUsers[e.UserID()] = struct{}{}
			}
		}
		funnel = analytics.BuildFunnel([]analytics.StepCount{
			{Name: "Site Visitors", Count: visitors},
			{Name: "Viewed Sign Up", Count: len(signupPageUsers)},
			{Name: "Account Created", Count: signedUp},
			{Name: "Subscribed", Count: subscribed},
		})
		label = "Web: Marketing site to subscription"
	case analytics.GroupMacOS:
		firstOpen := len(analytics.UniqueUsersFor(groupEvents, analytics.FirstOpenEvents...))
		funnel = analytics.BuildFunnel([]analytics.StepCount{
			{Name: "First Open", Count: firstOpen},
			{Name: "Signed Up", Count: signedUp},
			{Name: "Subscribed", Count: subscribed},
		})
		label = "macOS: First open to subscription (no onboarding)"
	default:
		firstOpen := len(analytics.UniqueUsersFor(groupEvents, analytics.FirstOpenEvents...))
		onboarding := len(analytics.UniqueUsersFor(groupEvents, "Onboarding"))
		funnel = analytics.BuildFunnel([]analytics.StepCount{
			{Name: "First Open", Count: firstOpen},
			{Name: "Started Onboarding", Count: onboarding},
			{Name: "Signed Up", Count: signedUp},
			{Name: "Subscribed", Count: subscribed},
		})
		label = "Mobile: First open to subscription"
	}

	signupsByDay := analytics.UniqueUsersByDayFor(groupEvents, analytics.SignupEvents...)
	days := analytics.EnumerateDays(r)
	signupsOverTime := make([]DateCount, 0, len(days))
	for _, day := range days {
		signupsOverTime = append(signupsOverTime, DateCount{Date: day, Count: signupsByDay[day]})
	}

	var firstOpenToSignup []DayBucket
	if group != analytics.GroupWeb {
		firstOpenToSignup = firstOpenToSignupBuckets(groupEvents)
	}

	totalFirstStep := 0
	if len(funnel) > 0 {
		totalFirstStep = funnel[0].Count
	}
	conversionRate := 0.0
	if totalFirstStep > 0 {
		conversionRate = float64(signedUp) / float64(totalFirstStep)
	}

	return OnboardingMetrics{
		Funnel:            funnel,
		FunnelLabel:       label,
		SignupsOverTime:   signupsOverTime,
		FirstOpenToSignup: firstOpenToSignup,
		TotalFirstStep:    totalFirstStep,
		TotalSignups:      signedUp,
		ConversionRate:    conversionRate,
		Meta:              NewMeta(r, group, ut),
	}
}

// firstOpenToSignupBuckets histograms, per user, the days between first open
// and first signup. Users who signed up before their recorded first open
// (restored accounts on new devices) are excluded.
func firstOpenToSignupBuckets(events []models.Event) []DayBucket {
	firstOpen := earliestByUser(analytics.FilterByName(events, analytics.FirstOpenEvents...))
	firstSignup := earliestByUser(analytics.FilterByName(events, analytics.SignupEvents...))

	buckets := []DayBucket{
		{Day: "Same day"},
		{Day: "Day 1"},
		{Day: "Day 2-3"},
		{Day: "Day 4-7"},
		{Day: "Day 8+"},
	}
	for user, signupAt := range firstSignup {
		openAt, ok := firstOpen[user]
		if !ok {
			continue
		}
		diff := (signupAt - openAt) / 86400
		switch {
		case signupAt < openAt:
		case diff == 0:
			buckets[0].Count++
		case diff == 1:
			buckets[1].Count++
		case diff <= 3:
			buckets[2].Count++
		case diff <= 7:
			buckets[3].Count++
		default:
			buckets[4].Count++
		}
	}
	return buckets
}

func earliestByUser(events []models.Event) map[string]int64 {
	earliest := make(map[string]int64)
	for _, e := range events {
		id := e.UserID()
		if t, ok := earliest[id]; !ok || e.Unix() < t {
			earliest[id] = e.Unix()
		}
	}
	return earliest
}
