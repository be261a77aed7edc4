package metrics

import (
	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// AcquisitionMetrics traces the path from a marketing visit to a paying
// subscriber. The funnel counts unique users per stage, never raw events.
type AcquisitionMetrics struct {
	Funnel          []analytics.FunnelStep     `json:"funnel"`
	DailyData       []AcquisitionDay           `json:"dailyData"`
	ConversionRates AcquisitionConversionRates `json:"conversionRates"`
	Meta
}

type AcquisitionDay struct {
	Date       string `json:"date"`
	Marketing  int    `json:"marketing"`
	Guest      int    `json:"guest"`
	Signup     int    `json:"signup"`
	Subscriber int    `json:"subscriber"`
}

type AcquisitionConversionRates struct {
	MarketingToGuest             float64 `json:"marketingToGuest"`
	GuestToSignup                float64 `json:"guestToSignup"`
	SignupToSubscriber           float64 `json:"signupToSubscriber"`
	OverallMarketingToSubscriber float64 `json:"overallMarketingToSubscriber"`
}

// guestTrial matches a guest trying the app: an app session tagged as a
// guest user, or explicit guest activity.
func guestTrial(e models.Event) bool {
	if e.Name == "Guest_Activity" {
		return true
	}
	return e.Name == "App_Session_Started" && e.Properties.Str("user_type") == "guest"
}

func filterGuestTrial(events []models.Event) []models.Event {
	var out []models.Event
	for _, e := range events {
		if guestTrial(e) {
			out = append(out, e)
		}
	}
	return out
}

// BuildAcquisition assembles the acquisition funnel view.
func BuildAcquisition(events []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) AcquisitionMetrics {
	marketing := len(analytics.UniqueUsersFor(events, "Marketing_Session_Started"))
	guests := len(analytics.UniqueUsers(filterGuestTrial(events)))
	signups := len(analytics.UniqueUsersFor(events, "Signup_Completed"))
	subscribers := len(analytics.UniqueUsersFor(events, "Purchase_Completed"))

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Marketing Visit", Count: marketing},
		{Name: "Guest Trial", Count: guests},
		{Name: "Account Created", Count: signups},
		{Name: "Subscriber", Count: subscribers},
	})

	marketingByDay := analytics.UniqueUsersByDayFor(events, "Marketing_Session_Started")
	guestByDay := analytics.UniqueUsersByDay(filterGuestTrial(events))
	signupByDay := analytics.UniqueUsersByDayFor(events, "Signup_Completed")
	subscriberByDay := analytics.UniqueUsersByDayFor(events, "Purchase_Completed")

	days := analytics.EnumerateDays(r)
	daily := make([]AcquisitionDay, 0, len(days))
	for _, day := range days {
		daily = append(daily, AcquisitionDay{
			Date:       day,
			Marketing:  marketingByDay[day],
			Guest:      len(guestByDay[day]),
			Signup:     signupByDay[day],
			Subscriber: subscriberByDay[day],
		})
	}

	return AcquisitionMetrics{
		Funnel:    funnel,
		DailyData: daily,
		ConversionRates: AcquisitionConversionRates{
			MarketingToGuest:             analytics.Rate(guests, marketing),
			GuestToSignup:                analytics.Rate(signups, guests),
			SignupToSubscriber:           analytics.Rate(subscribers, signups),
			OverallMarketingToSubscriber: analytics.Rate(subscribers, marketing),
		},
		Meta: NewMeta(r, platform, ut),
	}
}
