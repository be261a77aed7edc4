package metrics

import (
	"sort"
	"strings"

	"chunkmetrics/api/analytics"
	"chunkmetrics/api/models"
)

// SubscriptionMetrics covers the paywall-to-purchase journey: the purchase
// funnel (by raw event counts), revenue estimates, trial conversion and the
// failure/dismissal breakdowns.
type SubscriptionMetrics struct {
	Funnel            []analytics.FunnelStep `json:"funnel"`
	RevenueByPlan     []PlanRevenue          `json:"revenueByPlan"`
	TrialConversion   TrialConversion        `json:"trialConversion"`
	FailedPurchases   []FailedPurchase       `json:"failedPurchases"`
	PaywallSources    []SourceCount          `json:"paywallSources"`
	PaywallDismissed  int                    `json:"paywallDismissed"`
	PurchaseCancelled int                    `json:"purchaseCancelled"`
	Meta
}

type PlanRevenue struct {
	Plan      string  `json:"plan"`
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
	Estimated bool    `json:"estimated"`
}

type TrialConversion struct {
	Converted    int `json:"converted"`
	NotConverted int `json:"notConverted"`
}

type FailedPurchase struct {
	Error string `json:"error"`
	Count int    `json:"count"`
}

type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// planPrices is the fallback price table used when a purchase event does
// not carry its own price property.
var planPrices = map[string]float64{
	"weekly":  2.99,
	"monthly": 9.99,
	"annual":  49.99,
	"yearly":  49.99,
}

// BuildSubscriptions assembles the subscription funnel view.
func BuildSubscriptions(events []models.Event, r analytics.DateRange, platform string, ut analytics.UserType) SubscriptionMetrics {
	paywallViewed := analytics.CountByName(events, analytics.PaywallViewedEvents...)
	planSelected := analytics.CountByName(events, "Plan Selected", "Plan_Selected")
	purchaseInitiated := analytics.CountByName(events, "Purchase Initiated", "Purchase_Initiated")

	// Purchases by users who also had a failed purchase in the window are
	// treated as retries and excluded from the completed step.
	failedUsers := analytics.UniqueUsersFor(events, "Purchase Failed", "Purchase_Failed")
	completedEvents := make([]models.Event, 0)
	for _, e := range analytics.FilterByName(events, analytics.PurchaseCompletedEvents...) {
		if _, failed := failedUsers[e.UserID()]; !failed {
			completedEvents = append(completedEvents, e)
		}
	}

	funnel := analytics.BuildFunnel([]analytics.StepCount{
		{Name: "Paywall Viewed", Count: paywallViewed},
		{Name: "Plan Selected", Count: planSelected},
		{Name: "Purchase Initiated", Count: purchaseInitiated},
		{Name: "Purchase Completed", Count: len(completedEvents)},
	})

	// Revenue by plan: the recorded price when present, the price table
	// otherwise; rows carrying any estimated price are flagged.
	allCompleted := analytics.FilterByName(events, analytics.PurchaseCompletedEvents...)
	revenueByPlan := revenueByPlanType(allCompleted)

	// Trial conversion: users on trial who went on to a clean purchase.
	trialUsers := make(map[string]struct{})
	for _, e := range events {
		if e.Properties.Bool("has_trial") {
			trialUsers[e.UserID()] = struct{}{}
		}
	}
	purchasedUsers := analytics.UniqueUsers(completedEvents)
	converted := 0
	for id := range trialUsers {
		if _, ok := purchasedUsers[id]; ok {
			converted++
		}
	}

	failed := analytics.FilterByName(events, "Purchase Failed", "Purchase_Failed")
	failedPurchases := make([]FailedPurchase, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(failed, "error_message")) {
		failedPurchases = append(failedPurchases, FailedPurchase{Error: b.Name, Count: b.Count})
	}

	paywalls := analytics.FilterByName(events, analytics.PaywallViewedEvents...)
	paywallSources := make([]SourceCount, 0)
	for _, b := range analytics.SortedDistribution(analytics.PropertyDistribution(paywalls, "source")) {
		paywallSources = append(paywallSources, SourceCount{Source: b.Name, Count: b.Count})
	}

	return SubscriptionMetrics{
		Funnel:          funnel,
		RevenueByPlan:   revenueByPlan,
		TrialConversion: TrialConversion{Converted: converted, NotConverted: len(trialUsers) - converted},
		FailedPurchases: failedPurchases,
		PaywallSources:  paywallSources,
		PaywallDismissed: analytics.CountByName(events,
			"Paywall Dismissed", "Paywall_Dismissed"),
		PurchaseCancelled: analytics.CountByName(events,
			"Purchase Cancelled", "Purchase_Cancelled"),
		Meta: NewMeta(r, platform, ut),
	}
}

func revenueByPlanType(purchases []models.Event) []PlanRevenue {
	type acc struct {
		count     int
		sum       float64
		estimated bool
	}
	plans := make(map[string]*acc)
	for _, e := range purchases {
		plan := e.Properties.Stringify("plan_type")
		a := plans[plan]
		if a == nil {
			a = &acc{}
			plans[plan] = a
		}
		a.count++
		price := e.Properties.Num("price")
		if price == 0 {
			price = planPrices[strings.ToLower(plan)]
			a.estimated = true
		}
		a.sum += price
	}

	out := make([]PlanRevenue, 0, len(plans))
	for plan, a := range plans {
		out = append(out, PlanRevenue{
			Plan:      plan,
			Count:     a.count,
			Revenue:   a.sum,
			Estimated: a.estimated,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}
