package analytics

// Canonical event-name alias sets. The mobile clients went through an event
// naming refactor, so most behaviors exist under an old and a new name and
// every count has to cover the full alias set. These are defined once here;
// per-view code must not grow its own drifted copies.
var (
	// AuthEvents mark a signup or login completion.
	AuthEvents = []string{"Signup_Completed", "Login_Completed", "SignUp", "Account Created"}

	// SignupEvents are the subset of AuthEvents counted as account creation.
	SignupEvents = []string{"SignUp", "Signup_Completed", "Account Created"}

	// SubscriberEvents mark a completed purchase or subscription start.
	SubscriberEvents = []string{"Purchase_Completed", "Purchase Completed", "Subscription_Started"}

	// PurchaseCompletedEvents are the purchase completions used by funnels
	// and the paid/free split.
	PurchaseCompletedEvents = []string{"Purchase Completed", "Purchase_Completed"}

	// SessionEvents mark the start of any app session.
	SessionEvents = []string{"$ae_session", "Session_Started"}

	// ActivityEvents are the session-shaped events that count as "came back"
	// for retention purposes.
	ActivityEvents = []string{"$ae_session", "Session_Started", "Marketing_Session_Started", "App_Session_Started"}

	// SearchEvents cover the three historical names of a performed search.
	SearchEvents = []string{"Search Performed", "Search", "Search_Performed"}

	// FirstOpenEvents mark the first launch of the app on a device.
	FirstOpenEvents = []string{"$ae_first_open"}

	// PaywallViewedEvents cover every name under which a paywall impression
	// has shipped.
	PaywallViewedEvents = []string{"Paywall Viewed", "Paywall_Viewed", "Subscription View"}

	// PaywallDismissedEvents cover both names of a paywall dismissal.
	PaywallDismissedEvents = []string{"Paywall_Dismissed", "Paywall Dismissed"}
)
