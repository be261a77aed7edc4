package analytics

import "chunkmetrics/api/models"

// Tier is a user's behavioral classification, derived from their event
// history within one computation window. The zero value is TierVisitor so
// an unseen user never classifies above visitor.
type Tier int

const (
	TierVisitor Tier = iota
	TierAuthenticated
	TierSubscriber
)

func (t Tier) String() string {
	switch t {
	case TierSubscriber:
		return "subscriber"
	case TierAuthenticated:
		return "authenticated"
	default:
		return "visitor"
	}
}

// UserType is the audience selector accepted in query parameters. Note the
// plural forms; they match what the dashboard frontend sends.
type UserType string

const (
	UserTypeAll           UserType = "all"
	UserTypeVisitors      UserType = "visitors"
	UserTypeAuthenticated UserType = "authenticated"
	UserTypeSubscribers   UserType = "subscribers"
)

// ParseUserType normalizes a query value, defaulting to "all".
func ParseUserType(s string) UserType {
	switch UserType(s) {
	case UserTypeVisitors, UserTypeAuthenticated, UserTypeSubscribers:
		return UserType(s)
	default:
		return UserTypeAll
	}
}

var (
	authNames       = nameSet(AuthEvents)
	subscriberNames = nameSet(SubscriberEvents)
)

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// eventTier derives the tier signal carried by a single event, independent
// of any other event.
func eventTier(e models.Event) Tier {
	if subscriberNames[e.Name] ||
		e.Properties.Str("$plan") == "Subscribed" ||
		e.Properties.Str("subscription_status") == "active" {
		return TierSubscriber
	}
	if authNames[e.Name] ||
		e.Properties.Has("$user_id") ||
		e.Properties.Has("user_id") ||
		e.Properties.Bool("is_authenticated") {
		return TierAuthenticated
	}
	return TierVisitor
}

// Classify assigns every distinct user id in the event set exactly one tier:
// the precedence-max of the per-event signals attributable to that user.
// Because the merge is a max, the result is independent of event order and a
// user can only ever move up (visitor -> authenticated -> subscriber); one
// subscriber-signal event pins the user at subscriber no matter what else
// they did in the window.
func Classify(events []models.Event) map[string]Tier {
	tiers := make(map[string]Tier)
	for _, e := range events {
		id := e.UserID()
		if t := eventTier(e); t > tiers[id] {
			tiers[id] = t
		} else if _, seen := tiers[id]; !seen {
			tiers[id] = TierVisitor
		}
	}
	return tiers
}

// matches reports whether a tier satisfies an audience selector. The
// "authenticated" audience includes subscribers: subscribers are a
// refinement of authenticated users, not a disjoint group, and callers
// rely on that inclusion.
func (ut UserType) matches(t Tier) bool {
	switch ut {
	case UserTypeAll:
		return true
	case UserTypeVisitors:
		return t == TierVisitor
	case UserTypeAuthenticated:
		return t >= TierAuthenticated
	case UserTypeSubscribers:
		return t == TierSubscriber
	default:
		return true
	}
}

// FilterByUserType narrows events to those whose user classifies into the
// requested audience. Classification runs over the full input set first, so
// an event with no tier signal of its own is still kept when any other
// event upgraded its user.
func FilterByUserType(events []models.Event, ut UserType) []models.Event {
	if ut == UserTypeAll {
		return events
	}
	tiers := Classify(events)
	var out []models.Event
	for _, e := range events {
		if ut.matches(tiers[e.UserID()]) {
			out = append(out, e)
		}
	}
	return out
}

// UniqueUsersByType returns the set of distinct user ids classifying into
// the requested audience.
func UniqueUsersByType(events []models.Event, ut UserType) map[string]struct{} {
	users := make(map[string]struct{})
	if ut == UserTypeAll {
		for _, e := range events {
			users[e.UserID()] = struct{}{}
		}
		return users
	}
	for id, t := range Classify(events) {
		if ut.matches(t) {
			users[id] = struct{}{}
		}
	}
	return users
}

// TierBreakdown summarizes the classified population of a window. The
// Authenticated field deliberately counts subscribers too (they are
// authenticated users), so Visitors+Authenticated exceeds Total whenever
// subscribers exist; the dashboard depends on this convention.
type TierBreakdown struct {
	Total         int `json:"total"`
	Visitors      int `json:"visitors"`
	Authenticated int `json:"authenticated"`
	Subscribers   int `json:"subscribers"`
}

// CountByTier classifies the event set and counts users per tier.
func CountByTier(events []models.Event) TierBreakdown {
	var b TierBreakdown
	tiers := Classify(events)
	b.Total = len(tiers)
	for _, t := range tiers {
		switch t {
		case TierSubscriber:
			b.Subscribers++
		case TierAuthenticated:
			b.Authenticated++
		default:
			b.Visitors++
		}
	}
	b.Authenticated += b.Subscribers
	return b
}
