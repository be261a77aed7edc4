package analytics

import "chunkmetrics/api/models"

// Retention holds windowed day-1/7/30 return rates for the users whose
// first touch fell inside the window, as percentages of TotalNewUsers.
type Retention struct {
	Day1          float64 `json:"day1"`
	Day7          float64 `json:"day7"`
	Day30         float64 `json:"day30"`
	TotalNewUsers int     `json:"totalNewUsers"`
}

// Retention windows in elapsed whole days since first touch, inclusive on
// both ends. They are deliberately ranges, not exact days: a user who comes
// back on day 9 still counts as day-7 retained, which is robust to
// irregular check-in cadence.
const (
	day1Lo, day1Hi   = 1, 2
	day7Lo, day7Hi   = 7, 14
	day30Lo, day30Hi = 30, 60
)

// ComputeRetention derives return rates from first-touch events (one or
// more per newly observed user; the earliest timestamp wins) and a broader
// activity stream. A user is retained for a horizon when any of their
// activity lands inside that horizon's window. No new users yields all
// zeros, never NaN.
func ComputeRetention(firstTouch, activity []models.Event) Retention {
	firstSeen := make(map[string]int64)
	for _, e := range firstTouch {
		id := e.UserID()
		ts := e.Unix()
		if prev, ok := firstSeen[id]; !ok || ts < prev {
			firstSeen[id] = ts
		}
	}

	r := Retention{TotalNewUsers: len(firstSeen)}
	if r.TotalNewUsers == 0 {
		return r
	}

	day1 := make(map[string]struct{})
	day7 := make(map[string]struct{})
	day30 := make(map[string]struct{})
	for _, e := range activity {
		id := e.UserID()
		first, ok := firstSeen[id]
		if !ok {
			continue
		}
		days := (e.Unix() - first) / 86400
		if days >= day1Lo && days <= day1Hi {
			day1[id] = struct{}{}
		}
		if days >= day7Lo && days <= day7Hi {
			day7[id] = struct{}{}
		}
		if days >= day30Lo && days <= day30Hi {
			day30[id] = struct{}{}
		}
	}

	total := float64(r.TotalNewUsers)
	r.Day1 = 100 * float64(len(day1)) / total
	r.Day7 = 100 * float64(len(day7)) / total
	r.Day30 = 100 * float64(len(day30)) / total
	return r
}
