// Package analytics is the event aggregation engine behind the dashboard:
// date ranges, user classification, platform filtering, counting, funnel,
// trend and retention math. Everything here is a pure function over an
// immutable event slice; nothing in this package performs I/O or holds
// state between calls, so aggregations for concurrent requests can run in
// parallel with no coordination.
package analytics

import (
	"fmt"
	"time"
)

const dayFormat = "2006-01-02"

// DateRange is an inclusive [From, To] pair of yyyy-MM-dd calendar dates.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// rangeDays maps the relative range tokens the dashboard accepts to their
// length in days. Unrecognized tokens behave like "30d".
var rangeDays = map[string]int{
	"1d":   1,
	"7d":   7,
	"30d":  30,
	"90d":  90,
	"365d": 365,
}

// ResolveRange converts a relative range token ("7d", "30d", ...) into a
// concrete date range ending today. "Nd" means today minus N-1 days through
// today inclusive, framed by the server's local date. Unrecognized tokens
// fall back to 30 days.
func ResolveRange(token string) DateRange {
	days, ok := rangeDays[token]
	if !ok {
		days = 30
	}
	today := time.Now()
	return DateRange{
		From: today.AddDate(0, 0, -(days - 1)).Format(dayFormat),
		To:   today.Format(dayFormat),
	}
}

// Days returns the length of the range in calendar days, inclusive of both
// endpoints. A malformed or inverted range reports 0.
func (r DateRange) Days() int {
	from, errF := time.Parse(dayFormat, r.From)
	to, errT := time.Parse(dayFormat, r.To)
	if errF != nil || errT != nil || to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// EnumerateDays lists every calendar date from From to To inclusive, one
// entry per day. It crosses month and year boundaries without skipping or
// duplicating days and returns nil for a malformed range.
func EnumerateDays(r DateRange) []string {
	from, errF := time.Parse(dayFormat, r.From)
	to, errT := time.Parse(dayFormat, r.To)
	if errF != nil || errT != nil || to.Before(from) {
		return nil
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(dayFormat))
	}
	return days
}

// PriorPeriod returns the equal-length window immediately preceding r; a
// 30-day range's prior period is the 30 days before it. Used as the
// comparison window for trend computation.
func (r DateRange) PriorPeriod() DateRange {
	days := r.Days()
	if days == 0 {
		return r
	}
	from, _ := time.Parse(dayFormat, r.From)
	to, _ := time.Parse(dayFormat, r.To)
	return DateRange{
		From: from.AddDate(0, 0, -days).Format(dayFormat),
		To:   to.AddDate(0, 0, -days).Format(dayFormat),
	}
}

// Validate reports an error when either bound is not a yyyy-MM-dd date or
// the range is inverted. Explicit from/to query parameters pass through
// here before any fetch.
func (r DateRange) Validate() error {
	from, err := time.Parse(dayFormat, r.From)
	if err != nil {
		return fmt.Errorf("invalid from date %q: %w", r.From, err)
	}
	to, err := time.Parse(dayFormat, r.To)
	if err != nil {
		return fmt.Errorf("invalid to date %q: %w", r.To, err)
	}
	if to.Before(from) {
		return fmt.Errorf("range end %q precedes start %q", r.To, r.From)
	}
	return nil
}
