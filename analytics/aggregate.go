package analytics

import (
	"sort"

	"chunkmetrics/api/models"
)

// NameCount is one bucket of a distribution, sorted descending by count.
type NameCount struct {
	Name  string
	Count int
}

// FilterByName keeps events whose name is in the given set.
func FilterByName(events []models.Event, names ...string) []models.Event {
	set := nameSet(names)
	var out []models.Event
	for _, e := range events {
		if set[e.Name] {
			out = append(out, e)
		}
	}
	return out
}

// CountByName counts events whose name is in the given set.
func CountByName(events []models.Event, names ...string) int {
	set := nameSet(names)
	n := 0
	for _, e := range events {
		if set[e.Name] {
			n++
		}
	}
	return n
}

// UniqueUsers returns the set of distinct user ids in the event slice.
func UniqueUsers(events []models.Event) map[string]struct{} {
	users := make(map[string]struct{})
	for _, e := range events {
		users[e.UserID()] = struct{}{}
	}
	return users
}

// UniqueUsersFor returns the distinct users that fired any of the named
// events.
func UniqueUsersFor(events []models.Event, names ...string) map[string]struct{} {
	return UniqueUsers(FilterByName(events, names...))
}

// UniqueUsersByDay buckets distinct user ids by the UTC calendar date of
// each event.
func UniqueUsersByDay(events []models.Event) map[string]map[string]struct{} {
	byDay := make(map[string]map[string]struct{})
	for _, e := range events {
		day := e.Day()
		if byDay[day] == nil {
			byDay[day] = make(map[string]struct{})
		}
		byDay[day][e.UserID()] = struct{}{}
	}
	return byDay
}

// CountByDay counts events matching the given names per UTC calendar date.
// With no names given, every event counts.
func CountByDay(events []models.Event, names ...string) map[string]int {
	set := nameSet(names)
	counts := make(map[string]int)
	for _, e := range events {
		if len(names) == 0 || set[e.Name] {
			counts[e.Day()]++
		}
	}
	return counts
}

// UniqueUsersByDayFor buckets, per UTC date, the distinct users that fired
// any of the named events that day.
func UniqueUsersByDayFor(events []models.Event, names ...string) map[string]int {
	byDay := UniqueUsersByDay(FilterByName(events, names...))
	counts := make(map[string]int, len(byDay))
	for day, users := range byDay {
		counts[day] = len(users)
	}
	return counts
}

// EventCounts tallies events by name.
func EventCounts(events []models.Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Name]++
	}
	return counts
}

// PropertyDistribution tallies events by the string rendering of one
// property. Events missing the property bucket under "Unknown" rather than
// being dropped.
func PropertyDistribution(events []models.Event, key string) map[string]int {
	dist := make(map[string]int)
	for _, e := range events {
		dist[e.Properties.Stringify(key)]++
	}
	return dist
}

// SortedDistribution flattens a distribution map into buckets sorted by
// descending count, ties broken by name so output is deterministic.
func SortedDistribution(dist map[string]int) []NameCount {
	out := make([]NameCount, 0, len(dist))
	for name, count := range dist {
		out = append(out, NameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// HourlyDistribution counts events per UTC hour of day; the result always
// has 24 entries.
func HourlyDistribution(events []models.Event) [24]int {
	var hours [24]int
	for _, e := range events {
		hours[e.Hour()]++
	}
	return hours
}

// AverageProperty returns the mean of a numeric property over the full
// slice; events missing the property contribute 0. Empty input yields 0.
func AverageProperty(events []models.Event, key string) float64 {
	if len(events) == 0 {
		return 0
	}
	var sum float64
	for _, e := range events {
		sum += e.Properties.Num(key)
	}
	return sum / float64(len(events))
}

// WeeklyUsers counts distinct users per week, keyed by the week's Sunday as
// yyyy-MM-dd, sorted ascending.
func WeeklyUsers(events []models.Event) []NameCount {
	weeks := make(map[string]map[string]struct{})
	for _, e := range events {
		t := e.Time()
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		key := sunday.Format(dayFormat)
		if weeks[key] == nil {
			weeks[key] = make(map[string]struct{})
		}
		weeks[key][e.UserID()] = struct{}{}
	}
	return sortedSetCounts(weeks)
}

// MonthlyUsers counts distinct users per calendar month, keyed yyyy-MM,
// sorted ascending.
func MonthlyUsers(events []models.Event) []NameCount {
	months := make(map[string]map[string]struct{})
	for _, e := range events {
		key := e.Time().Format("2006-01")
		if months[key] == nil {
			months[key] = make(map[string]struct{})
		}
		months[key][e.UserID()] = struct{}{}
	}
	return sortedSetCounts(months)
}

func sortedSetCounts(sets map[string]map[string]struct{}) []NameCount {
	out := make([]NameCount, 0, len(sets))
	for key, users := range sets {
		out = append(out, NameCount{Name: key, Count: len(users)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
