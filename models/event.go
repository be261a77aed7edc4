// api/models/event.go
package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Properties is the open property bag attached to every analytics event.
// Upstream emits loosely-typed JSON, so every accessor defaults instead of
// failing: absent strings are "", absent numbers are 0, absent booleans are
// false. Consumers must never assume a key is present.
type Properties map[string]interface{}

// Event is one analytics event from the export feed: a name plus a property
// bag. The bag always carries "distinct_id" (user identifier) and "time"
// (Unix epoch seconds). Events are read-only once fetched.
type Event struct {
	Name       string     `json:"event"`
	Properties Properties `json:"properties"`
}

// UserID returns the distinct user identifier the event is attributed to.
func (e Event) UserID() string {
	return e.Properties.Str("distinct_id")
}

// Unix returns the event timestamp in epoch seconds (the upstream unit).
func (e Event) Unix() int64 {
	return int64(e.Properties.Num("time"))
}

// Time returns the event timestamp as a time.Time in UTC.
func (e Event) Time() time.Time {
	return time.Unix(e.Unix(), 0).UTC()
}

// Day returns the UTC calendar date of the event as yyyy-MM-dd. Day bucketing
// is always done in UTC so that bucket membership does not shift with the
// server's timezone.
func (e Event) Day() string {
	return e.Time().Format("2006-01-02")
}

// Hour returns the UTC hour of day (0-23) of the event.
func (e Event) Hour() int {
	return e.Time().Hour()
}

// Str returns the property as a string, or "" when absent or not a string.
func (p Properties) Str(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// Num returns the property as a float64, or 0 when absent or non-numeric.
// JSON decoding yields float64 for all numbers; the other cases cover values
// built in-process (the ClickHouse source) or decoded via json.Number.
func (p Properties) Num(key string) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Bool returns the property as a bool, false when absent or not a bool.
func (p Properties) Bool(key string) bool {
	b, ok := p[key].(bool)
	return ok && b
}

// Has reports whether the key is present at all, regardless of type.
func (p Properties) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Stringify renders the property value for distribution bucketing. Missing
// values bucket under "Unknown" rather than being dropped.
func (p Properties) Stringify(key string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return "Unknown"
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return "Unknown"
		}
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return "Unknown"
		}
		return string(b)
	}
}
