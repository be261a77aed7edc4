// Package metrics holds one assembler per dashboard view. An assembler is a
// pure function from already-fetched (and platform/audience filtered) event
// slices to that view's JSON-serializable response shape; all of the actual
// math lives in the analytics package. Handlers own fetching, filtering and
// parameter parsing.
package metrics

import (
	"time"

	"chunkmetrics/api/analytics"
)

// Meta is the trailer every view response carries so the frontend can echo
// the filters a payload was computed under.
type Meta struct {
	DateRange   analytics.DateRange `json:"dateRange"`
	Platform    string              `json:"platform"`
	UserType    analytics.UserType  `json:"userType"`
	LastUpdated string              `json:"lastUpdated"`
}

// NewMeta stamps a response with its filters and the assembly time.
func NewMeta(r analytics.DateRange, platform string, ut analytics.UserType) Meta {
	return Meta{
		DateRange:   r,
		Platform:    platform,
		UserType:    ut,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}
