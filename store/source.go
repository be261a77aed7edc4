// Package store fetches raw events from the configured backend and caches
// them. Aggregation happens elsewhere; a source only returns events that
// fell inside a date range.
package store

import (
	"context"

	"chunkmetrics/api/models"
)

// EventSource returns every raw event whose timestamp falls inside the
// inclusive [from, to] range of yyyy-MM-dd dates.
type EventSource interface {
	FetchEvents(ctx context.Context, from, to string) ([]models.Event, error)
}
