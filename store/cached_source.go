package store

import (
	"context"

	log "github.com/sirupsen/logrus"

	"chunkmetrics/api/models"
)

// CachedSource wraps an EventSource with a TTL cache keyed by date range.
// Every dashboard view fetches the same range, so one upstream fetch serves
// them all until the TTL lapses.
type CachedSource struct {
	source EventSource
	cache  *Cache
}

func NewCachedSource(source EventSource, cache *Cache) *CachedSource {
	return &CachedSource{source: source, cache: cache}
}

func (s *CachedSource) FetchEvents(ctx context.Context, from, to string) ([]models.Event, error) {
	if events, ok := s.cache.Get(from, to); ok {
		return events, nil
	}
	events, err := s.source.FetchEvents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"from": from, "to": to, "events": len(events)}).Debug("Cached event range")
	s.cache.Set(from, to, events)
	return events, nil
}
