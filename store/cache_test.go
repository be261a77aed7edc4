package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"chunkmetrics/api/models"
)

type stubSource struct {
	events []models.Event
	err    error
	calls  int
}

func (s *stubSource) FetchEvents(ctx context.Context, from, to string) ([]models.Event, error) {
	s.calls++
	return s.events, s.err
}

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Minute)
	if _, ok := c.Get("2025-01-01", "2025-01-31"); ok {
		t.Fatal("expected miss on empty cache")
	}

	events := []models.Event{{Name: "Search"}}
	c.Set("2025-01-01", "2025-01-31", events)

	got, ok := c.Get("2025-01-01", "2025-01-31")
	if !ok || len(got) != 1 {
		t.Fatalf("expected hit with 1 event, got ok=%v len=%d", ok, len(got))
	}
	if _, ok := c.Get("2025-01-01", "2025-01-30"); ok {
		t.Fatal("different range should miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(time.Millisecond)
	c.Set("2025-01-01", "2025-01-31", []models.Event{{Name: "Search"}})

	time.Sleep(5 * time.Millisecond)
	if _, ok := c.Get("2025-01-01", "2025-01-31"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestNewCacheDefaultTTL(t *testing.T) {
	c := NewCache(0)
	if c.ttl != defaultCacheTTL {
		t.Errorf("got ttl %v, want %v", c.ttl, defaultCacheTTL)
	}
}

func TestCachedSourceFetchesOnce(t *testing.T) {
	stub := &stubSource{events: []models.Event{{Name: "Search"}}}
	src := NewCachedSource(stub, NewCache(time.Minute))

	for i := 0; i < 3; i++ {
		events, err := src.FetchEvents(context.Background(), "2025-01-01", "2025-01-31")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if len(events) != 1 {
			t.Fatalf("fetch %d: got %d events, want 1", i, len(events))
		}
	}
	if stub.calls != 1 {
		t.Errorf("upstream called %d times, want 1", stub.calls)
	}
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	stub := &stubSource{err: errors.New("upstream down")}
	src := NewCachedSource(stub, NewCache(time.Minute))

	for i := 0; i < 2; i++ {
		if _, err := src.FetchEvents(context.Background(), "2025-01-01", "2025-01-31"); err == nil {
			t.Fatalf("fetch %d: expected error", i)
		}
	}
	if stub.calls != 2 {
		t.Errorf("upstream called %d times, want 2", stub.calls)
	}
}
