package domain

import "context"

// EventStore defines the interface for the locally persisted, seeded
// event dataset. It owns its own date-range defaulting: queries never
// return events dated strictly before today at UTC midnight.
type EventStore interface {
	// QueryEvents returns local events matching the given filters.
	QueryEvents(ctx context.Context, filters EventFilters) ([]Event, error)

	// CreateEvent persists a new local event and returns it with its
	// assigned ID.
	CreateEvent(ctx context.Context, event Event) (Event, error)

	// CountByCategory returns the number of upcoming local events per
	// category, plus an "all" total.
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// FeedCache caches fully aggregated feeds keyed by a query fingerprint.
// Implementations are best-effort: a miss and an error are both treated as
// "compute the feed again" by callers.
type FeedCache interface {
	// GetFeed returns the cached feed for the key, or (nil, false, nil) on miss.
	GetFeed(ctx context.Context, key string) ([]Event, bool, error)

	// SetFeed stores the feed under the key for the cache's configured TTL.
	SetFeed(ctx context.Context, key string, events []Event) error
}
