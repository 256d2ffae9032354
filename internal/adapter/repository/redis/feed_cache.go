package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/event-aggregator/internal/domain"
)

// FeedCache implements domain.FeedCache on Redis. Aggregated feeds are
// stored as JSON blobs under the query fingerprint with a short TTL, so a
// burst of identical queries does not fan out to the providers repeatedly.
type FeedCache struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// NewFeedCache creates a Redis-backed feed cache.
func NewFeedCache(client *redis.Client, logger *slog.Logger, ttl time.Duration) *FeedCache {
	return &FeedCache{
		client: client,
		logger: logger.With("component", "redis_feed_cache"),
		ttl:    ttl,
	}
}

// GetFeed returns the cached feed for the key, or a miss.
func (c *FeedCache) GetFeed(ctx context.Context, key string) ([]domain.Event, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("feed cache get: %w", err)
	}

	var events []domain.Event
	if err := json.Unmarshal(payload, &events); err != nil {
		// A corrupt entry is treated as a miss so it gets overwritten.
		c.logger.Warn("dropping unreadable feed cache entry", "key", key, "error", err)
		return nil, false, nil
	}
	return events, true, nil
}

// SetFeed stores the feed under the key with the configured TTL.
func (c *FeedCache) SetFeed(ctx context.Context, key string, events []domain.Event) error {
	payload, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal feed: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("feed cache set: %w", err)
	}
	return nil
}
