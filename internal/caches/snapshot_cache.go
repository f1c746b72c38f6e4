// Package caches holds the snapshot cache behind the aggregation service. The
// dashboard tolerates staleness up to the configured TTL, so aggregated
// snapshots are cached as opaque JSON payloads keyed by query window. Cache
// failures are never surfaced to callers: a broken Redis degrades to
// recomputing every snapshot against the store.
package caches

import (
	"context"
	"time"

	"bench-analytics/internal/shared/loggers"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bench:snapshot:"

//go:generate mockgen -source=snapshot_cache.go -destination=./mocks/snapshot_cache_mock.go -package=mocks
type SnapshotCache interface {
	// Get returns the cached payload for key, or (nil, false) on a miss or
	// any backend error.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores the payload for key with the cache's TTL. Errors are
	// swallowed: the snapshot is merely not cached.
	Set(ctx context.Context, key string, payload []byte)
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger loggers.Logger
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, logger loggers.Logger) SnapshotCache {
	return &redisSnapshotCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisSnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug().Err(err).Str("cache_key", key).Msg("snapshot cache get failed")
		}
		metricSnapshotCacheMisses.WithLabelValues().Inc()
		return nil, false
	}
	metricSnapshotCacheHits.WithLabelValues().Inc()
	return payload, true
}

func (c *redisSnapshotCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, keyPrefix+key, payload, c.ttl).Err(); err != nil {
		c.logger.Debug().Err(err).Str("cache_key", key).Msg("snapshot cache set failed")
	}
}

// noopSnapshotCache backs deployments without Redis: every Get is a miss.
type noopSnapshotCache struct{}

func NewNoopSnapshotCache() SnapshotCache {
	return &noopSnapshotCache{}
}

func (noopSnapshotCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (noopSnapshotCache) Set(ctx context.Context, key string, payload []byte) {}
