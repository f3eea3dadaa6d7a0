package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"mangwale-cart/logger"
	"mangwale-cart/models"
)

// StoreCache is a cache-aside layer over store-by-name lookups, used on the
// hot cart-build path. A nil cache (redis disabled) is a valid no-op cache.
type StoreCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a StoreCache. Returns nil when rdb is nil so callers can wire
// the cache unconditionally.
func New(rdb *redis.Client, ttl time.Duration) *StoreCache {
	if rdb == nil {
		return nil
	}
	return &StoreCache{rdb: rdb, ttl: ttl}
}

func storeKey(name string) string {
	return "store:name:" + strings.ToLower(strings.TrimSpace(name))
}

// GetByName returns a cached store and whether it was a hit. Cache errors are
// logged and reported as misses.
func (c *StoreCache) GetByName(ctx context.Context, name string) (*models.Store, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, storeKey(name)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Get().Warnf("⚠️  Store cache read failed for %q: %v", name, err)
		}
		return nil, false
	}
	var store models.Store
	if err := json.Unmarshal([]byte(raw), &store); err != nil {
		logger.Get().Warnf("⚠️  Store cache entry for %q is corrupt: %v", name, err)
		return nil, false
	}
	return &store, true
}

// Put caches a store under its name. Failures are logged and ignored.
func (c *StoreCache) Put(ctx context.Context, store *models.Store) {
	if c == nil || store == nil {
		return
	}
	raw, err := json.Marshal(store)
	if err != nil {
		logger.Get().Warnf("⚠️  Failed to encode store %d for cache: %v", store.ID, err)
		return
	}
	if err := c.rdb.Set(ctx, storeKey(store.Name), raw, c.ttl).Err(); err != nil {
		logger.Get().Warnf("⚠️  Store cache write failed for %q: %v", store.Name, err)
	}
}

// Invalidate drops a cached store name, e.g. after a store mutation.
func (c *StoreCache) Invalidate(ctx context.Context, name string) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Del(ctx, storeKey(name)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate store cache for %q: %w", name, err)
	}
	return nil
}
