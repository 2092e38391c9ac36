package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OccupancyCache keeps short-lived copies of per-(bus, day) occupied seat
// sets in Redis so that seat-layout polling does not hammer MySQL. Entries
// are invalidated on every booking mutation, so the TTL only bounds
// staleness across processes that missed an invalidation. A nil Redis
// client turns every method into a no-op.
type OccupancyCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewOccupancyCache(rdb *redis.Client, ttl time.Duration) *OccupancyCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &OccupancyCache{rdb: rdb, ttl: ttl}
}

func occupancyKey(busID uint64, date time.Time) string {
	return fmt.Sprintf("occ:%d:%s", busID, date.Format("2006-01-02"))
}

// Get returns the cached seat list and whether the key was present. Cache
// errors are treated as misses.
func (c *OccupancyCache) Get(ctx context.Context, busID uint64, date time.Time) ([]string, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, occupancyKey(busID, date)).Bytes()
	if err != nil {
		return nil, false
	}
	var seats []string
	if err := json.Unmarshal(raw, &seats); err != nil {
		return nil, false
	}
	return seats, true
}

// Set stores the seat list. Failures are ignored; the cache is best-effort.
func (c *OccupancyCache) Set(ctx context.Context, busID uint64, date time.Time, seats []string) {
	if c == nil || c.rdb == nil {
		return
	}
	raw, err := json.Marshal(seats)
	if err != nil {
		return
	}
	_ = c.rdb.SetEx(ctx, occupancyKey(busID, date), raw, c.ttl).Err()
}

// Invalidate drops the cached set after a booking mutation.
func (c *OccupancyCache) Invalidate(ctx context.Context, busID uint64, date time.Time) {
	if c == nil || c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, occupancyKey(busID, date)).Err()
}
