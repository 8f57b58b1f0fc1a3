package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Deduper struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDeduper(rdb *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{rdb: rdb, ttl: ttl}
}

// AcquireOnce tries to acquire a dedup lock for a given handler + event ID.
// Returns true if this is the FIRST time processing, false for a duplicate.
// When redis is unavailable processing is allowed through: handlers are
// idempotent, missed dedup is safer than dropped work.
func (d *Deduper) AcquireOnce(ctx context.Context, handler string, eventID int64) bool {
	key := fmt.Sprintf("dedup:%s:%d", handler, eventID)

	ok, err := d.rdb.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return true
	}
	return ok
}

// Release drops the dedup lock so a redelivery can be processed again.
// Called when a handler fails after acquiring the lock.
func (d *Deduper) Release(ctx context.Context, handler string, eventID int64) {
	key := fmt.Sprintf("dedup:%s:%d", handler, eventID)
	d.rdb.Del(ctx, key)
}
