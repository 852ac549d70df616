// Package redis implements the carrier rating cache on Redis. Entries are
// written by the rating query on a miss and dropped by the rating command
// after a new rating lands, so readers never serve a stale average for long.
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"freight/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const ratingKeyPrefix = "carrier_rating:"

// RatingCache implements ports.RatingCache using a Redis client.
type RatingCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewRatingCache creates a rating cache for the given Redis address. Entries
// expire after ttl even without invalidation.
func NewRatingCache(addr string, ttl time.Duration) *RatingCache {
	return &RatingCache{
		client: goredis.NewClient(&goredis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get returns the cached scaled average and whether it was present.
func (c *RatingCache) Get(ctx context.Context, carrierID kernel.UUID) (int64, bool, error) {
	value, err := c.client.Get(ctx, ratingKey(carrierID)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	average, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, err
	}

	return average, true, nil
}

// Set stores the scaled average.
func (c *RatingCache) Set(ctx context.Context, carrierID kernel.UUID, averageTimes100 int64) error {
	return c.client.Set(ctx, ratingKey(carrierID), averageTimes100, c.ttl).Err()
}

// Invalidate drops the cached value after a new rating lands.
func (c *RatingCache) Invalidate(ctx context.Context, carrierID kernel.UUID) error {
	return c.client.Del(ctx, ratingKey(carrierID)).Err()
}

// Close releases the underlying client.
func (c *RatingCache) Close() error {
	return c.client.Close()
}

func ratingKey(carrierID kernel.UUID) string {
	return ratingKeyPrefix + carrierID.String()
}
