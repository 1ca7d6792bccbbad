// Package rediscache caches derived student metrics in Redis. The cache is
// best-effort: callers treat every failure as a miss.
package rediscache

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Daisy2077/ICS4U/core"
	"github.com/Daisy2077/ICS4U/core/school"
)

const averageKeyPrefix = "school:average:"

type AverageCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ school.AverageCache = (*AverageCache)(nil) // interface compliance check

func NewAverageCache(conf *core.Config) *AverageCache {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	return &AverageCache{client: client, ttl: conf.Redis.AverageTTL}
}

// Ping checks the Redis connection.
func (c *AverageCache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "pinging redis")
}

func (c *AverageCache) Close() error {
	return c.client.Close()
}

func averageKey(studentID string) string {
	return averageKeyPrefix + studentID
}

func (c *AverageCache) GetAverage(ctx context.Context, studentID string) (float64, bool, error) {
	val, err := c.client.Get(ctx, averageKey(studentID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "getting cached average")
	}
	avg, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, false, errors.Wrap(err, "parsing cached average")
	}
	return avg, true, nil
}

func (c *AverageCache) SetAverage(ctx context.Context, studentID string, avg float64) error {
	val := strconv.FormatFloat(avg, 'f', -1, 64)
	return errors.Wrap(
		c.client.Set(ctx, averageKey(studentID), val, c.ttl).Err(),
		"caching average",
	)
}

func (c *AverageCache) DeleteAverage(ctx context.Context, studentID string) error {
	return errors.Wrap(
		c.client.Del(ctx, averageKey(studentID)).Err(),
		"dropping cached average",
	)
}
