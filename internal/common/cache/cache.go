package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/socialnet/api/internal/common/constants"
	"github.com/socialnet/api/internal/common/logger"
	"github.com/socialnet/api/internal/common/resilience"
	"github.com/socialnet/api/internal/observability/metrics"
)

var ErrMiss = errors.New("cache miss")

// LikeStatsCache stores per-day like histograms keyed by post, version and range.
// Every toggle bumps the post's version so stale entries are never read again.
// On ErrMiss, Get returns the version it observed; Set must be given that same
// version so a histogram computed before a toggle lands under the old key.
type LikeStatsCache interface {
	Get(ctx context.Context, postID int64, start, end string) (map[string]int64, int64, error)
	Set(ctx context.Context, postID, version int64, start, end string, stats map[string]int64) error
	Invalidate(ctx context.Context, postID int64) error
	Ping(ctx context.Context) error
	Close() error
}

func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

type RedisLikeStatsCache struct {
	rdb     *redis.Client
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

func NewRedisLikeStatsCache(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *RedisLikeStatsCache {
	if ttl <= 0 {
		ttl = constants.DefaultAnalyticsCacheTTL
	}
	return &RedisLikeStatsCache{
		rdb: rdb,
		ttl: ttl,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Threshold:  constants.CacheCircuitBreakerThreshold,
			Timeout:    constants.CacheCircuitBreakerTimeout,
			ResetAfter: constants.CacheCircuitBreakerReset,
			Name:       "redis",
			Logger:     log,
		}),
	}
}

func versionKey(postID int64) string {
	return fmt.Sprintf("likestats:%d:version", postID)
}

func statsKey(postID, version int64, start, end string) string {
	return fmt.Sprintf("likestats:%d:v%d:%s:%s", postID, version, start, end)
}

func (c *RedisLikeStatsCache) version(ctx context.Context, postID int64) (int64, error) {
	v, err := c.rdb.Get(ctx, versionKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisLikeStatsCache) Get(ctx context.Context, postID int64, start, end string) (map[string]int64, int64, error) {
	var (
		stats   map[string]int64
		version int64
	)
	err := c.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		version, err = c.version(ctx, postID)
		if err != nil {
			return err
		}
		raw, err := c.rdb.Get(ctx, statsKey(postID, version, start, end)).Bytes()
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, &stats)
	}, ErrMiss)

	switch {
	case err == nil:
		metrics.AnalyticsCacheLookups.WithLabelValues("hit").Inc()
	case errors.Is(err, ErrMiss):
		metrics.AnalyticsCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.AnalyticsCacheLookups.WithLabelValues("error").Inc()
	}
	return stats, version, err
}

func (c *RedisLikeStatsCache) Set(ctx context.Context, postID, version int64, start, end string, stats map[string]int64) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.breaker.Call(ctx, func(ctx context.Context) error {
		return c.rdb.Set(ctx, statsKey(postID, version, start, end), raw, c.ttl).Err()
	})
}

func (c *RedisLikeStatsCache) Invalidate(ctx context.Context, postID int64) error {
	return c.breaker.Call(ctx, func(ctx context.Context) error {
		return c.rdb.Incr(ctx, versionKey(postID)).Err()
	})
}

func (c *RedisLikeStatsCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *RedisLikeStatsCache) Close() error {
	return c.rdb.Close()
}

// NoopLikeStatsCache is used when no Redis address is configured.
type NoopLikeStatsCache struct{}

func (NoopLikeStatsCache) Get(context.Context, int64, string, string) (map[string]int64, int64, error) {
	return nil, 0, ErrMiss
}

func (NoopLikeStatsCache) Set(context.Context, int64, int64, string, string, map[string]int64) error {
	return nil
}

func (NoopLikeStatsCache) Invalidate(context.Context, int64) error { return nil }
func (NoopLikeStatsCache) Ping(context.Context) error              { return nil }
func (NoopLikeStatsCache) Close() error                            { return nil }
