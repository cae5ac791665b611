package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Category selects the TTL applied to a cached upstream response.
type Category string

const (
	CategoryOdds  Category = "odds"  // 5 minutes
	CategoryGames Category = "games" // 5 minutes for live games
	CategoryNews  Category = "news"  // 1 hour
	CategoryStats Category = "stats" // 24 hours for player stats
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsdata_cache_hits_total",
		Help: "Cache hits for upstream API responses by category",
	}, []string{"category"})
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsdata_cache_misses_total",
		Help: "Cache misses for upstream API responses by category",
	}, []string{"category"})
)

// envelope wraps a cached value with the wall-clock metadata used for
// staleness checks on read.
type envelope struct {
	Value      json.RawMessage `json:"value"`
	CachedAt   time.Time       `json:"cached_at"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// RedisCache caches third-party API responses in Redis with per-category
// TTLs. Reads are check-then-maybe-fetch with no locking: two concurrent
// misses may both hit the upstream, which is acceptable for idempotent reads.
type RedisCache struct {
	client *redis.Client
	ttls   map[Category]time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration.
type RedisCacheConfig struct {
	Addr     string
	Password string
	DB       int
	TTLs     map[Category]time.Duration
}

// DefaultTTLs returns the standard per-category durations.
func DefaultTTLs() map[Category]time.Duration {
	return map[Category]time.Duration{
		CategoryOdds:  5 * time.Minute,
		CategoryGames: 5 * time.Minute,
		CategoryNews:  time.Hour,
		CategoryStats: 24 * time.Hour,
	}
}

// NewRedisCache creates a new Redis cache.
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ttls := config.TTLs
	if len(ttls) == 0 {
		ttls = DefaultTTLs()
	}

	return &RedisCache{
		client: client,
		ttls:   ttls,
		logger: logger.With().Str("component", "api_cache").Logger(),
	}
}

func cacheKey(category Category, key string) string {
	return fmt.Sprintf("api:%s:%s", category, key)
}

func (c *RedisCache) ttl(category Category) time.Duration {
	if ttl, ok := c.ttls[category]; ok {
		return ttl
	}
	return 5 * time.Minute
}

// Set caches an upstream response under the category's TTL.
func (c *RedisCache) Set(ctx context.Context, category Category, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	ttl := c.ttl(category)
	data, err := json.Marshal(envelope{
		Value:      raw,
		CachedAt:   time.Now().UTC(),
		TTLSeconds: int(ttl.Seconds()),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(category, key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("category", string(category)).
		Str("key", key).
		Dur("ttl", ttl).
		Msg("cached upstream response")

	return nil
}

// Get retrieves a cached response into dest and reports whether a fresh value
// was found. The stored wall-clock timestamp is checked against the
// category's TTL, so an entry that outlived its window reads as a miss even
// if Redis has not expired it yet.
func (c *RedisCache) Get(ctx context.Context, category Category, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, cacheKey(category, key)).Bytes()
	if err == redis.Nil {
		cacheMisses.WithLabelValues(string(category)).Inc()
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}

	age := time.Since(env.CachedAt)
	if age > time.Duration(env.TTLSeconds)*time.Second {
		cacheMisses.WithLabelValues(string(category)).Inc()
		return false, nil
	}

	if err := json.Unmarshal(env.Value, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal value: %w", err)
	}

	cacheHits.WithLabelValues(string(category)).Inc()
	c.logger.Debug().
		Str("category", string(category)).
		Str("key", key).
		Dur("age", age).
		Msg("cache hit")

	return true, nil
}

// Invalidate drops a cached entry, used by the admin cache-refresh path.
func (c *RedisCache) Invalidate(ctx context.Context, category Category, key string) error {
	if err := c.client.Del(ctx, cacheKey(category, key)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", key, err)
	}
	return nil
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
