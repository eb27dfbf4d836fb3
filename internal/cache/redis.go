package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"prompthub/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	revokedTokenPrefix = "revoked:"
	trendingKey        = "trending:prompts"
)

// Cache wraps the Redis client. All methods are nil-receiver safe so the API
// keeps working (without caching or token revocation checks) when Redis is
// unreachable at startup.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using a redis:// URL. A connection failure is logged
// and returns a disabled cache rather than an error.
func New(url string) *Cache {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("invalid redis url, continuing without cache")
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, continuing without cache")
		return nil
	}

	logger.Info().Msg("redis connected")
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// RevokeAccessToken denylists a token ID until its natural expiry.
func (c *Cache) RevokeAccessToken(ctx context.Context, jti string, ttl time.Duration) error {
	if c == nil || ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedTokenPrefix+jti, "1", ttl).Err()
}

// IsAccessTokenRevoked reports whether the token ID has been denylisted.
// Redis errors fail open: a broken cache must not lock everyone out.
func (c *Cache) IsAccessTokenRevoked(ctx context.Context, jti string) bool {
	if c == nil {
		return false
	}
	n, err := c.client.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		logger.Warn().Err(err).Msg("revocation check failed")
		return false
	}
	return n > 0
}

// GetTrending loads the cached trending payload into dest.
// Returns false on a miss or when the cache is disabled.
func (c *Cache) GetTrending(ctx context.Context, dest interface{}) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, trendingKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn().Err(err).Msg("trending cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn().Err(err).Msg("trending cache payload corrupt")
		return false
	}
	return true
}

// SetTrending stores the trending payload with the given TTL, best effort.
func (c *Cache) SetTrending(ctx context.Context, value interface{}, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Msg("trending cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, trendingKey, data, ttl).Err(); err != nil {
		logger.Warn().Err(err).Msg("trending cache write failed")
	}
}
