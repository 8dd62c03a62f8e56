package identity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("identity: cache miss")

const usersCacheKey = "identity:users"

// Cache is the byte store used by CachedDirectory.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisCache adapts a go-redis client to Cache.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachedDirectory serves ListUsers from cache for ttl before asking next again.
// Cache failures are logged and never fail the call.
type CachedDirectory struct {
	next   Directory
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ Directory = (*CachedDirectory)(nil)

// NewCachedDirectory wraps next with cache.
func NewCachedDirectory(next Directory, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedDirectory {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedDirectory{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (d *CachedDirectory) ListUsers(ctx context.Context) ([]User, error) {
	b, err := d.cache.Get(ctx, usersCacheKey)
	switch {
	case err == nil:
		var users []User
		jerr := json.Unmarshal(b, &users)
		if jerr == nil {
			return users, nil
		}
		d.logger.Warn("directory cache entry unreadable", "error", jerr)
	case !errors.Is(err, ErrCacheMiss):
		d.logger.Warn("directory cache get failed", "error", err)
	}

	users, err := d.next.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(users); err == nil {
		if err := d.cache.Set(ctx, usersCacheKey, b, d.ttl); err != nil {
			d.logger.Warn("directory cache set failed", "error", err)
		}
	}
	return users, nil
}
