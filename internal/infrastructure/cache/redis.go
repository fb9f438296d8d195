package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/config"
	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/logger"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var log = logger.NewLogger()

// Custom error types
var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
)

const keyPrefix = "hse:"

// Client wraps the redis client with JSON marshalling and a key prefix.
// All methods fail soft: callers treat a cache miss and a cache error the
// same way and fall through to the database.
type Client struct {
	rdb        *redis.Client
	defaultTTL time.Duration
}

// NewClient creates a redis-backed cache client from the project config.
func NewClient(cfg *config.Config) *Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Client{
		rdb:        rdb,
		defaultTTL: 30 * time.Minute,
	}
}

// Ping verifies connectivity. The service starts even when redis is down.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Get unmarshals the cached value at key into dest.
func (c *Client) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return ErrCacheNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return json.Unmarshal(data, dest)
}

// Set marshals value as JSON and stores it under key. A ttl of 0 uses the
// default TTL.
func (c *Client) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}
	return nil
}

// Delete removes keys matching the given pattern.
func (c *Client) Delete(ctx context.Context, pattern string) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			log.Warn("Failed to delete cache key",
				zap.String("key", iter.Val()),
				zap.Error(err),
			)
		}
	}
	if err := iter.Err(); err != nil {
		log.Warn("Cache scan failed", zap.String("pattern", pattern), zap.Error(err))
	}
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
