package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"letsparkit/pkg/logger"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Service is a JSON cache keyed by string
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeletePattern(ctx context.Context, pattern string) error
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (s *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}
	return nil
}

func (s *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *redisCache) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

// DeletePattern walks the keyspace with SCAN so large databases are not blocked
func (s *redisCache) DeletePattern(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan error: %w", err)
	}

	if len(keys) > 0 {
		if err := s.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache delete pattern error: %w", err)
		}
	}
	return nil
}

func (s *redisCache) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// noop is used when Redis is disabled; every read misses
type noop struct{}

func NewNoop() Service { return noop{} }

func (noop) Get(context.Context, string, interface{}) error                { return ErrCacheMiss }
func (noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (noop) Delete(context.Context, string) error                          { return nil }
func (noop) DeletePattern(context.Context, string) error                   { return nil }
func (noop) Ping(context.Context) error                                    { return nil }

// GetOrSet is the cache-aside helper: serve from cache, otherwise fetch and
// store. Cache failures are logged and never fail the caller.
func GetOrSet[T any](ctx context.Context, c Service, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		logger.GetDefault().Warn("Cache get error, continuing to fetch", "key", key, "error", err)
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}
	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.GetDefault().Warn("Cache set error", "key", key, "error", err)
	}
	return value, nil
}
