package database

import (
	"context"
	"fmt"
	"time"

	"letsparkit/internal/shared/config"
	"letsparkit/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// DB holds the optional shared data stores. The domain store itself lives in
// memory; Redis backs holds, revocations, rate limits and caches when enabled.
type DB struct {
	Redis *redis.Client
}

// InitDB initializes the connections that are enabled in the config
func InitDB(cfg *config.Config) (*DB, error) {
	db := &DB{}
	if !cfg.Redis.Enabled {
		return db, nil
	}

	rdb, err := initRedis(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	db.Redis = rdb

	return db, nil
}

// initRedis initializes Redis connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,

		// Connection pool settings
		PoolSize:     10,
		MinIdleConns: 2,

		// Timeouts
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GetDefault().Info("Redis connected", "addr", cfg.Redis.Addr)
	return rdb, nil
}

// Close closes all connections
func (db *DB) Close() error {
	if db == nil || db.Redis == nil {
		return nil
	}
	if err := db.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close Redis: %w", err)
	}
	return nil
}

// HealthCheck performs health checks on all enabled connections
func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.Redis == nil {
		return nil
	}
	if err := db.Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// GetRedis returns the Redis client, nil when Redis is disabled
func (db *DB) GetRedis() *redis.Client {
	if db == nil {
		return nil
	}
	return db.Redis
}
