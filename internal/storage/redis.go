// Package storage provides Redis and file persistence for snapshots and
// cached game data.
package storage

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildadvisor/internal/advisor"
)

// RedisClient wraps go-redis client. A client built without a URL, or one that
// failed to connect, is disabled: reads miss and writes are dropped.
type RedisClient struct {
	client  *redis.Client
	enabled bool
}

// NewRedisClient creates a new Redis client using go-redis.
func NewRedisClient(ctx context.Context, redisURL string) *RedisClient {
	if redisURL == "" {
		log.Println("Redis not configured (REDIS_URL missing), using local files only")
		return &RedisClient{enabled: false}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Failed to parse REDIS_URL: %v", err)
		return &RedisClient{enabled: false}
	}

	opt.PoolSize = 5
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	// Snapshots can run to a few megabytes
	opt.WriteTimeout = 10 * time.Second

	client := redis.NewClient(opt)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection failed: %v", err)
		_ = client.Close()
		return &RedisClient{enabled: false}
	}

	log.Println("Redis connected successfully")
	return &RedisClient{
		client:  client,
		enabled: true,
	}
}

// Enabled reports whether the client is connected.
func (r *RedisClient) Enabled() bool {
	return r.enabled
}

// Get retrieves a value from Redis. A missing key returns "".
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	if !r.enabled {
		return "", nil
	}
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return val, err
}

// Set stores a value in Redis (no expiration).
func (r *RedisClient) Set(ctx context.Context, key, value string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Set(ctx, key, value, 0).Err()
}

// Delete removes a key from Redis.
func (r *RedisClient) Delete(ctx context.Context, key string) error {
	if !r.enabled {
		return nil
	}
	return r.client.Del(ctx, key).Err()
}

// Ping checks the connection. A disabled client is always healthy.
func (r *RedisClient) Ping(ctx context.Context) error {
	if !r.enabled {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the connection pool.
func (r *RedisClient) Close() error {
	if !r.enabled {
		return nil
	}
	return r.client.Close()
}

// RedisSnapshotStore keeps the serialized tables under a single key.
type RedisSnapshotStore struct {
	redis *RedisClient
	key   string
}

// NewRedisSnapshotStore creates a snapshot store on key.
func NewRedisSnapshotStore(redis *RedisClient, key string) *RedisSnapshotStore {
	return &RedisSnapshotStore{redis: redis, key: key}
}

// ReadSnapshot implements advisor.SnapshotStore.
func (s *RedisSnapshotStore) ReadSnapshot(ctx context.Context) ([]byte, error) {
	val, err := s.redis.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, advisor.ErrNoSnapshot
	}
	return []byte(val), nil
}

// WriteSnapshot implements advisor.SnapshotStore. A SET replaces the value
// atomically, so readers never see a partial snapshot.
func (s *RedisSnapshotStore) WriteSnapshot(ctx context.Context, data []byte) error {
	return s.redis.Set(ctx, s.key, string(data))
}
