package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/johnquangdev/legalmind/pkg/config"
)

const defaultOpTimeout = 2 * time.Second

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// RedisStore is a key-value store shared between API replicas. Redis errors
// are logged and reported as cache misses.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
	logger    *zap.Logger
}

// NewRedisStore wraps client; every key is namespaced with prefix
func NewRedisStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:    client,
		prefix:    prefix,
		opTimeout: defaultOpTimeout,
		logger:    logger,
	}
}

// Set stores a key-value pair with expiration
func (rs *RedisStore) Set(key string, value string, expiration time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.opTimeout)
	defer cancel()

	if err := rs.client.Set(ctx, rs.key(key), value, expiration).Err(); err != nil {
		rs.warn("set", key, err)
	}
}

// Get retrieves a value by key
func (rs *RedisStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.opTimeout)
	defer cancel()

	value, err := rs.client.Get(ctx, rs.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		rs.warn("get", key, err)
		return "", false
	}
	return value, true
}

// Delete removes a key
func (rs *RedisStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), rs.opTimeout)
	defer cancel()

	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		rs.warn("delete", key, err)
	}
}

// Ping checks the connection
func (rs *RedisStore) Ping(ctx context.Context) error {
	return rs.client.Ping(ctx).Err()
}

func (rs *RedisStore) key(k string) string {
	return rs.prefix + k
}

func (rs *RedisStore) warn(op, key string, err error) {
	if rs.logger != nil {
		rs.logger.Warn("⚠️ Redis operation failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
