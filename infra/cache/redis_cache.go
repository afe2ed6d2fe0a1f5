package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/backoffice/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisCodeStore implements cache.CodeStore with SETEX keys.
type RedisCodeStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisCodeStore creates a store over an existing client.
func NewRedisCodeStore(client *redis.Client, prefix string, logger *slog.Logger) *RedisCodeStore {
	return &RedisCodeStore{client: client, prefix: prefix, logger: logger.With("cache", "redis")}
}

func (r *RedisCodeStore) key(key string) string {
	return r.prefix + ":code:" + key
}

func (r *RedisCodeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.SetEx(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "key", key, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "key", key, "ttl", ttl)
	return nil
}

func (r *RedisCodeStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "key", key)
		return "", nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "key", key, "error", err)
		return "", err
	}
	return val, nil
}

func (r *RedisCodeStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "key", key, "error", err)
		return err
	}
	return nil
}

var _ cache.CodeStore = (*RedisCodeStore)(nil)
