package repositories

import (
	"context"
	"errors"
	"time"

	apperrors "maintenance-system/pkg/errors"

	"github.com/go-redis/redis/v8"
)

// Все ключи сервиса живут в своём пространстве имён, чтобы не пересекаться с другими клиентами Redis.
const cacheKeyPrefix = "maintenance:"

type RedisCacheRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisCacheRepository(client *redis.Client) CacheRepositoryInterface {
	return &RedisCacheRepository{client: client, prefix: cacheKeyPrefix}
}

func (r *RedisCacheRepository) key(k string) string {
	return r.prefix + k
}

func (r *RedisCacheRepository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperrors.ErrNotFound
	}
	return value, err
}

func (r *RedisCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, expiration).Err()
}

func (r *RedisCacheRepository) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = r.key(k)
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// Incr атомарно увеличивает счётчик; отсутствующий ключ считается нулём.
func (r *RedisCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, r.key(key)).Result()
}

func (r *RedisCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return r.client.Expire(ctx, r.key(key), expiration).Result()
}
