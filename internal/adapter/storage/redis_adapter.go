package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	menuKeyPrefix = "menu:"
	menuKeyTTL    = 5 * time.Minute
)

// RedisAdapter implements port.CacheRepository for menu item documents.
// Entries expire so a lost invalidation only goes stale for the TTL.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) GetMenuItem(ctx context.Context, id uuid.UUID) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, menuKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (r *RedisAdapter) SetMenuItem(ctx context.Context, id uuid.UUID, data []byte) error {
	return r.client.Set(ctx, menuKeyPrefix+id.String(), data, menuKeyTTL).Err()
}

func (r *RedisAdapter) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, menuKeyPrefix+id.String()).Err()
}

// Ping reports whether Redis is reachable.
func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
