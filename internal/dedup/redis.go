package dedup

import (
	"context"
	"fmt"
	"time"

	redisPkg "stock-alert-bot/pkg/redis"
)

const redisKeyNewsSeen = "news_seen:%s"

// RedisStore is a Store shared across processes, backed by Redis SETNX with a
// retention TTL.
type RedisStore struct {
	client    *redisPkg.Client
	retention time.Duration
}

// NewRedisStore creates a RedisStore. A zero retention selects
// DefaultRetention.
func NewRedisStore(client *redisPkg.Client, retention time.Duration) *RedisStore {
	if retention == 0 {
		retention = DefaultRetention
	}
	return &RedisStore{client: client, retention: retention}
}

// Observe implements Store.
func (r *RedisStore) Observe(ctx context.Context, key string) (bool, error) {
	first, err := r.client.SetNX(ctx, fmt.Sprintf(redisKeyNewsSeen, key), 1, r.retention).Result()
	if err != nil {
		return false, fmt.Errorf("dedup setnx: %w", err)
	}
	return first, nil
}
