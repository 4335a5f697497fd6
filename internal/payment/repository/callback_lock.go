package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const callbackLockTTL = 2 * time.Minute

// RedisCallbackLocker takes a short-lived lock per gateway reference id so
// that duplicate callbacks racing each other collapse to a single winner.
type RedisCallbackLocker struct {
	client *redis.Client
}

func NewRedisCallbackLocker(client *redis.Client) *RedisCallbackLocker {
	return &RedisCallbackLocker{client: client}
}

func (l *RedisCallbackLocker) Acquire(ctx context.Context, refID string) (bool, error) {
	key := fmt.Sprintf("payment:callback:%s", refID)
	return l.client.SetNX(ctx, key, "1", callbackLockTTL).Result()
}
