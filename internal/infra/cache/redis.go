package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/gravatar/client"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, key string) (bool, bool, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	} else if err != nil {
		return false, false, err
	}
	return decode(val)
}

func (s *RedisStore) Set(ctx context.Context, key string, exists bool, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, encode(exists), ttl).Err()
}

var _ client.Store = (*RedisStore)(nil)
