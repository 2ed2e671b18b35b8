package cache

import (
	"context"
	"errors"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/totegamma/gravatar/client"
)

type MemcachedStore struct {
	mc *memcache.Client
}

func NewMemcachedStore(mc *memcache.Client) *MemcachedStore {
	return &MemcachedStore{mc: mc}
}

func (s *MemcachedStore) Get(ctx context.Context, key string) (bool, bool, error) {
	item, err := s.mc.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return false, false, nil
	} else if err != nil {
		return false, false, err
	}
	return decode(string(item.Value))
}

// Set stores the result. memcached expirations are whole seconds.
func (s *MemcachedStore) Set(ctx context.Context, key string, exists bool, ttl time.Duration) error {
	expiration := int32(ttl / time.Second)
	if expiration <= 0 {
		expiration = 1
	}
	return s.mc.Set(&memcache.Item{
		Key:        key,
		Value:      []byte(encode(exists)),
		Expiration: expiration,
	})
}

var _ client.Store = (*MemcachedStore)(nil)
