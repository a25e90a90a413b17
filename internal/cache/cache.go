// Package cache provides a small TTL cache used to cache public
// verification responses. The default backend is in-memory; UseRedisCache
// switches to a shared redis instance.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a byte-value cache with per-entry expiration.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte, ttl time.Duration) error
}

var c Cache = newMemoryCache()

// Get returns the cached value for key and whether it was present.
func Get(key string) ([]byte, bool, error) {
	return c.Get(key)
}

// Set stores value under key for the passed ttl.
func Set(key string, value []byte, ttl time.Duration) error {
	return c.Set(key, value, ttl)
}

// UseRedisCache switches the cache backend to redis.
func UseRedisCache(options *redis.Options) error {
	r := redis.NewClient(options)
	if err := r.Ping(context.Background()).Err(); err != nil {
		return err
	}
	c = &redisCache{client: r}
	return nil
}

type memoryCache struct {
	mutex   sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]memoryEntry)}
}

func (m *memoryCache) Get(key string) ([]byte, bool, error) {
	m.mutex.RLock()
	e, ok := m.entries[key]
	m.mutex.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expiresAt) {
		m.mutex.Lock()
		delete(m.entries, key)
		m.mutex.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *memoryCache) Set(key string, value []byte, ttl time.Duration) error {
	m.mutex.Lock()
	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	m.mutex.Unlock()
	return nil
}

type redisCache struct {
	client *redis.Client
}

func (r *redisCache) Get(key string) ([]byte, bool, error) {
	v, err := r.client.Get(context.Background(), key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (r *redisCache) Set(key string, value []byte, ttl time.Duration) error {
	return r.client.Set(context.Background(), key, value, ttl).Err()
}
