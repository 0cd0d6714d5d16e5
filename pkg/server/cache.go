package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type localEntry struct {
	expires time.Time
	data    []byte
}

// Cache keeps encoded responses in process and, when an address is given, in
// redis so they are shared between instances.
type Cache struct {
	client *redis.Client
	mu     sync.Mutex
	local  map[string]localEntry
	ttl    time.Duration
	Logger *zap.Logger
}

func NewCache(addr, password string, db int, ttl time.Duration) *Cache {
	c := &Cache{
		local:  make(map[string]localEntry),
		ttl:    ttl,
		Logger: zap.NewNop(),
	}
	if addr != "" {
		c.client = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
	}
	return c
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	entry, found := c.local[key]
	if found && entry.expires.Before(time.Now()) {
		delete(c.local, key)
		found = false
	}
	c.mu.Unlock()
	if found {
		return entry.data, true
	}
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	c.setLocal(key, data)
	return data, true
}

func (c *Cache) setLocal(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.local[key] = localEntry{expires: time.Now().Add(c.ttl), data: data}
}

func (c *Cache) Set(ctx context.Context, key string, data []byte) error {
	c.setLocal(key, data)
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Handle returns the cached value for key or stores what fn produces. A
// failing redis only costs the shared copy, the value is still returned.
func (c *Cache) Handle(ctx context.Context, key string, fn func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(ctx, key); ok {
		cacheHits.Inc()
		return data, nil
	}
	data, err := fn()
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, data); err != nil {
		c.Logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return data, nil
}

func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// FacetKey scopes a cached facet response to one catalog version and one
// canonical filter state.
func FacetKey(generatedAt time.Time, canonicalQuery string) string {
	return fmt.Sprintf("storefront:facets:%d:%s", generatedAt.UnixMilli(), canonicalQuery)
}
