// Package cache provides the client-side query cache: fetched
// collections are kept for a TTL, concurrent reads of the same key are
// collapsed into one request, and mutations invalidate their namespace.
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/lifehub/core/internal/infrastructure/config"
	"github.com/lifehub/core/internal/infrastructure/logger"
)

// Cache is a TTL cache with request de-duplication.
type Cache struct {
	ttl     time.Duration
	enabled bool
	logger  *logger.Logger

	mu      sync.Mutex
	entries map[string]entry
	group   singleflight.Group
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// New creates a cache from configuration.
func New(cfg config.CacheConfig, log *logger.Logger) *Cache {
	return &Cache{
		ttl:     cfg.TTL,
		enabled: cfg.Enabled,
		logger:  log.WithComponent("cache"),
		entries: make(map[string]entry),
	}
}

// Key builds a cache key inside a namespace. Invalidation targets the
// whole namespace, so every key of a domain collection must share one.
func Key(namespace string, parts ...string) string {
	if len(parts) == 0 {
		return namespace
	}
	return namespace + ":" + strings.Join(parts, ":")
}

// GetOrFetch returns the cached value for key, or runs fetch and caches
// the result. Concurrent callers of the same key share one fetch.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if !c.enabled {
		return fetch(ctx)
	}

	if v, ok := c.lookup(key); ok {
		hitsTotal.WithLabelValues(namespaceOf(key)).Inc()
		c.logger.LogCacheEvent("hit", key)
		return v, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while this one
		// waited on the flight group.
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		missesTotal.WithLabelValues(namespaceOf(key)).Inc()
		c.logger.LogCacheEvent("miss", key)

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	return v, err
}

// Invalidate drops every entry in the namespace. Called after any
// mutation in that domain before the mutation returns.
func (c *Cache) Invalidate(namespace string) {
	if !c.enabled {
		return
	}

	prefix := namespace + ":"
	c.mu.Lock()
	for k := range c.entries {
		if k == namespace || strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
			c.group.Forget(k)
		}
	}
	c.mu.Unlock()

	invalidationsTotal.WithLabelValues(namespace).Inc()
	c.logger.LogCacheEvent("invalidate", namespace)
}

// Clear drops the whole cache. Used after import, which can touch every
// collection at once.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	c.logger.LogCacheEvent("clear", "*")
}

func (c *Cache) lookup(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		// Lazy eviction on read.
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

func (c *Cache) store(key string, v interface{}) {
	c.mu.Lock()
	c.entries[key] = entry{value: v, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func namespaceOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Fetch is the typed front of GetOrFetch.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	v, err := c.GetOrFetch(ctx, key, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
