// Package cache provides a short-TTL read cache for list-returning queries,
// invalidated by explicit tag on write.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
	tags      []string
}

type Cache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry[V]
}

func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
	}
}

func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) Set(key string, value V, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
		tags:      tags,
	}
}

// Invalidate drops every entry carrying the tag.
func (c *Cache[V]) Invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(c.entries, key)
				break
			}
		}
	}
}
