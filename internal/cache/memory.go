// Package cache provides short-lived in-process caches for metadata that is
// safe to share between verification requests (never page content).
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is a TTL cache holding values of type T
type Memory[T any] struct {
	cache *gocache.Cache
}

// NewMemory creates a new memory cache
func NewMemory[T any](defaultTTL time.Duration, cleanupInterval time.Duration) *Memory[T] {
	return &Memory[T]{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *Memory[T]) Get(key string) (T, bool) {
	var zero T
	val, found := c.cache.Get(key)
	if !found {
		return zero, false
	}
	typed, ok := val.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Set stores a value using the default TTL
func (c *Memory[T]) Set(key string, value T) {
	c.cache.SetDefault(key, value)
}

// Delete removes a value from the cache
func (c *Memory[T]) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all values from the cache
func (c *Memory[T]) Clear() {
	c.cache.Flush()
}

// Len returns the number of cached items, including expired ones not yet evicted
func (c *Memory[T]) Len() int {
	return c.cache.ItemCount()
}
