// Package plancache provides an in-memory LRU cache for computed production
// plans. The recipe database is immutable for the life of the process, so a
// cached plan only ever goes stale by eviction or TTL; nothing is persisted.
package plancache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size-bounded, time-expiring plan cache keyed by the canonical
// request hash.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
}

// New creates a cache holding at most size plans for at most ttl each.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get retrieves a cached plan.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Set stores a plan.
func (c *Cache[V]) Set(key string, value V) {
	c.lru.Add(key, value)
}

// Len returns the number of cached plans.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Purge removes every cached plan.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// Key derives the cache key for any JSON-marshalable request. Two requests
// with the same canonical JSON form share a plan.
func Key(request any) (string, error) {
	data, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to build cache key: %w", err)
	}
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
