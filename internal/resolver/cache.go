// Package resolver caches the identifiers the adapters resolve from names:
// the card index of each subsystem and the graph node of each port.
package resolver

import (
	"context"
	"sync"

	"audioctl/internal/domain"
)

// Cache is a concurrency-safe map of resolved identifiers. The lock is
// never held while a value is being resolved, so two callers racing on the
// same key may both resolve it; the last write wins and the entry stays
// single.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
}

// NewCache creates an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores value under key, replacing any previous value.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops key.
func (c *Cache[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Reset drops every entry.
func (c *Cache[K, V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]V)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrResolve returns the cached value for key or calls resolve and caches
// its result. Failed resolutions are not cached.
func (c *Cache[K, V]) GetOrResolve(ctx context.Context, key K, resolve func(context.Context, K) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := resolve(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// Refresh resolves key again and replaces the cached value. On failure the
// previous entry is dropped.
func (c *Cache[K, V]) Refresh(ctx context.Context, key K, resolve func(context.Context, K) (V, error)) (V, error) {
	v, err := resolve(ctx, key)
	if err != nil {
		c.Invalidate(key)
		var zero V
		return zero, err
	}
	c.Put(key, v)
	return v, nil
}

// CardCache holds the session's single active card. It is written by Init
// and read by everything else.
type CardCache struct {
	mu   sync.RWMutex
	card domain.CardID
	ok   bool
}

// Get returns the card, or ErrCardNotInitialized before the first Init.
func (c *CardCache) Get() (domain.CardID, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ok {
		return 0, domain.ErrCardNotInitialized
	}
	return c.card, nil
}

// Init resolves the card and replaces the held value. A failed resolution
// leaves the cache empty.
func (c *CardCache) Init(ctx context.Context, resolve func(context.Context) (domain.CardID, error)) (domain.CardID, error) {
	card, err := resolve(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.card, c.ok = 0, false
		return 0, err
	}
	c.card, c.ok = card, true
	return card, nil
}

// GetOrInit returns the held card or resolves it.
func (c *CardCache) GetOrInit(ctx context.Context, resolve func(context.Context) (domain.CardID, error)) (domain.CardID, error) {
	if card, err := c.Get(); err == nil {
		return card, nil
	}
	return c.Init(ctx, resolve)
}

// Reset forgets the card.
func (c *CardCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.card, c.ok = 0, false
}
