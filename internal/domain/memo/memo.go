// Package memo provides a bounded, concurrency-safe cache with
// oldest-first eviction. It backs both transfer idempotency tracking and
// team summary memoization.
package memo

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50_000

// Option applies a configuration option to a Cache.
type Option func(*settings)

type settings struct {
	maxSize int
}

// WithMaxSize bounds the number of entries kept.
// If maxSize > 0: bounded, the oldest insert is evicted first.
// If maxSize <= 0: unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *settings) {
		s.maxSize = maxSize
	}
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// Cache maps keys to values, evicting the oldest insert once full.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	items   map[K]*list.Element
	order   *list.List // front = newest
	maxSize int

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a Cache.
func New[K comparable, V any](opts ...Option) *Cache[K, V] {
	s := settings{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&s)
	}
	return &Cache[K, V]{
		items:   make(map[K]*list.Element),
		order:   list.New(),
		maxSize: s.maxSize,
	}
}

// Get returns the value for key and whether it was present.
func (c *Cache[K, V]) Get(_ context.Context, key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.hits.Add(1)
		return el.Value.(*entry[K, V]).val, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Put stores val under key, replacing any existing value.
func (c *Cache[K, V]) Put(_ context.Context, key K, val V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[K, V]).val = val
		return
	}
	c.insert(key, val)
}

// PutIfAbsent stores val only when key is new. It reports whether key was
// already present; check and insert happen under one lock.
func (c *Cache[K, V]) PutIfAbsent(_ context.Context, key K, val V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[key]; ok {
		return true
	}
	c.insert(key, val)
	return false
}

// Delete removes key if present.
func (c *Cache[K, V]) Delete(_ context.Context, key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.Remove(el)
		delete(c.items, key)
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.items))
}

// Stats returns the hit and miss counts observed by Get.
func (c *Cache[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// insert must be called with c.mu held.
func (c *Cache[K, V]) insert(key K, val V) {
	if c.maxSize > 0 && len(c.items) >= c.maxSize {
		c.evictOldest()
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, val: val})
}

// evictOldest must be called with c.mu held.
func (c *Cache[K, V]) evictOldest() {
	el := c.order.Back()
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*entry[K, V]).key)
}
