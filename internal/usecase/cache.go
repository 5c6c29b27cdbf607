package usecase

import (
	"sync"
	"time"
)

// timedCache is a keyed cache with a per-entry TTL. Entries are checked for
// expiry lazily on read; there is no background sweep. The cache never
// observes writes, callers must invalidate explicitly after mutations.
type timedCache[K comparable, V any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	store map[K]cacheEntry[V]
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

func newTimedCache[K comparable, V any](ttl time.Duration) *timedCache[K, V] {
	return &timedCache[K, V]{
		ttl:   ttl,
		store: make(map[K]cacheEntry[V]),
	}
}

func (c *timedCache[K, V]) get(key K, now time.Time) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.store[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !entry.expiresAt.After(now) {
		delete(c.store, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

func (c *timedCache[K, V]) put(key K, value V, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

func (c *timedCache[K, V]) remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, key)
}
