// Package cache holds a minimal in-process TTL cache used to trim
// directory reads on hot paths (slug resolution mostly). Lazy
// expiration on Get; callers choose a sensible TTL.
package cache

import (
	"sync"
	"time"
)

type TTL[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]entry[V]
}

type entry[V any] struct {
	val V
	exp time.Time
}

func NewTTL[K comparable, V any]() *TTL[K, V] {
	return &TTL[K, V]{data: make(map[K]entry[V])}
}

// Get returns the value and true if found and not expired; otherwise zero value and false.
func (t *TTL[K, V]) Get(k K) (V, bool) {
	t.mu.RLock()
	e, ok := t.data[k]
	t.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		var zero V
		return zero, false
	}
	return e.val, true
}

func (t *TTL[K, V]) Set(k K, v V, ttl time.Duration) {
	t.mu.Lock()
	t.data[k] = entry[V]{val: v, exp: time.Now().Add(ttl)}
	t.mu.Unlock()
}

// Invalidate drops a key so the next Get misses.
func (t *TTL[K, V]) Invalidate(k K) {
	t.mu.Lock()
	delete(t.data, k)
	t.mu.Unlock()
}
