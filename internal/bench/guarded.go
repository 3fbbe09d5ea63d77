package bench

import (
	"sync"

	"github.com/IvanBrykalov/lrucache/cache"
)

// Guarded serializes every call to an underlying cache with one mutex, so
// a thread-confined cache can be shared by many goroutines.
//
// The lock is held while a Producer runs. A Producer must not call back into
// the same Guarded; it would deadlock.
type Guarded[K comparable, V any] struct {
	mu sync.Mutex
	c  cache.Cache[K, V]
}

// Guard wraps c. c must not be used directly afterwards.
func Guard[K comparable, V any](c cache.Cache[K, V]) *Guarded[K, V] {
	return &Guarded[K, V]{c: c}
}

// Ensure Guarded implements the Cache interface at compile time.
var _ cache.Cache[string, string] = (*Guarded[string, string])(nil)

func (g *Guarded[K, V]) Get(k K) (V, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Get(k)
}

func (g *Guarded[K, V]) Set(k K, v V) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Set(k, v)
}

func (g *Guarded[K, V]) ComputeIfAbsent(k K, p cache.Producer[K, V]) (V, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.ComputeIfAbsent(k, p)
}

func (g *Guarded[K, V]) Contains(k K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Contains(k)
}

func (g *Guarded[K, V]) Remove(k K) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Remove(k)
}

func (g *Guarded[K, V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Len()
}

// Cap is immutable after construction but is still read under the lock.
func (g *Guarded[K, V]) Cap() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Cap()
}

func (g *Guarded[K, V]) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.c.Clear()
}

func (g *Guarded[K, V]) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.c.Close()
}
