package cache

import (
	"github.com/IvanBrykalov/lrucache/internal/inflight"
	"github.com/IvanBrykalov/lrucache/internal/recency"
)

// LRU is a fixed-capacity least-recently-used cache.
//
// The key index maps each resident key to a handle into the recency list,
// which owns the nodes (head=MRU, tail=LRU). Both structures always hold
// exactly the same set of keys.
//
// LRU is not safe for concurrent use; see Cache.
type LRU[K comparable, V any] struct {
	capacity int
	index    map[K]recency.Handle
	list     *recency.List[K, V]

	// keys whose Producer is running, to refuse same-key re-entry
	computing inflight.Set[K]
}

// Ensure LRU implements the Cache interface at compile time.
var _ Cache[string, any] = (*LRU[string, any])(nil)

// New constructs an LRU with the provided Options.
// It returns ErrInvalidCapacity if opt.Capacity is negative.
func New[K comparable, V any](opt Options) (*LRU[K, V], error) {
	if opt.Capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	hint := opt.sizeHint()
	return &LRU[K, V]{
		capacity: opt.Capacity,
		index:    make(map[K]recency.Handle, hint),
		list:     recency.New[K, V](hint),
	}, nil
}

// MustNew is like New but panics if the options are invalid.
func MustNew[K comparable, V any](opt Options) *LRU[K, V] {
	c, err := New[K, V](opt)
	if err != nil {
		panic(err)
	}
	return c
}

// ---- Cache[K,V] implementation ----

// Get returns the value for k and promotes it to MRU on hit.
func (c *LRU[K, V]) Get(k K) (V, bool) {
	h, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	c.list.MoveToFront(h)
	return c.list.Value(h), true
}

// Set inserts or replaces k→v and promotes k to MRU.
func (c *LRU[K, V]) Set(k K, v V) error {
	if err := checkKey(k); err != nil {
		return err
	}
	if isNil(v) {
		return ErrNilValue
	}
	c.set(k, v)
	return nil
}

// ComputeIfAbsent returns the resident value for k, or produces, stores and
// returns a new one on miss.
func (c *LRU[K, V]) ComputeIfAbsent(k K, p Producer[K, V]) (V, bool, error) {
	var zero V
	if p == nil {
		return zero, false, ErrNilProducer
	}
	if err := checkKey(k); err != nil {
		return zero, false, err
	}
	if v, ok := c.Get(k); ok {
		return v, true, nil
	}

	if !c.computing.Begin(k) {
		return zero, false, ErrReentrantCompute
	}
	// End runs even if p panics, so a recovered caller can retry k.
	defer c.computing.End(k)

	v, ok, err := p(k)
	if err != nil {
		return zero, false, err
	}
	if !ok || isNil(v) {
		return zero, false, nil
	}
	c.set(k, v)
	return v, true, nil
}

// Contains reports whether k is resident without touching recency.
func (c *LRU[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Remove deletes k if present and returns true on success.
func (c *LRU[K, V]) Remove(k K) bool {
	h, ok := c.index[k]
	if !ok {
		return false
	}
	c.list.Remove(h)
	delete(c.index, k)
	return true
}

// Len returns the number of resident entries.
func (c *LRU[K, V]) Len() int { return len(c.index) }

// Cap returns the configured capacity.
func (c *LRU[K, V]) Cap() int { return c.capacity }

// Clear drops every entry and relinks the recency sentinels.
func (c *LRU[K, V]) Clear() {
	clear(c.index)
	c.list.Reset()
}

// Close drops every entry and releases the node arena. The cache stays
// usable afterwards and simply starts empty.
func (c *LRU[K, V]) Close() error {
	c.index = make(map[K]recency.Handle)
	c.list.Release()
	return nil
}

// ---- helpers ----

// set is the insert-or-replace path shared by Set and ComputeIfAbsent.
// Arguments are already validated.
func (c *LRU[K, V]) set(k K, v V) {
	if h, ok := c.index[k]; ok {
		c.list.SetValue(h, v)
		c.list.MoveToFront(h)
		return
	}
	if c.capacity == 0 {
		return
	}
	c.index[k] = c.list.PushFront(k, v)
	if c.list.Len() > c.capacity {
		c.evict()
	}
}

// evict removes the LRU entry from both the list and the index.
func (c *LRU[K, V]) evict() {
	if k, _, ok := c.list.PopBack(); ok {
		delete(c.index, k)
	}
}
