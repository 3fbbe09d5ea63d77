// Package recency implements the MRU↔LRU ordering used by the cache.
//
// Nodes live in a single slice owned by the List; neighbour links are slot
// indices rather than pointers. Two sentinel slots bound the list so that
// splicing never branches on empty or single-element cases.
package recency

import (
	"fmt"

	"github.com/pkg/errors"
)

// Handle identifies a node slot inside a List. The zero Handle is the MRU
// sentinel and is never returned for a live node.
type Handle int

const (
	head Handle = 0 // MRU sentinel
	tail Handle = 1 // LRU sentinel

	sentinels = 2
)

// node is an arena slot. prev points toward MRU, next toward LRU.
type node[K comparable, V any] struct {
	key K
	val V

	prev Handle
	next Handle

	live bool
}

// List is a doubly linked recency list backed by an arena of nodes.
// It is not safe for concurrent use.
type List[K comparable, V any] struct {
	nodes []node[K, V]
	free  []Handle // reclaimed slots, reused LIFO
	len   int      // live nodes, sentinels excluded
}

// New returns an empty list with room for hint live nodes before the
// arena has to grow. A non-positive hint allocates only the sentinels.
func New[K comparable, V any](hint int) *List[K, V] {
	if hint < 0 {
		hint = 0
	}
	l := &List[K, V]{nodes: make([]node[K, V], sentinels, sentinels+hint)}
	l.link()
	return l
}

// link wires the sentinels to each other.
func (l *List[K, V]) link() {
	l.nodes[head].next = tail
	l.nodes[head].prev = head
	l.nodes[tail].prev = head
	l.nodes[tail].next = tail
}

// Len returns the number of live nodes.
func (l *List[K, V]) Len() int { return l.len }

// PushFront stores k→v in a fresh slot linked at the MRU end and returns its handle.
func (l *List[K, V]) PushFront(k K, v V) Handle {
	var h Handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.nodes = append(l.nodes, node[K, V]{})
		h = Handle(len(l.nodes) - 1)
	}
	n := &l.nodes[h]
	n.key, n.val, n.live = k, v, true
	l.insertAfterHead(h)
	l.len++
	return h
}

// MoveToFront promotes h to the MRU end (unlink, then push).
func (l *List[K, V]) MoveToFront(h Handle) {
	l.mustLive(h)
	if l.nodes[head].next == h {
		return
	}
	l.unlink(h)
	l.insertAfterHead(h)
}

// Remove unlinks h and releases its slot. The stored key and value are
// returned; the slot keeps no reference to them afterwards.
func (l *List[K, V]) Remove(h Handle) (K, V) {
	l.mustLive(h)
	l.unlink(h)
	n := &l.nodes[h]
	k, v := n.key, n.val
	*n = node[K, V]{}
	l.free = append(l.free, h)
	l.len--
	return k, v
}

// PopBack removes the LRU node. ok is false when the list is empty.
func (l *List[K, V]) PopBack() (k K, v V, ok bool) {
	h, ok := l.Back()
	if !ok {
		return k, v, false
	}
	k, v = l.Remove(h)
	return k, v, true
}

// Front returns the MRU node, if any.
func (l *List[K, V]) Front() (Handle, bool) {
	h := l.nodes[head].next
	return h, h != tail
}

// Back returns the LRU node, if any.
func (l *List[K, V]) Back() (Handle, bool) {
	h := l.nodes[tail].prev
	return h, h != head
}

// Key returns the key stored at h.
func (l *List[K, V]) Key(h Handle) K {
	l.mustLive(h)
	return l.nodes[h].key
}

// Value returns the value stored at h.
func (l *List[K, V]) Value(h Handle) V {
	l.mustLive(h)
	return l.nodes[h].val
}

// SetValue overwrites the value stored at h without touching its position.
func (l *List[K, V]) SetValue(h Handle, v V) {
	l.mustLive(h)
	l.nodes[h].val = v
}

// Reset drops every node and relinks the sentinels. The arena's backing
// array is kept for reuse but zeroed so old values are unreferenced.
func (l *List[K, V]) Reset() {
	clear(l.nodes[sentinels:])
	l.nodes = l.nodes[:sentinels]
	l.free = l.free[:0]
	l.len = 0
	l.link()
}

// Release drops every node and the arena storage itself.
func (l *List[K, V]) Release() {
	l.nodes = make([]node[K, V], sentinels)
	l.free = nil
	l.len = 0
	l.link()
}

// Walk calls fn for each live node from MRU to LRU until fn returns false.
func (l *List[K, V]) Walk(fn func(h Handle, k K, v V) bool) {
	for h := l.nodes[head].next; h != tail; h = l.nodes[h].next {
		if !fn(h, l.nodes[h].key, l.nodes[h].val) {
			return
		}
	}
}

// Validate walks the list in both directions and reports the first
// structural defect: a broken back link, a freed slot still linked,
// or a node count that differs from Len.
func (l *List[K, V]) Validate() error {
	if l.nodes[head].next == head || l.nodes[tail].prev == tail {
		return errors.New("recency: sentinel points at itself")
	}
	count := 0
	prev := head
	for h := l.nodes[head].next; h != tail; h = l.nodes[h].next {
		if h < sentinels || int(h) >= len(l.nodes) {
			return errors.Errorf("recency: link to invalid slot %d", h)
		}
		n := l.nodes[h]
		if !n.live {
			return errors.Errorf("recency: freed slot %d is linked", h)
		}
		if n.prev != prev {
			return errors.Errorf("recency: slot %d prev=%d, want %d", h, n.prev, prev)
		}
		prev = h
		count++
		if count > l.len {
			return errors.Errorf("recency: more than %d linked nodes", l.len)
		}
	}
	if l.nodes[tail].prev != prev {
		return errors.Errorf("recency: tail prev=%d, want %d", l.nodes[tail].prev, prev)
	}
	if count != l.len {
		return errors.Errorf("recency: %d linked nodes, len=%d", count, l.len)
	}
	if live := len(l.nodes) - sentinels - len(l.free); live != l.len {
		return errors.Errorf("recency: %d occupied slots, len=%d", live, l.len)
	}
	return nil
}

// -------------------- internals --------------------

// insertAfterHead links a detached h right after the MRU sentinel.
func (l *List[K, V]) insertAfterHead(h Handle) {
	first := l.nodes[head].next
	l.nodes[h].prev = head
	l.nodes[h].next = first
	l.nodes[first].prev = h
	l.nodes[head].next = h
}

// unlink detaches h from its neighbours.
func (l *List[K, V]) unlink(h Handle) {
	n := &l.nodes[h]
	l.nodes[n.prev].next = n.next
	l.nodes[n.next].prev = n.prev
	n.prev, n.next = head, head
}

// mustLive panics on handles that do not name a live node. Handles come
// only from this package, so a bad one is a caller bug.
func (l *List[K, V]) mustLive(h Handle) {
	if h < sentinels || int(h) >= len(l.nodes) || !l.nodes[h].live {
		panic(fmt.Sprintf("recency: invalid handle %d", h))
	}
}
