// Package cache provides a generic, bounded, in-memory LRU cache.
//
// Design
//
//   - Storage: a map[K]Handle for lookups and a recency list for ordering
//     (MRU at the head, LRU at the tail). The list keeps its nodes in a single
//     arena slice and links them by slot index; two sentinel slots bound it.
//     The map stores handles into the arena and never owns a node.
//
//   - Eviction: a fixed rule. When an insert of a new key takes the size to
//     Capacity+1, the tail node is popped and its key deleted from the map.
//     Capacity 0 is legal: nothing is ever stored.
//
//   - Recency: a hit in Get, any Set (insert or overwrite) and any
//     ComputeIfAbsent that returns a value count as an access and move the
//     key to MRU. A miss, Contains, and a Producer reporting absence do not.
//
//   - ComputeIfAbsent: the Producer runs at most once, only after a miss is
//     established, and before any mutation. Producer errors and panics
//     therefore leave the cache exactly as it was.
//
// Basic usage
//
//	c := cache.MustNew[int, string](cache.Options{Capacity: 3})
//	_ = c.Set(1, "A")
//	if v, ok := c.Get(1); ok {
//	    _ = v // use value
//	}
//
// Read-through
//
//	v, ok, err := c.ComputeIfAbsent(42, func(k int) (string, bool, error) {
//	    // e.g. fetch from DB; report ok=false for "no such row"
//	    return "v:" + strconv.Itoa(k), true, nil
//	})
//
// Thread-safety & complexity
//
// The cache is not synchronized. Every method may mutate the recency list,
// so callers that share a cache across goroutines must guard every call with
// one lock. Operations are O(1) expected time; Clear is linear in Len.
package cache
