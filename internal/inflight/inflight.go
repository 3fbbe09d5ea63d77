// Package inflight tracks keys whose value is being produced on the
// current call stack.
package inflight

// Set records keys with a producer in progress so that a producer which
// calls back into the cache for its own key can be refused.
//
// Unlike a singleflight group there is no waiting: the cache is confined to
// one goroutine, so a key already in the set can only mean re-entry.
// The zero value is ready to use.
type Set[K comparable] struct {
	m map[K]struct{}
}

// Begin marks k as in flight. It returns false if k was already marked,
// leaving the set unchanged.
func (s *Set[K]) Begin(k K) bool {
	if s.m == nil {
		s.m = make(map[K]struct{})
	}
	if _, ok := s.m[k]; ok {
		return false
	}
	s.m[k] = struct{}{}
	return true
}

// End clears the in-flight mark for k.
func (s *Set[K]) End(k K) { delete(s.m, k) }

// Has reports whether k is in flight.
func (s *Set[K]) Has(k K) bool {
	_, ok := s.m[k]
	return ok
}

// Len returns the number of keys in flight.
func (s *Set[K]) Len() int { return len(s.m) }
