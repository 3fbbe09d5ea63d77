package cache

// Producer computes the value for a missing key in ComputeIfAbsent.
//
// It reports ok=false (or returns a nil value) when the key has no value;
// nothing is stored in that case. A non-nil error is returned to the caller
// of ComputeIfAbsent unchanged.
type Producer[K comparable, V any] func(k K) (v V, ok bool, err error)

// Cache is a bounded key/value store that keeps the most recently used
// entries and evicts the least recently used one when capacity is exceeded.
//
// Implementations are NOT safe for concurrent use: every method, Get and
// ComputeIfAbsent included, may reorder the recency list. Callers sharing a
// cache across goroutines must serialize all calls (e.g. with a sync.Mutex).
//
// Get, Set, ComputeIfAbsent, Contains, Remove and Len run in O(1) expected
// time; Clear is linear in the number of resident entries.
type Cache[K comparable, V any] interface {
	// Get returns the value for k and a presence flag.
	// On hit, the entry becomes the most recently used. A miss changes nothing.
	Get(k K) (V, bool)

	// Set inserts or replaces k→v and makes k the most recently used entry.
	// Inserting a new key into a full cache evicts the least recently used entry.
	// With zero capacity Set stores nothing and succeeds.
	// Returns ErrNilKey, ErrInvalidKey or ErrNilValue for keys or values that
	// cannot be stored; the cache is left unchanged.
	Set(k K, v V) error

	// ComputeIfAbsent returns the value for k, calling p at most once on a miss.
	// A hit promotes k and never calls p. A produced value is stored as if by Set
	// (except with zero capacity, where it is returned but not stored).
	// If p reports absence, ok is false and the cache is unchanged.
	// If p fails, its error is returned unchanged and the cache is unchanged.
	ComputeIfAbsent(k K, p Producer[K, V]) (v V, ok bool, err error)

	// Contains reports whether k is resident. It does not affect recency.
	Contains(k K) bool

	// Remove deletes k if present and returns true on success.
	Remove(k K) bool

	// Len returns the number of resident entries.
	Len() int

	// Cap returns the configured capacity.
	Cap() int

	// Clear drops every entry. Capacity is preserved.
	Clear()

	// Close releases the cache's storage. The in-memory cache holds no
	// external resources; Close drops all entries and returns nil.
	Close() error
}
