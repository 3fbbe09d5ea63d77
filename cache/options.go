package cache

// maxSizeHint bounds the allocation made up front when SizeHint is derived
// from Capacity, so a huge capacity does not reserve memory it may never use.
const maxSizeHint = 1 << 16

// Options configures the cache. Capacity is the only required field;
// the zero value describes a valid zero-capacity cache that stores nothing.
type Options struct {
	// Capacity is the entry count limit. Must be >= 0.
	Capacity int

	// SizeHint presizes the key index and node arena.
	// A non-positive value selects min(Capacity+1, 65536).
	SizeHint int
}

// sizeHint returns the initial allocation for the index and the arena.
// Capacity+1 covers the transient extra entry before an eviction.
func (o Options) sizeHint() int {
	if o.SizeHint > 0 {
		return o.SizeHint
	}
	if o.Capacity == 0 {
		return 0
	}
	return min(o.Capacity+1, maxSizeHint)
}
