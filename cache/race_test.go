package cache

import (
	"math/rand"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// The cache is not synchronized; callers share it behind one mutex.
// This mixed workload must pass under `-race` and leave the cache consistent.
func TestRace_ExternallySerialized(t *testing.T) {
	c := MustNew[string, []byte](Options{Capacity: 512})
	t.Cleanup(func() { _ = c.Close() })

	var mu sync.Mutex
	workers := 4 * runtime.GOMAXPROCS(0)
	keyspace := 2_000
	deadline := time.Now().Add(500 * time.Millisecond)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(w)*9973))
			for time.Now().Before(deadline) {
				k := "k:" + strconv.Itoa(r.Intn(keyspace))
				mu.Lock()
				var err error
				switch r.Intn(100) {
				case 0, 1, 2, 3, 4: // ~5% Remove
					c.Remove(k)
				case 5, 6, 7, 8, 9, 10, 11, 12, 13, 14: // ~10% ComputeIfAbsent
					_, _, err = c.ComputeIfAbsent(k, produce[string]([]byte("computed")))
				case 15, 16, 17, 18, 19, 20, 21, 22, 23, 24: // ~10% Set
					err = c.Set(k, []byte("x"))
				default: // ~75% Get
					c.Get(k)
				}
				mu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	requireInvariants(t, c)
	if c.Len() == 0 {
		t.Fatal("workload left the cache empty")
	}
}
