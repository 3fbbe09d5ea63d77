//go:build go1.18

package cache

import (
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

// model is a deliberately naive LRU: a slice ordered MRU→LRU plus a map.
type model struct {
	cap   int
	order []byte
	vals  map[byte]string
}

func (m *model) touch(k byte) {
	i := slices.Index(m.order, k)
	m.order = slices.Delete(m.order, i, i+1)
	m.order = slices.Insert(m.order, 0, k)
}

func (m *model) get(k byte) (string, bool) {
	v, ok := m.vals[k]
	if ok {
		m.touch(k)
	}
	return v, ok
}

func (m *model) set(k byte, v string) {
	if _, ok := m.vals[k]; ok {
		m.vals[k] = v
		m.touch(k)
		return
	}
	if m.cap == 0 {
		return
	}
	m.vals[k] = v
	m.order = slices.Insert(m.order, 0, k)
	if len(m.order) > m.cap {
		delete(m.vals, m.order[len(m.order)-1])
		m.order = m.order[:len(m.order)-1]
	}
}

func (m *model) remove(k byte) bool {
	if _, ok := m.vals[k]; !ok {
		return false
	}
	delete(m.vals, k)
	i := slices.Index(m.order, k)
	m.order = slices.Delete(m.order, i, i+1)
	return true
}

var errFuzzProducer = errors.New("fuzz: producer failed")

// Fuzz an arbitrary op stream against the model. Each pair of bytes is one
// op: the first selects the operation, the second the key (from a small
// keyspace so hits and evictions are frequent).
func FuzzCache_AgainstModel(f *testing.F) {
	f.Add(uint8(3), []byte{0, 1, 0, 2, 0, 3, 1, 1, 0, 4})
	f.Add(uint8(2), []byte{0, 10, 0, 20, 1, 10, 0, 30})
	f.Add(uint8(0), []byte{0, 1, 2, 2, 3, 2})
	f.Add(uint8(1), []byte{2, 1, 4, 1, 3, 1, 5, 0, 6, 0})
	f.Add(uint8(8), []byte(strings.Repeat("\x00\x07\x01\x05\x02\x03", 40)))

	f.Fuzz(func(t *testing.T, capacity uint8, ops []byte) {
		capN := int(capacity % 9)
		c := MustNew[byte, string](Options{Capacity: capN})
		m := &model{cap: capN, vals: map[byte]string{}}

		for i := 0; i+1 < len(ops); i += 2 {
			op, k := ops[i]%7, ops[i+1]%16
			v := string(rune('a' + i%26))

			switch op {
			case 0:
				if err := c.Set(k, v); err != nil {
					t.Fatalf("op %d: Set(%d): %v", i, k, err)
				}
				m.set(k, v)
			case 1:
				got, ok := c.Get(k)
				want, wantOK := m.get(k)
				if ok != wantOK || got != want {
					t.Fatalf("op %d: Get(%d) = %q,%v want %q,%v", i, k, got, ok, want, wantOK)
				}
			case 2:
				got, ok, err := c.ComputeIfAbsent(k, produce[byte](v))
				want, wantOK := m.get(k)
				if !wantOK {
					m.set(k, v)
					want, wantOK = v, true
				}
				if err != nil || ok != wantOK || got != want {
					t.Fatalf("op %d: ComputeIfAbsent(%d) = %q,%v,%v want %q", i, k, got, ok, err, want)
				}
			case 3:
				_, ok, err := c.ComputeIfAbsent(k, absent[byte, string]())
				_, wantOK := m.get(k)
				if err != nil || ok != wantOK {
					t.Fatalf("op %d: absent ComputeIfAbsent(%d) ok=%v err=%v want ok=%v", i, k, ok, err, wantOK)
				}
			case 4:
				_, _, err := c.ComputeIfAbsent(k, func(byte) (string, bool, error) {
					return "", false, errFuzzProducer
				})
				if _, hit := m.vals[k]; hit {
					m.touch(k)
					if err != nil {
						t.Fatalf("op %d: hit must not call producer, got %v", i, err)
					}
				} else if !errors.Is(err, errFuzzProducer) {
					t.Fatalf("op %d: want producer error, got %v", i, err)
				}
			case 5:
				if got, want := c.Remove(k), m.remove(k); got != want {
					t.Fatalf("op %d: Remove(%d) = %v want %v", i, k, got, want)
				}
			case 6:
				if got, want := c.Contains(k), m.vals[k] != ""; got != want {
					t.Fatalf("op %d: Contains(%d) = %v want %v", i, k, got, want)
				}
			}

			if err := c.list.Validate(); err != nil {
				t.Fatalf("op %d: %v", i, err)
			}
			if got := order(c); !slices.Equal(got, m.order) && !(len(got) == 0 && len(m.order) == 0) {
				t.Fatalf("op %d: order %v want %v", i, got, m.order)
			}
			if c.Len() != len(m.vals) || c.Len() > capN {
				t.Fatalf("op %d: Len=%d model=%d cap=%d", i, c.Len(), len(m.vals), capN)
			}
		}

		c.Clear()
		if c.Len() != 0 || c.list.Validate() != nil {
			t.Fatalf("Clear left Len=%d", c.Len())
		}
	})
}
