package bench

import (
	"math/rand"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/IvanBrykalov/lrucache/internal/config"
)

// keyGen yields the next key for one worker. Not safe for concurrent use.
type keyGen func() string

// newKeyGen builds a per-worker key generator for w.Dist.
// id offsets the sequential walk so workers start on different keys.
func newKeyGen(w config.Workload, r *rand.Rand, id int) (keyGen, error) {
	switch w.Dist {
	case config.DistSeq:
		i := id
		return func() string {
			k := "k:" + strconv.Itoa(i%w.Keys)
			i++
			return k
		}, nil
	case config.DistZipf:
		z := rand.NewZipf(r, w.ZipfS, w.ZipfV, uint64(w.Keys-1))
		if z == nil {
			return nil, errors.Errorf("bench: invalid zipf s=%v v=%v", w.ZipfS, w.ZipfV)
		}
		return func() string {
			return "k:" + strconv.FormatUint(z.Uint64(), 10)
		}, nil
	case config.DistUUID:
		return func() string {
			return "u:" + uuid.Must(uuid.NewV4()).String()
		}, nil
	default:
		return nil, errors.Errorf("bench: unknown dist %q", w.Dist)
	}
}
