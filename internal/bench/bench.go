// Package bench drives a synthetic read/write workload against a cache.
//
// The cache under test is thread-confined, so workers share it through a
// Guarded wrapper (or any other cache.Cache that serializes calls).
package bench

import (
	"context"
	"log/slog"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/internal/config"
)

// Report summarizes one run.
type Report struct {
	Ops      uint64
	Reads    uint64
	Writes   uint64
	Hits     uint64
	Misses   uint64
	Produced uint64 // read-through misses served by the producer
	Elapsed  time.Duration
	Len      int // resident entries after the run
	Cap      int
}

// HitRate returns hits/reads in percent, or 0 without reads.
func (r Report) HitRate() float64 {
	if r.Reads == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Reads) * 100
}

// counters are shared by all workers.
type counters struct {
	ops, reads, writes, hits, misses, produced atomic.Uint64
}

// Run preloads c, then issues w's operation mix from w.Workers goroutines
// until w.Duration elapses or ctx is cancelled. c must be safe for
// concurrent use. A nil rec or log selects a no-op.
func Run(ctx context.Context, w config.Workload, c cache.Cache[string, string], rec Recorder, log *slog.Logger) (Report, error) {
	if err := w.Validate(); err != nil {
		return Report{}, err
	}
	if rec == nil {
		rec = NoopRecorder{}
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	// ---- Preload to get a realistic hit-rate ----
	pl := w.PreloadCount()
	for i := 0; i < pl; i++ {
		k := "k:" + strconv.Itoa(i)
		if err := c.Set(k, "v"+strconv.Itoa(i)); err != nil {
			return Report{}, errors.Wrapf(err, "bench: preload %s", k)
		}
	}
	log.Debug("preloaded", "entries", c.Len(), "requested", pl)

	// ---- Optional global rate limit shared by all workers ----
	var lim *rate.Limiter
	if w.Rate > 0 {
		lim = rate.NewLimiter(rate.Limit(w.Rate), w.Workers)
	}

	runCtx, cancel := context.WithTimeout(ctx, w.Duration)
	defer cancel()

	// Each worker gets its own RNG (rand.Rand is NOT goroutine-safe).
	rngs := make([]*rand.Rand, w.Workers)
	gens := make([]keyGen, w.Workers)
	for id := range gens {
		rngs[id] = rand.New(rand.NewSource(w.Seed + int64(id)*9973))
		next, err := newKeyGen(w, rngs[id], id)
		if err != nil {
			return Report{}, err
		}
		gens[id] = next
	}

	var cnt counters
	start := time.Now()
	g, gctx := errgroup.WithContext(runCtx)
	for id := range gens {
		g.Go(func() error {
			return worker(gctx, w, c, rec, lim, rngs[id], gens[id], &cnt)
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	rep := Report{
		Ops:      cnt.ops.Load(),
		Reads:    cnt.reads.Load(),
		Writes:   cnt.writes.Load(),
		Hits:     cnt.hits.Load(),
		Misses:   cnt.misses.Load(),
		Produced: cnt.produced.Load(),
		Elapsed:  time.Since(start),
		Len:      c.Len(),
		Cap:      c.Cap(),
	}
	rec.Size(rep.Len, rep.Cap)
	log.Debug("run finished", "ops", rep.Ops, "elapsed", rep.Elapsed)
	return rep, nil
}

// worker issues operations until ctx is done. Context expiry is the normal
// way a run ends and is not reported as an error.
func worker(ctx context.Context, w config.Workload, c cache.Cache[string, string], rec Recorder,
	lim *rate.Limiter, r *rand.Rand, next keyGen, cnt *counters) error {
	for {
		if lim != nil {
			if err := lim.Wait(ctx); err != nil {
				return nil
			}
		} else if ctx.Err() != nil {
			return nil
		}

		cnt.ops.Add(1)
		k := next()
		if r.Intn(100) >= w.ReadPct {
			cnt.writes.Add(1)
			rec.Op(OpSet)
			if err := c.Set(k, "v"+strconv.Itoa(r.Int())); err != nil {
				return errors.Wrapf(err, "bench: set %s", k)
			}
			continue
		}

		cnt.reads.Add(1)
		if r.Intn(100) < w.ComputePct {
			rec.Op(OpCompute)
			produced := false
			_, _, err := c.ComputeIfAbsent(k, func(k string) (string, bool, error) {
				produced = true
				return "v:" + k, true, nil
			})
			if err != nil {
				return errors.Wrapf(err, "bench: compute %s", k)
			}
			if produced {
				cnt.misses.Add(1)
				cnt.produced.Add(1)
				rec.Miss()
				rec.Produced()
			} else {
				cnt.hits.Add(1)
				rec.Hit()
			}
			continue
		}

		rec.Op(OpGet)
		if _, ok := c.Get(k); ok {
			cnt.hits.Add(1)
			rec.Hit()
		} else {
			cnt.misses.Add(1)
			rec.Miss()
		}
	}
}
