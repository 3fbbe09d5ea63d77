// Command bench runs a synthetic workload against the LRU cache and exposes
// optional Prometheus and pprof endpoints.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/internal/bench"
	"github.com/IvanBrykalov/lrucache/internal/config"
	pmet "github.com/IvanBrykalov/lrucache/metrics/prom"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "bench:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	d := config.Defaults()
	return &cli.App{
		Name:  "bench",
		Usage: "drive a read/write workload against a mutex-guarded LRU cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "workload file (yaml, toml, json); LRUBENCH_* env vars also apply"},
			&cli.IntFlag{Name: "cap", Value: d.Capacity, Usage: "cache capacity (entries)"},
			&cli.IntFlag{Name: "workers", Value: d.Workers, Usage: "number of worker goroutines"},
			&cli.DurationFlag{Name: "duration", Value: d.Duration, Usage: "benchmark duration"},
			&cli.IntFlag{Name: "reads", Value: d.ReadPct, Usage: "read percentage [0..100]"},
			&cli.IntFlag{Name: "computes", Value: d.ComputePct, Usage: "share of reads via ComputeIfAbsent [0..100]"},
			&cli.IntFlag{Name: "keys", Value: d.Keys, Usage: "keyspace size"},
			&cli.StringFlag{Name: "dist", Value: d.Dist, Usage: "key distribution: seq | zipf | uuid"},
			&cli.Float64Flag{Name: "zipf-s", Value: d.ZipfS, Usage: "Zipf s > 1 (skew)"},
			&cli.Float64Flag{Name: "zipf-v", Value: d.ZipfV, Usage: "Zipf v"},
			&cli.Int64Flag{Name: "seed", Value: d.Seed, Usage: "random seed (0 = time-based)"},
			&cli.IntFlag{Name: "preload", Value: d.Preload, Usage: "preload entries (0 = cap/2)"},
			&cli.Float64Flag{Name: "rate", Value: d.Rate, Usage: "total ops/s limit (0 = unlimited)"},
			&cli.StringFlag{Name: "http", Value: d.HTTPAddr, Usage: "serve /metrics, /healthz and /debug/pprof at addr (e.g. :8080); empty = disabled"},
			&cli.StringFlag{Name: "log-level", Value: d.LogLevel, Usage: "debug | info | warn | error"},
		},
		Action: run,
	}
}

// loadWorkload merges file/env configuration with explicitly set flags.
func loadWorkload(cctx *cli.Context) (config.Workload, error) {
	w, err := config.Load(cctx.String("config"))
	if err != nil {
		return w, err
	}
	if cctx.IsSet("cap") {
		w.Capacity = cctx.Int("cap")
	}
	if cctx.IsSet("workers") {
		w.Workers = cctx.Int("workers")
	}
	if cctx.IsSet("duration") {
		w.Duration = cctx.Duration("duration")
	}
	if cctx.IsSet("reads") {
		w.ReadPct = cctx.Int("reads")
	}
	if cctx.IsSet("computes") {
		w.ComputePct = cctx.Int("computes")
	}
	if cctx.IsSet("keys") {
		w.Keys = cctx.Int("keys")
	}
	if cctx.IsSet("dist") {
		w.Dist = cctx.String("dist")
	}
	if cctx.IsSet("zipf-s") {
		w.ZipfS = cctx.Float64("zipf-s")
	}
	if cctx.IsSet("zipf-v") {
		w.ZipfV = cctx.Float64("zipf-v")
	}
	if cctx.IsSet("seed") {
		w.Seed = cctx.Int64("seed")
	}
	if cctx.IsSet("preload") {
		w.Preload = cctx.Int("preload")
	}
	if cctx.IsSet("rate") {
		w.Rate = cctx.Float64("rate")
	}
	if cctx.IsSet("http") {
		w.HTTPAddr = cctx.String("http")
	}
	if cctx.IsSet("log-level") {
		w.LogLevel = cctx.String("log-level")
	}
	if w.Seed == 0 {
		w.Seed = time.Now().UnixNano()
	}
	return w, w.Validate()
}

func run(cctx *cli.Context) error {
	w, err := loadWorkload(cctx)
	if err != nil {
		return err
	}
	lvl, _ := w.Level() // validated above
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Prometheus metrics on a private registry ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := pmet.New(reg, "lru", "bench", nil)

	if w.HTTPAddr != "" {
		srv := &http.Server{
			Addr:              w.HTTPAddr,
			Handler:           newRouter(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("http: serving", "addr", w.HTTPAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("http: stopped", "err", err)
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	// ---- Build cache; workers share it behind one mutex ----
	lru, err := cache.New[string, string](cache.Options{Capacity: w.Capacity})
	if err != nil {
		return errors.Wrap(err, "build cache")
	}
	c := bench.Guard[string, string](lru)
	defer func() { _ = c.Close() }()

	log.Info("run: starting",
		"cap", w.Capacity, "workers", w.Workers, "duration", w.Duration,
		"reads", w.ReadPct, "computes", w.ComputePct, "dist", w.Dist, "keys", w.Keys, "rate", w.Rate)

	rep, err := bench.Run(ctx, w, c, rec, log)
	if err != nil {
		return err
	}

	// ---- Report ----
	fmt.Printf("cap=%d workers=%d keys=%d dist=%s dur=%v seed=%d\n",
		w.Capacity, w.Workers, w.Keys, w.Dist, rep.Elapsed, w.Seed)
	fmt.Printf("ops=%d (%.0f ops/s)  reads=%d  writes=%d\n",
		rep.Ops, float64(rep.Ops)/rep.Elapsed.Seconds(), rep.Reads, rep.Writes)
	fmt.Printf("hits=%d  misses=%d  produced=%d  hit-rate=%.2f%%\n",
		rep.Hits, rep.Misses, rep.Produced, rep.HitRate())
	fmt.Printf("Len()=%d Cap()=%d\n", rep.Len, rep.Cap)
	return nil
}

// newRouter exposes metrics, a liveness probe and pprof.
func newRouter(reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	return r
}
