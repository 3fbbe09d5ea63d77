// Package prom exports benchmark workload observations to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/IvanBrykalov/lrucache/internal/bench"
)

// Recorder implements bench.Recorder and exports Prometheus counters/gauges.
// Safe for concurrent use; all Prometheus metric types are goroutine-safe.
type Recorder struct {
	ops      *prometheus.CounterVec
	hits     prometheus.Counter
	misses   prometheus.Counter
	produced prometheus.Counter
	entries  prometheus.Gauge
	capacity prometheus.Gauge
}

// New constructs a Prometheus recorder.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		ops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "ops_total",
				Help:        "Cache operations issued by the workload, by operation",
				ConstLabels: constLabels,
			},
			[]string{"op"},
		),
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Reads answered from a resident entry",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Reads that found no resident entry",
			ConstLabels: constLabels,
		}),
		produced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "produced_total",
			Help:        "Producer invocations from ComputeIfAbsent",
			ConstLabels: constLabels,
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Resident entries at the last sample",
			ConstLabels: constLabels,
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "capacity_entries",
			Help:        "Configured cache capacity",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(r.ops, r.hits, r.misses, r.produced, r.entries, r.capacity)
	return r
}

// Op increments the operation counter with an op label.
func (r *Recorder) Op(op bench.Op) { r.ops.WithLabelValues(op.String()).Inc() }

// Hit increments the hit counter.
func (r *Recorder) Hit() { r.hits.Inc() }

// Miss increments the miss counter.
func (r *Recorder) Miss() { r.misses.Inc() }

// Produced increments the producer invocation counter.
func (r *Recorder) Produced() { r.produced.Inc() }

// Size updates gauges for resident entries and capacity.
func (r *Recorder) Size(entries, capacity int) {
	r.entries.Set(float64(entries))
	r.capacity.Set(float64(capacity))
}

// Compile-time check: ensure Recorder implements bench.Recorder.
var _ bench.Recorder = (*Recorder)(nil)
