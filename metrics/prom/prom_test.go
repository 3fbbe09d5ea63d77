package prom

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/lrucache/internal/bench"
)

func TestRecorder_Exports(t *testing.T) {
	t.Parallel()
	r := require.New(t)

	reg := prometheus.NewRegistry()
	rec := New(reg, "lru", "test", prometheus.Labels{"app": "unit"})

	rec.Op(bench.OpGet)
	rec.Op(bench.OpGet)
	rec.Op(bench.OpCompute)
	rec.Op(bench.OpSet)
	rec.Hit()
	rec.Miss()
	rec.Miss()
	rec.Produced()
	rec.Size(7, 10)

	r.Equal(2.0, testutil.ToFloat64(rec.ops.WithLabelValues("get")))
	r.Equal(1.0, testutil.ToFloat64(rec.ops.WithLabelValues("compute")))
	r.Equal(1.0, testutil.ToFloat64(rec.ops.WithLabelValues("set")))
	r.Equal(1.0, testutil.ToFloat64(rec.hits))
	r.Equal(2.0, testutil.ToFloat64(rec.misses))
	r.Equal(1.0, testutil.ToFloat64(rec.produced))

	const want = `
# HELP lru_test_size_entries Resident entries at the last sample
# TYPE lru_test_size_entries gauge
lru_test_size_entries{app="unit"} 7
# HELP lru_test_capacity_entries Configured cache capacity
# TYPE lru_test_capacity_entries gauge
lru_test_capacity_entries{app="unit"} 10
`
	r.NoError(testutil.GatherAndCompare(reg, strings.NewReader(want),
		"lru_test_size_entries", "lru_test_capacity_entries"))
}

func TestRecorder_DuplicateRegistrationPanics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	New(reg, "lru", "dup", nil)
	require.Panics(t, func() { New(reg, "lru", "dup", nil) })
}
