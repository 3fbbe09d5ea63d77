package bench

// Op names a cache operation issued by the workload.
type Op int

const (
	// OpGet is a plain lookup.
	OpGet Op = iota
	// OpCompute is a read-through lookup via ComputeIfAbsent.
	OpCompute
	// OpSet is an insert-or-replace.
	OpSet
)

// String returns a stable label value for op.
func (op Op) String() string {
	switch op {
	case OpCompute:
		return "compute"
	case OpSet:
		return "set"
	default:
		return "get"
	}
}

// Recorder observes the workload from the caller's side. The cache itself
// reports nothing; every signal here is derived from return values.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Op(op Op)
	Hit()
	Miss()
	// Produced counts producer invocations, i.e. read-through misses.
	Produced()
	Size(entries, capacity int)
}

// NoopRecorder is a drop-in Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) Op(Op)         {}
func (NoopRecorder) Hit()          {}
func (NoopRecorder) Miss()         {}
func (NoopRecorder) Produced()     {}
func (NoopRecorder) Size(_, _ int) {}

// Ensure NoopRecorder implements the Recorder interface at compile time.
var _ Recorder = NoopRecorder{}
