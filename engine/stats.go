package engine

// Stats accumulates run-level counters across repeated Propagate calls.
// Modeled on timing/pipeline.Stats, generalized from per-stage instruction
// counts to this pipeline's own retirement/exception/rollback/backpressure
// signals. Not part of the cycle-accurate state.Processor snapshot: it lives
// on the Engine itself and is updated inline as each stage runs.
type Stats struct {
	Cycles             uint64
	Retired            uint64
	RolledBack         uint64
	Exceptions         uint64
	BackpressureStalls uint64
}
