// Package engine implements the cycle-by-cycle pipeline described in spec
// §4.4: one Propagate(prev, stream) -> next function that performs Commit
// (or Exception-mode Rollback), Issue, Rename & Dispatch, and Fetch &
// Decode in a fixed textual order that is deliberately not hardware stage
// order — spec §4.3's discipline (stages take their inputs from prev and
// write to next) keeps the textual order from leaking forwarding across
// cycles. Rename & Dispatch is the one stage that resolves source operands
// against next, so that a dispatch bundle sees its own earlier renames (see
// resolveOperand).
//
// Grounded on timing/pipeline.Pipeline.Tick: that method reads the current
// pipeline registers and writes "next*" registers in one fixed method body,
// for the identical reason (hardware stage order stops mattering once the
// read-prev/write-next discipline holds).
package engine

import (
	"github.com/sarchlab/r10ksim/insts"
	"github.com/sarchlab/r10ksim/state"
)

// Engine runs the cycle-accurate pipeline against a Stream of program text.
type Engine struct {
	decoder *insts.Decoder
	config  *Config

	// Stats is supplemental run-level bookkeeping, not part of the
	// cycle-accurate snapshot. Callers may read it after each Propagate or
	// at the end of a run.
	Stats Stats
}

// New creates an Engine with the given run policy. A nil config uses
// DefaultConfig.
func New(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		decoder: insts.NewDecoder(),
		config:  config,
	}
}

// Propagate advances the simulation by one cycle: it clones prev into next,
// runs every stage against the (prev, next) pair, and returns next. Callers
// drive the simulation by repeatedly feeding each returned next back in as
// prev (spec §4.3: "at cycle end, prev <- next atomically").
func (e *Engine) Propagate(prev *state.Processor, stream *Stream) *state.Processor {
	next := prev.Clone()
	e.Stats.Cycles++

	if prev.Exception.ExceptionMode {
		e.doRollback(prev, next)
	} else {
		e.doCommit(prev, next)
	}

	if !prev.Exception.ExceptionMode && next.Exception.ExceptionMode {
		e.Stats.Exceptions++
	}

	suppressIssue := prev.Exception.ExceptionMode || anyExceptionForwarding(prev)
	if !suppressIssue {
		e.doIssue(prev, next)
	}

	backpressure := true
	if !prev.Exception.ExceptionMode {
		backpressure = e.doRenameDispatch(prev, next)
		if backpressure {
			e.Stats.BackpressureStalls++
		}
	}

	e.doFetchDecode(prev, next, stream, backpressure)

	return next
}

// CycleCap reports the run's configured safety bound (spec §6).
func (e *Engine) CycleCap() uint64 {
	return e.config.CycleCap
}

// anyExceptionForwarding reports whether any ALU in prev is asserting
// forwarding with exception=true this cycle (spec §4.4 Issue).
func anyExceptionForwarding(prev *state.Processor) bool {
	for _, u := range prev.ALUs {
		fwd := u.Forwarding()
		if fwd.Asserted && fwd.Exception {
			return true
		}
	}
	return false
}
