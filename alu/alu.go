// Package alu implements the two-stage integer ALU pipeline unit described
// in spec §4.2: latch into stage 1, advance stage 1 -> stage 2 on each
// execute(), and assert a forwarding port for the cycle after a result
// reaches stage 2.
//
// Mirrors the latch/execute/forward split of
// timing/pipeline.ExecuteStage.Execute plus
// timing/pipeline.HazardUnit's explicit ForwardingResult value type: the
// forwarding bus is data, not a callback, so the apparent cycle between
// Issue and the ALU (spec §9) is broken by reading only prior-cycle state.
package alu

import "github.com/sarchlab/r10ksim/insts"

// Exception identifies a program-level arithmetic exception (spec §7.1).
// These are not host errors: they are data carried on the forwarding bus
// and drained by the engine's rollback state machine.
type Exception uint8

// Exception kinds.
const (
	ExceptionNone Exception = iota
	ExceptionUnderflow
	ExceptionDivByZero
)

// Operand is the information an ALU needs to compute a result: the
// already-resolved operand values (forwarding, if any, has already been
// applied by Issue), the destination physical register, the opcode, and
// the originating PC (used by the engine to find the matching Active List
// entry).
type Operand struct {
	DestRegister uint8
	OpCode       insts.Op
	OpAValue     uint64
	OpBValue     uint64
	PC           uint64
}

// Forwarding is the result a stage-2-occupied ALU asserts for the
// remainder of the cycle. Asserted is false when the unit is idle.
type Forwarding struct {
	Asserted     bool
	DestRegister uint8
	Value        uint64
	PC           uint64
	Exception    bool
}

// Unit is one two-stage integer ALU pipeline.
type Unit struct {
	stage1     *Operand
	stage2     *Operand
	forwarding Forwarding
}

// New creates an idle ALU unit.
func New() *Unit {
	return &Unit{}
}

// Stage1Busy reports whether stage 1 currently holds an operation.
func (u *Unit) Stage1Busy() bool {
	return u.stage1 != nil
}

// Latch deposits an operation into stage 1. Precondition: stage 1 is
// empty. Violating this is a bug in the issue policy (spec §4.2), not a
// recoverable runtime condition, so it panics rather than returning an
// error.
func (u *Unit) Latch(op Operand) {
	if u.stage1 != nil {
		panic("alu: latch into busy stage 1")
	}
	o := op
	u.stage1 = &o
}

// Execute advances the unit by one cycle: stage 2 <- stage 1, stage 1 <-
// empty. If stage 2 is now occupied, the unit computes the result and
// asserts forwarding for the remainder of this cycle; otherwise forwarding
// is deasserted.
func (u *Unit) Execute() {
	u.stage2 = u.stage1
	u.stage1 = nil

	if u.stage2 == nil {
		u.forwarding = Forwarding{}
		return
	}

	value, exc := compute(u.stage2.OpCode, u.stage2.OpAValue, u.stage2.OpBValue)
	u.forwarding = Forwarding{
		Asserted:     true,
		DestRegister: u.stage2.DestRegister,
		Value:        value,
		PC:           u.stage2.PC,
		Exception:    exc != ExceptionNone,
	}
}

// Forwarding returns the forwarding port's current assertion.
func (u *Unit) Forwarding() Forwarding {
	return u.forwarding
}

// Reset clears both stages and deasserts forwarding. Used on entry into
// Exception Mode (spec §4.4 Commit / Rollback).
func (u *Unit) Reset() {
	u.stage1 = nil
	u.stage2 = nil
	u.forwarding = Forwarding{}
}

// Clone returns a deep copy of the unit, used when the engine clones the
// whole Processor state (spec §9: "deep cloning per cycle" is an
// explicitly sanctioned implementation strategy).
func (u *Unit) Clone() *Unit {
	clone := &Unit{forwarding: u.forwarding}
	if u.stage1 != nil {
		s := *u.stage1
		clone.stage1 = &s
	}
	if u.stage2 != nil {
		s := *u.stage2
		clone.stage2 = &s
	}
	return clone
}

// compute implements the 64-bit unsigned arithmetic table of spec §4.2.
func compute(op insts.Op, a, b uint64) (uint64, Exception) {
	switch op {
	case insts.OpAdd:
		return a + b, ExceptionNone
	case insts.OpSub:
		if a < b {
			return 0, ExceptionUnderflow
		}
		return a - b, ExceptionNone
	case insts.OpMulu:
		return a * b, ExceptionNone
	case insts.OpDivu:
		if b == 0 {
			return 0, ExceptionDivByZero
		}
		return a / b, ExceptionNone
	case insts.OpRemu:
		if b == 0 {
			return 0, ExceptionDivByZero
		}
		return a % b, ExceptionNone
	default:
		panic("alu: unknown opcode")
	}
}
