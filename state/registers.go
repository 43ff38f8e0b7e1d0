// Package state holds the passive microarchitectural state of the
// simulated processor: the Active List, Integer Queue, Busy Bit Table, Free
// List, Register Map Table, Physical Register File, Decoded Buffer and
// Exception State.
//
// Every exported type here is a plain data container. The only behavior
// they carry is small accessors (readiness, FIFO push/pop, copying and
// cloning): state owns no cycle logic of its own, it is
// read and written entirely by package engine under the prev/next snapshot
// discipline.
package state

import "github.com/sarchlab/r10ksim/insts"

// Capacity limits mandated by the data model.
const (
	// MaxActiveList is the Active List (ROB) capacity.
	MaxActiveList = 32
	// MaxIntegerQueue is the Integer Queue capacity.
	MaxIntegerQueue = 32
	// MaxDecodedBuffer is the Decoded Buffer capacity.
	MaxDecodedBuffer = 4
	// NumPhysicalRegisters is the size of the physical register file.
	NumPhysicalRegisters = 64
	// NumLogicalRegisters is the size of the architectural register file.
	NumLogicalRegisters = insts.NumLogicalRegisters
	// NumALUs is the number of independent ALU pipeline units.
	NumALUs = 4
	// MaxPerCycleWidth bounds fetch, dispatch, issue, retire and rollback:
	// each does at most this many instructions per cycle.
	MaxPerCycleWidth = 4
	// ExceptionResetPC is the PC instructions resume fetching at once
	// Exception Mode is entered; fetch is suppressed until it clears.
	ExceptionResetPC = 0x10000
)

// ActiveListEntry is one ROB slot: the ambient record of an in-flight
// instruction, created at dispatch, mutated by forwarding and by
// commit/rollback, and destroyed at retire or rollback.
type ActiveListEntry struct {
	Done               bool
	Exception          bool
	LogicalDestination uint8
	OldDestination     uint8
	PC                 uint64

	// CommitDestRegister and CommitValue buffer the physical register and
	// value a forwarding result deposited for this entry at the moment
	// Done became true. Retire may happen many cycles later (in-order
	// retirement can be blocked by an older, still-incomplete entry), so
	// this pair has to live on the entry itself rather than in a
	// per-cycle scratch buffer. Not part of the external snapshot format
	// (see package snapshot).
	CommitDestRegister uint8
	CommitValue        uint64
}

// IntegerQueueEntry is one issue-window slot: created at dispatch, mutated
// by forwarding updates, destroyed when issued to an ALU or reset on
// exception entry.
type IntegerQueueEntry struct {
	DestRegister uint8
	OpAIsReady   bool
	OpARegTag    uint8
	OpAValue     uint64
	OpBIsReady   bool
	OpBRegTag    uint8
	OpBValue     uint64
	OpCode       insts.Op
	PC           uint64
}

// Ready reports whether both operands of this entry are available.
func (e *IntegerQueueEntry) Ready() bool {
	return e.OpAIsReady && e.OpBIsReady
}

// ExceptionState is the processor-wide exception flag pair.
type ExceptionState struct {
	// ExceptionMode is true from the cycle the first excepting
	// instruction is recognized at commit until the Active List drains.
	ExceptionMode bool
	// ExceptionPC is the PC of the first excepting instruction in program
	// order, latched at the moment Exception Mode is entered.
	ExceptionPC uint64
}

// FreeList is a FIFO of unallocated physical register ids.
type FreeList struct {
	ids []uint8
}

// NewFreeList builds a Free List pre-populated with the given ids, head
// first (the order they will be popped in).
func NewFreeList(ids ...uint8) *FreeList {
	f := &FreeList{ids: make([]uint8, len(ids))}
	copy(f.ids, ids)
	return f
}

// Len reports the number of ids currently free.
func (f *FreeList) Len() int {
	return len(f.ids)
}

// PushBack appends a physical register id to the tail of the FIFO.
func (f *FreeList) PushBack(id uint8) {
	f.ids = append(f.ids, id)
}

// PopFront removes and returns the id at the head of the FIFO. Popping an
// empty Free List is an invariant violation (spec §7.3): it indicates the
// issue/dispatch policy let Rename/Dispatch proceed without the resources
// it checked for, and is therefore an assertion, not a recoverable error.
func (f *FreeList) PopFront() uint8 {
	if len(f.ids) == 0 {
		panic("state: PopFront on empty Free List")
	}
	id := f.ids[0]
	f.ids = f.ids[1:]
	return id
}

// Snapshot returns the FIFO contents, head first, for serialization. The
// returned slice is a copy; callers may not mutate the Free List through it.
func (f *FreeList) Snapshot() []uint8 {
	out := make([]uint8, len(f.ids))
	copy(out, f.ids)
	return out
}

// Clone returns a deep copy of the Free List.
func (f *FreeList) Clone() *FreeList {
	return NewFreeList(f.ids...)
}
