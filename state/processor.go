package state

import (
	"github.com/sarchlab/r10ksim/alu"
	"github.com/sarchlab/r10ksim/insts"
)

// Processor is the complete microarchitectural state the cycle engine
// reads from and writes to. At cycle start it is immutable (the "prev"
// snapshot); a separate Processor value (the "next" snapshot) absorbs this
// cycle's writes. engine.Propagate clones prev into next at cycle start and
// the driver swaps next into prev at cycle end, realizing the
// edge-triggered latch semantics spec §4.3 requires.
type Processor struct {
	ActiveList []ActiveListEntry

	IntegerQueue []IntegerQueueEntry

	BusyBitTable [NumPhysicalRegisters]bool

	FreeList *FreeList

	RegisterMapTable [NumLogicalRegisters]uint8

	PhysicalRegisterFile [NumPhysicalRegisters]uint64

	DecodedInstructions []insts.Instruction
	DecodedPCs          []uint64

	PC uint64

	Exception ExceptionState

	// ALUs are the four independent two-stage integer ALU pipelines.
	ALUs [NumALUs]*alu.Unit
}

// New builds the initial processor state: identity register map, physical
// registers 0..31 pre-mapped to logical registers 0..31, physical registers
// 32..63 free, everything else empty/zero.
func New() *Processor {
	p := &Processor{
		FreeList: NewFreeList(),
	}

	for i := uint8(0); i < NumLogicalRegisters; i++ {
		p.RegisterMapTable[i] = i
	}

	for pr := uint8(NumLogicalRegisters); pr < NumPhysicalRegisters; pr++ {
		p.FreeList.PushBack(pr)
	}

	for i := range p.ALUs {
		p.ALUs[i] = alu.New()
	}

	return p
}

// Clone returns a deep copy of the processor state, suitable for use as
// the "next" snapshot derived from this "prev" snapshot.
func (p *Processor) Clone() *Processor {
	next := &Processor{
		ActiveList:           append([]ActiveListEntry(nil), p.ActiveList...),
		IntegerQueue:         append([]IntegerQueueEntry(nil), p.IntegerQueue...),
		BusyBitTable:         p.BusyBitTable,
		FreeList:             p.FreeList.Clone(),
		RegisterMapTable:     p.RegisterMapTable,
		PhysicalRegisterFile: p.PhysicalRegisterFile,
		DecodedInstructions:  append([]insts.Instruction(nil), p.DecodedInstructions...),
		DecodedPCs:           append([]uint64(nil), p.DecodedPCs...),
		PC:                   p.PC,
		Exception:            p.Exception,
	}
	for i := range p.ALUs {
		next.ALUs[i] = p.ALUs[i].Clone()
	}
	return next
}

// Drained reports whether the simulation has nothing left to do: the
// fetch stream is exhausted, the Active List is empty, and no exception is
// pending. This is the termination condition of spec §4.4.
func (p *Processor) Drained(streamExhausted bool) bool {
	return streamExhausted && len(p.ActiveList) == 0 && !p.Exception.ExceptionMode
}
