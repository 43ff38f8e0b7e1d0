package engine

import "github.com/sarchlab/r10ksim/state"

// doRenameDispatch implements spec §4.4's Rename & Dispatch stage. It
// returns true if backpressure was asserted (insufficient Free List,
// Active List or Integer Queue headroom for a full width's worth of
// instructions), in which case it leaves next untouched and the Decoded
// Buffer is held for a future cycle.
func (e *Engine) doRenameDispatch(prev *state.Processor, next *state.Processor) (backpressure bool) {
	width := e.config.MaxPerCycleWidth

	sufficient := next.FreeList.Len() >= width &&
		len(next.ActiveList)+width <= state.MaxActiveList &&
		len(next.IntegerQueue)+width <= state.MaxIntegerQueue

	if !sufficient {
		return true
	}

	for _, inst := range prev.DecodedInstructions {
		opAReady, opATag, opAValue := resolveOperand(next, false, 0, inst.OpATag)
		opBReady, opBTag, opBValue := resolveOperand(next, inst.Immediate, inst.ImmediateValue, inst.OpBTag)

		pd := next.FreeList.PopFront()
		oldDest := next.RegisterMapTable[inst.LogicalDest]
		next.RegisterMapTable[inst.LogicalDest] = pd
		next.BusyBitTable[pd] = true

		next.ActiveList = append(next.ActiveList, state.ActiveListEntry{
			LogicalDestination: inst.LogicalDest,
			OldDestination:     oldDest,
			PC:                 inst.PC,
		})

		next.IntegerQueue = append(next.IntegerQueue, state.IntegerQueueEntry{
			DestRegister: pd,
			OpAIsReady:   opAReady,
			OpARegTag:    opATag,
			OpAValue:     opAValue,
			OpBIsReady:   opBReady,
			OpBRegTag:    opBTag,
			OpBValue:     opBValue,
			OpCode:       inst.OpCode,
			PC:           inst.PC,
		})
	}

	next.DecodedInstructions = nil
	next.DecodedPCs = nil

	return false
}

// resolveOperand resolves one source operand against next, per spec §4.4:
// an immediate operand is always ready; a register operand is ready iff its
// currently-mapped physical register is not busy. It reads next rather than
// prev because every instruction in a dispatch bundle is renamed in the
// same cycle, in program order: by the time a later bundle member resolves
// its operands, next.RegisterMapTable/BusyBitTable already carry the
// renames of every earlier member of the same bundle, so an intra-bundle
// RAW hazard sees its producer's physical register as busy and not-ready
// instead of the stale pre-bundle value. The value field is emitted even
// when not ready (it is a don't-care overwritten by forwarding, but must be
// reproduced for snapshot fidelity — spec §9).
func resolveOperand(next *state.Processor, isImmediate bool, immValue uint32, logicalTag uint8) (ready bool, tag uint8, value uint64) {
	if isImmediate {
		return true, 0, uint64(immValue)
	}

	pop := next.RegisterMapTable[logicalTag]
	value = next.PhysicalRegisterFile[pop]
	if !next.BusyBitTable[pop] {
		return true, 0, value
	}
	return false, pop, value
}
