package engine

import "github.com/sarchlab/r10ksim/state"

// doCommit implements spec §4.4's Commit stage: absorb this cycle's ALU
// forwarding into the Active List, then retire in program order, entering
// Exception Mode the moment the oldest pending entry turns out to have
// excepted.
func (e *Engine) doCommit(prev *state.Processor, next *state.Processor) {
	for _, u := range prev.ALUs {
		fwd := u.Forwarding()
		if !fwd.Asserted {
			continue
		}

		for i := range next.ActiveList {
			if next.ActiveList[i].PC != fwd.PC {
				continue
			}
			if fwd.Exception {
				next.ActiveList[i].Exception = true
			} else {
				next.ActiveList[i].Done = true
				next.ActiveList[i].CommitDestRegister = fwd.DestRegister
				next.ActiveList[i].CommitValue = fwd.Value
			}
			break
		}
	}

	retired := 0
	idx := 0
	for idx < len(next.ActiveList) && retired < e.config.MaxPerCycleWidth {
		entry := next.ActiveList[idx]

		if entry.Exception {
			next.Exception.ExceptionMode = true
			next.Exception.ExceptionPC = entry.PC
			next.PC = state.ExceptionResetPC
			for _, u := range next.ALUs {
				u.Reset()
			}
			next.IntegerQueue = nil
			break
		}

		if !entry.Done {
			break
		}

		next.PhysicalRegisterFile[entry.CommitDestRegister] = entry.CommitValue
		next.BusyBitTable[entry.CommitDestRegister] = false
		next.FreeList.PushBack(entry.OldDestination)

		idx++
		retired++
	}

	e.Stats.Retired += uint64(retired)
	next.ActiveList = next.ActiveList[idx:]
}

// doRollback implements spec §4.4's Exception-mode Rollback, which
// replaces Commit entirely while prev.Exception.ExceptionMode is true:
// drain the Active List from the youngest end, up to MaxPerCycleWidth per
// cycle, undoing each entry's rename.
func (e *Engine) doRollback(prev *state.Processor, next *state.Processor) {
	rolledBack := 0
	for rolledBack < e.config.MaxPerCycleWidth && len(next.ActiveList) > 0 {
		lastIdx := len(next.ActiveList) - 1
		entry := next.ActiveList[lastIdx]

		p := next.RegisterMapTable[entry.LogicalDestination]
		next.BusyBitTable[p] = false
		next.FreeList.PushBack(p)
		next.RegisterMapTable[entry.LogicalDestination] = entry.OldDestination

		next.ActiveList = next.ActiveList[:lastIdx]
		rolledBack++
	}

	e.Stats.RolledBack += uint64(rolledBack)
	if len(next.ActiveList) == 0 {
		next.Exception.ExceptionMode = false
	}
}
