package engine

import (
	"sort"

	"github.com/sarchlab/r10ksim/alu"
	"github.com/sarchlab/r10ksim/state"
)

// doIssue implements spec §4.4's Issue stage: absorb this cycle's
// forwarding into the Integer Queue, then select up to MaxPerCycleWidth
// ready entries in ascending-PC order and latch each into the first ALU
// whose stage 1 is free. Callers must not invoke this when issue is
// suppressed (prior exception mode, or an exception forwarding this
// cycle) — see Propagate.
func (e *Engine) doIssue(prev *state.Processor, next *state.Processor) {
	for _, u := range prev.ALUs {
		fwd := u.Forwarding()
		if !fwd.Asserted {
			continue
		}

		for i := range next.IntegerQueue {
			entry := &next.IntegerQueue[i]
			if !entry.OpAIsReady && entry.OpARegTag == fwd.DestRegister {
				entry.OpAIsReady = true
				entry.OpAValue = fwd.Value
				entry.OpARegTag = 0
			}
			if !entry.OpBIsReady && entry.OpBRegTag == fwd.DestRegister {
				entry.OpBIsReady = true
				entry.OpBValue = fwd.Value
				entry.OpBRegTag = 0
			}
		}
	}

	sort.SliceStable(next.IntegerQueue, func(i, j int) bool {
		return next.IntegerQueue[i].PC < next.IntegerQueue[j].PC
	})

	issued := 0
	aluIdx := 0
	remaining := next.IntegerQueue[:0]

	for _, entry := range next.IntegerQueue {
		if issued < e.config.MaxPerCycleWidth && entry.Ready() {
			for aluIdx < len(next.ALUs) && next.ALUs[aluIdx].Stage1Busy() {
				aluIdx++
			}
			if aluIdx < len(next.ALUs) {
				next.ALUs[aluIdx].Latch(alu.Operand{
					DestRegister: entry.DestRegister,
					OpCode:       entry.OpCode,
					OpAValue:     entry.OpAValue,
					OpBValue:     entry.OpBValue,
					PC:           entry.PC,
				})
				aluIdx++
				issued++
				continue
			}
		}
		remaining = append(remaining, entry)
	}
	next.IntegerQueue = remaining

	for _, u := range next.ALUs {
		u.Execute()
	}
}
