package engine

import (
	"fmt"

	"github.com/sarchlab/r10ksim/state"
)

// doFetchDecode implements spec §4.4's Fetch & Decode stage. Decode errors
// are not expected here: the driver validates every line in the program up
// front (see package loader) before the engine ever runs, so a decode
// failure mid-run is an invariant violation, not a recoverable input error
// (spec §7.3).
func (e *Engine) doFetchDecode(prev *state.Processor, next *state.Processor, stream *Stream, backpressure bool) {
	if prev.Exception.ExceptionMode {
		next.PC = state.ExceptionResetPC
		next.DecodedInstructions = nil
		next.DecodedPCs = nil
		return
	}

	if backpressure {
		return
	}

	width := e.config.MaxPerCycleWidth
	for len(next.DecodedInstructions) < width && !stream.Exhausted() {
		line := stream.Consume()

		inst, err := e.decoder.Decode(next.PC, line)
		if err != nil {
			panic(fmt.Sprintf("engine: fetch decoded a line the loader had already validated, pc %d: %v", next.PC, err))
		}

		next.DecodedInstructions = append(next.DecodedInstructions, inst)
		next.DecodedPCs = append(next.DecodedPCs, next.PC)
		next.PC++
	}
}
