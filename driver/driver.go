// Package driver wires together loader, engine and snapshot into one run:
// load the program, seed the initial processor state, snapshot cycle 0,
// then repeatedly propagate and snapshot until the simulation drains or the
// cycle cap is hit (spec §4.5).
package driver

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/rs/xid"

	"github.com/sarchlab/r10ksim/engine"
	"github.com/sarchlab/r10ksim/loader"
	"github.com/sarchlab/r10ksim/snapshot"
	"github.com/sarchlab/r10ksim/state"
)

// Run loads inputPath, simulates it to completion (or the configured cycle
// cap), writes the per-cycle snapshot log to outputPath, and returns the
// engine's final Stats. A nil config uses engine.DefaultConfig. A zero-value
// logger (logr.Discard()) is fine; the driver is silent unless the caller
// passes a configured one.
func Run(inputPath, outputPath string, config *engine.Config, log logr.Logger) (engine.Stats, error) {
	runID := xid.New()
	log = log.WithValues("run", runID.String())

	program, err := loader.Load(inputPath)
	if err != nil {
		return engine.Stats{}, fmt.Errorf("failed to load program: %w", err)
	}
	log.Info("loaded program", "instructions", len(program.Lines))

	e := engine.New(config)
	stream := engine.NewStream(program.Lines)
	prev := state.New()

	out := snapshot.Log{snapshot.Of(prev)}

	cap := e.CycleCap()
	for cycle := uint64(1); cycle <= cap; cycle++ {
		next := e.Propagate(prev, stream)
		out = append(out, snapshot.Of(next))
		prev = next

		if prev.Drained(stream.Exhausted()) {
			log.Info("simulation drained", "cycles", cycle)
			break
		}
	}

	if !prev.Drained(stream.Exhausted()) {
		log.Info("simulation hit cycle cap without draining", "cap", cap)
	}

	if err := out.WriteFile(outputPath); err != nil {
		return e.Stats, fmt.Errorf("failed to write output: %w", err)
	}

	log.Info("run complete",
		"cycles", e.Stats.Cycles,
		"retired", e.Stats.Retired,
		"rolledBack", e.Stats.RolledBack,
		"exceptions", e.Stats.Exceptions,
		"backpressureStalls", e.Stats.BackpressureStalls,
	)

	return e.Stats, nil
}
