// Package loader reads a program (a sequence of assembly lines, spec §6) and
// validates it up front, so a malformed instruction aborts the simulator
// before any cycle runs or any output is emitted (spec §7.2).
//
// Grounded on loader.Load's read-file/wrap-error idiom, generalized from
// ELF segment loading to this simulator's JSON-array-of-strings program
// format.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/r10ksim/insts"
)

// Program is a validated instruction stream, ready to drive a Stream.
type Program struct {
	// Lines is the program text, in fetch order.
	Lines []string
}

// Load reads path as a JSON array of assembly-line strings and validates
// that every line decodes successfully (spec §6's input format; spec §7.2's
// input-errors-are-fatal rule). Lines are validated against PC 0 — decode
// validity never depends on the PC a line is eventually fetched at.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file: %w", err)
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to parse program file: %w", err)
	}

	decoder := insts.NewDecoder()
	for i, line := range lines {
		if _, err := decoder.Decode(0, line); err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	return &Program{Lines: lines}, nil
}
