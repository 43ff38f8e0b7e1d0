// Package snapshot renders a state.Processor into the exact output format
// spec §6 mandates: an ordered mapping with a fixed set of bit-exact key
// names, excluding ALU internals, decoded instruction contents, and the
// commit buffer.
//
// Grounded on timing/latency.TimingConfig's json.MarshalIndent/WriteFile
// pattern, generalized from a single config value to a per-cycle log of
// values.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sarchlab/r10ksim/state"
)

// ActiveListEntry is the externally visible projection of
// state.ActiveListEntry: CommitDestRegister and CommitValue are
// implementation-only and never appear here (spec §6).
type ActiveListEntry struct {
	Done               bool   `json:"Done"`
	Exception          bool   `json:"Exception"`
	LogicalDestination uint8  `json:"LogicalDestination"`
	OldDestination     uint8  `json:"OldDestination"`
	PC                 uint64 `json:"PC"`
}

// IntegerQueueEntry is the externally visible projection of
// state.IntegerQueueEntry.
type IntegerQueueEntry struct {
	DestRegister uint8  `json:"DestRegister"`
	OpAIsReady   bool   `json:"OpAIsReady"`
	OpARegTag    uint8  `json:"OpARegTag"`
	OpAValue     uint64 `json:"OpAValue"`
	OpBIsReady   bool   `json:"OpBIsReady"`
	OpBRegTag    uint8  `json:"OpBRegTag"`
	OpBValue     uint64 `json:"OpBValue"`
	OpCode       string `json:"OpCode"`
	PC           uint64 `json:"PC"`
}

// Snapshot is one cycle's serialized processor state. Field order matches
// spec §6's key list; encoding/json preserves struct field declaration
// order, so that order is reproduced on the wire as written here.
type Snapshot struct {
	ActiveList           []ActiveListEntry   `json:"ActiveList"`
	BusyBitTable         []bool              `json:"BusyBitTable"`
	DecodedPCs           []uint64            `json:"DecodedPCs"`
	Exception            bool                `json:"Exception"`
	ExceptionPC          uint64              `json:"ExceptionPC"`
	FreeList             []uint8             `json:"FreeList"`
	IntegerQueue         []IntegerQueueEntry `json:"IntegerQueue"`
	PC                   uint64              `json:"PC"`
	PhysicalRegisterFile []uint64            `json:"PhysicalRegisterFile"`
	RegisterMapTable     []uint8             `json:"RegisterMapTable"`
}

// Of projects a state.Processor into its Snapshot, per spec §6. Fields are
// emitted even when empty: slice fields default to a non-nil empty slice so
// they marshal as `[]` rather than `null`.
func Of(p *state.Processor) Snapshot {
	activeList := make([]ActiveListEntry, len(p.ActiveList))
	for i, e := range p.ActiveList {
		activeList[i] = ActiveListEntry{
			Done:               e.Done,
			Exception:          e.Exception,
			LogicalDestination: e.LogicalDestination,
			OldDestination:     e.OldDestination,
			PC:                 e.PC,
		}
	}

	integerQueue := make([]IntegerQueueEntry, len(p.IntegerQueue))
	for i, e := range p.IntegerQueue {
		integerQueue[i] = IntegerQueueEntry{
			DestRegister: e.DestRegister,
			OpAIsReady:   e.OpAIsReady,
			OpARegTag:    e.OpARegTag,
			OpAValue:     e.OpAValue,
			OpBIsReady:   e.OpBIsReady,
			OpBRegTag:    e.OpBRegTag,
			OpBValue:     e.OpBValue,
			OpCode:       e.OpCode.String(),
			PC:           e.PC,
		}
	}

	busyBitTable := make([]bool, len(p.BusyBitTable))
	copy(busyBitTable, p.BusyBitTable[:])

	physicalRegisterFile := make([]uint64, len(p.PhysicalRegisterFile))
	copy(physicalRegisterFile, p.PhysicalRegisterFile[:])

	registerMapTable := make([]uint8, len(p.RegisterMapTable))
	copy(registerMapTable, p.RegisterMapTable[:])

	decodedPCs := make([]uint64, len(p.DecodedPCs))
	copy(decodedPCs, p.DecodedPCs)

	return Snapshot{
		ActiveList:           activeList,
		BusyBitTable:         busyBitTable,
		DecodedPCs:           decodedPCs,
		Exception:            p.Exception.ExceptionMode,
		ExceptionPC:          p.Exception.ExceptionPC,
		FreeList:             p.FreeList.Snapshot(),
		IntegerQueue:         integerQueue,
		PC:                   p.PC,
		PhysicalRegisterFile: physicalRegisterFile,
		RegisterMapTable:     registerMapTable,
	}
}

// Log is a full run's per-cycle snapshot sequence, cycle 0 (the initial
// state) first.
type Log []Snapshot

// WriteFile serializes the log as indented JSON to path.
func (l Log) WriteFile(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot log: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot log file: %w", err)
	}

	return nil
}
