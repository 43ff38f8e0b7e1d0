// Package insts provides instruction definitions and decoding for the
// integer-only instruction set understood by the pipeline simulator.
//
// This package implements decoding of a textual assembly line into a
// structured instruction representation. It supports:
//   - add, sub, mulu, divu, remu: three-register integer arithmetic
//   - addi: register-immediate sugar for add, with a zero-extended 32-bit
//     immediate as the second operand
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0, "addi x1, x0, 5")
package insts

import "fmt"

// Op identifies an arithmetic opcode understood by the ALU.
type Op uint8

// Opcodes.
const (
	OpAdd Op = iota
	OpSub
	OpMulu
	OpDivu
	OpRemu
)

// String renders the opcode the way it appears in input programs.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMulu:
		return "mulu"
	case OpDivu:
		return "divu"
	case OpRemu:
		return "remu"
	default:
		return "unknown"
	}
}

// NumLogicalRegisters is the size of the architectural register file.
const NumLogicalRegisters = 32

// Instruction is the decoded form of one assembly line.
type Instruction struct {
	// PC is the program-counter value this instruction was fetched at.
	PC uint64

	// OpCode is the arithmetic operation to perform. addi is decoded as
	// OpAdd with Immediate set.
	OpCode Op

	// Immediate is true when the second operand is an immediate rather
	// than a register (i.e. the source line was addi).
	Immediate bool

	// LogicalDest is the destination logical register (xD).
	LogicalDest uint8

	// OpATag is the first source logical register (xA).
	OpATag uint8

	// OpBTag is the second source logical register (xB). Forced to 0 for
	// addi, where the immediate carries the second operand instead.
	OpBTag uint8

	// ImmediateValue is the zero-extended 32-bit immediate for addi. Zero
	// for register-form instructions.
	ImmediateValue uint32
}

// Sentinel decode errors. Input errors are fatal to the instruction being
// decoded, never recovered locally (see spec §7.2).
var (
	// ErrInvalidFormat is returned when a line does not split into exactly
	// four whitespace/comma-separated tokens.
	ErrInvalidFormat = fmt.Errorf("invalid instruction format")

	// ErrInvalidOpcode is returned when the first token is not one of the
	// allowed opcodes (after mapping addi to add).
	ErrInvalidOpcode = fmt.Errorf("invalid opcode")

	// ErrInvalidRegister is returned when a register token is not x<0..31>.
	ErrInvalidRegister = fmt.Errorf("invalid register")

	// ErrInvalidImmediate is returned when the immediate does not parse as
	// a u32.
	ErrInvalidImmediate = fmt.Errorf("invalid immediate")
)
