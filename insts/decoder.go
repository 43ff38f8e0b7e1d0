package insts

import (
	"fmt"
	"strconv"
	"strings"
)

// allowedOpcodes maps an input mnemonic to its decoded Op. addi maps to
// OpAdd; the Immediate flag on the decoded Instruction is what distinguishes
// it from a register-form add.
var allowedOpcodes = map[string]Op{
	"add":  OpAdd,
	"sub":  OpSub,
	"mulu": OpMulu,
	"divu": OpDivu,
	"remu": OpRemu,
	"addi": OpAdd,
}

// Decoder turns one textual assembly line into a decoded Instruction.
// Decoder is pure and stateless; it holds no mutable fields.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses a line of the form "<op> xD, xA, xB" or
// "addi xD, xA, <imm>". Commas are separators with no semantic weight.
func (d *Decoder) Decode(pc uint64, line string) (Instruction, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})

	if len(fields) != 4 {
		return Instruction{}, fmt.Errorf("%w: %q has %d tokens, want 4", ErrInvalidFormat, line, len(fields))
	}

	mnemonic := strings.ToLower(fields[0])
	op, ok := allowedOpcodes[mnemonic]
	if !ok {
		return Instruction{}, fmt.Errorf("%w: %q", ErrInvalidOpcode, fields[0])
	}
	isAddi := mnemonic == "addi"

	dest, err := parseRegister(fields[1])
	if err != nil {
		return Instruction{}, err
	}

	opA, err := parseRegister(fields[2])
	if err != nil {
		return Instruction{}, err
	}

	inst := Instruction{
		PC:          pc,
		OpCode:      op,
		Immediate:   isAddi,
		LogicalDest: dest,
		OpATag:      opA,
	}

	if isAddi {
		imm, err := parseImmediate(fields[3])
		if err != nil {
			return Instruction{}, err
		}
		inst.ImmediateValue = imm
		inst.OpBTag = 0
	} else {
		opB, err := parseRegister(fields[3])
		if err != nil {
			return Instruction{}, err
		}
		inst.OpBTag = opB
	}

	return inst, nil
}

// parseRegister parses a token of the form "x<0..31>".
func parseRegister(token string) (uint8, error) {
	if len(token) < 2 || (token[0] != 'x' && token[0] != 'X') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegister, token)
	}

	n, err := strconv.ParseUint(token[1:], 10, 8)
	if err != nil || n >= NumLogicalRegisters {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRegister, token)
	}

	return uint8(n), nil
}

// parseImmediate parses a token as a zero-extended u32.
func parseImmediate(token string) (uint32, error) {
	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidImmediate, token)
	}

	return uint32(n), nil
}
