// Package bytecode defines the versioned binary container the compiler
// produces and the VM and disassembler consume: a four-byte version header
// followed by an instruction stream, plus a deduplicated string pool and
// type pool. Grounded on the teacher's bytecode.Code (bytecode/code.go),
// scaled down to this language's much smaller, flat instruction format, and
// on the version-header behavior of original_source/src/compiler.rs's
// ExprByteCode and original_source/src/disassembler.rs.
package bytecode

import (
	"fmt"

	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/deepnoodle-ai/exprvm/types"
)

// CurrentVersion is the four-ASCII-digit version header this implementation
// writes and requires on read: two digits of major version followed by two
// digits of minor version. Bump on any opcode or pool-format change.
const CurrentVersion = "0100"

// Bytecode is the compiled output of one expression: a versioned
// instruction stream plus the constant pools its CONSTANT and GET TYPE
// operands index into.
type Bytecode struct {
	Version string
	Codes   []byte
	Strings []string
	Types   []types.Type
}

// New wraps codes and the interned pools in a Bytecode stamped with the
// implementation's current version.
func New(codes []byte, strings []string, typs []types.Type) *Bytecode {
	return &Bytecode{Version: CurrentVersion, Codes: codes, Strings: strings, Types: typs}
}

// Bytes returns the on-wire instruction stream: the four version bytes
// followed by the instruction bytes, matching spec.md §6's "bytecode
// on-wire format". The string and type pools are not part of this byte
// stream; they travel alongside it as part of the Bytecode value, the way
// the compile-time Env travels alongside it to the VM and disassembler.
func (b *Bytecode) Bytes() []byte {
	out := make([]byte, 0, len(b.Version)+len(b.Codes))
	out = append(out, []byte(b.Version)...)
	out = append(out, b.Codes...)
	return out
}

// Instruction is one decoded instruction: its opcode, its raw operand
// bytes, and the offsets bracketing it in the full (version-prefixed) byte
// stream.
type Instruction struct {
	Offset   int
	Op       op.Code
	Operands []byte
	Next     int
}

// Decode reads one instruction from all (as returned by Bytes()) starting
// at offset. It is shared by the VM's dispatch loop and the disassembler so
// both walk the instruction stream identically.
func Decode(all []byte, offset int) (Instruction, error) {
	if offset < 0 || offset >= len(all) {
		return Instruction{}, fmt.Errorf("instruction offset %d out of range", offset)
	}
	code := op.Code(all[offset])
	n := code.OperandCount()
	if offset+1+n > len(all) {
		return Instruction{}, fmt.Errorf("truncated instruction at offset %04d", offset)
	}
	return Instruction{
		Offset:   offset,
		Op:       code,
		Operands: all[offset+1 : offset+1+n],
		Next:     offset + 1 + n,
	}, nil
}

// CheckVersion reports whether the four-byte header of all matches
// CurrentVersion.
func CheckVersion(all []byte) (string, bool) {
	if len(all) < 4 {
		return "", false
	}
	v := string(all[:4])
	return v, v == CurrentVersion
}
