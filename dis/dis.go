// Package dis renders compiled bytecode as human-readable text, one
// instruction per line, annotated with the names its GET and CALL operands
// resolve to. Grounded on original_source/src/disassembler.rs for the
// line layout (zero-padded offset, left-justified mnemonic, resolved
// "== 'name'" comment) adapted to spec.md §4.3's two-operand CALL and to
// this implementation's TYPE and CLIENT_CTX lookup kinds, which the Rust
// reference predates.
package dis

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/exprvm/bytecode"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/op"
)

// Disassemble renders every instruction in bc against cenv, preceded by a
// version banner, matching the fixture format's X.expr.disassembled output.
func Disassemble(bc *bytecode.Bytecode, cenv *env.Env) string {
	var b strings.Builder
	fmt.Fprintf(&b, "VERSION %s\n----\n", bc.Version)

	all := bc.Bytes()
	d := &disassembler{bc: bc, env: cenv}
	ip := 4
	for ip < len(all) {
		instr, err := bytecode.Decode(all, ip)
		if err != nil {
			fmt.Fprintf(&b, "%04d ERROR %v\n", ip, err)
			break
		}
		b.WriteString(d.line(instr))
		ip = instr.Next
	}
	return b.String()
}

type disassembler struct {
	bc  *bytecode.Bytecode
	env *env.Env

	// lastGetKind/lastGetIdx track the operands of the most recently seen
	// GET instruction, so a following CALL (whose own index operand names
	// the same table entry) can also print a resolved name, the way the
	// reference disassembler's CALL line does by re-reading the preceding
	// GET's lookup type.
	lastGetKind op.Lookup
	lastGetIdx  int
}

func (d *disassembler) line(instr bytecode.Instruction) string {
	offset := fmt.Sprintf("%04d", instr.Offset)

	switch instr.Op {
	case op.CONSTANT:
		idx := int(instr.Operands[0])
		value := d.stringAt(idx)
		return fmt.Sprintf("%s %-16s %4d == '%s'\n", offset, "CONSTANT", idx, value)

	case op.TRUE:
		return fmt.Sprintf("%s %s\n", offset, "TRUE")

	case op.FALSE:
		return fmt.Sprintf("%s %s\n", offset, "FALSE")

	case op.NOT:
		return fmt.Sprintf("%s %s\n", offset, "NOT")

	case op.EQ:
		return fmt.Sprintf("%s %s\n", offset, "EQ")

	case op.TYPE:
		return fmt.Sprintf("%s %s\n", offset, "TYPE")

	case op.GET:
		kind := op.Lookup(instr.Operands[0])
		idx := int(instr.Operands[1])
		d.lastGetKind, d.lastGetIdx = kind, idx
		name := d.nameFor(kind, idx)
		return fmt.Sprintf("%s GET %-12s %4d == '%s'\n", offset, kind.Name(), idx, name)

	case op.CALL:
		idx := int(instr.Operands[0])
		argCount := int(instr.Operands[1])
		name := d.nameFor(d.lastGetKind, idx)
		return fmt.Sprintf("%s %-16s %4d (%d args) == '%s'\n", offset, "CALL", idx, argCount, name)

	default:
		return fmt.Sprintf("%s ??\n", offset)
	}
}

func (d *disassembler) stringAt(idx int) string {
	if idx < 0 || idx >= len(d.bc.Strings) {
		return ""
	}
	return d.bc.Strings[idx]
}

func (d *disassembler) typeAt(idx int) string {
	if idx < 0 || idx >= len(d.bc.Types) {
		return ""
	}
	return d.bc.Types[idx].Name()
}

func (d *disassembler) nameFor(kind op.Lookup, idx int) string {
	switch kind {
	case op.BUILTIN:
		if idx >= 0 && idx < len(d.env.Builtins) {
			return d.env.Builtins[idx].Name
		}
	case op.USER_BUILTIN:
		if idx >= 0 && idx < len(d.env.UserBuiltins) {
			return d.env.UserBuiltins[idx].Name
		}
	case op.VAR:
		if idx >= 0 && idx < len(d.env.Vars) {
			return d.env.Vars[idx]
		}
	case op.PROMPT:
		if idx >= 0 && idx < len(d.env.Prompts) {
			return d.env.Prompts[idx]
		}
	case op.SECRET:
		if idx >= 0 && idx < len(d.env.Secrets) {
			return d.env.Secrets[idx]
		}
	case op.CLIENT_CTX:
		if idx >= 0 && idx < len(d.env.ClientCtx) {
			return d.env.ClientCtx[idx].Name
		}
	case op.TYPE_LOOKUP:
		return d.typeAt(idx)
	}
	return ""
}
