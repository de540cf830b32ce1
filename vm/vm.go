// Package vm implements the stack machine that interprets compiled
// bytecode against a compile-time and runtime environment. Grounded on the
// teacher's dispatch-loop shape (vm/vm.go's instruction fetch/decode/execute
// cycle) scaled down to this language's flat, frame-less instruction format,
// and on original_source/src/vm.rs for the per-opcode semantics spec.md §4.4
// specifies.
package vm

import (
	"github.com/deepnoodle-ai/exprvm/bytecode"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/deepnoodle-ai/exprvm/types"
)

// MaxStackDepth bounds the evaluation stack. No fixture or supported program
// comes close to this; it exists only to turn a runaway CALL chain into a
// RuntimeError instead of unbounded memory growth.
const MaxStackDepth = 1024

// Interpret executes bc against cenv and rt and returns the single resulting
// Value, per spec.md §4.4. It halts on the first runtime error: unlike the
// compiler, the VM does not accumulate errors across a run.
func Interpret(bc *bytecode.Bytecode, cenv *env.Env, rt *env.Runtime) (object.Value, error) {
	all := bc.Bytes()
	if _, ok := bytecode.CheckVersion(all); !ok {
		return nil, &errors.RuntimeError{Code: errors.E3005, Offset: 0, Message: "unsupported bytecode version"}
	}

	m := &machine{all: all, bc: bc, env: cenv, rt: rt}
	return m.run()
}

type machine struct {
	all   []byte
	bc    *bytecode.Bytecode
	env   *env.Env
	rt    *env.Runtime
	stack []object.Value
}

func (m *machine) push(v object.Value) error {
	if len(m.stack) >= MaxStackDepth {
		return &errors.RuntimeError{Code: errors.E3001, Offset: 0, Message: "stack overflow"}
	}
	m.stack = append(m.stack, v)
	return nil
}

func (m *machine) pop(offset int) (object.Value, error) {
	if len(m.stack) == 0 {
		return nil, &errors.RuntimeError{Code: errors.E3001, Offset: offset, Message: "stack underflow"}
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *machine) run() (object.Value, error) {
	ip := 4
	for ip < len(m.all) {
		instr, err := bytecode.Decode(m.all, ip)
		if err != nil {
			return nil, &errors.RuntimeError{Code: errors.E3004, Offset: ip, Message: "malformed instruction", Cause: err}
		}

		if err := m.exec(instr); err != nil {
			return nil, err
		}

		ip = instr.Next
	}

	if len(m.stack) != 1 {
		return nil, &errors.RuntimeError{Code: errors.E3001, Offset: ip, Message: "expected exactly one value on the stack at halt"}
	}
	return m.stack[0], nil
}

func (m *machine) exec(instr bytecode.Instruction) error {
	switch instr.Op {
	case op.CONSTANT:
		idx := int(instr.Operands[0])
		s, ok := m.stringAt(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "constant pool index out of range"}
		}
		return m.push(object.String(s))

	case op.TRUE:
		return m.push(object.Bool(true))

	case op.FALSE:
		return m.push(object.Bool(false))

	case op.GET:
		return m.execGet(instr)

	case op.CALL:
		return m.execCall(instr)

	case op.NOT:
		v, err := m.pop(instr.Offset)
		if err != nil {
			return err
		}
		b, ok := v.(object.Bool)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3002, Offset: instr.Offset, Message: "NOT requires a Bool operand"}
		}
		return m.push(object.Bool(!bool(b)))

	case op.EQ:
		b, err := m.pop(instr.Offset)
		if err != nil {
			return err
		}
		a, err := m.pop(instr.Offset)
		if err != nil {
			return err
		}
		return m.push(object.Bool(a.Equal(b)))

	case op.TYPE:
		v, err := m.pop(instr.Offset)
		if err != nil {
			return err
		}
		return m.push(object.TypeValue{T: object.GetType(v)})

	default:
		return &errors.RuntimeError{Code: errors.E3004, Offset: instr.Offset, Message: "unknown opcode"}
	}
}

func (m *machine) execGet(instr bytecode.Instruction) error {
	kind := op.Lookup(instr.Operands[0])
	idx := int(instr.Operands[1])

	switch kind {
	case op.BUILTIN:
		if idx < 0 || idx >= len(m.env.Builtins) {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "builtin index out of range"}
		}
		return m.push(object.Fn{Descriptor: m.env.Builtins[idx]})

	case op.USER_BUILTIN:
		if idx < 0 || idx >= len(m.env.UserBuiltins) {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "user-builtin index out of range"}
		}
		return m.push(object.Fn{Descriptor: m.env.UserBuiltins[idx]})

	case op.VAR:
		s, ok := m.rt.Var(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "var index out of range"}
		}
		return m.push(object.String(s))

	case op.PROMPT:
		s, ok := m.rt.Prompt(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "prompt index out of range"}
		}
		return m.push(object.String(s))

	case op.SECRET:
		s, ok := m.rt.Secret(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "secret index out of range"}
		}
		return m.push(object.String(s))

	case op.CLIENT_CTX:
		v, ok := m.rt.ClientCtxValue(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "client-context index out of range"}
		}
		return m.push(v)

	case op.TYPE_LOOKUP:
		t, ok := m.typeAt(idx)
		if !ok {
			return &errors.RuntimeError{Code: errors.E3003, Offset: instr.Offset, Message: "type pool index out of range"}
		}
		return m.push(object.TypeValue{T: t})

	default:
		return &errors.RuntimeError{Code: errors.E3004, Offset: instr.Offset, Message: "unknown lookup kind"}
	}
}

// execCall implements spec.md §4.4's CALL semantics: pop the top n argument
// values in call order, pop the callee pushed by the preceding GET, invoke
// its impl, and push the result. Required arity and types were already
// validated by the compiler; the VM only re-checks that the callee is Fn.
func (m *machine) execCall(instr bytecode.Instruction) error {
	n := int(instr.Operands[1])

	args := make([]object.Value, n)
	for i := n - 1; i >= 0; i-- {
		v, err := m.pop(instr.Offset)
		if err != nil {
			return err
		}
		args[i] = v
	}

	callee, err := m.pop(instr.Offset)
	if err != nil {
		return err
	}
	fn, ok := callee.(object.Fn)
	if !ok {
		return &errors.RuntimeError{Code: errors.E3002, Offset: instr.Offset, Message: "CALL requires a Fn callee"}
	}

	result, implErr := fn.Descriptor.Impl(args)
	if implErr != nil {
		return &errors.RuntimeError{Code: errors.E3006, Offset: instr.Offset, Message: "built-in call failed", Cause: implErr}
	}
	return m.push(result)
}

func (m *machine) stringAt(idx int) (string, bool) {
	if idx < 0 || idx >= len(m.bc.Strings) {
		return "", false
	}
	return m.bc.Strings[idx], true
}

func (m *machine) typeAt(idx int) (types.Type, bool) {
	if idx < 0 || idx >= len(m.bc.Types) {
		return types.Unknown, false
	}
	return m.bc.Types[idx], true
}
