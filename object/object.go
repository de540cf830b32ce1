// Package object defines the runtime Value model: the set of values the
// virtual machine can push on its stack, and the built-in function
// descriptor that Value(Fn) wraps.
package object

import (
	"fmt"

	"github.com/deepnoodle-ai/exprvm/types"
)

// Value is any runtime value produced by lexing, parsing, and interpreting
// an expression. There are exactly four concrete implementations: String,
// Bool, Fn, and TypeValue.
type Value interface {
	// Type returns this value's static Type, as used by the type() builtin
	// and by get_type in the property-based test suite.
	Type() types.Type

	// Display renders the value for to_str and for disassembler/REPL output.
	Display() string

	// Equal reports whether other is the same variant and structurally
	// equal, per spec.md's EQ semantics.
	Equal(other Value) bool
}

// String is a Value holding UTF-8 text.
type String string

func (s String) Type() types.Type    { return types.String }
func (s String) Display() string     { return string(s) }
func (s String) Equal(o Value) bool {
	other, ok := o.(String)
	return ok && s == other
}

// Bool is a Value holding a boolean.
type Bool bool

func (b Bool) Type() types.Type { return types.Bool }
func (b Bool) Display() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(o Value) bool {
	other, ok := o.(Bool)
	return ok && b == other
}

// Arg describes one declared parameter of a Builtin.
type Arg struct {
	Name     string
	Type     types.Type
	Variadic bool
}

// Impl is the native implementation behind a Builtin. It receives the fully
// evaluated argument values (already arity/type checked by the compiler) and
// returns a Value or a runtime error. Implementations must be pure: they
// never mutate the environments or any Value they are given.
type Impl func(args []Value) (Value, error)

// Builtin is the descriptor for a named, typed, native function -- the only
// callable entity in the language. Descriptors have process-wide lifetime
// and are shared, never copied: Fn values hold a pointer to them, and
// bytecode GET operands name them by stable table index.
type Builtin struct {
	Name       string
	Args       []Arg
	ReturnType types.Type
	Impl       Impl
}

// Type returns this builtin's static Fn type, built from its declared
// argument and return types.
func (b *Builtin) Type() types.Type {
	var args []types.Type
	var variadic *types.Type
	for _, a := range b.Args {
		if a.Variadic {
			t := a.Type
			variadic = &t
			continue
		}
		args = append(args, a.Type)
	}
	return types.NewFn(args, variadic, b.ReturnType)
}

// RequiredArity returns the number of non-variadic declared arguments.
func (b *Builtin) RequiredArity() int {
	n := 0
	for _, a := range b.Args {
		if !a.Variadic {
			n++
		}
	}
	return n
}

// Variadic returns the builtin's variadic argument, if it has one.
func (b *Builtin) Variadic() (Arg, bool) {
	if len(b.Args) == 0 {
		return Arg{}, false
	}
	last := b.Args[len(b.Args)-1]
	if last.Variadic {
		return last, true
	}
	return Arg{}, false
}

// Fn is a Value wrapping a reference to a Builtin descriptor.
type Fn struct {
	Descriptor *Builtin
}

func (f Fn) Type() types.Type { return f.Descriptor.Type() }
func (f Fn) Display() string  { return fmt.Sprintf("<builtin %s>", f.Descriptor.Name) }
func (f Fn) Equal(o Value) bool {
	other, ok := o.(Fn)
	return ok && f.Descriptor == other.Descriptor
}

// TypeValue is a Value wrapping a Type, as produced by type literals and by
// the `type` builtin.
type TypeValue struct {
	T types.Type
}

func (t TypeValue) Type() types.Type { return types.NewTypeOf(t.T) }
func (t TypeValue) Display() string  { return t.T.Name() }
func (t TypeValue) Equal(o Value) bool {
	other, ok := o.(TypeValue)
	return ok && types.Equal(t.T, other.T)
}

// GetType is the total function from Value to Type referenced by spec.md's
// testable property 5: get_type(v) must equal what the `type` builtin
// returns for v.
func GetType(v Value) types.Type {
	return v.Type()
}
