// Package builtins defines the fixed built-in function registry the virtual
// machine depends on. Every entry is pure and total over its declared
// domain: no builtin mutates the environments or any value it is given.
package builtins

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/types"
)

// Registry returns a fresh copy of the standard built-in table, in the
// fixed order spec.md §4.4 lists them. Order matters: it determines each
// builtin's BUILTIN lookup index, which is baked into compiled bytecode.
func Registry() []*object.Builtin {
	return []*object.Builtin{
		{
			Name:       "id",
			Args:       []object.Arg{{Name: "value", Type: types.Value}},
			ReturnType: types.Value,
			Impl:       id,
		},
		{
			Name:       "noop",
			ReturnType: types.String,
			Impl:       noop,
		},
		{
			Name:       "is_empty",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.Bool,
			Impl:       isEmpty,
		},
		{
			Name: "and",
			Args: []object.Arg{
				{Name: "a", Type: types.Bool},
				{Name: "b", Type: types.Bool},
			},
			ReturnType: types.Bool,
			Impl:       and,
		},
		{
			Name: "or",
			Args: []object.Arg{
				{Name: "a", Type: types.Bool},
				{Name: "b", Type: types.Bool},
			},
			ReturnType: types.Bool,
			Impl:       or,
		},
		{
			Name: "cond",
			Args: []object.Arg{
				{Name: "cond", Type: types.Bool},
				{Name: "then", Type: types.Value},
				{Name: "otherwise", Type: types.Value},
			},
			ReturnType: types.Value,
			Impl:       cond,
		},
		{
			Name:       "to_str",
			Args:       []object.Arg{{Name: "value", Type: types.Value}},
			ReturnType: types.String,
			Impl:       toStr,
		},
		{
			Name: "concat",
			Args: []object.Arg{
				{Name: "a", Type: types.String},
				{Name: "b", Type: types.String},
				{Name: "rest", Type: types.String, Variadic: true},
			},
			ReturnType: types.String,
			Impl:       concat,
		},
		{
			Name: "contains",
			Args: []object.Arg{
				{Name: "needle", Type: types.String},
				{Name: "haystack", Type: types.String},
			},
			ReturnType: types.Bool,
			Impl:       contains,
		},
		{
			Name:       "trim",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.String,
			Impl:       trim,
		},
		{
			Name:       "trim_start",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.String,
			Impl:       trimStart,
		},
		{
			Name:       "trim_end",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.String,
			Impl:       trimEnd,
		},
		{
			Name:       "lowercase",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.String,
			Impl:       lowercase,
		},
		{
			Name:       "uppercase",
			Args:       []object.Arg{{Name: "s", Type: types.String}},
			ReturnType: types.String,
			Impl:       uppercase,
		},
		{
			Name:       "type",
			Args:       []object.Arg{{Name: "value", Type: types.Value}},
			ReturnType: types.NewTypeOf(types.Value),
			Impl:       typeOf,
		},
		{
			Name: "eq",
			Args: []object.Arg{
				{Name: "a", Type: types.Value},
				{Name: "b", Type: types.Value},
			},
			ReturnType: types.Bool,
			Impl:       eq,
		},
		{
			Name:       "not",
			Args:       []object.Arg{{Name: "b", Type: types.Bool}},
			ReturnType: types.Bool,
			Impl:       not,
		},
	}
}

func wrongType(fn, want string, v object.Value) error {
	return fmt.Errorf("%s: expected %s, got %s", fn, want, v.Type())
}

func id(args []object.Value) (object.Value, error) {
	return args[0], nil
}

func noop(args []object.Value) (object.Value, error) {
	return object.String("noop"), nil
}

func isEmpty(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("is_empty", "String", args[0])
	}
	return object.Bool(len(s) == 0), nil
}

func and(args []object.Value) (object.Value, error) {
	a, ok := args[0].(object.Bool)
	if !ok {
		return nil, wrongType("and", "Bool", args[0])
	}
	b, ok := args[1].(object.Bool)
	if !ok {
		return nil, wrongType("and", "Bool", args[1])
	}
	return object.Bool(bool(a) && bool(b)), nil
}

func or(args []object.Value) (object.Value, error) {
	a, ok := args[0].(object.Bool)
	if !ok {
		return nil, wrongType("or", "Bool", args[0])
	}
	b, ok := args[1].(object.Bool)
	if !ok {
		return nil, wrongType("or", "Bool", args[1])
	}
	return object.Bool(bool(a) || bool(b)), nil
}

// cond eagerly evaluates both branches before it is called -- the VM has
// already pushed both arguments by the time this runs, per spec.md §4.4.
func cond(args []object.Value) (object.Value, error) {
	c, ok := args[0].(object.Bool)
	if !ok {
		return nil, wrongType("cond", "Bool", args[0])
	}
	if c {
		return args[1], nil
	}
	return args[2], nil
}

func toStr(args []object.Value) (object.Value, error) {
	if s, ok := args[0].(object.String); ok {
		return s, nil
	}
	return object.String(args[0].Display()), nil
}

func concat(args []object.Value) (object.Value, error) {
	var b strings.Builder
	for _, arg := range args {
		s, ok := arg.(object.String)
		if !ok {
			return nil, wrongType("concat", "String", arg)
		}
		b.WriteString(string(s))
	}
	return object.String(b.String()), nil
}

func contains(args []object.Value) (object.Value, error) {
	needle, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("contains", "String", args[0])
	}
	haystack, ok := args[1].(object.String)
	if !ok {
		return nil, wrongType("contains", "String", args[1])
	}
	return object.Bool(strings.Contains(string(haystack), string(needle))), nil
}

func trim(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("trim", "String", args[0])
	}
	return object.String(strings.TrimSpace(string(s))), nil
}

func trimStart(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("trim_start", "String", args[0])
	}
	return object.String(strings.TrimLeft(string(s), " \t\n\r")), nil
}

func trimEnd(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("trim_end", "String", args[0])
	}
	return object.String(strings.TrimRight(string(s), " \t\n\r")), nil
}

func lowercase(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("lowercase", "String", args[0])
	}
	return object.String(strings.ToLower(string(s))), nil
}

func uppercase(args []object.Value) (object.Value, error) {
	s, ok := args[0].(object.String)
	if !ok {
		return nil, wrongType("uppercase", "String", args[0])
	}
	return object.String(strings.ToUpper(string(s))), nil
}

func typeOf(args []object.Value) (object.Value, error) {
	return object.TypeValue{T: object.GetType(args[0])}, nil
}

func eq(args []object.Value) (object.Value, error) {
	return object.Bool(args[0].Equal(args[1])), nil
}

func not(args []object.Value) (object.Value, error) {
	b, ok := args[0].(object.Bool)
	if !ok {
		return nil, wrongType("not", "Bool", args[0])
	}
	return object.Bool(!bool(b)), nil
}
