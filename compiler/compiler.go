// Package compiler performs a single post-order walk of the AST that
// resolves every identifier to (lookup kind, index), type-checks call
// arguments against the built-in registry's declared signatures, and emits
// bytecode plus the interned string and type pools -- grounded on the
// teacher's compiler.Compile (compiler/compiler.go) for the
// "one annotated walk, errors accumulate, emission never stops" shape, and
// on original_source/src/compiler.rs for the opcode-by-opcode emission
// rules this language actually specifies.
package compiler

import (
	"github.com/deepnoodle-ai/exprvm/ast"
	"github.com/deepnoodle-ai/exprvm/bytecode"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/deepnoodle-ai/exprvm/types"
)

// Compile resolves, type-checks, and emits bytecode for expr against cenv.
// It always returns a best-effort Bytecode -- emission never aborts early,
// so that a disassembler or REPL can still show partial output -- but
// callers should treat a non-empty error list as compilation having
// failed and not proceed to vm.Interpret, per spec.md §8's `(eq)` scenario.
func Compile(expr ast.Expr, cenv *env.Env) (*bytecode.Bytecode, []error) {
	c := &compiler{env: cenv, stringIndex: map[string]int{}}
	c.compileExpr(expr)
	return bytecode.New(c.codes, c.strings, c.types), c.errors
}

type compiler struct {
	env *env.Env

	codes []byte

	strings     []string
	stringIndex map[string]int

	types []types.Type

	errors []error
}

func (c *compiler) addError(err error) {
	c.errors = append(c.errors, err)
}

func (c *compiler) emit(code op.Code, operands ...byte) {
	c.codes = append(c.codes, byte(code))
	c.codes = append(c.codes, operands...)
}

func (c *compiler) internString(s string) int {
	if idx, ok := c.stringIndex[s]; ok {
		return idx
	}
	idx := len(c.strings)
	c.strings = append(c.strings, s)
	c.stringIndex[s] = idx
	return idx
}

// internType dedupes by structural equality; the type pool is small enough
// in practice that a linear scan is simpler than hashing a recursive type.
func (c *compiler) internType(t types.Type) int {
	for i, existing := range c.types {
		if types.Equal(existing, t) {
			return i
		}
	}
	idx := len(c.types)
	c.types = append(c.types, t)
	return idx
}

// compileExpr emits bytecode for expr and returns its inferred static Type,
// used by the caller (a Call's argument type checking) to validate against
// a declared parameter type. Nodes that produced an error return
// types.Unknown, which Assignable treats as compatible with everything so
// one bad sub-expression does not cascade into spurious downstream errors.
func (c *compiler) compileExpr(expr ast.Expr) types.Type {
	switch n := expr.(type) {
	case *ast.String:
		idx := c.internString(n.Value)
		c.emit(op.CONSTANT, byte(idx))
		return types.String
	case *ast.Bool:
		if n.Value {
			c.emit(op.TRUE)
		} else {
			c.emit(op.FALSE)
		}
		return types.Bool
	case *ast.Identifier:
		return c.compileIdentifier(n)
	case *ast.Call:
		return c.compileCall(n)
	case *ast.Error:
		return types.Unknown
	default:
		return types.Unknown
	}
}

func (c *compiler) compileIdentifier(n *ast.Identifier) types.Type {
	switch n.Kind {
	case ast.KindTypeLiteral:
		t := types.Unknown
		if n.TypeAnnotation != nil {
			t = *n.TypeAnnotation
		}
		idx := c.internType(t)
		c.emit(op.GET, byte(op.TYPE_LOOKUP), byte(idx))
		return types.NewTypeOf(t)

	case ast.KindVar:
		idx := c.env.IndexOfVar(n.Name)
		if idx < 0 {
			c.addError(&errors.ResolveError{Span: n.Sp, Name: n.FullName, Kind: "var"})
			idx = 0
		}
		c.emit(op.GET, byte(op.VAR), byte(idx))
		return types.String

	case ast.KindPrompt:
		idx := c.env.IndexOfPrompt(n.Name)
		if idx < 0 {
			c.addError(&errors.ResolveError{Span: n.Sp, Name: n.FullName, Kind: "prompt"})
			idx = 0
		}
		c.emit(op.GET, byte(op.PROMPT), byte(idx))
		return types.String

	case ast.KindSecret:
		idx := c.env.IndexOfSecret(n.Name)
		if idx < 0 {
			c.addError(&errors.ResolveError{Span: n.Sp, Name: n.FullName, Kind: "secret"})
			idx = 0
		}
		c.emit(op.GET, byte(op.SECRET), byte(idx))
		return types.String

	case ast.KindClientCtx:
		idx, t := c.env.IndexOfClientCtx(n.Name)
		if idx < 0 {
			c.addError(&errors.ResolveError{Span: n.Sp, Name: n.FullName, Kind: "client_context"})
			idx = 0
			t = types.Unknown
		}
		c.emit(op.GET, byte(op.CLIENT_CTX), byte(idx))
		return t

	default: // ast.KindBuiltinCandidate
		if idx := c.env.IndexOfBuiltin(n.Name); idx >= 0 {
			c.emit(op.GET, byte(op.BUILTIN), byte(idx))
			return c.env.Builtins[idx].Type()
		}
		if idx := c.env.IndexOfUserBuiltin(n.Name); idx >= 0 {
			c.emit(op.GET, byte(op.USER_BUILTIN), byte(idx))
			return c.env.UserBuiltins[idx].Type()
		}
		c.addError(&errors.ResolveError{Span: n.Sp, Name: n.FullName, Kind: "builtin"})
		return types.Unknown
	}
}

// compileCall type-checks and emits one call site. Per spec.md §4.3, the
// callee is assumed to be a direct built-in or user-built-in reference: the
// CALL opcode's index operand is the callee's resolved table index. Any
// other callee shape is a NotCallable error; args are still compiled so
// downstream diagnostics in them can surface.
func (c *compiler) compileCall(n *ast.Call) types.Type {
	ident, ok := n.Callee.(*ast.Identifier)
	if !ok || ident.Kind != ast.KindBuiltinCandidate {
		calleeType := c.compileExpr(n.Callee)
		for _, a := range n.Args {
			c.compileExpr(a)
		}
		c.addError(errors.NewNotCallable(n.Sp, calleeType.Name()))
		c.emit(op.CALL, 0, byte(len(n.Args)))
		return types.Unknown
	}

	var descriptor *object.Builtin
	var index int
	var kind op.Lookup
	if idx := c.env.IndexOfBuiltin(ident.Name); idx >= 0 {
		descriptor, index, kind = c.env.Builtins[idx], idx, op.BUILTIN
	} else if idx := c.env.IndexOfUserBuiltin(ident.Name); idx >= 0 {
		descriptor, index, kind = c.env.UserBuiltins[idx], idx, op.USER_BUILTIN
	} else {
		c.addError(&errors.ResolveError{Span: ident.Sp, Name: ident.FullName, Kind: "builtin"})
		for _, a := range n.Args {
			c.compileExpr(a)
		}
		c.emit(op.CALL, 0, byte(len(n.Args)))
		return types.Unknown
	}

	c.emit(op.GET, byte(kind), byte(index))

	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.compileExpr(a)
	}

	c.checkArgs(n, descriptor, argTypes)

	c.emit(op.CALL, byte(index), byte(len(n.Args)))
	return descriptor.ReturnType
}

func (c *compiler) checkArgs(n *ast.Call, d *object.Builtin, argTypes []types.Type) {
	required := d.RequiredArity()
	variadic, hasVariadic := d.Variadic()

	if hasVariadic {
		if len(argTypes) < required {
			c.addError(errors.NewWrongNumberOfArgs(n.Sp, required, len(argTypes)))
			return
		}
	} else if len(argTypes) != required {
		c.addError(errors.NewWrongNumberOfArgs(n.Sp, required, len(argTypes)))
		return
	}

	for i, t := range argTypes {
		var want types.Type
		var name string
		if i < required {
			want, name = d.Args[i].Type, d.Args[i].Name
		} else {
			want, name = variadic.Type, variadic.Name
		}
		if !types.Assignable(want, t) {
			c.addError(errors.NewTypeMismatch(n.Args[i].Span(), name, want.Name(), t.Name()))
		}
	}
}
