package compiler_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/compiler"
	"github.com/deepnoodle-ai/exprvm/env"
	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/deepnoodle-ai/exprvm/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() *env.Env {
	return env.New(builtins.Registry())
}

func TestCompileNoopEmitsVersionAndCall(t *testing.T) {
	expr, perrs := parser.Parse("(noop)")
	require.Empty(t, perrs)

	bc, errs := compiler.Compile(expr, newEnv())
	require.Empty(t, errs)
	assert.Equal(t, "0100", bc.Version)

	all := bc.Bytes()
	assert.Equal(t, op.GET, op.Code(all[4]))
	assert.Equal(t, op.CALL, op.Code(all[7]))
}

func TestCompileWrongNumberOfArgs(t *testing.T) {
	expr, perrs := parser.Parse("(eq)")
	require.Empty(t, perrs)

	_, errs := compiler.Compile(expr, newEnv())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E2002")
}

func TestCompileTypeMismatch(t *testing.T) {
	expr, perrs := parser.Parse("(and true `oops`)")
	require.Empty(t, perrs)

	_, errs := compiler.Compile(expr, newEnv())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E2003")
}

func TestCompileVariadicConcatAcceptsManyArgs(t *testing.T) {
	expr, perrs := parser.Parse("(concat `a` `b` `c` `d`)")
	require.Empty(t, perrs)

	_, errs := compiler.Compile(expr, newEnv())
	assert.Empty(t, errs)
}

func TestCompileUndefinedVarIsResolveError(t *testing.T) {
	expr, perrs := parser.Parse("(id :missing)")
	require.Empty(t, perrs)

	_, errs := compiler.Compile(expr, newEnv())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E2001")
}

func TestCompileResolvesDeclaredVar(t *testing.T) {
	expr, perrs := parser.Parse("(id :greeting)")
	require.Empty(t, perrs)

	cenv := newEnv()
	cenv.Vars = []string{"greeting"}

	_, errs := compiler.Compile(expr, cenv)
	assert.Empty(t, errs)
}

func TestCompileNotCallableCallee(t *testing.T) {
	expr, perrs := parser.Parse("((noop))")
	require.Empty(t, perrs)

	_, errs := compiler.Compile(expr, newEnv())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E2004")
}

func TestCompileInternsStringsOnce(t *testing.T) {
	expr, perrs := parser.Parse("(concat `a` `a` `b`)")
	require.Empty(t, perrs)

	bc, errs := compiler.Compile(expr, newEnv())
	require.Empty(t, errs)
	assert.Equal(t, []string{"a", "b"}, bc.Strings)
}

func TestCompileTypeBuiltinCallsLeaveTypePoolEmpty(t *testing.T) {
	expr, perrs := parser.Parse("(eq (type `a`) (type `b`))")
	require.Empty(t, perrs)

	bc, errs := compiler.Compile(expr, newEnv())
	require.Empty(t, errs)
	assert.Empty(t, bc.Types)
}

func TestCompileTypeLiteralInternsTypePool(t *testing.T) {
	expr, perrs := parser.Parse("(eq String String)")
	require.Empty(t, perrs)

	bc, errs := compiler.Compile(expr, newEnv())
	require.Empty(t, errs)
	require.Len(t, bc.Types, 1)
	assert.Equal(t, "String", bc.Types[0].Name())
}
