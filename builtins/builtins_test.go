package builtins_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/builtins"
	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func find(t *testing.T, name string) *object.Builtin {
	t.Helper()
	for _, b := range builtins.Registry() {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("no builtin named %q", name)
	return nil
}

func TestNoopReturnsLiteralString(t *testing.T) {
	v, err := find(t, "noop").Impl(nil)
	require.NoError(t, err)
	assert.Equal(t, object.String("noop"), v)
}

func TestConcatJoinsAllArguments(t *testing.T) {
	v, err := find(t, "concat").Impl([]object.Value{
		object.String("Hello"), object.String(" "), object.String("World"),
	})
	require.NoError(t, err)
	assert.Equal(t, object.String("Hello World"), v)
}

func TestCondPicksBranchByCondition(t *testing.T) {
	v, err := find(t, "cond").Impl([]object.Value{
		object.Bool(true), object.String("yes"), object.String("no"),
	})
	require.NoError(t, err)
	assert.Equal(t, object.String("yes"), v)

	v, err = find(t, "cond").Impl([]object.Value{
		object.Bool(false), object.String("yes"), object.String("no"),
	})
	require.NoError(t, err)
	assert.Equal(t, object.String("no"), v)
}

func TestEqIsReflexive(t *testing.T) {
	for _, v := range []object.Value{
		object.String("x"), object.Bool(true), object.Bool(false),
	} {
		out, err := find(t, "eq").Impl([]object.Value{v, v})
		require.NoError(t, err)
		assert.Equal(t, object.Bool(true), out)
	}
}

func TestIsEmpty(t *testing.T) {
	v, err := find(t, "is_empty").Impl([]object.Value{object.String("")})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(true), v)

	v, err = find(t, "is_empty").Impl([]object.Value{object.String("x")})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(false), v)
}

func TestContains(t *testing.T) {
	v, err := find(t, "contains").Impl([]object.Value{object.String("ell"), object.String("Hello")})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(true), v)
}

func TestTrimVariants(t *testing.T) {
	v, _ := find(t, "trim").Impl([]object.Value{object.String("  hi  ")})
	assert.Equal(t, object.String("hi"), v)

	v, _ = find(t, "trim_start").Impl([]object.Value{object.String("  hi  ")})
	assert.Equal(t, object.String("hi  "), v)

	v, _ = find(t, "trim_end").Impl([]object.Value{object.String("  hi  ")})
	assert.Equal(t, object.String("  hi"), v)
}

func TestCaseConversion(t *testing.T) {
	v, _ := find(t, "uppercase").Impl([]object.Value{object.String("hi")})
	assert.Equal(t, object.String("HI"), v)

	v, _ = find(t, "lowercase").Impl([]object.Value{object.String("HI")})
	assert.Equal(t, object.String("hi"), v)
}

func TestAndRequiresBothTrue(t *testing.T) {
	v, err := find(t, "and").Impl([]object.Value{object.Bool(true), object.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(true), v)

	v, err = find(t, "and").Impl([]object.Value{object.Bool(true), object.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(false), v)

	_, err = find(t, "and").Impl([]object.Value{object.String("x"), object.Bool(true)})
	require.Error(t, err)
}

func TestOrRequiresEitherTrue(t *testing.T) {
	v, err := find(t, "or").Impl([]object.Value{object.Bool(false), object.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(true), v)

	v, err = find(t, "or").Impl([]object.Value{object.Bool(false), object.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(false), v)

	_, err = find(t, "or").Impl([]object.Value{object.Bool(false), object.String("x")})
	require.Error(t, err)
}

func TestNotNegatesBool(t *testing.T) {
	v, err := find(t, "not").Impl([]object.Value{object.Bool(true)})
	require.NoError(t, err)
	assert.Equal(t, object.Bool(false), v)
}

func TestToStrPassesThroughStrings(t *testing.T) {
	v, _ := find(t, "to_str").Impl([]object.Value{object.String("x")})
	assert.Equal(t, object.String("x"), v)

	v, _ = find(t, "to_str").Impl([]object.Value{object.Bool(true)})
	assert.Equal(t, object.String("true"), v)
}

func TestRegistryIndexOrderIsStable(t *testing.T) {
	a := builtins.Registry()
	b := builtins.Registry()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
	}
}
