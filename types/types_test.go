package types_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/types"
	"github.com/stretchr/testify/assert"
)

func TestNameFn0Args(t *testing.T) {
	assert.Equal(t, "Fn() -> String", types.NewFn(nil, nil, types.String).Name())
}

func TestNameFnVariadicOnly(t *testing.T) {
	v := types.Value
	assert.Equal(t, "Fn(...Value) -> String", types.NewFn(nil, &v, types.String).Name())
}

func TestNameFn2ArgsAndVariadic(t *testing.T) {
	v := types.Value
	ty := types.NewFn([]types.Type{types.Value, types.String}, &v, types.String)
	assert.Equal(t, "Fn(Value, String, ...Value) -> String", ty.Name())
}

func TestNameTypeOf(t *testing.T) {
	assert.Equal(t, "Type<String>", types.NewTypeOf(types.String).Name())
}

func TestAssignableValueAcceptsAnything(t *testing.T) {
	assert.True(t, types.Assignable(types.Value, types.String))
	assert.True(t, types.Assignable(types.Value, types.Bool))
}

func TestAssignableUnknownSuppressesErrors(t *testing.T) {
	assert.True(t, types.Assignable(types.Unknown, types.String))
	assert.True(t, types.Assignable(types.String, types.Unknown))
}

func TestAssignableNominalEquality(t *testing.T) {
	assert.True(t, types.Assignable(types.String, types.String))
	assert.False(t, types.Assignable(types.String, types.Bool))
}

func TestEqualStructuralForFn(t *testing.T) {
	a := types.NewFn([]types.Type{types.String}, nil, types.Bool)
	b := types.NewFn([]types.Type{types.String}, nil, types.Bool)
	c := types.NewFn([]types.Type{types.Bool}, nil, types.Bool)
	assert.True(t, types.Equal(a, b))
	assert.False(t, types.Equal(a, c))
}
