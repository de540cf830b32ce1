package object_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/object"
	"github.com/deepnoodle-ai/exprvm/types"
	"github.com/stretchr/testify/assert"
)

func TestStringEquality(t *testing.T) {
	assert.True(t, object.String("a").Equal(object.String("a")))
	assert.False(t, object.String("a").Equal(object.String("b")))
	assert.False(t, object.String("a").Equal(object.Bool(true)))
}

func TestBuiltinType(t *testing.T) {
	b := &object.Builtin{
		Name: "concat",
		Args: []object.Arg{
			{Name: "a", Type: types.String},
			{Name: "b", Type: types.String},
			{Name: "rest", Type: types.String, Variadic: true},
		},
		ReturnType: types.String,
	}
	assert.Equal(t, "Fn(String, String, ...String) -> String", b.Type().Name())
	assert.Equal(t, 2, b.RequiredArity())
	v, ok := b.Variadic()
	assert.True(t, ok)
	assert.Equal(t, "rest", v.Name)
}

func TestFnEqualityIsByDescriptorIdentity(t *testing.T) {
	a := &object.Builtin{Name: "id"}
	b := &object.Builtin{Name: "id"}
	fa := object.Fn{Descriptor: a}
	fb := object.Fn{Descriptor: a}
	fc := object.Fn{Descriptor: b}
	assert.True(t, fa.Equal(fb))
	assert.False(t, fa.Equal(fc))
}

func TestTypeValueEqualityIsStructural(t *testing.T) {
	a := object.TypeValue{T: types.String}
	b := object.TypeValue{T: types.String}
	c := object.TypeValue{T: types.Bool}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestGetTypeIsTotal(t *testing.T) {
	assert.Equal(t, types.String, object.GetType(object.String("x")))
	assert.Equal(t, types.Bool, object.GetType(object.Bool(true)))
	assert.Equal(t, types.NewTypeOf(types.String), object.GetType(object.TypeValue{T: types.String}))
}
