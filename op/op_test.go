package op_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/stretchr/testify/assert"
)

func TestOperandCounts(t *testing.T) {
	assert.Equal(t, 2, op.CALL.OperandCount())
	assert.Equal(t, 2, op.GET.OperandCount())
	assert.Equal(t, 1, op.CONSTANT.OperandCount())
	assert.Equal(t, 0, op.TRUE.OperandCount())
	assert.Equal(t, 0, op.EQ.OperandCount())
}

func TestUnknownOpcodeName(t *testing.T) {
	assert.Equal(t, "??", op.Code(200).Name())
}

func TestLookupNames(t *testing.T) {
	assert.Equal(t, "BUILTIN", op.BUILTIN.Name())
	assert.Equal(t, "USER_BUILTIN", op.USER_BUILTIN.Name())
	assert.Equal(t, "TYPE", op.TYPE_LOOKUP.Name())
}
