package bytecode_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/bytecode"
	"github.com/deepnoodle-ai/exprvm/op"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStampsCurrentVersion(t *testing.T) {
	bc := bytecode.New([]byte{byte(op.TRUE)}, nil, nil)
	assert.Equal(t, bytecode.CurrentVersion, bc.Version)
}

func TestBytesPrependsVersion(t *testing.T) {
	bc := bytecode.New([]byte{byte(op.TRUE)}, nil, nil)
	all := bc.Bytes()
	require.Len(t, all, 5)
	assert.Equal(t, bytecode.CurrentVersion, string(all[:4]))
	assert.Equal(t, byte(op.TRUE), all[4])
}

func TestCheckVersionMismatch(t *testing.T) {
	_, ok := bytecode.CheckVersion([]byte("9999"))
	assert.False(t, ok)
}

func TestCheckVersionTooShort(t *testing.T) {
	_, ok := bytecode.CheckVersion([]byte("01"))
	assert.False(t, ok)
}

func TestDecodeInstructionWithOperands(t *testing.T) {
	all := []byte{'0', '1', '0', '0', byte(op.GET), byte(op.BUILTIN), 3, byte(op.TRUE)}
	instr, err := bytecode.Decode(all, 4)
	require.NoError(t, err)
	assert.Equal(t, op.GET, instr.Op)
	assert.Equal(t, []byte{byte(op.BUILTIN), 3}, instr.Operands)
	assert.Equal(t, 7, instr.Next)

	instr2, err := bytecode.Decode(all, instr.Next)
	require.NoError(t, err)
	assert.Equal(t, op.TRUE, instr2.Op)
	assert.Equal(t, 8, instr2.Next)
}

func TestDecodeTruncatedInstruction(t *testing.T) {
	all := []byte{'0', '1', '0', '0', byte(op.CALL), 1}
	_, err := bytecode.Decode(all, 4)
	assert.Error(t, err)
}
