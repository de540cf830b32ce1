package errors_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/deepnoodle-ai/exprvm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrongNumberOfArgsMessage(t *testing.T) {
	span := token.Span{Start: 0, End: 4}
	err := errors.NewWrongNumberOfArgs(span, 2, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "E2002")
	assert.Contains(t, err.Error(), "0..4")
}

func TestFormatPointsAtColumn(t *testing.T) {
	src := "(eq)"
	out := errors.Format("", src, 1, errors.NewNotCallable(token.Span{Start: 1, End: 3}, "String"))
	assert.Contains(t, out, "1:2")
	assert.Contains(t, out, "(eq)")
}

func TestSuggestFindsClosestName(t *testing.T) {
	got := errors.Suggest("cocnat", []string{"concat", "contains", "cond"})
	assert.Equal(t, "concat", got)
}

func TestSuggestReturnsEmptyWhenNoneClose(t *testing.T) {
	got := errors.Suggest("zzzzzzzzzz", []string{"concat", "contains"})
	assert.Equal(t, "", got)
}
