package ast_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/ast"
	"github.com/deepnoodle-ai/exprvm/token"
	"github.com/stretchr/testify/assert"
)

func TestCallSpanCoversDelimiters(t *testing.T) {
	call := &ast.Call{
		Callee: &ast.Identifier{FullName: "noop", Sp: token.Span{Start: 1, End: 5}},
		Sp:     token.Span{Start: 0, End: 6},
	}
	assert.Equal(t, token.Span{Start: 0, End: 6}, call.Span())
}

func TestIdentifierKindDefaultsToBuiltinCandidate(t *testing.T) {
	id := &ast.Identifier{FullName: "id"}
	assert.Equal(t, ast.KindBuiltinCandidate, id.Kind)
}

func TestErrorNodeImplementsExpr(t *testing.T) {
	var e ast.Expr = &ast.Error{Sp: token.Span{Start: 2, End: 3}}
	assert.Equal(t, token.Span{Start: 2, End: 3}, e.Span())
}
