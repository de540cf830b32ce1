package lexer_test

import (
	"testing"

	"github.com/deepnoodle-ai/exprvm/lexer"
	"github.com/deepnoodle-ai/exprvm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(toks []*token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestLexSimpleCall(t *testing.T) {
	results := lexer.Lex("(noop)")
	require.Empty(t, lexer.Errors(results))
	toks := lexer.Tokens(results)
	assert.Equal(t, []token.Type{
		token.LPAREN, token.IDENT, token.RPAREN, token.EOF,
	}, typesOf(toks))
	assert.Equal(t, "noop", toks[1].Literal)
}

func TestLexSigilsAndTypeLiteral(t *testing.T) {
	results := lexer.Lex("(id :greeting) String")
	require.Empty(t, lexer.Errors(results))
	toks := lexer.Tokens(results)
	assert.Equal(t, ":greeting", toks[2].Literal)
	assert.Equal(t, token.IDENT, toks[2].Type)
	assert.Equal(t, token.TYPE_LIT, toks[4].Type)
	assert.Equal(t, "String", toks[4].Literal)
}

func TestLexRecallSigilIsValidIdent(t *testing.T) {
	results := lexer.Lex("(id @_)")
	require.Empty(t, lexer.Errors(results))
	toks := lexer.Tokens(results)
	assert.Equal(t, []token.Type{
		token.LPAREN, token.IDENT, token.IDENT, token.RPAREN, token.EOF,
	}, typesOf(toks))
	assert.Equal(t, "@_", toks[2].Literal)
}

func TestLexStringLiteralStripsBackticks(t *testing.T) {
	results := lexer.Lex("`Hello World`")
	require.Empty(t, lexer.Errors(results))
	toks := lexer.Tokens(results)
	assert.Equal(t, "Hello World", toks[0].Literal)
	assert.Equal(t, token.Span{Start: 0, End: 13}, toks[0].Span)
}

func TestLexUnterminatedString(t *testing.T) {
	results := lexer.Lex("`oops")
	errs := lexer.Errors(results)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E1002")
}

func TestLexIllegalByteRecoversAndContinues(t *testing.T) {
	results := lexer.Lex("(# true)")
	errs := lexer.Errors(results)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "E1001")
	toks := lexer.Tokens(results)
	assert.Equal(t, []token.Type{
		token.LPAREN, token.TRUE, token.RPAREN, token.EOF,
	}, typesOf(toks))
}

func TestLexFnArrowEllipsis(t *testing.T) {
	toks := lexer.Tokens(lexer.Lex("Fn(...Value) -> String"))
	assert.Equal(t, []token.Type{
		token.FN, token.LPAREN, token.ELLIPSIS, token.TYPE_LIT,
		token.RPAREN, token.ARROW, token.TYPE_LIT, token.EOF,
	}, typesOf(toks))
}

func TestLexBoolLiterals(t *testing.T) {
	toks := lexer.Tokens(lexer.Lex("true false"))
	assert.Equal(t, []token.Type{token.TRUE, token.FALSE, token.EOF}, typesOf(toks))
}

func TestLexWhitespaceIsSkipped(t *testing.T) {
	toks := lexer.Tokens(lexer.Lex("  (  noop  )  "))
	assert.Equal(t, []token.Type{
		token.LPAREN, token.IDENT, token.RPAREN, token.EOF,
	}, typesOf(toks))
}
