// Package token defines the lexical tokens of the expression language.
package token

import "fmt"

// Type identifies the lexical category of a token.
type Type string

// Token types.
const (
	LPAREN     Type = "("
	RPAREN     Type = ")"
	COMMA      Type = ","
	LANGLE     Type = "<"
	RANGLE     Type = ">"
	ARROW      Type = "->"
	ELLIPSIS   Type = "..."
	FN         Type = "Fn"
	TRUE       Type = "true"
	FALSE      Type = "false"
	STRING     Type = "STRING"
	IDENT      Type = "IDENT"
	TYPE_LIT   Type = "TYPE"
	EOF        Type = "EOF"
	ILLEGAL    Type = "ILLEGAL"
)

// Span is a half-open byte range [Start, End) into the original source text.
// Every token, AST node, and error carries one.
type Span struct {
	Start int
	End   int
}

// Cover returns the smallest span that contains both a and b.
func Cover(a, b Span) Span {
	start, end := a.Start, a.End
	if b.Start < start {
		start = b.Start
	}
	if b.End > end {
		end = b.End
	}
	return Span{Start: start, End: end}
}

// String renders the span as "start..end", matching the notation used in
// spec examples and test fixtures.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is one lexical unit together with its source span. Literal holds the
// decoded payload where relevant: the full textual form (with sigil) for
// Ident/TypeLit, the backtick-stripped contents for String, and the raw
// punctuation text otherwise.
type Token struct {
	Type    Type
	Literal string
	Span    Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Span)
}
