// Package ast defines Expr, the AST node sum type: every sub-expression of
// a call is paired with its source span so that later pipeline stages can
// attach diagnostics precisely.
package ast

import (
	"github.com/deepnoodle-ai/exprvm/token"
	"github.com/deepnoodle-ai/exprvm/types"
)

// IdentKind classifies an identifier by its leading sigil (or lack of one).
type IdentKind int

const (
	// KindBuiltinCandidate is an identifier with no sigil: it may resolve
	// to a built-in or, failing that, a user-supplied built-in.
	KindBuiltinCandidate IdentKind = iota
	KindVar
	KindPrompt
	KindSecret
	KindClientCtx
	// KindTypeLiteral marks an identifier formed from an uppercase-leading
	// name or the Fn(...) -> T grammar; its resolved Type is carried in
	// Identifier.TypeAnnotation.
	KindTypeLiteral
)

// Expr is the single syntactic category in the language: every AST node
// implements it.
type Expr interface {
	Span() token.Span
}

// String is a backtick-delimited string literal.
type String struct {
	Value string
	Sp    token.Span
}

func (e *String) Span() token.Span { return e.Sp }

// Bool is the `true` or `false` literal.
type Bool struct {
	Value bool
	Sp    token.Span
}

func (e *Bool) Span() token.Span { return e.Sp }

// Identifier is a reference to a built-in, variable, prompt, secret,
// client-context value, user-supplied built-in, or type literal. FullName
// includes the sigil (if any); Name strips it. TypeAnnotation is populated
// by the parser only for KindTypeLiteral nodes, carrying the literal's
// resolved Type.
type Identifier struct {
	FullName       string
	Name           string
	Kind           IdentKind
	TypeAnnotation *types.Type
	Sp             token.Span
}

func (e *Identifier) Span() token.Span { return e.Sp }

// Call is a parenthesized application: the callee expression followed by
// zero or more argument expressions.
type Call struct {
	Callee Expr
	Args   []Expr
	Sp     token.Span
}

func (e *Call) Span() token.Span { return e.Sp }

// Error is the parse-failure sentinel: it stands in for a sub-expression
// the parser could not make sense of, letting the parser's caller continue
// walking the tree without nil-checking every node. The compiler treats it
// as Unknown-typed to suppress cascading errors.
type Error struct {
	Sp token.Span
}

func (e *Error) Span() token.Span { return e.Sp }
