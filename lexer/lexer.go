// Package lexer tokenizes expression-language source text into a stream of
// spanned tokens using a table of regular expressions tried in order,
// longest-match-first, the same approach the Rust reference implementation
// takes with its Logos-generated lexer (see original_source/src/lexer.rs)
// and the pattern other retrieval examples use for regex-table tokenizers
// (e.g. other_examples/dagger-dagger__expr.go).
package lexer

import (
	"regexp"
	"strings"

	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/deepnoodle-ai/exprvm/token"
)

// rule pairs a compiled regex anchored at the start of the remaining input
// with the token type it produces. Rules are tried in order; the first
// match wins, so more specific rules (keywords, punctuation) must precede
// the general identifier/type-literal rule.
type rule struct {
	re  *regexp.Regexp
	typ token.Type
}

var rules = []rule{
	{regexp.MustCompile(`^\(`), token.LPAREN},
	{regexp.MustCompile(`^\)`), token.RPAREN},
	{regexp.MustCompile(`^,`), token.COMMA},
	{regexp.MustCompile(`^->`), token.ARROW},
	{regexp.MustCompile(`^\.\.\.`), token.ELLIPSIS},
	{regexp.MustCompile(`^<`), token.LANGLE},
	{regexp.MustCompile(`^>`), token.RANGLE},
	{regexp.MustCompile(`^Fn\b`), token.FN},
	{regexp.MustCompile(`^true\b`), token.TRUE},
	{regexp.MustCompile(`^false\b`), token.FALSE},
	{regexp.MustCompile("^`[^`]*`"), token.STRING},
	{regexp.MustCompile(`^@_\b`), token.IDENT},
	{regexp.MustCompile(`^[!?:@][a-zA-Z][a-zA-Z0-9_]*`), token.IDENT},
	{regexp.MustCompile(`^[A-Z][a-zA-Z0-9_]*`), token.TYPE_LIT},
	{regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*`), token.IDENT},
}

var whitespace = regexp.MustCompile(`^[ \t\n\r]+`)

// Result is either a successfully lexed Token or a lexical error, each
// tagged with its source span, matching spec.md §4.1's "ordered sequence of
// (start, token, end) results; errors are individual lexical errors".
type Result struct {
	Token *token.Token
	Err   error
}

// Lex tokenizes source eagerly and returns every token and lexical error it
// produced, in source order. Lexing never stops at the first error: an
// illegal byte is skipped and lexing resumes at the next byte, so that a
// single pass can surface every lexical problem in the input.
func Lex(source string) []Result {
	var results []Result
	pos := 0
	for pos < len(source) {
		if m := whitespace.FindString(source[pos:]); m != "" {
			pos += len(m)
			continue
		}

		if source[pos] == '`' {
			if strings.IndexByte(source[pos+1:], '`') < 0 {
				results = append(results, Result{Err: &errors.LexicalError{
					Code:    errors.E1002,
					Span:    token.Span{Start: pos, End: len(source)},
					Message: "unterminated string literal",
				}})
				pos = len(source)
				continue
			}
		}

		matched := false
		for _, r := range rules {
			m := r.re.FindString(source[pos:])
			if m == "" {
				continue
			}
			start := pos
			end := pos + len(m)
			lit := m
			if r.typ == token.STRING {
				lit = m[1 : len(m)-1]
			}
			results = append(results, Result{Token: &token.Token{
				Type:    r.typ,
				Literal: lit,
				Span:    token.Span{Start: start, End: end},
			}})
			pos = end
			matched = true
			break
		}
		if matched {
			continue
		}

		span := token.Span{Start: pos, End: pos + 1}
		results = append(results, Result{Err: &errors.LexicalError{
			Code:    errors.E1001,
			Span:    span,
			Message: "unexpected byte",
		}})
		pos++
	}
	results = append(results, Result{Token: &token.Token{
		Type: token.EOF,
		Span: token.Span{Start: len(source), End: len(source)},
	}})
	return results
}

// Tokens filters a Lex result down to just the successfully lexed tokens,
// in order.
func Tokens(results []Result) []*token.Token {
	var out []*token.Token
	for _, r := range results {
		if r.Token != nil {
			out = append(out, r.Token)
		}
	}
	return out
}

// Errors filters a Lex result down to just the lexical errors, in order.
func Errors(results []Result) []error {
	var out []error
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}
	return out
}
