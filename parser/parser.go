// Package parser builds the AST for a single expression from source text, by
// way of the lexer. Parse errors are accumulated rather than fatal: the
// parser substitutes an ast.Error sentinel and resynchronizes at the next
// closing paren (or EOF) so that a single pass can surface more than one
// mistake, the same error-production approach the Rust reference
// implementation's recursive-descent parser uses (original_source/src/parser.rs,
// original_source/src/lexing.rs).
package parser

import (
	"github.com/deepnoodle-ai/exprvm/ast"
	"github.com/deepnoodle-ai/exprvm/errors"
	"github.com/deepnoodle-ai/exprvm/lexer"
	"github.com/deepnoodle-ai/exprvm/token"
	"github.com/deepnoodle-ai/exprvm/types"
)

// Parse tokenizes and parses source, returning the resulting expression tree
// together with every lexical and syntax error encountered. The returned
// Expr is never nil; on unrecoverable input it may be an *ast.Error.
func Parse(source string) (ast.Expr, []error) {
	results := lexer.Lex(source)
	p := &Parser{
		tokens: lexer.Tokens(results),
		errors: append([]error{}, lexer.Errors(results)...),
	}
	expr := p.parseExpr()
	if p.cur().Type != token.EOF {
		p.addSyntaxError([]string{string(token.EOF)})
	}
	return expr, p.errors
}

// Parser consumes a flat token stream (lexical errors already having been
// filtered out by Parse) and produces an AST plus accumulated syntax errors.
type Parser struct {
	tokens []*token.Token
	pos    int
	errors []error
}

func (p *Parser) cur() *token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1] // EOF sentinel
}

func (p *Parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].Span.End
}

func (p *Parser) advance() *token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// expect consumes the current token if it matches tt, or records a
// SyntaxError and leaves the cursor in place otherwise.
func (p *Parser) expect(tt token.Type) (*token.Token, bool) {
	if p.cur().Type == tt {
		return p.advance(), true
	}
	p.addSyntaxError([]string{string(tt)})
	return nil, false
}

func (p *Parser) addSyntaxError(expected []string) {
	p.errors = append(p.errors, &errors.SyntaxError{
		Span:     p.cur().Span,
		Expected: expected,
		Actual:   string(p.cur().Type),
	})
}

// synchronize advances past tokens until it finds a plausible resumption
// point: the closing paren of the enclosing call, or EOF. Call arguments are
// juxtaposed with no separator, so a closing paren is the only reliable
// boundary; commas are handled separately within the Fn(...) type grammar.
func (p *Parser) synchronize() {
	for {
		switch p.cur().Type {
		case token.RPAREN, token.EOF:
			return
		default:
			p.advance()
		}
	}
}

// parseExpr parses one Expr production: Ident, Call, String, or Bool.
func (p *Parser) parseExpr() ast.Expr {
	switch p.cur().Type {
	case token.LPAREN:
		return p.parseCall()
	case token.STRING:
		return p.parseString()
	case token.TRUE, token.FALSE:
		return p.parseBool()
	case token.IDENT:
		return p.parseIdentifier()
	case token.TYPE_LIT, token.FN:
		return p.parseTypeLiteralExpr()
	default:
		span := p.cur().Span
		p.addSyntaxError([]string{string(token.LPAREN), string(token.STRING), "identifier", "type literal"})
		p.synchronize()
		return &ast.Error{Sp: span}
	}
}

func (p *Parser) parseCall() ast.Expr {
	open, _ := p.expect(token.LPAREN)
	start := 0
	if open != nil {
		start = open.Span.Start
	}
	callee := p.parseExpr()
	var args []ast.Expr
	for p.cur().Type != token.RPAREN && p.cur().Type != token.EOF {
		args = append(args, p.parseExpr())
	}
	closeTok, ok := p.expect(token.RPAREN)
	end := p.prevEnd()
	if ok && closeTok != nil {
		end = closeTok.Span.End
	}
	return &ast.Call{Callee: callee, Args: args, Sp: token.Span{Start: start, End: end}}
}

func (p *Parser) parseString() ast.Expr {
	t := p.advance()
	return &ast.String{Value: t.Literal, Sp: t.Span}
}

func (p *Parser) parseBool() ast.Expr {
	t := p.advance()
	return &ast.Bool{Value: t.Type == token.TRUE, Sp: t.Span}
}

func (p *Parser) parseIdentifier() ast.Expr {
	t := p.advance()
	full := t.Literal
	kind := ast.KindBuiltinCandidate
	name := full
	if len(full) > 0 {
		switch full[0] {
		case ':':
			kind = ast.KindVar
			name = full[1:]
		case '?':
			kind = ast.KindPrompt
			name = full[1:]
		case '!':
			kind = ast.KindSecret
			name = full[1:]
		case '@':
			kind = ast.KindClientCtx
			name = full[1:]
		}
	}
	return &ast.Identifier{FullName: full, Name: name, Kind: kind, Sp: t.Span}
}

// parseTypeLiteralExpr parses a type literal in expression position: a bare
// typeName, a typeName<typeName> generic, or the Fn(...) -> T grammar. The
// resulting ast.Identifier's TypeAnnotation carries the fully resolved Type.
func (p *Parser) parseTypeLiteralExpr() ast.Expr {
	start := p.cur().Span.Start
	t, name := p.parseType()
	end := p.prevEnd()
	return &ast.Identifier{
		FullName:       name,
		Name:           name,
		Kind:           ast.KindTypeLiteral,
		TypeAnnotation: &t,
		Sp:             token.Span{Start: start, End: end},
	}
}

// parseType parses the Type production (spec.md §4.2): a typeName, a
// typeName<typeName> generic (only "Type<...>" is meaningful), or the Fn
// grammar. It does not build an AST node; callers that need one wrap the
// result themselves.
func (p *Parser) parseType() (types.Type, string) {
	switch p.cur().Type {
	case token.FN:
		return p.parseFnType()
	case token.TYPE_LIT:
		name := p.advance().Literal
		if p.cur().Type == token.LANGLE {
			p.advance()
			inner, innerName := p.parseType()
			p.expect(token.RANGLE)
			if name == "Type" {
				return types.NewTypeOf(inner), name + "<" + innerName + ">"
			}
			p.errors = append(p.errors, &errors.ResolveError{
				Span: p.cur().Span,
				Name: name + "<" + innerName + ">",
				Kind: "type",
			})
			return types.Unknown, name
		}
		t, ok := types.ParseName(name)
		if !ok {
			p.errors = append(p.errors, &errors.ResolveError{Span: p.cur().Span, Name: name, Kind: "type"})
			return types.Unknown, name
		}
		return t, name
	default:
		p.addSyntaxError([]string{"type literal", string(token.FN)})
		return types.Unknown, ""
	}
}

// parseFnType parses `Fn(' Type (',' Type)* (',' '...' Type)? ')' '->' Type`
// (and the `Fn('...' Type ')' '->' Type` variadic-only form).
func (p *Parser) parseFnType() (types.Type, string) {
	p.advance() // consume Fn
	p.expect(token.LPAREN)
	var args []types.Type
	var variadic *types.Type
	first := true
	for p.cur().Type != token.RPAREN && p.cur().Type != token.EOF {
		if !first {
			p.expect(token.COMMA)
		}
		first = false
		if p.cur().Type == token.ELLIPSIS {
			p.advance()
			v, _ := p.parseType()
			variadic = &v
			break
		}
		t, _ := p.parseType()
		args = append(args, t)
	}
	p.expect(token.RPAREN)
	p.expect(token.ARROW)
	ret, _ := p.parseType()
	fn := types.NewFn(args, variadic, ret)
	return fn, fn.Name()
}
