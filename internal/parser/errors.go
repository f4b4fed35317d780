package parser

import (
	"fmt"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/lexer"
)

// syncTokens are tokens the parser can synchronize to after an error
var syncTokens = map[lexer.TokenType]bool{
	lexer.IMPORT:          true,
	lexer.VAR:             true,
	lexer.VAL:             true,
	lexer.GLOBAL:          true,
	lexer.STATIC:          true,
	lexer.FUNCTION:        true,
	lexer.ZEN_CLASS:       true,
	lexer.ZEN_CONSTRUCTOR: true,
	lexer.OPERATOR:        true,
	lexer.DOLLAR:          true,
	lexer.RETURN:          true,
	lexer.IF:              true,
	lexer.FOR:             true,
	lexer.WHILE:           true,
	lexer.RBRACE:          true,
	lexer.SEMICOLON:       true,
	lexer.EOF:             true,
}

// expectHints suggest a fix when a closing token is missing
var expectHints = map[lexer.TokenType]string{
	lexer.SEMICOLON: "did you forget a semicolon?",
	lexer.RBRACE:    "a block or class body is not closed",
	lexer.RPAREN:    "a parameter or argument list is not closed",
	lexer.RBRACKET:  "an index or array literal is not closed",
}

// Parser holds the parser state
type Parser struct {
	tokens []lexer.Token
	pos    int
	diags  *diagnostic.Diagnostics
}

// current returns the current token
func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.eofToken()
	}
	return p.tokens[p.pos]
}

// peek returns the next token without consuming
func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.eofToken()
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) eofToken() lexer.Token {
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return lexer.Token{Type: lexer.EOF, Line: 1, Column: 1}
}

// previous returns the last consumed token
func (p *Parser) previous() lexer.Token {
	if p.pos == 0 || len(p.tokens) == 0 {
		return p.current()
	}
	if p.pos > len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos-1]
}

// advance moves to the next token and returns the consumed token
func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches the expected type,
// otherwise reports an error
func (p *Parser) expect(tt lexer.TokenType) lexer.Token {
	tok := p.current()
	if tok.Type != tt {
		msg := fmt.Sprintf("expected %s, got %s", tt, describe(tok))
		p.diags.ErrorWithHint(tok.Line, tok.Column, msg, expectHints[tt])
		return tok
	}
	return p.advance()
}

// check returns true if the current token is of the given type
func (p *Parser) check(tt lexer.TokenType) bool {
	return p.current().Type == tt
}

// match consumes the current token if it matches, returns true if consumed
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// synchronize skips tokens until a sync point is found, consuming a
// terminating semicolon
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.current().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		if syncTokens[p.current().Type] {
			return
		}
		p.advance()
	}
}

// spanFrom builds the span from start up to the last consumed token
func (p *Parser) spanFrom(start lexer.Token) ast.Span {
	end := p.previous()
	span := ast.Span{
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.Line,
		EndColumn: end.EndColumn(),
	}
	if end.Line < start.Line || (end.Line == start.Line && end.EndColumn() <= start.Column) {
		span.EndLine = start.Line
		span.EndColumn = start.EndColumn()
	}
	return span
}

// spanBetween covers two nodes, as for binary expressions
func spanBetween(first, last ast.Node) ast.Span {
	sl, sc := first.Pos()
	el, ec := last.End()
	return ast.Span{Line: sl, Column: sc, EndLine: el, EndColumn: ec}
}

// emptySpan is a zero-width span at tok, used for placeholder nodes
func emptySpan(tok lexer.Token) ast.Span {
	return ast.Span{Line: tok.Line, Column: tok.Column, EndLine: tok.Line, EndColumn: tok.Column}
}

func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of file"
	case lexer.IDENT, lexer.INT_LIT, lexer.LONG_LIT, lexer.FLOAT_LIT, lexer.DOUBLE_LIT, lexer.STRING_LIT:
		return tok.Type.String() + " " + tok.Literal
	case lexer.ILLEGAL:
		return "illegal token " + tok.Literal
	default:
		return "'" + tok.Type.String() + "'"
	}
}
