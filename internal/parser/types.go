package parser

import (
	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/lexer"
)

// parseType parses a type, including a top-level intersection `A & B`
func (p *Parser) parseType() ast.TypeExpr {
	first := p.parseTypeAtom()
	if !p.check(lexer.AMP) {
		return first
	}
	types := []ast.TypeExpr{first}
	for p.match(lexer.AMP) {
		types = append(types, p.parseTypeAtom())
	}
	return &ast.IntersectionTypeExpr{
		Types: types,
		Span:  spanBetween(first, types[len(types)-1]),
	}
}

// parseTypeAtom parses a single type followed by array/map suffixes
func (p *Parser) parseTypeAtom() ast.TypeExpr {
	tok := p.current()
	var typ ast.TypeExpr

	switch {
	case tok.Type.IsPrimitiveType():
		p.advance()
		typ = &ast.PrimitiveType{Kind: tok.Type, Span: p.spanFrom(tok)}
	case tok.Type == lexer.IDENT:
		typ = p.parseNamedType()
	case tok.Type == lexer.LBRACKET:
		p.advance()
		elem := p.parseType()
		p.expect(lexer.RBRACKET)
		typ = &ast.ListTypeExpr{Elem: elem, Span: p.spanFrom(tok)}
	case tok.Type == lexer.FUNCTION:
		p.advance()
		fn := &ast.FuncTypeExpr{}
		p.expect(lexer.LPAREN)
		for !p.check(lexer.RPAREN) && !p.check(lexer.EOF) {
			fn.Params = append(fn.Params, p.parseType())
			if !p.match(lexer.COMMA) {
				break
			}
		}
		p.expect(lexer.RPAREN)
		fn.Return = p.parseTypeAtom()
		fn.Span = p.spanFrom(tok)
		typ = fn
	default:
		p.diags.Errorf(tok.Line, tok.Column, "expected type, got %s", describe(tok))
		if !syncTokens[tok.Type] {
			p.advance()
		}
		return &ast.BadType{Span: p.spanFrom(tok)}
	}

	// T[] is an array, V[K] is a map
	for p.check(lexer.LBRACKET) {
		p.advance()
		if p.match(lexer.RBRACKET) {
			typ = &ast.ArrayTypeExpr{Elem: typ, Span: p.spanFrom(tok)}
			continue
		}
		key := p.parseType()
		p.expect(lexer.RBRACKET)
		typ = &ast.MapTypeExpr{Key: key, Value: typ, Span: p.spanFrom(tok)}
	}
	return typ
}

// parseNamedType parses a qualified name: a.b.C
func (p *Parser) parseNamedType() *ast.NamedType {
	tok := p.current()
	named := &ast.NamedType{}
	first := p.expect(lexer.IDENT)
	if first.Type != lexer.IDENT {
		named.Span = emptySpan(tok)
		return named
	}
	named.Parts = append(named.Parts, first.Literal)
	for p.check(lexer.DOT) && p.peek().Type == lexer.IDENT {
		p.advance()
		named.Parts = append(named.Parts, p.advance().Literal)
	}
	named.Span = p.spanFrom(tok)
	return named
}
