package parser

import (
	"strings"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/lexer"
)

// Precedence levels for binary operators, lowest first
const (
	precNone = iota
	precOrOr
	precAndAnd
	precBitOr
	precXor
	precBitAnd
	precCompare
	precRange
	precAdditive
	precMulti
)

func tokenPrecedence(tt lexer.TokenType) int {
	switch tt {
	case lexer.OR_OR:
		return precOrOr
	case lexer.AND_AND:
		return precAndAnd
	case lexer.PIPE:
		return precBitOr
	case lexer.CARET:
		return precXor
	case lexer.AMP:
		return precBitAnd
	case lexer.EQ, lexer.NEQ, lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ,
		lexer.INSTANCEOF, lexer.HAS, lexer.IN:
		return precCompare
	case lexer.DOTDOT, lexer.TO:
		return precRange
	case lexer.PLUS, lexer.MINUS, lexer.TILDE:
		return precAdditive
	case lexer.STAR, lexer.SLASH, lexer.PERCENT:
		return precMulti
	default:
		return precNone
	}
}

// parseExpression parses a full expression including assignments
func (p *Parser) parseExpression() ast.Expr {
	left := p.parseTernary()
	if p.current().Type.IsAssignment() {
		op := p.advance()
		right := p.parseExpression()
		return &ast.AssignExpr{
			Op:    op.Type,
			Left:  left,
			Right: right,
			Span:  spanBetween(left, right),
		}
	}
	return left
}

// parseTernary parses: cond ? a : b
func (p *Parser) parseTernary() ast.Expr {
	cond := p.parsePrecedence(precOrOr)
	if !p.match(lexer.QUESTION) {
		return cond
	}
	then := p.parseTernary()
	p.expect(lexer.COLON)
	els := p.parseTernary()
	return &ast.TernaryExpr{
		Cond: cond,
		Then: then,
		Else: els,
		Span: spanBetween(cond, els),
	}
}

func (p *Parser) parsePrecedence(minPrec int) ast.Expr {
	left := p.parseUnary()

	for {
		prec := tokenPrecedence(p.current().Type)
		if prec == precNone || prec < minPrec {
			break
		}

		op := p.advance()

		if op.Type == lexer.INSTANCEOF {
			typ := p.parseTypeAtom()
			left = &ast.InstanceOfExpr{X: left, Type: typ, Span: spanBetween(left, typ)}
			continue
		}

		right := p.parsePrecedence(prec + 1)
		if op.Type == lexer.DOTDOT || op.Type == lexer.TO {
			left = &ast.RangeExpr{From: left, To: right, Span: spanBetween(left, right)}
			continue
		}
		left = &ast.BinaryExpr{
			Left:  left,
			Op:    op.Type,
			Right: right,
			Span:  spanBetween(left, right),
		}
	}

	return left
}

func (p *Parser) parseUnary() ast.Expr {
	switch p.current().Type {
	case lexer.NOT, lexer.MINUS, lexer.PLUS:
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{
			Op:   op.Type,
			X:    operand,
			Span: p.spanFrom(op),
		}
	}
	return p.parseCast()
}

// parseCast parses: expr as type. Casts bind tighter than any binary operator.
func (p *Parser) parseCast() ast.Expr {
	expr := p.parsePostfix()
	for p.check(lexer.AS) {
		p.advance()
		typ := p.parseTypeAtom()
		expr = &ast.CastExpr{X: expr, Type: typ, Span: spanBetween(expr, typ)}
	}
	return expr
}

func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	start := expr

	for {
		switch {
		case p.check(lexer.DOT):
			p.advance()
			name := p.parseName()
			member := &ast.MemberExpr{X: expr, Name: name}
			member.Span = spanBetween(start, name)
			if name.Name == "" {
				// incomplete access: cover the dot so completion can find it
				dot := p.previous()
				member.EndLine, member.EndColumn = dot.Line, dot.EndColumn()
			}
			expr = member
		case p.check(lexer.LBRACKET):
			p.advance()
			index := p.parseExpression()
			p.expect(lexer.RBRACKET)
			expr = &ast.IndexExpr{X: expr, Index: index, Span: p.spanFromNode(start)}
		case p.check(lexer.LPAREN):
			p.advance()
			args := p.parseArgList()
			p.expect(lexer.RPAREN)
			expr = &ast.CallExpr{Fun: expr, Args: args, Span: p.spanFromNode(start)}
		default:
			return expr
		}
	}
}

// spanFromNode builds the span from the start of node to the last consumed token
func (p *Parser) spanFromNode(node ast.Node) ast.Span {
	line, col := node.Pos()
	return p.spanFrom(lexer.Token{Line: line, Column: col})
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.current()

	switch tok.Type {
	case lexer.INT_LIT, lexer.LONG_LIT, lexer.FLOAT_LIT, lexer.DOUBLE_LIT,
		lexer.STRING_LIT, lexer.TRUE, lexer.FALSE, lexer.NULL:
		p.advance()
		return &ast.BasicLit{Kind: tok.Type, Value: tok.Literal, Span: p.spanFrom(tok)}
	case lexer.IDENT:
		p.advance()
		return &ast.Ident{Name: tok.Literal, Span: p.spanFrom(tok)}
	case lexer.THIS:
		p.advance()
		return &ast.ThisExpr{Span: p.spanFrom(tok)}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.ParenExpr{X: inner, Span: p.spanFrom(tok)}
	case lexer.LBRACKET:
		return p.parseArrayLit()
	case lexer.LBRACE:
		return p.parseMapLit()
	case lexer.FUNCTION:
		return p.parseFuncLit()
	case lexer.LT:
		return p.parseBracketHandler()
	default:
		p.diags.Errorf(tok.Line, tok.Column, "unexpected %s in expression", describe(tok))
		if !syncTokens[tok.Type] {
			p.advance()
		}
		return &ast.BadExpr{Span: p.spanFrom(tok)}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.check(lexer.RPAREN) {
		return args
	}
	args = append(args, p.parseExpression())
	for p.match(lexer.COMMA) {
		args = append(args, p.parseExpression())
	}
	return args
}

func (p *Parser) parseArrayLit() *ast.ArrayLit {
	tok := p.expect(lexer.LBRACKET)
	lit := &ast.ArrayLit{}

	// Handle empty array: []
	if !p.check(lexer.RBRACKET) {
		lit.Elems = append(lit.Elems, p.parseExpression())
		for p.match(lexer.COMMA) {
			// Allow trailing comma
			if p.check(lexer.RBRACKET) {
				break
			}
			lit.Elems = append(lit.Elems, p.parseExpression())
		}
	}
	p.expect(lexer.RBRACKET)
	lit.Span = p.spanFrom(tok)
	return lit
}

// parseMapLit parses: { key: value, ... }
func (p *Parser) parseMapLit() *ast.MapLit {
	tok := p.expect(lexer.LBRACE)
	lit := &ast.MapLit{}

	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		key := p.parseTernary()
		p.expect(lexer.COLON)
		value := p.parseTernary()
		lit.Entries = append(lit.Entries, &ast.MapEntry{Key: key, Value: value, Span: spanBetween(key, value)})
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RBRACE)
	lit.Span = p.spanFrom(tok)
	return lit
}

// parseFuncLit parses: function(params) [as type] { ... }
func (p *Parser) parseFuncLit() *ast.FuncLit {
	tok := p.expect(lexer.FUNCTION)
	lit := &ast.FuncLit{}
	lit.Params = p.parseParamList()
	if p.match(lexer.AS) {
		lit.Return = p.parseType()
	}
	lit.Body = p.parseBlock()
	lit.Span = p.spanFrom(tok)
	return lit
}

// parseBracketHandler parses: <a:b:c>, kept as opaque raw text
func (p *Parser) parseBracketHandler() *ast.BracketHandler {
	tok := p.expect(lexer.LT)
	var raw strings.Builder
	for !p.check(lexer.GT) && !p.check(lexer.EOF) && !p.check(lexer.SEMICOLON) {
		raw.WriteString(p.advance().Literal)
	}
	p.expect(lexer.GT)
	return &ast.BracketHandler{Raw: raw.String(), Span: p.spanFrom(tok)}
}
