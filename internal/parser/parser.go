package parser

import (
	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/lexer"
)

// New creates a new parser
func New(source string) *Parser {
	l := lexer.New(source)
	tokens := l.Tokenize()
	return &Parser{
		tokens: tokens,
		pos:    0,
		diags:  diagnostic.New(),
	}
}

// ParseFile parses source and returns the tree with its syntax diagnostics
func ParseFile(source string) (*ast.File, *diagnostic.Diagnostics) {
	p := New(source)
	file := p.Parse()
	return file, p.Diagnostics()
}

// Diagnostics returns the parser's diagnostics
func (p *Parser) Diagnostics() *diagnostic.Diagnostics {
	return p.diags
}

// Parse parses the token stream into a File. It never fails: malformed
// input yields Bad* placeholder nodes and error diagnostics.
func (p *Parser) Parse() *ast.File {
	file := &ast.File{}
	file.Line, file.Column = 1, 1

	for !p.check(lexer.EOF) {
		startPos := p.pos
		if p.check(lexer.IMPORT) {
			file.Imports = append(file.Imports, p.parseImportDecl())
		} else if stmt := p.parseStatement(); stmt != nil {
			file.Stmts = append(file.Stmts, stmt)
		}
		if p.pos == startPos {
			p.advance() // ensure forward progress to avoid infinite loop
		}
	}

	eof := p.current()
	file.EndLine, file.EndColumn = eof.Line, eof.Column+1
	return file
}

// parseImportDecl parses: import a.b.C [as D];
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	tok := p.expect(lexer.IMPORT)
	decl := &ast.ImportDecl{}

	name := p.expect(lexer.IDENT)
	if name.Type == lexer.IDENT {
		decl.Path = append(decl.Path, name.Literal)
		for p.check(lexer.DOT) {
			p.advance()
			part := p.parseName()
			decl.Path = append(decl.Path, part.Name)
		}
	}
	if p.match(lexer.AS) {
		decl.Alias = p.parseIdent()
	}
	p.expect(lexer.SEMICOLON)
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseStatement parses a declaration or a statement
func (p *Parser) parseStatement() ast.Stmt {
	switch p.current().Type {
	case lexer.VAR, lexer.VAL, lexer.GLOBAL:
		return p.parseVarDecl()
	case lexer.STATIC:
		if p.peek().Type == lexer.FUNCTION {
			return p.parseFuncDecl()
		}
		return p.parseVarDecl()
	case lexer.FUNCTION:
		if p.peek().Type == lexer.IDENT {
			return p.parseFuncDecl()
		}
		return p.parseExprStmt()
	case lexer.DOLLAR:
		return p.parseExpandFuncDecl()
	case lexer.ZEN_CLASS:
		return p.parseClassDecl()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.FOR:
		return p.parseForeachStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.BREAK:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.BreakStmt{Span: p.spanFrom(tok)}
	case lexer.CONTINUE:
		tok := p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.ContinueStmt{Span: p.spanFrom(tok)}
	case lexer.SEMICOLON:
		p.advance()
		return nil
	case lexer.IMPORT:
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "imports must appear at the top level")
		p.parseImportDecl()
		return &ast.BadStmt{Span: p.spanFrom(tok)}
	case lexer.ZEN_CONSTRUCTOR, lexer.OPERATOR:
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "%s is only allowed inside a zenClass", describe(tok))
		p.advance()
		p.synchronize()
		return &ast.BadStmt{Span: p.spanFrom(tok)}
	default:
		return p.parseExprStmt()
	}
}

// parseVarDecl parses: (var|val|global|static) name [as type] [= expr];
func (p *Parser) parseVarDecl() *ast.VarDecl {
	tok := p.advance()
	decl := &ast.VarDecl{Kind: tok.Type}
	decl.Name = p.parseIdent()
	if p.match(lexer.AS) {
		decl.Type = p.parseType()
	}
	if p.match(lexer.ASSIGN) {
		decl.Value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseFuncDecl parses: [static] function name(params) [as type] (block | ;)
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	tok := p.current()
	decl := &ast.FuncDecl{}
	decl.Static = p.match(lexer.STATIC)
	p.expect(lexer.FUNCTION)
	decl.Name = p.parseIdent()
	decl.Params = p.parseParamList()
	if p.match(lexer.AS) {
		decl.Return = p.parseType()
	}
	decl.Body = p.parseOptionalBody()
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseExpandFuncDecl parses: $expand type$name(params) [as type] (block | ;)
func (p *Parser) parseExpandFuncDecl() ast.Stmt {
	tok := p.expect(lexer.DOLLAR)
	if !p.check(lexer.EXPAND) {
		p.diags.Errorf(tok.Line, tok.Column, "expected expand after '$', got %s", describe(p.current()))
		p.synchronize()
		return &ast.BadStmt{Span: p.spanFrom(tok)}
	}
	p.advance()

	decl := &ast.ExpandFuncDecl{}
	decl.Target = p.parseType()
	p.expect(lexer.DOLLAR)
	decl.Name = p.parseIdent()
	decl.Params = p.parseParamList()
	if p.match(lexer.AS) {
		decl.Return = p.parseType()
	}
	decl.Body = p.parseOptionalBody()
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseClassDecl parses: zenClass Name [extends A, B] { members }
func (p *Parser) parseClassDecl() *ast.ClassDecl {
	tok := p.expect(lexer.ZEN_CLASS)
	decl := &ast.ClassDecl{}

	// class names may shadow primitive type names to extend them
	if p.current().Type.IsPrimitiveType() {
		nameTok := p.advance()
		decl.Name = &ast.Ident{Span: p.spanFrom(nameTok), Name: nameTok.Literal}
	} else {
		decl.Name = p.parseIdent()
	}

	if p.match(lexer.EXTENDS) {
		decl.Supers = append(decl.Supers, p.parseNamedType())
		for p.match(lexer.COMMA) {
			decl.Supers = append(decl.Supers, p.parseNamedType())
		}
	}

	p.expect(lexer.LBRACE)
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		if member := p.parseClassMember(); member != nil {
			decl.Members = append(decl.Members, member)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	decl.Span = p.spanFrom(tok)
	return decl
}

func (p *Parser) parseClassMember() ast.Stmt {
	switch p.current().Type {
	case lexer.VAR, lexer.VAL:
		return p.parseVarDecl()
	case lexer.STATIC:
		if p.peek().Type == lexer.FUNCTION {
			return p.parseFuncDecl()
		}
		return p.parseVarDecl()
	case lexer.FUNCTION:
		return p.parseFuncDecl()
	case lexer.ZEN_CONSTRUCTOR:
		return p.parseConstructorDecl()
	case lexer.OPERATOR:
		return p.parseOperatorDecl()
	case lexer.SEMICOLON:
		p.advance()
		return nil
	default:
		tok := p.current()
		p.diags.Errorf(tok.Line, tok.Column, "unexpected %s in zenClass body", describe(tok))
		p.synchronize()
		return &ast.BadStmt{Span: p.spanFrom(tok)}
	}
}

// parseConstructorDecl parses: zenConstructor(params) (block | ;)
func (p *Parser) parseConstructorDecl() *ast.ConstructorDecl {
	tok := p.expect(lexer.ZEN_CONSTRUCTOR)
	decl := &ast.ConstructorDecl{}
	decl.Params = p.parseParamList()
	decl.Body = p.parseOptionalBody()
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseOperatorDecl parses: operator <literal>(params) [as type] (block | ;)
func (p *Parser) parseOperatorDecl() *ast.OperatorDecl {
	tok := p.expect(lexer.OPERATOR)
	decl := &ast.OperatorDecl{}
	decl.Literal = p.parseOperatorLiteral()
	decl.Params = p.parseParamList()
	if p.match(lexer.AS) {
		decl.Return = p.parseType()
	}
	decl.Body = p.parseOptionalBody()
	decl.Span = p.spanFrom(tok)
	return decl
}

// parseOperatorLiteral reads the operator symbol of an operator declaration,
// joining the multi-token forms `[]`, `[]=` and `.=`
func (p *Parser) parseOperatorLiteral() string {
	tok := p.current()
	switch tok.Type {
	case lexer.LBRACKET:
		p.advance()
		p.expect(lexer.RBRACKET)
		if p.match(lexer.ASSIGN) {
			return "[]="
		}
		return "[]"
	case lexer.DOT:
		p.advance()
		if p.match(lexer.ASSIGN) {
			return ".="
		}
		return "."
	case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT, lexer.TILDE,
		lexer.NOT, lexer.AMP, lexer.PIPE, lexer.CARET, lexer.EQ, lexer.NEQ,
		lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ, lexer.DOTDOT,
		lexer.HAS, lexer.IN, lexer.FOR, lexer.AS, lexer.TO:
		p.advance()
		return tok.Literal
	default:
		p.diags.Errorf(tok.Line, tok.Column, "expected operator symbol, got %s", describe(tok))
		return ""
	}
}

// parseParamList parses: ( [param {, param}] )
func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	p.expect(lexer.LPAREN)
	for !p.check(lexer.RPAREN) && !p.check(lexer.EOF) {
		params = append(params, p.parseParam())
		if !p.match(lexer.COMMA) {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

// parseParam parses: name [as type] [= default]
func (p *Parser) parseParam() *ast.Param {
	tok := p.current()
	param := &ast.Param{}
	param.Name = p.parseIdent()
	if p.match(lexer.AS) {
		param.Type = p.parseType()
	}
	if p.match(lexer.ASSIGN) {
		param.Default = p.parseTernary()
	}
	param.Span = p.spanFrom(tok)
	return param
}

// parseOptionalBody parses a block, or a lone semicolon for bodiless declarations
func (p *Parser) parseOptionalBody() *ast.Block {
	if p.check(lexer.LBRACE) {
		return p.parseBlock()
	}
	p.expect(lexer.SEMICOLON)
	return nil
}

// parseBlock parses: { statements }
func (p *Parser) parseBlock() *ast.Block {
	tok := p.expect(lexer.LBRACE)
	block := &ast.Block{}
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		startPos := p.pos
		if stmt := p.parseStatement(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
		if p.pos == startPos {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	block.Span = p.spanFrom(tok)
	return block
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	tok := p.expect(lexer.RETURN)
	stmt := &ast.ReturnStmt{}
	if !p.check(lexer.SEMICOLON) && !p.check(lexer.RBRACE) {
		stmt.Value = p.parseExpression()
	}
	p.expect(lexer.SEMICOLON)
	stmt.Span = p.spanFrom(tok)
	return stmt
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	tok := p.expect(lexer.IF)
	stmt := &ast.IfStmt{}
	stmt.Cond = p.parseExpression()
	stmt.Then = p.parseBranch()
	if p.match(lexer.ELSE) {
		stmt.Else = p.parseBranch()
	}
	stmt.Span = p.spanFrom(tok)
	return stmt
}

// parseBranch parses the body of an if/else, which need not be a block
func (p *Parser) parseBranch() ast.Stmt {
	tok := p.current()
	if stmt := p.parseStatement(); stmt != nil {
		return stmt
	}
	return &ast.Block{Span: p.spanFrom(tok)}
}

// parseForeachStmt parses: for a [, b ...] in expr { ... }
func (p *Parser) parseForeachStmt() *ast.ForeachStmt {
	tok := p.expect(lexer.FOR)
	stmt := &ast.ForeachStmt{}
	stmt.Vars = append(stmt.Vars, p.parseIdent())
	for p.match(lexer.COMMA) {
		stmt.Vars = append(stmt.Vars, p.parseIdent())
	}
	p.expect(lexer.IN)
	stmt.Iter = p.parseExpression()
	stmt.Body = p.parseBlock()
	stmt.Span = p.spanFrom(tok)
	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	tok := p.expect(lexer.WHILE)
	stmt := &ast.WhileStmt{}
	stmt.Cond = p.parseExpression()
	stmt.Body = p.parseBlock()
	stmt.Span = p.spanFrom(tok)
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	tok := p.current()
	expr := p.parseExpression()
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{X: expr, Span: p.spanFrom(tok)}
}

// parseIdent parses a plain identifier. A missing identifier yields an
// empty-span placeholder named "<error>".
func (p *Parser) parseIdent() *ast.Ident {
	tok := p.current()
	if tok.Type != lexer.IDENT {
		p.diags.Errorf(tok.Line, tok.Column, "expected identifier, got %s", describe(tok))
		return &ast.Ident{Span: emptySpan(tok), Name: "<error>"}
	}
	p.advance()
	return &ast.Ident{Span: p.spanFrom(tok), Name: tok.Literal}
}

// parseName parses a name after a dot. Keywords are accepted when they sit
// on the dot's line and cannot start a statement, so `list.` followed by a
// new declaration still parses as an incomplete member access.
func (p *Parser) parseName() *ast.Ident {
	tok := p.current()
	keyword := tok.Type.IsKeyword() && !syncTokens[tok.Type] && tok.Line == p.previous().Line
	if tok.Type == lexer.IDENT || keyword {
		p.advance()
		return &ast.Ident{Span: p.spanFrom(tok), Name: tok.Literal}
	}
	p.diags.Errorf(tok.Line, tok.Column, "expected member name, got %s", describe(tok))
	return &ast.Ident{Span: emptySpan(tok), Name: ""}
}
