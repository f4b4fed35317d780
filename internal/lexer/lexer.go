package lexer

import "strings"

// Lexer scans ZenScript source code and produces tokens
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int  // current line number
	column       int  // current column number
}

// New creates a new Lexer instance
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII code for NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// skipWhitespace skips whitespace and comments
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.line++
			l.column = 0
			l.readChar()
		case l.ch == '#':
			l.skipSingleLineComment()
		case l.ch == '/' && l.peekChar() == '/':
			l.skipSingleLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar() // consume '/'
			l.readChar() // consume '*'
			l.skipMultiLineComment()
		default:
			return
		}
	}
}

// skipSingleLineComment skips a single-line comment (// or #)
func (l *Lexer) skipSingleLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

// skipMultiLineComment skips a multi-line comment (/* */)
func (l *Lexer) skipMultiLineComment() {
	// Already read '/*', now skip until '*/'
	for {
		if l.ch == 0 {
			break // End of file
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar() // consume '*'
			l.readChar() // consume '/'
			break
		}
		l.readChar()
	}
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a numeric literal, including hex and the l/f/d suffixes
func (l *Lexer) readNumber() (string, TokenType) {
	position := l.position
	tokenType := INT_LIT

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) {
			l.readChar()
		}
		if l.ch == 'l' || l.ch == 'L' {
			tokenType = LONG_LIT
			l.readChar()
		}
		return l.input[position:l.position], tokenType
	}

	for isDigit(l.ch) {
		l.readChar()
	}

	// '1..5' is a range, not a double
	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = DOUBLE_LIT
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '-' || next == '+' {
			tokenType = DOUBLE_LIT
			l.readChar()
			if l.ch == '-' || l.ch == '+' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	switch l.ch {
	case 'l', 'L':
		if tokenType == INT_LIT {
			tokenType = LONG_LIT
			l.readChar()
		}
	case 'f', 'F':
		tokenType = FLOAT_LIT
		l.readChar()
	case 'd', 'D':
		tokenType = DOUBLE_LIT
		l.readChar()
	}

	return l.input[position:l.position], tokenType
}

// readString reads a string literal delimited by quote
func (l *Lexer) readString(quote byte) (string, bool) {
	// Already consumed opening quote
	position := l.position

	for {
		l.readChar()
		if l.ch == 0 || l.ch == '\n' {
			return "", false
		}
		if l.ch == quote {
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 || l.ch == '\n' {
				return "", false
			}
		}
	}

	// Store the raw literal including quotes for reference
	return l.input[position : l.position+1], true
}

// twoCharOps maps two-character operators to token types
var twoCharOps = map[string]TokenType{
	"==": EQ,
	"!=": NEQ,
	"<=": LEQ,
	">=": GEQ,
	"&&": AND_AND,
	"||": OR_OR,
	"+=": PLUS_EQ,
	"-=": MINUS_EQ,
	"*=": STAR_EQ,
	"/=": SLASH_EQ,
	"%=": PERCENT_EQ,
	"~=": TILDE_EQ,
	"&=": AMP_EQ,
	"|=": PIPE_EQ,
	"^=": CARET_EQ,
	"..": DOTDOT,
}

// oneCharOps maps single-character operators and delimiters to token types
var oneCharOps = map[byte]TokenType{
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'%': PERCENT,
	'~': TILDE,
	'!': NOT,
	'&': AMP,
	'|': PIPE,
	'^': CARET,
	'<': LT,
	'>': GT,
	'=': ASSIGN,
	'?': QUESTION,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
	':': COLON,
	';': SEMICOLON,
	'.': DOT,
	'$': DOLLAR,
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	line, column := l.line, l.column

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Literal: "", Line: line, Column: column}
	case l.ch == '"' || l.ch == '\'':
		str, ok := l.readString(l.ch)
		if !ok {
			return Token{Type: ILLEGAL, Literal: "unterminated string", Line: line, Column: column}
		}
		l.readChar()
		return Token{Type: STRING_LIT, Literal: str, Line: line, Column: column}
	case isLetter(l.ch):
		ident := l.readIdentifier()
		return Token{Type: LookupIdent(ident), Literal: ident, Line: line, Column: column}
	case isDigit(l.ch):
		literal, tokenType := l.readNumber()
		return Token{Type: tokenType, Literal: literal, Line: line, Column: column}
	}

	if l.peekChar() != 0 {
		pair := string([]byte{l.ch, l.peekChar()})
		if tokenType, ok := twoCharOps[pair]; ok {
			l.readChar()
			l.readChar()
			return Token{Type: tokenType, Literal: pair, Line: line, Column: column}
		}
	}

	ch := l.ch
	l.readChar()
	if tokenType, ok := oneCharOps[ch]; ok {
		return Token{Type: tokenType, Literal: string(ch), Line: line, Column: column}
	}
	return Token{Type: ILLEGAL, Literal: string(ch), Line: line, Column: column}
}

// Tokenize returns all tokens from the input
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// Unquote strips the quotes of a string literal and resolves escapes
func Unquote(literal string) string {
	if len(literal) < 2 {
		return literal
	}
	body := literal[1 : len(literal)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

// Helper functions

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
