package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT      // x, y, myVariable
	INT_LIT    // 123, 0x1F
	LONG_LIT   // 123l
	FLOAT_LIT  // 1.5f
	DOUBLE_LIT // 1.5, 1.5d
	STRING_LIT // "hello", 'hello'

	// Keywords
	IMPORT
	AS
	VAR
	VAL
	GLOBAL
	STATIC
	FUNCTION
	ZEN_CLASS
	ZEN_CONSTRUCTOR
	EXTENDS
	OPERATOR
	EXPAND
	RETURN
	IF
	ELSE
	FOR
	IN
	WHILE
	BREAK
	CONTINUE
	THIS
	INSTANCEOF
	HAS
	TO
	TRUE
	FALSE
	NULL

	// Type keywords
	ANY
	BYTE
	SHORT
	INT
	LONG
	FLOAT
	DOUBLE
	BOOL
	VOID
	STRING

	// Operators
	PLUS       // +
	MINUS      // -
	STAR       // *
	SLASH      // /
	PERCENT    // %
	TILDE      // ~
	NOT        // !
	AMP        // &
	PIPE       // |
	CARET      // ^
	AND_AND    // &&
	OR_OR      // ||
	EQ         // ==
	NEQ        // !=
	LT         // <
	GT         // >
	LEQ        // <=
	GEQ        // >=
	ASSIGN     // =
	PLUS_EQ    // +=
	MINUS_EQ   // -=
	STAR_EQ    // *=
	SLASH_EQ   // /=
	PERCENT_EQ // %=
	TILDE_EQ   // ~=
	AMP_EQ     // &=
	PIPE_EQ    // |=
	CARET_EQ   // ^=
	QUESTION   // ?

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	DOT       // .
	DOTDOT    // ..
	DOLLAR    // $
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// EndColumn returns the column just past the last character of the token.
// Tokens never span lines except unterminated block comments, which are not tokens.
func (t Token) EndColumn() int {
	return t.Column + len(t.Literal)
}

var tokenNames = map[TokenType]string{
	ILLEGAL:         "ILLEGAL",
	EOF:             "EOF",
	IDENT:           "IDENT",
	INT_LIT:         "INT_LIT",
	LONG_LIT:        "LONG_LIT",
	FLOAT_LIT:       "FLOAT_LIT",
	DOUBLE_LIT:      "DOUBLE_LIT",
	STRING_LIT:      "STRING_LIT",
	IMPORT:          "import",
	AS:              "as",
	VAR:             "var",
	VAL:             "val",
	GLOBAL:          "global",
	STATIC:          "static",
	FUNCTION:        "function",
	ZEN_CLASS:       "zenClass",
	ZEN_CONSTRUCTOR: "zenConstructor",
	EXTENDS:         "extends",
	OPERATOR:        "operator",
	EXPAND:          "expand",
	RETURN:          "return",
	IF:              "if",
	ELSE:            "else",
	FOR:             "for",
	IN:              "in",
	WHILE:           "while",
	BREAK:           "break",
	CONTINUE:        "continue",
	THIS:            "this",
	INSTANCEOF:      "instanceof",
	HAS:             "has",
	TO:              "to",
	TRUE:            "true",
	FALSE:           "false",
	NULL:            "null",
	ANY:             "any",
	BYTE:            "byte",
	SHORT:           "short",
	INT:             "int",
	LONG:            "long",
	FLOAT:           "float",
	DOUBLE:          "double",
	BOOL:            "bool",
	VOID:            "void",
	STRING:          "string",
	PLUS:            "+",
	MINUS:           "-",
	STAR:            "*",
	SLASH:           "/",
	PERCENT:         "%",
	TILDE:           "~",
	NOT:             "!",
	AMP:             "&",
	PIPE:            "|",
	CARET:           "^",
	AND_AND:         "&&",
	OR_OR:           "||",
	EQ:              "==",
	NEQ:             "!=",
	LT:              "<",
	GT:              ">",
	LEQ:             "<=",
	GEQ:             ">=",
	ASSIGN:          "=",
	PLUS_EQ:         "+=",
	MINUS_EQ:        "-=",
	STAR_EQ:         "*=",
	SLASH_EQ:        "/=",
	PERCENT_EQ:      "%=",
	TILDE_EQ:        "~=",
	AMP_EQ:          "&=",
	PIPE_EQ:         "|=",
	CARET_EQ:        "^=",
	QUESTION:        "?",
	LPAREN:          "(",
	RPAREN:          ")",
	LBRACE:          "{",
	RBRACE:          "}",
	LBRACKET:        "[",
	RBRACKET:        "]",
	COMMA:           ",",
	COLON:           ":",
	SEMICOLON:       ";",
	DOT:             ".",
	DOTDOT:          "..",
	DOLLAR:          "$",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// IsPrimitiveType reports whether the token is one of the builtin type keywords
func (t TokenType) IsPrimitiveType() bool {
	return t >= ANY && t <= STRING
}

// IsAssignment reports whether the token is '=' or a compound assignment
func (t TokenType) IsAssignment() bool {
	return t == ASSIGN || (t >= PLUS_EQ && t <= CARET_EQ)
}

// IsKeyword reports whether the token is a reserved word
func (t TokenType) IsKeyword() bool {
	return t >= IMPORT && t <= STRING
}

// keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"import":         IMPORT,
	"as":             AS,
	"var":            VAR,
	"val":            VAL,
	"global":         GLOBAL,
	"static":         STATIC,
	"function":       FUNCTION,
	"zenClass":       ZEN_CLASS,
	"zenConstructor": ZEN_CONSTRUCTOR,
	"extends":        EXTENDS,
	"operator":       OPERATOR,
	"expand":         EXPAND,
	"return":         RETURN,
	"if":             IF,
	"else":           ELSE,
	"for":            FOR,
	"in":             IN,
	"while":          WHILE,
	"break":          BREAK,
	"continue":       CONTINUE,
	"this":           THIS,
	"instanceof":     INSTANCEOF,
	"has":            HAS,
	"to":             TO,
	"true":           TRUE,
	"false":          FALSE,
	"null":           NULL,
	"any":            ANY,
	"byte":           BYTE,
	"short":          SHORT,
	"int":            INT,
	"long":           LONG,
	"float":          FLOAT,
	"double":         DOUBLE,
	"bool":           BOOL,
	"void":           VOID,
	"string":         STRING,
}

// LookupIdent checks if an identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
