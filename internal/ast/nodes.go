package ast

import "github.com/lhaig/zentype/internal/lexer"

// Node is the base interface for all AST nodes
type Node interface {
	Pos() (line, col int)
	End() (line, col int)
}

// Stmt nodes: declarations and statements
type Stmt interface {
	Node
	stmtNode()
}

// Expr nodes
type Expr interface {
	Node
	exprNode()
}

// TypeExpr nodes: type literals written in source
type TypeExpr interface {
	Node
	typeNode()
}

// Span is the source range of a node. The end position is exclusive.
type Span struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

func (s Span) Pos() (int, int) { return s.Line, s.Column }
func (s Span) End() (int, int) { return s.EndLine, s.EndColumn }

// Contains reports whether the position lies inside the span
func (s Span) Contains(line, col int) bool {
	if line < s.Line || (line == s.Line && col < s.Column) {
		return false
	}
	if line > s.EndLine || (line == s.EndLine && col >= s.EndColumn) {
		return false
	}
	return true
}

// File represents a parsed script unit
type File struct {
	Span
	Imports []*ImportDecl
	Stmts   []Stmt
}

// ImportDecl represents `import a.b.C as D;`
type ImportDecl struct {
	Span
	Path  []string
	Alias *Ident // nil when no alias is given
}

func (i *ImportDecl) stmtNode() {}

// Name returns the name the import binds in the file scope
func (i *ImportDecl) Name() string {
	if i.Alias != nil {
		return i.Alias.Name
	}
	if len(i.Path) == 0 {
		return ""
	}
	return i.Path[len(i.Path)-1]
}

// VarDecl represents var/val/global/static declarations
type VarDecl struct {
	Span
	Kind  lexer.TokenType // VAR, VAL, GLOBAL or STATIC
	Name  *Ident
	Type  TypeExpr // nil when not annotated
	Value Expr     // nil when not initialized
}

func (v *VarDecl) stmtNode() {}

// Param represents a function, constructor, operator or lambda parameter
type Param struct {
	Span
	Name    *Ident
	Type    TypeExpr // nil when not annotated
	Default Expr
}

// FuncDecl represents a named function declaration
type FuncDecl struct {
	Span
	Static bool
	Name   *Ident
	Params []*Param
	Return TypeExpr // nil when not annotated
	Body   *Block   // nil for declarations without a body
}

func (f *FuncDecl) stmtNode() {}

// ExpandFuncDecl represents `$expand Type$name(params) as T { ... }`
type ExpandFuncDecl struct {
	Span
	Target TypeExpr
	Name   *Ident
	Params []*Param
	Return TypeExpr
	Body   *Block
}

func (e *ExpandFuncDecl) stmtNode() {}

// ClassDecl represents a zenClass declaration
type ClassDecl struct {
	Span
	Name    *Ident
	Supers  []*NamedType
	Members []Stmt // *VarDecl, *FuncDecl, *ConstructorDecl, *OperatorDecl
}

func (c *ClassDecl) stmtNode() {}

// ConstructorDecl represents a zenConstructor declaration
type ConstructorDecl struct {
	Span
	Params []*Param
	Body   *Block
}

func (c *ConstructorDecl) stmtNode() {}

// OperatorDecl represents `operator + (other as T) as R { ... }`
type OperatorDecl struct {
	Span
	Literal string
	Params  []*Param
	Return  TypeExpr
	Body    *Block
}

func (o *OperatorDecl) stmtNode() {}

// Block represents a braced statement list
type Block struct {
	Span
	Stmts []Stmt
}

func (b *Block) stmtNode() {}

// ExprStmt wraps an expression used as a statement
type ExprStmt struct {
	Span
	X Expr
}

func (e *ExprStmt) stmtNode() {}

// ReturnStmt represents a return statement
type ReturnStmt struct {
	Span
	Value Expr // nil for bare return
}

func (r *ReturnStmt) stmtNode() {}

// IfStmt represents an if/else statement
type IfStmt struct {
	Span
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

func (i *IfStmt) stmtNode() {}

// ForeachStmt represents `for a, b in expr { ... }`
type ForeachStmt struct {
	Span
	Vars []*Ident
	Iter Expr
	Body *Block
}

func (f *ForeachStmt) stmtNode() {}

// WhileStmt represents a while loop
type WhileStmt struct {
	Span
	Cond Expr
	Body *Block
}

func (w *WhileStmt) stmtNode() {}

// BreakStmt represents a break statement
type BreakStmt struct {
	Span
}

func (b *BreakStmt) stmtNode() {}

// ContinueStmt represents a continue statement
type ContinueStmt struct {
	Span
}

func (c *ContinueStmt) stmtNode() {}

// BadStmt is a placeholder for a statement that failed to parse
type BadStmt struct {
	Span
}

func (b *BadStmt) stmtNode() {}

// Ident is a simple name, either referenced or declared
type Ident struct {
	Span
	Name string
}

func (i *Ident) exprNode() {}

// BasicLit represents number, string, bool and null literals
type BasicLit struct {
	Span
	Kind  lexer.TokenType // INT_LIT, LONG_LIT, FLOAT_LIT, DOUBLE_LIT, STRING_LIT, TRUE, FALSE, NULL
	Value string
}

func (b *BasicLit) exprNode() {}

// ThisExpr represents `this`
type ThisExpr struct {
	Span
}

func (t *ThisExpr) exprNode() {}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Span
	X Expr
}

func (p *ParenExpr) exprNode() {}

// ArrayLit represents `[a, b, c]`
type ArrayLit struct {
	Span
	Elems []Expr
}

func (a *ArrayLit) exprNode() {}

// MapLit represents `{k: v, ...}`
type MapLit struct {
	Span
	Entries []*MapEntry
}

func (m *MapLit) exprNode() {}

// MapEntry is one `key: value` pair of a map literal
type MapEntry struct {
	Span
	Key   Expr
	Value Expr
}

// BracketHandler represents `<minecraft:stone>` style literals
type BracketHandler struct {
	Span
	Raw string
}

func (b *BracketHandler) exprNode() {}

// FuncLit represents an anonymous function (lambda)
type FuncLit struct {
	Span
	Params []*Param
	Return TypeExpr
	Body   *Block
}

func (f *FuncLit) exprNode() {}

// MemberExpr represents `x.name`
type MemberExpr struct {
	Span
	X    Expr
	Name *Ident
}

func (m *MemberExpr) exprNode() {}

// IndexExpr represents `x[index]`
type IndexExpr struct {
	Span
	X     Expr
	Index Expr
}

func (i *IndexExpr) exprNode() {}

// CallExpr represents `fun(args)`
type CallExpr struct {
	Span
	Fun  Expr
	Args []Expr
}

func (c *CallExpr) exprNode() {}

// UnaryExpr represents `!x`, `-x` and `+x`
type UnaryExpr struct {
	Span
	Op lexer.TokenType
	X  Expr
}

func (u *UnaryExpr) exprNode() {}

// BinaryExpr represents arithmetic, concat, logic, compare, `has` and `in`
type BinaryExpr struct {
	Span
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (b *BinaryExpr) exprNode() {}

// RangeExpr represents `a .. b` and `a to b`
type RangeExpr struct {
	Span
	From Expr
	To   Expr
}

func (r *RangeExpr) exprNode() {}

// InstanceOfExpr represents `x instanceof T`
type InstanceOfExpr struct {
	Span
	X    Expr
	Type TypeExpr
}

func (i *InstanceOfExpr) exprNode() {}

// CastExpr represents `x as T`
type CastExpr struct {
	Span
	X    Expr
	Type TypeExpr
}

func (c *CastExpr) exprNode() {}

// TernaryExpr represents `cond ? a : b`
type TernaryExpr struct {
	Span
	Cond Expr
	Then Expr
	Else Expr
}

func (t *TernaryExpr) exprNode() {}

// AssignExpr represents `=` and compound assignments
type AssignExpr struct {
	Span
	Op    lexer.TokenType
	Left  Expr
	Right Expr
}

func (a *AssignExpr) exprNode() {}

// BadExpr is a placeholder for an expression that failed to parse
type BadExpr struct {
	Span
}

func (b *BadExpr) exprNode() {}

// PrimitiveType represents a builtin type keyword
type PrimitiveType struct {
	Span
	Kind lexer.TokenType
}

func (p *PrimitiveType) typeNode() {}

// NamedType represents a possibly qualified class name
type NamedType struct {
	Span
	Parts []string
}

func (n *NamedType) typeNode() {}

// ArrayTypeExpr represents `T[]`
type ArrayTypeExpr struct {
	Span
	Elem TypeExpr
}

func (a *ArrayTypeExpr) typeNode() {}

// ListTypeExpr represents `[T]`
type ListTypeExpr struct {
	Span
	Elem TypeExpr
}

func (l *ListTypeExpr) typeNode() {}

// MapTypeExpr represents `V[K]`
type MapTypeExpr struct {
	Span
	Key   TypeExpr
	Value TypeExpr
}

func (m *MapTypeExpr) typeNode() {}

// FuncTypeExpr represents `function(A,B)R`
type FuncTypeExpr struct {
	Span
	Params []TypeExpr
	Return TypeExpr
}

func (f *FuncTypeExpr) typeNode() {}

// IntersectionTypeExpr represents `A & B`
type IntersectionTypeExpr struct {
	Span
	Types []TypeExpr
}

func (i *IntersectionTypeExpr) typeNode() {}

// BadType is a placeholder for a type that failed to parse
type BadType struct {
	Span
}

func (b *BadType) typeNode() {}
