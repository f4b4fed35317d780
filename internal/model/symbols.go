package model

import (
	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/lexer"
	"github.com/lhaig/zentype/internal/types"
)

// Declared is a symbol created by the binder for a declaration node
type Declared interface {
	types.Symbol
	Decl() ast.Node
	Unit() *Unit
}

// declSymbol is the common part of every declared symbol. Its type is
// resolved on each call through the unit's environment, so Type must only
// be called while a read session is open.
type declSymbol struct {
	name string
	kind types.SymbolKind
	mods types.Modifier
	decl ast.Node
	unit *Unit
}

func (s *declSymbol) Name() string              { return s.name }
func (s *declSymbol) Kind() types.SymbolKind    { return s.kind }
func (s *declSymbol) Modifiers() types.Modifier { return s.mods }
func (s *declSymbol) Decl() ast.Node            { return s.decl }
func (s *declSymbol) Unit() *Unit               { return s.unit }

func (s *declSymbol) Type() types.Type {
	return newResolver(s.unit.env).typeOf(s.unit, s.decl)
}

// execSymbol is a function, constructor, operator or expand function
type execSymbol struct {
	declSymbol
	params []*ast.Param
}

// RequiredParams counts the parameters before the trailing run of
// parameters with default values
func (s *execSymbol) RequiredParams() int {
	required := len(s.params)
	for required > 0 && s.params[required-1] != nil && s.params[required-1].Default != nil {
		required--
	}
	return required
}

type operatorSymbol struct {
	execSymbol
	op types.Operator
}

func (s *operatorSymbol) Operator() types.Operator { return s.op }

type expandSymbol struct {
	execSymbol
	target ast.TypeExpr
}

// Target resolves the type the expand function extends
func (s *expandSymbol) Target() types.Type {
	return newResolver(s.unit.env).typeOf(s.unit, s.target)
}

// receiverSymbol is `this` inside an expand function
type receiverSymbol struct {
	declSymbol
	target ast.TypeExpr
}

func (s *receiverSymbol) Type() types.Type {
	return newResolver(s.unit.env).typeOf(s.unit, s.target)
}

// classSymbol carries the class type created at bind time
type classSymbol struct {
	declSymbol
	typ  *types.ClassType
	info *classInfo
}

func (s *classSymbol) Type() types.Type { return s.typ }

// classInfo implements types.ClassDecl for a zenClass of a unit
type classInfo struct {
	unit    *Unit
	decl    *ast.ClassDecl
	members []types.Symbol
	ctors   []types.Symbol
}

func (c *classInfo) Members() []types.Symbol { return c.members }

func (c *classInfo) Supers() []*types.ClassType {
	r := newResolver(c.unit.env)
	var supers []*types.ClassType
	for _, named := range c.decl.Supers {
		if named == nil {
			continue
		}
		if ct, ok := r.typeOf(c.unit, named).(*types.ClassType); ok {
			supers = append(supers, ct)
		}
	}
	return supers
}

// Constructors returns the zenConstructor symbols of a declared class type,
// or nil for classes without a declaration in the workspace
func Constructors(ct *types.ClassType) []types.Symbol {
	if info, ok := ct.Decl.(*classInfo); ok {
		return info.ctors
	}
	return nil
}

// DeclOf returns the declaration node and unit of a declared symbol
func DeclOf(sym types.Symbol) (ast.Node, *Unit, bool) {
	d, ok := sym.(Declared)
	if !ok {
		return nil, nil, false
	}
	return d.Decl(), d.Unit(), true
}

func varModifiers(kind lexer.TokenType) types.Modifier {
	switch kind {
	case lexer.GLOBAL:
		return types.ModGlobal
	case lexer.STATIC:
		return types.ModStatic
	case lexer.VAL:
		return types.ModVal
	default:
		return types.ModVar
	}
}
