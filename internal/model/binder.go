package model

import (
	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/types"
)

const constructorName = "zenConstructor"

// binder walks a parsed file once, recording parents, scopes and the
// symbols each declaration introduces
type binder struct {
	unit *Unit
}

func (b *binder) bindFile(file *ast.File) {
	if file == nil {
		return
	}
	b.visit(file, nil, NoScope)
}

func (b *binder) open(owner ast.Node, parent ScopeID) ScopeID {
	id := ScopeID(len(b.unit.scopes))
	b.unit.scopes = append(b.unit.scopes, newScope(id, parent, owner))
	return id
}

func (b *binder) define(scope ScopeID, decl ast.Node, sym types.Symbol, line, col int) {
	b.unit.symbols[decl] = sym
	if !b.unit.Scope(scope).define(sym) && !types.IsExecutable(sym.Kind()) {
		b.unit.Diagnostics.Warningf(line, col, "%q is already declared in this scope", sym.Name())
	}
}

func (b *binder) record(n, parent ast.Node, scope ScopeID) {
	b.unit.parents[n] = parent
	b.unit.nodeScope[n] = scope
}

func (b *binder) visitChildren(n ast.Node, scope ScopeID) {
	for _, c := range ast.Children(n) {
		b.visit(c, n, scope)
	}
}

func (b *binder) visit(n, parent ast.Node, scope ScopeID) {
	switch n := n.(type) {
	case *ast.File:
		b.record(n, parent, scope)
		root := b.open(n, NoScope)
		b.unit.nodeScope[n] = root
		b.visitChildren(n, root)

	case *ast.ImportDecl:
		b.record(n, parent, scope)
		sym := &declSymbol{name: n.Name(), kind: types.ImportSymbol, decl: n, unit: b.unit}
		b.define(scope, n, sym, n.Line, n.Column)
		b.visitChildren(n, scope)

	case *ast.VarDecl:
		b.record(n, parent, scope)
		if n.Name != nil {
			sym := &declSymbol{
				name: n.Name.Name,
				kind: types.VariableSymbol,
				mods: varModifiers(n.Kind),
				decl: n,
				unit: b.unit,
			}
			b.define(scope, n, sym, n.Name.Line, n.Name.Column)
		}
		b.visitChildren(n, scope)

	case *ast.Param:
		b.record(n, parent, scope)
		if n.Name != nil {
			sym := &declSymbol{name: n.Name.Name, kind: types.ParameterSymbol, decl: n, unit: b.unit}
			b.define(scope, n, sym, n.Name.Line, n.Name.Column)
		}
		b.visitChildren(n, scope)

	case *ast.FuncDecl:
		b.record(n, parent, scope)
		var mods types.Modifier
		if n.Static {
			mods = types.ModStatic
		}
		sym := &execSymbol{
			declSymbol: declSymbol{name: identName(n.Name), kind: types.FunctionSymbol, mods: mods, decl: n, unit: b.unit},
			params:     n.Params,
		}
		b.define(scope, n, sym, n.Line, n.Column)
		b.bindExecutable(n, n.Name, nil, n.Params, n.Return, n.Body, scope)

	case *ast.ExpandFuncDecl:
		b.record(n, parent, scope)
		sym := &expandSymbol{
			execSymbol: execSymbol{
				declSymbol: declSymbol{name: identName(n.Name), kind: types.ExpandSymbolKind, decl: n, unit: b.unit},
				params:     n.Params,
			},
			target: n.Target,
		}
		// expand functions are reached as members, never by plain name
		b.unit.symbols[n] = sym
		b.unit.expands = append(b.unit.expands, sym)
		b.bindExecutable(n, n.Name, n.Target, n.Params, n.Return, n.Body, scope)

	case *ast.ConstructorDecl:
		b.record(n, parent, scope)
		sym := &execSymbol{
			declSymbol: declSymbol{name: constructorName, kind: types.ConstructorSymbol, decl: n, unit: b.unit},
			params:     n.Params,
		}
		b.unit.symbols[n] = sym
		if info := b.enclosingClass(scope); info != nil {
			info.ctors = append(info.ctors, sym)
		}
		b.bindExecutable(n, nil, nil, n.Params, nil, n.Body, scope)

	case *ast.OperatorDecl:
		b.record(n, parent, scope)
		op := types.LookupOperator(n.Literal, types.Arity(len(n.Params)))
		sym := &operatorSymbol{
			execSymbol: execSymbol{
				declSymbol: declSymbol{name: op.String(), kind: types.OperatorSymbolKind, decl: n, unit: b.unit},
				params:     n.Params,
			},
			op: op,
		}
		b.unit.symbols[n] = sym
		b.unit.Scope(scope).define(sym)
		b.bindExecutable(n, nil, nil, n.Params, n.Return, n.Body, scope)

	case *ast.ClassDecl:
		b.bindClass(n, parent, scope)

	case *ast.FuncLit:
		b.record(n, parent, scope)
		b.bindExecutable(n, nil, nil, n.Params, n.Return, n.Body, scope)

	case *ast.ForeachStmt:
		b.record(n, parent, scope)
		if n.Iter != nil {
			b.visit(n.Iter, n, scope)
		}
		inner := b.open(n, scope)
		for _, v := range n.Vars {
			b.record(v, n, inner)
			sym := &declSymbol{name: v.Name, kind: types.VariableSymbol, mods: types.ModVar, decl: v, unit: b.unit}
			b.define(inner, v, sym, v.Line, v.Column)
		}
		if n.Body != nil {
			b.visit(n.Body, n, inner)
		}

	case *ast.Block:
		b.record(n, parent, scope)
		b.visitChildren(n, b.open(n, scope))

	default:
		b.record(n, parent, scope)
		b.visitChildren(n, scope)
	}
}

// bindExecutable opens the parameter scope of a function-like node. The
// name, target and return type stay in the enclosing scope.
func (b *binder) bindExecutable(n ast.Node, name *ast.Ident, target ast.TypeExpr, params []*ast.Param, ret ast.TypeExpr, body *ast.Block, scope ScopeID) {
	if target != nil {
		b.visit(target, n, scope)
	}
	if name != nil {
		b.visit(name, n, scope)
	}
	if ret != nil {
		b.visit(ret, n, scope)
	}
	inner := b.open(n, scope)
	if target != nil {
		b.unit.Scope(inner).define(&receiverSymbol{
			declSymbol: declSymbol{name: "this", kind: types.VariableSymbol, mods: types.ModVal, decl: n, unit: b.unit},
			target:     target,
		})
	}
	for _, p := range params {
		if p != nil {
			b.visit(p, n, inner)
		}
	}
	if body != nil {
		b.visit(body, n, inner)
	}
}

func (b *binder) bindClass(n *ast.ClassDecl, parent ast.Node, scope ScopeID) {
	b.record(n, parent, scope)
	name := identName(n.Name)
	info := &classInfo{unit: b.unit, decl: n}
	ct := &types.ClassType{Name: b.unit.Qualify(name), Decl: info}
	sym := &classSymbol{
		declSymbol: declSymbol{name: name, kind: types.ClassSymbol, decl: n, unit: b.unit},
		typ:        ct,
		info:       info,
	}
	b.define(scope, n, sym, n.Line, n.Column)
	if scope == 0 {
		b.unit.classes = append(b.unit.classes, ct)
	}

	if n.Name != nil {
		b.visit(n.Name, n, scope)
	}
	for _, super := range n.Supers {
		if super != nil {
			b.visit(super, n, scope)
		}
	}

	inner := b.open(n, scope)
	this := &declSymbol{name: "this", kind: types.VariableSymbol, mods: types.ModVal, decl: n, unit: b.unit}
	b.unit.Scope(inner).define(this)
	for _, m := range n.Members {
		if m != nil {
			b.visit(m, n, inner)
		}
	}
	// everything the members defined, minus this
	info.members = b.unit.Scope(inner).Symbols()[1:]
}

func (b *binder) enclosingClass(scope ScopeID) *classInfo {
	s := b.unit.Scope(scope)
	if s == nil {
		return nil
	}
	decl, ok := s.Owner.(*ast.ClassDecl)
	if !ok {
		return nil
	}
	if sym, ok := b.unit.symbols[decl].(*classSymbol); ok {
		return sym.info
	}
	return nil
}

func identName(id *ast.Ident) string {
	if id == nil {
		return ""
	}
	return id.Name
}
