package model

import (
	"strings"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/lexer"
	"github.com/lhaig/zentype/internal/types"
)

// resolver computes types on demand for one query. It never caches; the
// visiting set only stops a query from re-entering a node it is already
// resolving, which is what makes `var x = x;` terminate.
type resolver struct {
	env      *Environment
	visiting map[ast.Node]bool
}

func newResolver(env *Environment) *resolver {
	return &resolver{env: env, visiting: make(map[ast.Node]bool)}
}

// TypeOf implements types.Context
func (r *resolver) TypeOf(sym types.Symbol) types.Type {
	return r.symbolType(sym)
}

func (r *resolver) symbolType(sym types.Symbol) types.Type {
	switch s := sym.(type) {
	case nil:
		return types.Any
	case *classSymbol:
		return s.typ
	case *receiverSymbol:
		return r.typeOf(s.unit, s.target)
	case Declared:
		return r.typeOf(s.Unit(), s.Decl())
	default:
		return types.OrAny(sym.Type())
	}
}

// typeOf is total: every node, including nil and placeholder nodes,
// resolves to a type, with Any meaning unresolved
func (r *resolver) typeOf(u *Unit, node ast.Node) types.Type {
	if node == nil || u == nil || r.visiting[node] {
		return types.Any
	}
	r.visiting[node] = true
	defer delete(r.visiting, node)
	return types.OrAny(r.resolve(u, node))
}

func (r *resolver) resolve(u *Unit, node ast.Node) types.Type {
	switch n := node.(type) {
	// expressions
	case *ast.BasicLit:
		return literalType(n.Kind)
	case *ast.Ident:
		return r.identType(u, n)
	case *ast.ThisExpr:
		return r.symbolType(u.Lookup(n, "this"))
	case *ast.ParenExpr:
		return r.typeOf(u, n.X)
	case *ast.MemberExpr:
		return r.memberType(u, n)
	case *ast.IndexExpr:
		return r.binaryResult(r.typeOf(u, n.X), types.IndexGet, r.typeOf(u, n.Index))
	case *ast.CallExpr:
		return r.callType(u, n)
	case *ast.UnaryExpr:
		return r.unaryType(u, n)
	case *ast.BinaryExpr:
		return r.binaryType(u, n)
	case *ast.RangeExpr:
		return r.binaryResult(r.typeOf(u, n.From), types.Range, r.typeOf(u, n.To))
	case *ast.InstanceOfExpr:
		return types.Bool
	case *ast.CastExpr:
		return r.typeOf(u, n.Type)
	case *ast.TernaryExpr:
		return r.typeOf(u, n.Then)
	case *ast.AssignExpr:
		return r.typeOf(u, n.Left)
	case *ast.ArrayLit:
		if len(n.Elems) == 0 {
			return &types.ArrayType{Elem: types.Any}
		}
		return &types.ArrayType{Elem: r.typeOf(u, n.Elems[0])}
	case *ast.MapLit:
		if len(n.Entries) == 0 || n.Entries[0] == nil {
			return &types.MapType{Key: types.Any, Value: types.Any}
		}
		first := n.Entries[0]
		return &types.MapType{Key: r.typeOf(u, first.Key), Value: r.typeOf(u, first.Value)}
	case *ast.MapEntry:
		return types.Any
	case *ast.BracketHandler:
		return types.Any
	case *ast.FuncLit:
		return r.lambdaType(u, n)
	case *ast.BadExpr:
		return types.Any

	// declarations
	case *ast.VarDecl:
		if n.Type != nil {
			return r.typeOf(u, n.Type)
		}
		return r.typeOf(u, n.Value)
	case *ast.Param:
		return r.paramType(u, n)
	case *ast.FuncDecl:
		return r.signature(u, n.Params, r.typeOf(u, n.Return))
	case *ast.ExpandFuncDecl:
		return r.signature(u, n.Params, r.typeOf(u, n.Return))
	case *ast.ConstructorDecl:
		var ret types.Type = types.Any
		if class, ok := u.Parent(n).(*ast.ClassDecl); ok {
			ret = r.typeOf(u, class)
		}
		return r.signature(u, n.Params, ret)
	case *ast.OperatorDecl:
		return r.signature(u, n.Params, r.typeOf(u, n.Return))
	case *ast.ClassDecl:
		if sym, ok := u.SymbolFor(n).(*classSymbol); ok {
			return sym.typ
		}
		return types.Any
	case *ast.ImportDecl:
		if ct := r.env.classNamed(strings.Join(n.Path, ".")); ct != nil {
			return ct
		}
		return types.Any

	// type expressions
	case *ast.PrimitiveType:
		return primitiveType(n.Kind)
	case *ast.NamedType:
		return r.namedType(u, n)
	case *ast.ArrayTypeExpr:
		return &types.ArrayType{Elem: r.typeOf(u, n.Elem)}
	case *ast.ListTypeExpr:
		return &types.ListType{Elem: r.typeOf(u, n.Elem)}
	case *ast.MapTypeExpr:
		return &types.MapType{Key: r.typeOf(u, n.Key), Value: r.typeOf(u, n.Value)}
	case *ast.FuncTypeExpr:
		params := make([]types.Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = r.typeOf(u, p)
		}
		return &types.FunctionType{Params: params, Return: r.typeOf(u, n.Return)}
	case *ast.IntersectionTypeExpr:
		parts := make([]types.Type, len(n.Types))
		for i, t := range n.Types {
			parts[i] = r.typeOf(u, t)
		}
		return &types.IntersectionType{Types: parts}
	case *ast.BadType:
		return types.Any

	// statements have no type of their own
	case *ast.File, *ast.Block, *ast.ExprStmt, *ast.ReturnStmt, *ast.IfStmt,
		*ast.ForeachStmt, *ast.WhileStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.BadStmt:
		return types.Any

	default:
		return types.Any
	}
}

func literalType(kind lexer.TokenType) types.Type {
	switch kind {
	case lexer.INT_LIT:
		return types.Int
	case lexer.LONG_LIT:
		return types.Long
	case lexer.FLOAT_LIT:
		return types.Float
	case lexer.DOUBLE_LIT:
		return types.Double
	case lexer.STRING_LIT:
		return types.String
	case lexer.TRUE, lexer.FALSE:
		return types.Bool
	default:
		return types.Any
	}
}

func primitiveType(kind lexer.TokenType) types.Type {
	switch kind {
	case lexer.BYTE:
		return types.Byte
	case lexer.SHORT:
		return types.Short
	case lexer.INT:
		return types.Int
	case lexer.LONG:
		return types.Long
	case lexer.FLOAT:
		return types.Float
	case lexer.DOUBLE:
		return types.Double
	case lexer.BOOL:
		return types.Bool
	case lexer.VOID:
		return types.Void
	case lexer.STRING:
		return types.String
	default:
		return types.Any
	}
}

// identType resolves a name. Declared names take the type of their
// declaration; referenced names go through scope and global lookup.
func (r *resolver) identType(u *Unit, id *ast.Ident) types.Type {
	switch p := u.Parent(id).(type) {
	case *ast.VarDecl:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	case *ast.Param:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	case *ast.FuncDecl:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	case *ast.ExpandFuncDecl:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	case *ast.ClassDecl:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	case *ast.ImportDecl:
		if p.Alias == id {
			return r.typeOf(u, p)
		}
	case *ast.ForeachStmt:
		for i, v := range p.Vars {
			if v == id {
				return r.foreachVarType(u, p, i)
			}
		}
	case *ast.MemberExpr:
		if p.Name == id {
			return r.typeOf(u, p)
		}
	}
	if id.Name == "" {
		return types.Any
	}
	return r.symbolType(r.lookup(u, id, id.Name))
}

func (r *resolver) lookup(u *Unit, node ast.Node, name string) types.Symbol {
	if sym := u.Lookup(node, name); sym != nil {
		return sym
	}
	return r.env.lookupGlobal(name)
}

// namedType resolves a class reference: scope lookup for simple names, then
// the registry. Names with no declaration in the workspace become external
// class types without members.
func (r *resolver) namedType(u *Unit, n *ast.NamedType) types.Type {
	if len(n.Parts) == 0 {
		return types.Any
	}
	qualified := strings.Join(n.Parts, ".")
	if len(n.Parts) == 1 {
		sym := r.lookup(u, n, n.Parts[0])
		if sym != nil {
			switch sym.Kind() {
			case types.ClassSymbol:
				return r.symbolType(sym)
			case types.ImportSymbol:
				if ct, ok := r.symbolType(sym).(*types.ClassType); ok {
					return ct
				}
				if imp, ok := sym.(Declared); ok {
					if d, ok := imp.Decl().(*ast.ImportDecl); ok {
						return &types.ClassType{Name: strings.Join(d.Path, ".")}
					}
				}
			}
		}
		if ct := r.env.classNamed(u.Qualify(qualified)); ct != nil {
			return ct
		}
	}
	if ct := r.env.classNamed(qualified); ct != nil {
		return ct
	}
	return &types.ClassType{Name: qualified}
}

// signature builds the function type of a declaration from its syntax
func (r *resolver) signature(u *Unit, params []*ast.Param, ret types.Type) types.Type {
	out := make([]types.Type, 0, len(params))
	for _, p := range params {
		if p == nil {
			out = append(out, types.Any)
			continue
		}
		out = append(out, r.typeOf(u, p))
	}
	return &types.FunctionType{Params: out, Return: ret}
}

func (r *resolver) memberType(u *Unit, m *ast.MemberExpr) types.Type {
	recv := r.typeOf(u, m.X)
	if sym := r.memberNamed(recv, identName(m.Name)); sym != nil {
		return r.symbolType(sym)
	}
	return r.binaryResult(recv, types.MemberGet, types.String)
}

func (r *resolver) unaryType(u *Unit, n *ast.UnaryExpr) types.Type {
	x := r.typeOf(u, n.X)
	switch n.Op {
	case lexer.PLUS:
		return x
	case lexer.NOT:
		return r.unaryResult(x, types.Not)
	case lexer.MINUS:
		return r.unaryResult(x, types.Neg)
	default:
		return types.Any
	}
}

func (r *resolver) binaryType(u *Unit, n *ast.BinaryExpr) types.Type {
	left := r.typeOf(u, n.Left)
	switch n.Op {
	case lexer.AND_AND, lexer.OR_OR:
		return left
	case lexer.LT, lexer.GT, lexer.LEQ, lexer.GEQ:
		// compare operators return an int sign
		if r.binaryResult(left, types.Compare, r.typeOf(u, n.Right)).Equal(types.Int) {
			return types.Bool
		}
		return types.Any
	case lexer.EQ, lexer.NEQ:
		return r.binaryResult(left, types.Equals, r.typeOf(u, n.Right))
	}
	op := types.LookupOperator(n.Op.String(), types.Binary)
	if op == types.OpError {
		return types.Any
	}
	return r.binaryResult(left, op, r.typeOf(u, n.Right))
}

func (r *resolver) callType(u *Unit, c *ast.CallExpr) types.Type {
	if candidates := r.callCandidates(u, c); len(candidates) > 0 {
		best := r.findBest(candidates, r.argTypes(u, c.Args))
		if best == nil {
			return types.Any
		}
		return returnType(r.symbolType(best))
	}
	switch t := r.typeOf(u, c.Fun).(type) {
	case *types.FunctionType:
		return types.OrAny(t.Return)
	case *types.ClassType:
		return t
	default:
		return types.Any
	}
}

// callCandidates gathers the overloads a call chooses from: members named
// like the callee of a member call, or the executables a plain name binds
// to when it is overloaded. Other calls resolve the callee directly.
func (r *resolver) callCandidates(u *Unit, c *ast.CallExpr) []types.Symbol {
	switch fun := c.Fun.(type) {
	case *ast.MemberExpr:
		return r.memberCandidates(r.typeOf(u, fun.X), identName(fun.Name))
	case *ast.Ident:
		found := u.LookupAll(fun, fun.Name)
		if len(found) < 2 {
			return nil
		}
		for _, sym := range found {
			if !types.IsExecutable(sym.Kind()) {
				return nil
			}
		}
		return found
	}
	return nil
}

func (r *resolver) argTypes(u *Unit, args []ast.Expr) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = r.typeOf(u, a)
	}
	return out
}

func returnType(t types.Type) types.Type {
	if fn, ok := t.(*types.FunctionType); ok {
		return types.OrAny(fn.Return)
	}
	return types.Any
}

// foreachVarType types the idx-th binding of a foreach through the
// iterator carrier of the iterated expression
func (r *resolver) foreachVarType(u *Unit, stmt *ast.ForeachStmt, idx int) types.Type {
	count := len(stmt.Vars)
	if count > 2 {
		return types.Any
	}
	carrier := r.unaryResult(r.typeOf(u, stmt.Iter), types.Iterator)
	var elem types.Type
	switch c := carrier.(type) {
	case *types.ListType:
		elem = c.Elem
	case *types.ArrayType:
		elem = c.Elem
	case *types.MapType:
		if count == 1 || idx == 0 {
			return types.OrAny(c.Key)
		}
		return types.OrAny(c.Value)
	default:
		return types.Any
	}
	if count == 2 && idx == 0 {
		return types.Int
	}
	return types.OrAny(elem)
}

func (r *resolver) paramType(u *Unit, p *ast.Param) types.Type {
	if p.Type != nil {
		return r.typeOf(u, p.Type)
	}
	lit, ok := u.Parent(p).(*ast.FuncLit)
	if !ok {
		return types.Any
	}
	for i, candidate := range lit.Params {
		if candidate == p {
			if fn := r.functionShape(r.lambdaContext(u, lit)); fn != nil && i < len(fn.Params) {
				return types.OrAny(fn.Params[i])
			}
			break
		}
	}
	return types.Any
}

// lambdaType prefers a functional class the lambda is passed as; otherwise
// the lambda is a function of its (possibly contextual) parameter types
func (r *resolver) lambdaType(u *Unit, lit *ast.FuncLit) types.Type {
	ctx := r.lambdaContext(u, lit)
	if ct, ok := ctx.(*types.ClassType); ok && r.lambdaForm(ct) != nil {
		return ct
	}
	var ret types.Type = types.Any
	switch {
	case lit.Return != nil:
		ret = r.typeOf(u, lit.Return)
	case r.functionShape(ctx) != nil:
		ret = types.OrAny(r.functionShape(ctx).Return)
	}
	return r.signature(u, lit.Params, ret)
}

// lambdaContext is the type a lambda is expected to have from where it
// sits: the left side of an assignment, the annotation of the variable it
// initializes, or the parameter it is passed to. Nil when unknown.
func (r *resolver) lambdaContext(u *Unit, lit *ast.FuncLit) types.Type {
	var child ast.Node = lit
	parent := u.Parent(lit)
	for {
		paren, ok := parent.(*ast.ParenExpr)
		if !ok {
			break
		}
		child, parent = paren, u.Parent(paren)
	}

	switch p := parent.(type) {
	case *ast.AssignExpr:
		if ast.Node(p.Right) == child {
			return r.typeOf(u, p.Left)
		}
	case *ast.VarDecl:
		if ast.Node(p.Value) == child && p.Type != nil {
			return r.typeOf(u, p.Type)
		}
	case *ast.CallExpr:
		for i, arg := range p.Args {
			if ast.Node(arg) == child {
				return r.argumentContext(u, p, i)
			}
		}
	}
	return nil
}

func (r *resolver) argumentContext(u *Unit, call *ast.CallExpr, idx int) types.Type {
	if candidates := r.callCandidates(u, call); len(candidates) > 0 {
		return r.predictNext(candidates, r.argTypes(u, call.Args[:idx]))
	}
	if fn, ok := r.typeOf(u, call.Fun).(*types.FunctionType); ok && idx < len(fn.Params) {
		return fn.Params[idx]
	}
	return nil
}

// functionShape returns the function a value of type t can be called as
func (r *resolver) functionShape(t types.Type) *types.FunctionType {
	switch v := t.(type) {
	case *types.FunctionType:
		return v
	case *types.ClassType:
		return r.lambdaForm(v)
	}
	return nil
}
