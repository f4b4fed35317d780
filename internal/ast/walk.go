package ast

import "strings"

// Children returns the direct child nodes of node in source order
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	addParams := func(params []*Param) {
		for _, p := range params {
			out = append(out, p)
		}
	}

	switch n := node.(type) {
	case *File:
		for _, imp := range n.Imports {
			out = append(out, imp)
		}
		for _, s := range n.Stmts {
			add(s)
		}
	case *ImportDecl:
		if n.Alias != nil {
			out = append(out, n.Alias)
		}
	case *VarDecl:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		add(n.Type)
		add(n.Value)
	case *Param:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		add(n.Type)
		add(n.Default)
	case *FuncDecl:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		addParams(n.Params)
		add(n.Return)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ExpandFuncDecl:
		add(n.Target)
		if n.Name != nil {
			out = append(out, n.Name)
		}
		addParams(n.Params)
		add(n.Return)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ClassDecl:
		if n.Name != nil {
			out = append(out, n.Name)
		}
		for _, s := range n.Supers {
			out = append(out, s)
		}
		for _, m := range n.Members {
			add(m)
		}
	case *ConstructorDecl:
		addParams(n.Params)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *OperatorDecl:
		addParams(n.Params)
		add(n.Return)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *Block:
		for _, s := range n.Stmts {
			add(s)
		}
	case *ExprStmt:
		add(n.X)
	case *ReturnStmt:
		add(n.Value)
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *ForeachStmt:
		for _, v := range n.Vars {
			out = append(out, v)
		}
		add(n.Iter)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *WhileStmt:
		add(n.Cond)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *ParenExpr:
		add(n.X)
	case *ArrayLit:
		for _, e := range n.Elems {
			add(e)
		}
	case *MapLit:
		for _, e := range n.Entries {
			out = append(out, e)
		}
	case *MapEntry:
		add(n.Key)
		add(n.Value)
	case *FuncLit:
		addParams(n.Params)
		add(n.Return)
		if n.Body != nil {
			out = append(out, n.Body)
		}
	case *MemberExpr:
		add(n.X)
		if n.Name != nil {
			out = append(out, n.Name)
		}
	case *IndexExpr:
		add(n.X)
		add(n.Index)
	case *CallExpr:
		add(n.Fun)
		for _, a := range n.Args {
			add(a)
		}
	case *UnaryExpr:
		add(n.X)
	case *BinaryExpr:
		add(n.Left)
		add(n.Right)
	case *RangeExpr:
		add(n.From)
		add(n.To)
	case *InstanceOfExpr:
		add(n.X)
		add(n.Type)
	case *CastExpr:
		add(n.X)
		add(n.Type)
	case *TernaryExpr:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *AssignExpr:
		add(n.Left)
		add(n.Right)
	case *ArrayTypeExpr:
		add(n.Elem)
	case *ListTypeExpr:
		add(n.Elem)
	case *MapTypeExpr:
		add(n.Value)
		add(n.Key)
	case *FuncTypeExpr:
		for _, p := range n.Params {
			add(p)
		}
		add(n.Return)
	case *IntersectionTypeExpr:
		for _, t := range n.Types {
			add(t)
		}
	}
	return out
}

// Inspect traverses the tree in depth-first order. If f returns false the
// children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}

// NodeAt returns the innermost node whose span contains the position, or nil
func NodeAt(root Node, line, col int) Node {
	if root == nil {
		return nil
	}
	// a file covers every position, including trailing whitespace
	if _, ok := root.(*File); !ok && !spanOf(root).Contains(line, col) {
		return nil
	}
	current := root
	for {
		next := Node(nil)
		for _, c := range Children(current) {
			if spanOf(c).Contains(line, col) {
				next = c
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

func spanOf(n Node) Span {
	sl, sc := n.Pos()
	el, ec := n.End()
	return Span{Line: sl, Column: sc, EndLine: el, EndColumn: ec}
}

// TypeString renders a type expression the way it is written in source
func TypeString(t TypeExpr) string {
	switch n := t.(type) {
	case nil:
		return ""
	case *PrimitiveType:
		return n.Kind.String()
	case *NamedType:
		return strings.Join(n.Parts, ".")
	case *ArrayTypeExpr:
		return TypeString(n.Elem) + "[]"
	case *ListTypeExpr:
		return "[" + TypeString(n.Elem) + "]"
	case *MapTypeExpr:
		return TypeString(n.Value) + "[" + TypeString(n.Key) + "]"
	case *FuncTypeExpr:
		params := make([]string, len(n.Params))
		for i, p := range n.Params {
			params[i] = TypeString(p)
		}
		return "function(" + strings.Join(params, ",") + ")" + TypeString(n.Return)
	case *IntersectionTypeExpr:
		parts := make([]string, len(n.Types))
		for i, p := range n.Types {
			parts[i] = TypeString(p)
		}
		return strings.Join(parts, " & ")
	default:
		return "<error>"
	}
}
