// Package features answers editor queries (hover, dot-completion) on top of
// a read session.
package features

import (
	"fmt"
	"strings"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/model"
	"github.com/lhaig/zentype/internal/types"
)

// Hover describes the innermost expression or declaration at the position.
// Names render as `name: type`, other expressions as their type. It reports
// false when nothing typed sits at the position.
func Hover(sess *model.Session, u *model.Unit, line, col int) (string, bool) {
	node := ast.NodeAt(u.File, line, col)
	switch n := node.(type) {
	case nil, *ast.File, *ast.Block, *ast.MapEntry:
		return "", false
	case *ast.Ident:
		if n.Name == "" || n.Name == "<error>" {
			return "", false
		}
		return n.Name + ": " + sess.TypeOf(u, n).String(), true
	case *ast.ImportDecl:
		return n.Name() + ": " + sess.TypeOf(u, n).String(), true
	case ast.TypeExpr:
		return sess.TypeOf(u, n).String(), true
	case ast.Expr:
		return sess.TypeOf(u, n).String(), true
	}
	if sym := u.SymbolFor(node); sym != nil {
		return sym.Name() + ": " + sess.TypeOf(u, node).String(), true
	}
	return "", false
}

// Member is one dot-completion entry
type Member struct {
	Name string
	Kind types.SymbolKind
	Type types.Type
}

// CompleteMembers lists the members of the receiver of the member access
// that ends at the position, filtered by the part of the name already
// typed. It reports false when the position is not after a dot.
func CompleteMembers(sess *model.Session, u *model.Unit, line, col int) ([]Member, bool) {
	access := accessAt(u, line, col)
	if access == nil {
		return nil, false
	}
	prefix := ""
	if name := access.Name; name != nil && name.Name != "<error>" && name.Line == line && col > name.Column {
		if n := col - name.Column; n <= len(name.Name) {
			prefix = name.Name[:n]
		} else {
			prefix = name.Name
		}
	}

	receiver := sess.TypeOf(u, access.X)
	out := make([]Member, 0)
	for _, sym := range sess.MembersOf(receiver) {
		if sym.Kind() == types.OperatorSymbolKind || !strings.HasPrefix(sym.Name(), prefix) {
			continue
		}
		out = append(out, Member{Name: sym.Name(), Kind: sym.Kind(), Type: sess.SymbolType(sym)})
	}
	return out, true
}

// accessAt finds the member access whose name is being typed just before
// the position
func accessAt(u *model.Unit, line, col int) *ast.MemberExpr {
	if col < 2 {
		return nil
	}
	for n := ast.NodeAt(u.File, line, col-1); n != nil; n = u.Parent(n) {
		m, ok := n.(*ast.MemberExpr)
		if !ok || m.X == nil {
			continue
		}
		endLine, endCol := m.X.End()
		if endLine < line || (endLine == line && endCol <= col-1) {
			return m
		}
	}
	return nil
}

// String renders a completion entry as `name: type`
func (m Member) String() string {
	return m.Name + ": " + m.Type.String()
}

// Declaration is one named declaration with its resolved type
type Declaration struct {
	Line, Column int
	Name         string
	Kind         types.SymbolKind
	Type         types.Type
}

// Declarations lists every declaration of the unit in source order
func Declarations(sess *model.Session, u *model.Unit) []Declaration {
	var out []Declaration
	if u.File == nil {
		return out
	}
	ast.Inspect(u.File, func(n ast.Node) bool {
		sym := u.SymbolFor(n)
		if sym == nil || sym.Name() == "" || sym.Name() == "<error>" {
			return true
		}
		line, col := n.Pos()
		out = append(out, Declaration{
			Line:   line,
			Column: col,
			Name:   sym.Name(),
			Kind:   sym.Kind(),
			Type:   sess.TypeOf(u, n),
		})
		return true
	})
	return out
}

func (d Declaration) String() string {
	return fmt.Sprintf("%d:%d %s %s: %s", d.Line, d.Column, d.Kind, d.Name, d.Type)
}
