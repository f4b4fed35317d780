// Package linter reports likely mistakes in a unit using the types the
// model resolves. It reports warnings, never errors.
package linter

import (
	"strings"
	"unicode"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/diagnostic"
	"github.com/lhaig/zentype/internal/model"
	"github.com/lhaig/zentype/internal/types"
)

// Rule codes attached to every finding
const (
	RuleUnresolvedName    = "unresolved-name"
	RuleUnknownMember     = "unknown-member"
	RuleAmbiguousOverload = "ambiguous-overload"
	RuleClassNaming       = "class-naming"
	RuleEmptyBody         = "empty-body"
	RuleUnusedParameter   = "unused-parameter"
)

// Linter checks one unit through a read session
type Linter struct {
	sess *model.Session
	unit *model.Unit
	diag *diagnostic.Diagnostics

	// symbols some name in the unit resolves to
	used map[types.Symbol]bool
}

// Lint runs all lint rules on the unit and returns its findings
func Lint(sess *model.Session, u *model.Unit) *diagnostic.Diagnostics {
	l := &Linter{
		sess: sess,
		unit: u,
		diag: diagnostic.NewForFile(u.Path),
		used: make(map[types.Symbol]bool),
	}
	if u.File == nil {
		return l.diag
	}

	ast.Inspect(u.File, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.Ident:
			l.checkName(n)
		case *ast.MemberExpr:
			l.checkMember(n)
		case *ast.CallExpr:
			l.checkOverloads(n)
		case *ast.ClassDecl:
			l.checkClassNaming(n)
		case *ast.FuncDecl:
			l.checkEmptyFunctionBody(identName(n.Name), n.Body, n.Line, n.Column)
		case *ast.ExpandFuncDecl:
			l.checkEmptyFunctionBody(identName(n.Name), n.Body, n.Line, n.Column)
		}
		return true
	})
	// needs every reference collected first
	l.lintParams()

	l.diag.Sort()
	return l.diag
}

// --- Lint rules ---

// checkName records what a referenced name resolves to and warns when it
// resolves to nothing
func (l *Linter) checkName(id *ast.Ident) {
	if !l.isReference(id) {
		return
	}
	sym := l.sess.Lookup(l.unit, id, id.Name)
	if sym == nil {
		l.diag.Lintf(RuleUnresolvedName, id.Line, id.Column, "cannot resolve name '%s'", id.Name)
		return
	}
	l.used[sym] = true
}

// checkMember warns on `a.b` when a is a project class that has neither a
// member b nor a MEMBER_GET operator
func (l *Linter) checkMember(m *ast.MemberExpr) {
	name := identName(m.Name)
	if name == "" || name == "<error>" || m.X == nil {
		return
	}
	ct, ok := l.sess.TypeOf(l.unit, m.X).(*types.ClassType)
	if !ok || ct.Decl == nil {
		return
	}
	if len(l.sess.MemberCandidates(ct, name)) > 0 || len(l.sess.OperatorCandidates(ct, types.MemberGet)) > 0 {
		return
	}
	l.diag.Lintf(RuleUnknownMember, m.Name.Line, m.Name.Column,
		"'%s' has no member '%s'", ct.Name, name)
}

// checkOverloads warns when two overloads fit a call equally well. The
// resolver still picks the first declared one.
func (l *Linter) checkOverloads(call *ast.CallExpr) {
	candidates := l.sess.CallCandidates(l.unit, call)
	if len(candidates) < 2 {
		return
	}
	args := l.sess.ArgumentTypes(l.unit, call.Args)
	best := types.Mismatch
	tied := 0
	for _, c := range candidates {
		rank := l.sess.RankExecutable(c, args)
		switch {
		case rank == types.Mismatch:
		case rank < best:
			best, tied = rank, 1
		case rank == best:
			tied++
		}
	}
	if tied < 2 {
		return
	}
	line, col := call.Pos()
	l.diag.Lintf(RuleAmbiguousOverload, line, col,
		"call to '%s' matches %d overloads equally well; using the first declared", candidates[0].Name(), tied)
}

// checkClassNaming warns if a class name is not PascalCase
func (l *Linter) checkClassNaming(c *ast.ClassDecl) {
	name := identName(c.Name)
	if name == "" || name == "<error>" {
		return
	}
	if !isPascalCase(name) {
		l.diag.Lintf(RuleClassNaming, c.Line, c.Column,
			"class '%s' should use PascalCase naming", name)
	}
}

// checkEmptyFunctionBody warns if a function has a body with no statements.
// Declarations without a body are abstract and fine.
func (l *Linter) checkEmptyFunctionBody(name string, body *ast.Block, line, col int) {
	if body != nil && len(body.Stmts) == 0 {
		l.diag.Lintf(RuleEmptyBody, line, col, "function '%s' has an empty body", name)
	}
}

// lintParams warns about parameters of function bodies that nothing reads
func (l *Linter) lintParams() {
	ast.Inspect(l.unit.File, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FuncDecl:
			l.checkUnusedParams(identName(n.Name), n.Params, n.Body)
		case *ast.ExpandFuncDecl:
			l.checkUnusedParams(identName(n.Name), n.Params, n.Body)
		case *ast.OperatorDecl:
			l.checkUnusedParams("operator "+n.Literal, n.Params, n.Body)
		case *ast.ConstructorDecl:
			l.checkUnusedParams("zenConstructor", n.Params, n.Body)
		}
		return true
	})
}

// checkUnusedParams warns about parameters that are never referenced in
// a non-empty body
func (l *Linter) checkUnusedParams(scopeName string, params []*ast.Param, body *ast.Block) {
	if body == nil || len(body.Stmts) == 0 {
		return
	}
	for _, p := range params {
		if p == nil || p.Name == nil {
			continue
		}
		sym := l.unit.SymbolFor(p)
		if sym == nil || l.used[sym] {
			continue
		}
		l.diag.Lintf(RuleUnusedParameter, p.Line, p.Column,
			"parameter '%s' in '%s' is never used", p.Name.Name, scopeName)
	}
}

// --- Helpers ---

// isReference reports whether id reads a binding rather than naming a
// declaration, a member or a map key
func (l *Linter) isReference(id *ast.Ident) bool {
	if id.Name == "" || id.Name == "<error>" || id.Name == model.RootPackage {
		return false
	}
	switch p := l.unit.Parent(id).(type) {
	case *ast.VarDecl:
		return p.Name != id
	case *ast.Param:
		return p.Name != id
	case *ast.FuncDecl:
		return p.Name != id
	case *ast.ExpandFuncDecl:
		return p.Name != id
	case *ast.ClassDecl:
		return p.Name != id
	case *ast.ImportDecl:
		return p.Alias != id
	case *ast.ForeachStmt:
		for _, v := range p.Vars {
			if v == id {
				return false
			}
		}
	case *ast.MemberExpr:
		return p.Name != id
	case *ast.MapEntry:
		return p.Key != ast.Expr(id)
	}
	return true
}

func identName(id *ast.Ident) string {
	if id == nil {
		return ""
	}
	return id.Name
}

// isPascalCase returns true if the name starts with an uppercase letter
// and contains no underscores.
func isPascalCase(name string) bool {
	if len(name) == 0 {
		return false
	}
	runes := []rune(name)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsRune(name, '_')
}
