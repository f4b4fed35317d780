package ast_test

import (
	"strings"
	"testing"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/parser"
)

func TestNodeAt(t *testing.T) {
	src := "var list = [1, 2];\nvar n = list.length;"
	file, diags := parser.ParseFile(src)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %s", diags.Format())
	}

	tests := []struct {
		line, col int
		want      string
	}{
		{1, 5, "*ast.Ident"},     // list
		{1, 13, "*ast.BasicLit"}, // 1
		{1, 12, "*ast.ArrayLit"}, // [
		{2, 9, "*ast.Ident"},     // list receiver
		{2, 13, "*ast.MemberExpr"},
		{2, 15, "*ast.Ident"}, // length
		{5, 1, "*ast.File"},
	}
	for _, tt := range tests {
		got := ast.NodeAt(file, tt.line, tt.col)
		if name := typeName(got); name != tt.want {
			t.Errorf("NodeAt(%d, %d): expected %s, got %s", tt.line, tt.col, tt.want, name)
		}
	}
}

func TestInspectVisitsEveryIdent(t *testing.T) {
	file, _ := parser.ParseFile("function f(a as int) { return a + b; }")
	var names []string
	ast.Inspect(file, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	if got := strings.Join(names, ","); got != "f,a,a,b" {
		t.Errorf("unexpected idents %q", got)
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	file, _ := parser.ParseFile("function f() { var hidden = 1; } var shown = 2;")
	var names []string
	ast.Inspect(file, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncDecl); ok {
			return false
		}
		if id, ok := n.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	if got := strings.Join(names, ","); got != "shown" {
		t.Errorf("unexpected idents %q", got)
	}
}

func TestPrint(t *testing.T) {
	file, _ := parser.ParseFile(`zenClass A { var x as int; function get() as int { return x; } }`)
	out := ast.Print(file)
	for _, want := range []string{"Class: A", "VarDecl: var x as int", "Function: get as int", "Return", "Ident: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func typeName(n ast.Node) string {
	switch n.(type) {
	case nil:
		return "<nil>"
	case *ast.File:
		return "*ast.File"
	case *ast.Ident:
		return "*ast.Ident"
	case *ast.BasicLit:
		return "*ast.BasicLit"
	case *ast.ArrayLit:
		return "*ast.ArrayLit"
	case *ast.MemberExpr:
		return "*ast.MemberExpr"
	default:
		return "other"
	}
}
