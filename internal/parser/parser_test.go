package parser

import (
	"strings"
	"testing"

	"github.com/lhaig/zentype/internal/ast"
	"github.com/lhaig/zentype/internal/lexer"
)

func parseOK(t *testing.T, input string) *ast.File {
	t.Helper()
	p := New(input)
	file := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected errors: %s", p.Diagnostics().Format())
	}
	return file
}

func TestParseImports(t *testing.T) {
	file := parseOK(t, `
import crafttweaker.item.IItemStack;
import mods.jei.JEI as J;
`)
	if len(file.Imports) != 2 {
		t.Fatalf("expected 2 imports, got %d", len(file.Imports))
	}
	if got := strings.Join(file.Imports[0].Path, "."); got != "crafttweaker.item.IItemStack" {
		t.Errorf("unexpected import path %q", got)
	}
	if file.Imports[0].Name() != "IItemStack" {
		t.Errorf("expected bound name IItemStack, got %q", file.Imports[0].Name())
	}
	if file.Imports[1].Name() != "J" {
		t.Errorf("expected alias J, got %q", file.Imports[1].Name())
	}
}

func TestParseVarDecls(t *testing.T) {
	file := parseOK(t, `
var a = 1;
val b as string = "x";
global c as int[] = [1, 2];
static d as string[int];
`)
	if len(file.Stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(file.Stmts))
	}

	tests := []struct {
		kind     lexer.TokenType
		name     string
		typeText string
		hasValue bool
	}{
		{lexer.VAR, "a", "", true},
		{lexer.VAL, "b", "string", true},
		{lexer.GLOBAL, "c", "int[]", true},
		{lexer.STATIC, "d", "string[int]", false},
	}
	for i, tt := range tests {
		decl, ok := file.Stmts[i].(*ast.VarDecl)
		if !ok {
			t.Fatalf("stmt %d: expected *ast.VarDecl, got %T", i, file.Stmts[i])
		}
		if decl.Kind != tt.kind {
			t.Errorf("stmt %d: expected kind %s, got %s", i, tt.kind, decl.Kind)
		}
		if decl.Name.Name != tt.name {
			t.Errorf("stmt %d: expected name %q, got %q", i, tt.name, decl.Name.Name)
		}
		if got := ast.TypeString(decl.Type); got != tt.typeText {
			t.Errorf("stmt %d: expected type %q, got %q", i, tt.typeText, got)
		}
		if (decl.Value != nil) != tt.hasValue {
			t.Errorf("stmt %d: value presence mismatch", i)
		}
	}
}

func TestParseFunctionDecl(t *testing.T) {
	file := parseOK(t, `
function add(x as int, y as int = 2) as int {
    return x + y;
}
static function helper();
`)
	fn, ok := file.Stmts[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", file.Stmts[0])
	}
	if fn.Name.Name != "add" {
		t.Errorf("expected name add, got %q", fn.Name.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[1].Default == nil {
		t.Error("expected default value on second param")
	}
	if ast.TypeString(fn.Return) != "int" {
		t.Errorf("expected return type int, got %q", ast.TypeString(fn.Return))
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatal("expected body with one statement")
	}

	helper := file.Stmts[1].(*ast.FuncDecl)
	if !helper.Static {
		t.Error("expected static function")
	}
	if helper.Body != nil {
		t.Error("expected bodiless declaration")
	}
}

func TestParseExpandFunction(t *testing.T) {
	file := parseOK(t, `
$expand string$shout(times as int) as string {
    return this;
}
`)
	exp, ok := file.Stmts[0].(*ast.ExpandFuncDecl)
	if !ok {
		t.Fatalf("expected *ast.ExpandFuncDecl, got %T", file.Stmts[0])
	}
	if ast.TypeString(exp.Target) != "string" {
		t.Errorf("expected target string, got %q", ast.TypeString(exp.Target))
	}
	if exp.Name.Name != "shout" {
		t.Errorf("expected name shout, got %q", exp.Name.Name)
	}
	if len(exp.Params) != 1 || exp.Params[0].Name.Name != "times" {
		t.Error("expected single param times")
	}
}

func TestParseClassDecl(t *testing.T) {
	file := parseOK(t, `
zenClass Vec extends Base, other.Mixin {
    var x as int = 0;
    val y as int;
    static origin as Vec;

    zenConstructor(x as int) {
        this.x = x;
    }

    function len() as double {
        return 0.0;
    }

    operator + (other as Vec) as Vec;
    operator [] (i as int) as int;
    operator []= (i as int, v as int) as void;
    operator .= (name as string, v as any) as void;
}
`)
	cls, ok := file.Stmts[0].(*ast.ClassDecl)
	if !ok {
		t.Fatalf("expected *ast.ClassDecl, got %T", file.Stmts[0])
	}
	if cls.Name.Name != "Vec" {
		t.Errorf("expected class Vec, got %q", cls.Name.Name)
	}
	if len(cls.Supers) != 2 || ast.TypeString(cls.Supers[1]) != "other.Mixin" {
		t.Errorf("unexpected supers")
	}
	if len(cls.Members) != 9 {
		t.Fatalf("expected 9 members, got %d", len(cls.Members))
	}

	var literals []string
	for _, m := range cls.Members {
		if op, ok := m.(*ast.OperatorDecl); ok {
			literals = append(literals, op.Literal)
		}
	}
	if got := strings.Join(literals, " "); got != "+ [] []= .=" {
		t.Errorf("unexpected operator literals %q", got)
	}
	if _, ok := cls.Members[3].(*ast.ConstructorDecl); !ok {
		t.Errorf("expected constructor at index 3, got %T", cls.Members[3])
	}
}

func TestParsePrimitiveNamedClass(t *testing.T) {
	file := parseOK(t, `zenClass string { function shout() as string; }`)
	cls := file.Stmts[0].(*ast.ClassDecl)
	if cls.Name.Name != "string" {
		t.Errorf("expected class named string, got %q", cls.Name.Name)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + b * c;", "(a + (b * c))"},
		{"a * b as int;", "(a * (b as int))"},
		{"-a as int;", "(-(a as int))"},
		{"a || b && c;", "(a || (b && c))"},
		{"a == b + c;", "(a == (b + c))"},
		{"a ~ b + c;", "((a ~ b) + c)"},
		{"0 .. n + 1;", "(0 .. (n + 1))"},
		{"x = y = 1;", "(x = (y = 1))"},
		{"c ? a : b;", "(c ? a : b)"},
		{"a has b;", "(a has b)"},
		{"x instanceof int;", "(x instanceof int)"},
		{"a.b(c)[d];", "a.b(c)[d]"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := parseOK(t, tt.input)
			stmt, ok := file.Stmts[0].(*ast.ExprStmt)
			if !ok {
				t.Fatalf("expected *ast.ExprStmt, got %T", file.Stmts[0])
			}
			if got := render(stmt.X); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestParseLiterals(t *testing.T) {
	file := parseOK(t, `
var a = [1, "x",];
var b = {k: 1, "j": 2};
var c = <minecraft:stone:1>;
var d = function(x, y as int) { return x; };
var e = null;
`)
	arr := file.Stmts[0].(*ast.VarDecl).Value.(*ast.ArrayLit)
	if len(arr.Elems) != 2 {
		t.Errorf("expected 2 elements, got %d", len(arr.Elems))
	}
	m := file.Stmts[1].(*ast.VarDecl).Value.(*ast.MapLit)
	if len(m.Entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(m.Entries))
	}
	bh := file.Stmts[2].(*ast.VarDecl).Value.(*ast.BracketHandler)
	if bh.Raw != "minecraft:stone:1" {
		t.Errorf("unexpected bracket handler %q", bh.Raw)
	}
	fn := file.Stmts[3].(*ast.VarDecl).Value.(*ast.FuncLit)
	if len(fn.Params) != 2 || fn.Params[0].Type != nil || fn.Params[1].Type == nil {
		t.Error("unexpected lambda params")
	}
	lit := file.Stmts[4].(*ast.VarDecl).Value.(*ast.BasicLit)
	if lit.Kind != lexer.NULL {
		t.Errorf("expected null literal, got %s", lit.Kind)
	}
}

func TestParseStatements(t *testing.T) {
	file := parseOK(t, `
for k, v in map {
    if k == "a" {
        break;
    } else if v > 2 continue;
}
while x < 10 {
    x += 1;
}
for i in 0 to 10 {}
`)
	if len(file.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(file.Stmts))
	}
	loop := file.Stmts[0].(*ast.ForeachStmt)
	if len(loop.Vars) != 2 || loop.Vars[0].Name != "k" || loop.Vars[1].Name != "v" {
		t.Error("unexpected foreach vars")
	}
	ifStmt := loop.Body.Stmts[0].(*ast.IfStmt)
	if _, ok := ifStmt.Else.(*ast.IfStmt); !ok {
		t.Errorf("expected else-if, got %T", ifStmt.Else)
	}
	if _, ok := file.Stmts[1].(*ast.WhileStmt); !ok {
		t.Errorf("expected while, got %T", file.Stmts[1])
	}
	rng := file.Stmts[2].(*ast.ForeachStmt).Iter
	if _, ok := rng.(*ast.RangeExpr); !ok {
		t.Errorf("expected range iterator, got %T", rng)
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var a as int;", "int"},
		{"var a as int[];", "int[]"},
		{"var a as [string];", "[string]"},
		{"var a as string[int];", "string[int]"},
		{"var a as int[][string];", "int[][string]"},
		{"var a as function(int,string)bool;", "function(int,string)bool"},
		{"var a as crafttweaker.item.IItemStack;", "crafttweaker.item.IItemStack"},
		{"var a as A & B;", "A & B"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			file := parseOK(t, tt.input)
			decl := file.Stmts[0].(*ast.VarDecl)
			if got := ast.TypeString(decl.Type); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing semicolon", "var a = 1 var b = 2;"},
		{"dangling operator", "var a = 1 + ;"},
		{"unclosed block", "function f() { var a = 1;"},
		{"bad class member", "zenClass A { 42; }"},
		{"bad expand", "$foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.input)
			file := p.Parse()
			if file == nil {
				t.Fatal("expected a file even on errors")
			}
			if !p.Diagnostics().HasErrors() {
				t.Error("expected parse errors")
			}
		})
	}
}

func TestParseIncompleteMemberAccess(t *testing.T) {
	p := New("var s = \"abc\";\ns.\nvar t = 1;")
	file := p.Parse()
	if !p.Diagnostics().HasErrors() {
		t.Fatal("expected an error for the missing member name")
	}
	if len(file.Stmts) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(file.Stmts))
	}
	member, ok := file.Stmts[1].(*ast.ExprStmt).X.(*ast.MemberExpr)
	if !ok {
		t.Fatalf("expected member expression, got %T", file.Stmts[1].(*ast.ExprStmt).X)
	}
	if member.Name.Name != "" {
		t.Errorf("expected empty member name, got %q", member.Name.Name)
	}
	if !member.Contains(2, 2) {
		t.Error("expected the member span to cover the dot")
	}
	if _, ok := file.Stmts[2].(*ast.VarDecl); !ok {
		t.Errorf("expected recovery to parse the next declaration, got %T", file.Stmts[2])
	}
}

func TestParseSpans(t *testing.T) {
	file := parseOK(t, "var total = price * 2;")
	decl := file.Stmts[0].(*ast.VarDecl)
	if line, col := decl.Pos(); line != 1 || col != 1 {
		t.Errorf("expected decl at 1:1, got %d:%d", line, col)
	}
	if line, col := decl.End(); line != 1 || col != 23 {
		t.Errorf("expected decl end 1:23, got %d:%d", line, col)
	}
	bin := decl.Value.(*ast.BinaryExpr)
	if line, col := bin.Pos(); line != 1 || col != 13 {
		t.Errorf("expected binary at 1:13, got %d:%d", line, col)
	}
	if line, col := bin.End(); line != 1 || col != 22 {
		t.Errorf("expected binary end 1:22, got %d:%d", line, col)
	}
}

// render prints an expression with explicit grouping
func render(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.BasicLit:
		return n.Value
	case *ast.BinaryExpr:
		return "(" + render(n.Left) + " " + n.Op.String() + " " + render(n.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + n.Op.String() + render(n.X) + ")"
	case *ast.CastExpr:
		return "(" + render(n.X) + " as " + ast.TypeString(n.Type) + ")"
	case *ast.InstanceOfExpr:
		return "(" + render(n.X) + " instanceof " + ast.TypeString(n.Type) + ")"
	case *ast.RangeExpr:
		return "(" + render(n.From) + " .. " + render(n.To) + ")"
	case *ast.AssignExpr:
		return "(" + render(n.Left) + " " + n.Op.String() + " " + render(n.Right) + ")"
	case *ast.TernaryExpr:
		return "(" + render(n.Cond) + " ? " + render(n.Then) + " : " + render(n.Else) + ")"
	case *ast.MemberExpr:
		return render(n.X) + "." + n.Name.Name
	case *ast.CallExpr:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = render(a)
		}
		return render(n.Fun) + "(" + strings.Join(args, ", ") + ")"
	case *ast.IndexExpr:
		return render(n.X) + "[" + render(n.Index) + "]"
	default:
		return "?"
	}
}

func TestParseErrorHints(t *testing.T) {
	tests := []struct {
		input string
		hint  string
	}{
		{"var a = 1 var b = 2;", "did you forget a semicolon?"},
		{"var a = f(1;", "a parameter or argument list is not closed"},
	}
	for _, tt := range tests {
		p := New(tt.input)
		p.Parse()
		errs := p.Diagnostics().Errors()
		if len(errs) == 0 {
			t.Fatalf("%q: expected parse errors", tt.input)
		}
		if errs[0].Hint != tt.hint {
			t.Errorf("%q: expected hint %q, got %q", tt.input, tt.hint, errs[0].Hint)
		}
		if !strings.Contains(p.Diagnostics().Format(), "hint: "+tt.hint) {
			t.Errorf("%q: expected the hint in the formatted output", tt.input)
		}
	}
}
