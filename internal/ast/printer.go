package ast

import (
	"fmt"
	"strings"
)

// Print returns a tree-like string representation of the AST for debugging
func Print(node Node) string {
	var sb strings.Builder
	printNode(&sb, node, 0)
	return sb.String()
}

func printNode(sb *strings.Builder, node Node, indent int) {
	if node == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)
	line, col := node.Pos()

	switch n := node.(type) {
	case *File:
		sb.WriteString(prefix + "File\n")

	case *ImportDecl:
		alias := ""
		if n.Alias != nil {
			alias = " as " + n.Alias.Name
		}
		sb.WriteString(fmt.Sprintf("%sImport: %s%s\n", prefix, strings.Join(n.Path, "."), alias))
		return

	case *VarDecl:
		sb.WriteString(fmt.Sprintf("%sVarDecl: %s %s%s @%d:%d\n", prefix, n.Kind, identName(n.Name), typeSuffix(n.Type), line, col))
		printNode(sb, n.Value, indent+1)
		return

	case *Param:
		sb.WriteString(fmt.Sprintf("%sParam: %s%s\n", prefix, identName(n.Name), typeSuffix(n.Type)))
		printNode(sb, n.Default, indent+1)
		return

	case *FuncDecl:
		static := ""
		if n.Static {
			static = " (static)"
		}
		sb.WriteString(fmt.Sprintf("%sFunction: %s%s%s @%d:%d\n", prefix, identName(n.Name), static, typeSuffix(n.Return), line, col))
		printParams(sb, n.Params, indent)
		printBlock(sb, n.Body, indent+1)
		return

	case *ExpandFuncDecl:
		sb.WriteString(fmt.Sprintf("%sExpand: %s$%s%s @%d:%d\n", prefix, TypeString(n.Target), identName(n.Name), typeSuffix(n.Return), line, col))
		printParams(sb, n.Params, indent)
		printBlock(sb, n.Body, indent+1)
		return

	case *ClassDecl:
		supers := make([]string, len(n.Supers))
		for i, s := range n.Supers {
			supers[i] = TypeString(s)
		}
		extends := ""
		if len(supers) > 0 {
			extends = " extends " + strings.Join(supers, ", ")
		}
		sb.WriteString(fmt.Sprintf("%sClass: %s%s @%d:%d\n", prefix, identName(n.Name), extends, line, col))
		for _, m := range n.Members {
			printNode(sb, m, indent+1)
		}
		return

	case *ConstructorDecl:
		sb.WriteString(fmt.Sprintf("%sConstructor @%d:%d\n", prefix, line, col))
		printParams(sb, n.Params, indent)
		printBlock(sb, n.Body, indent+1)
		return

	case *OperatorDecl:
		sb.WriteString(fmt.Sprintf("%sOperator: %s%s @%d:%d\n", prefix, n.Literal, typeSuffix(n.Return), line, col))
		printParams(sb, n.Params, indent)
		printBlock(sb, n.Body, indent+1)
		return

	case *Block:
		sb.WriteString(prefix + "Block\n")

	case *ExprStmt:
		sb.WriteString(prefix + "ExprStmt\n")

	case *ReturnStmt:
		sb.WriteString(prefix + "Return\n")

	case *IfStmt:
		sb.WriteString(prefix + "If\n")

	case *ForeachStmt:
		names := make([]string, len(n.Vars))
		for i, v := range n.Vars {
			names[i] = v.Name
		}
		sb.WriteString(fmt.Sprintf("%sForeach: %s\n", prefix, strings.Join(names, ", ")))
		printNode(sb, n.Iter, indent+1)
		printBlock(sb, n.Body, indent+1)
		return

	case *WhileStmt:
		sb.WriteString(prefix + "While\n")

	case *BreakStmt:
		sb.WriteString(prefix + "Break\n")

	case *ContinueStmt:
		sb.WriteString(prefix + "Continue\n")

	case *BadStmt:
		sb.WriteString(fmt.Sprintf("%sBadStmt @%d:%d\n", prefix, line, col))

	case *Ident:
		sb.WriteString(fmt.Sprintf("%sIdent: %s\n", prefix, n.Name))

	case *BasicLit:
		sb.WriteString(fmt.Sprintf("%sLiteral(%s): %s\n", prefix, n.Kind, n.Value))

	case *ThisExpr:
		sb.WriteString(prefix + "This\n")

	case *ParenExpr:
		sb.WriteString(prefix + "Paren\n")

	case *ArrayLit:
		sb.WriteString(fmt.Sprintf("%sArray[%d]\n", prefix, len(n.Elems)))

	case *MapLit:
		sb.WriteString(fmt.Sprintf("%sMap{%d}\n", prefix, len(n.Entries)))

	case *MapEntry:
		sb.WriteString(prefix + "Entry\n")

	case *BracketHandler:
		sb.WriteString(fmt.Sprintf("%sBracket: <%s>\n", prefix, n.Raw))

	case *FuncLit:
		sb.WriteString(fmt.Sprintf("%sLambda%s\n", prefix, typeSuffix(n.Return)))
		printParams(sb, n.Params, indent)
		printBlock(sb, n.Body, indent+1)
		return

	case *MemberExpr:
		sb.WriteString(fmt.Sprintf("%sMember: .%s\n", prefix, identName(n.Name)))
		printNode(sb, n.X, indent+1)
		return

	case *IndexExpr:
		sb.WriteString(prefix + "Index\n")

	case *CallExpr:
		sb.WriteString(fmt.Sprintf("%sCall(%d)\n", prefix, len(n.Args)))

	case *UnaryExpr:
		sb.WriteString(fmt.Sprintf("%sUnary: %s\n", prefix, n.Op))

	case *BinaryExpr:
		sb.WriteString(fmt.Sprintf("%sBinary: %s\n", prefix, n.Op))

	case *RangeExpr:
		sb.WriteString(prefix + "Range\n")

	case *InstanceOfExpr:
		sb.WriteString(fmt.Sprintf("%sInstanceOf: %s\n", prefix, TypeString(n.Type)))
		printNode(sb, n.X, indent+1)
		return

	case *CastExpr:
		sb.WriteString(fmt.Sprintf("%sCast: %s\n", prefix, TypeString(n.Type)))
		printNode(sb, n.X, indent+1)
		return

	case *TernaryExpr:
		sb.WriteString(prefix + "Ternary\n")

	case *AssignExpr:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, n.Op))

	case *BadExpr:
		sb.WriteString(fmt.Sprintf("%sBadExpr @%d:%d\n", prefix, line, col))

	case TypeExpr:
		sb.WriteString(fmt.Sprintf("%sType: %s\n", prefix, TypeString(n)))
		return

	default:
		sb.WriteString(fmt.Sprintf("%s%T\n", prefix, node))
		return
	}

	for _, c := range Children(node) {
		printNode(sb, c, indent+1)
	}
}

func printParams(sb *strings.Builder, params []*Param, indent int) {
	prefix := strings.Repeat("  ", indent)
	if len(params) == 0 {
		sb.WriteString(fmt.Sprintf("%s  Params: none\n", prefix))
		return
	}
	sb.WriteString(fmt.Sprintf("%s  Params:\n", prefix))
	for _, p := range params {
		printNode(sb, p, indent+2)
	}
}

func identName(id *Ident) string {
	if id == nil {
		return "<missing>"
	}
	return id.Name
}

func typeSuffix(t TypeExpr) string {
	if t == nil {
		return ""
	}
	return " as " + TypeString(t)
}

func printBlock(sb *strings.Builder, b *Block, indent int) {
	if b != nil {
		printNode(sb, b, indent)
	}
}
