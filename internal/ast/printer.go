package ast

import (
	"fmt"
	"strings"
)

// Compact single-line forms, used by error paths and tests.

func (n *NumberLiteral) String() string { return "Number(" + n.Value + ")" }
func (n *StringLiteral) String() string { return "String(" + n.Value + ")" }

func (n *BoolLiteral) String() string {
	if n.Value {
		return "Bool(True)"
	}
	return "Bool(False)"
}

func (n *VarRef) String() string      { return "Var(" + n.Name + ")" }
func (n *UnaryOp) String() string     { return "UnaryOp(" + n.Op + ")" }
func (n *BinaryOp) String() string    { return "BinOp(" + n.Op + ")" }
func (n *LogicalExpr) String() string { return "Logical(" + n.Op + ")" }
func (n *CallExpr) String() string    { return "Call(...)" }

func (n *ExprStmt) String() string     { return "ExprStmt" }
func (n *AssignStmt) String() string   { return "AssignStmt(" + n.Target + ")" }
func (n *ReturnStmt) String() string   { return "ReturnStmt" }
func (n *BreakStmt) String() string    { return "BreakStmt" }
func (n *ContinueStmt) String() string { return "ContinueStmt" }
func (n *FuncDef) String() string      { return "FuncDef(" + n.Name + ")" }
func (n *IfStmt) String() string       { return "IfStmt" }
func (n *WhileStmt) String() string    { return "WhileStmt" }

// Print returns a tree-like string representation of a module for debugging
func Print(m *Module) string {
	var sb strings.Builder
	sb.WriteString("Module\n")
	for _, s := range m.Body {
		printStmt(&sb, s, 1)
	}
	return sb.String()
}

func printStmt(sb *strings.Builder, stmt Stmt, indent int) {
	if stmt == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := stmt.(type) {
	case *ExprStmt:
		sb.WriteString(prefix + "ExprStmt\n")
		printExpr(sb, n.Expr, indent+1)

	case *AssignStmt:
		sb.WriteString(fmt.Sprintf("%sAssign: %s\n", prefix, n.Target))
		printExpr(sb, n.Value, indent+1)

	case *ReturnStmt:
		sb.WriteString(prefix + "Return\n")
		printExpr(sb, n.Value, indent+1)

	case *BreakStmt:
		sb.WriteString(prefix + "Break\n")

	case *ContinueStmt:
		sb.WriteString(prefix + "Continue\n")

	case *FuncDef:
		sb.WriteString(fmt.Sprintf("%sFuncDef: %s(%s)\n", prefix, n.Name, strings.Join(n.Params, ", ")))
		for _, s := range n.Body {
			printStmt(sb, s, indent+1)
		}

	case *IfStmt:
		sb.WriteString(prefix + "If\n")
		for _, br := range n.Branches {
			if br.Condition != nil {
				sb.WriteString(prefix + "  Branch:\n")
				printExpr(sb, br.Condition, indent+2)
			} else {
				sb.WriteString(prefix + "  Else:\n")
			}
			for _, s := range br.Body {
				printStmt(sb, s, indent+2)
			}
		}

	case *WhileStmt:
		sb.WriteString(prefix + "While\n")
		printExpr(sb, n.Condition, indent+1)
		for _, s := range n.Body {
			printStmt(sb, s, indent+1)
		}
	}
}

func printExpr(sb *strings.Builder, expr Expr, indent int) {
	if expr == nil {
		return
	}

	prefix := strings.Repeat("  ", indent)

	switch n := expr.(type) {
	case *UnaryOp:
		sb.WriteString(fmt.Sprintf("%sUnary: %s\n", prefix, n.Op))
		printExpr(sb, n.Operand, indent+1)

	case *BinaryOp:
		sb.WriteString(fmt.Sprintf("%sBinOp: %s\n", prefix, n.Op))
		printExpr(sb, n.Left, indent+1)
		printExpr(sb, n.Right, indent+1)

	case *LogicalExpr:
		sb.WriteString(fmt.Sprintf("%sLogical: %s\n", prefix, n.Op))
		printExpr(sb, n.Left, indent+1)
		printExpr(sb, n.Right, indent+1)

	case *CallExpr:
		sb.WriteString(prefix + "Call\n")
		printExpr(sb, n.Callee, indent+1)
		for _, arg := range n.Args {
			printExpr(sb, arg, indent+1)
		}

	default:
		sb.WriteString(prefix + n.String() + "\n")
	}
}
