package parser

import (
	"testing"

	"github.com/Chris-debuggs/cimple/internal/ast"
)

func parseOne(t *testing.T, source string) ast.Stmt {
	t.Helper()
	m := ParseSource(source)
	if len(m.Body) != 1 {
		t.Fatalf("wrong statement count. expected=1, got=%d", len(m.Body))
	}
	return m.Body[0]
}

func exprOf(t *testing.T, source string) ast.Expr {
	t.Helper()
	es, ok := parseOne(t, source).(*ast.ExprStmt)
	if !ok {
		t.Fatalf("not an expression statement: %T", parseOne(t, source))
	}
	return es.Expr
}

func TestParse_Precedence(t *testing.T) {
	e := exprOf(t, "1 + 2 * 3")
	add, ok := e.(*ast.BinaryOp)
	if !ok || add.Op != "+" {
		t.Fatalf("root - wrong node. expected=BinOp(+), got=%v", e)
	}
	mul, ok := add.Right.(*ast.BinaryOp)
	if !ok || mul.Op != "*" {
		t.Errorf("right - wrong node. expected=BinOp(*), got=%v", add.Right)
	}
}

func TestParse_ParensOverridePrecedence(t *testing.T) {
	e := exprOf(t, "(1 + 2) * 3")
	mul, ok := e.(*ast.BinaryOp)
	if !ok || mul.Op != "*" {
		t.Fatalf("root - wrong node. expected=BinOp(*), got=%v", e)
	}
	if add, ok := mul.Left.(*ast.BinaryOp); !ok || add.Op != "+" {
		t.Errorf("left - wrong node. expected=BinOp(+), got=%v", mul.Left)
	}
}

func TestParse_LogicalAboveComparison(t *testing.T) {
	e := exprOf(t, "a and b == c")
	and, ok := e.(*ast.LogicalExpr)
	if !ok || and.Op != "and" {
		t.Fatalf("root - wrong node. expected=Logical(and), got=%v", e)
	}
	if cmp, ok := and.Right.(*ast.BinaryOp); !ok || cmp.Op != "==" {
		t.Errorf("right - wrong node. expected=BinOp(==), got=%v", and.Right)
	}
}

func TestParse_OrOfAnds(t *testing.T) {
	e := exprOf(t, "a or b and c")
	or, ok := e.(*ast.LogicalExpr)
	if !ok || or.Op != "or" {
		t.Fatalf("root - wrong node. expected=Logical(or), got=%v", e)
	}
	if and, ok := or.Right.(*ast.LogicalExpr); !ok || and.Op != "and" {
		t.Errorf("right - wrong node. expected=Logical(and), got=%v", or.Right)
	}
}

func TestParse_NotTakesFullComparison(t *testing.T) {
	e := exprOf(t, "not a == b")
	not, ok := e.(*ast.UnaryOp)
	if !ok || not.Op != "not" {
		t.Fatalf("root - wrong node. expected=UnaryOp(not), got=%v", e)
	}
	if cmp, ok := not.Operand.(*ast.BinaryOp); !ok || cmp.Op != "==" {
		t.Errorf("operand - wrong node. expected=BinOp(==), got=%v", not.Operand)
	}
}

func TestParse_ChainedUnaryMinus(t *testing.T) {
	e := exprOf(t, "--1")
	outer, ok := e.(*ast.UnaryOp)
	if !ok || outer.Op != "-" {
		t.Fatalf("root - wrong node. expected=UnaryOp(-), got=%v", e)
	}
	if _, ok := outer.Operand.(*ast.UnaryOp); !ok {
		t.Errorf("operand - wrong node. expected=UnaryOp(-), got=%v", outer.Operand)
	}
}

func TestParse_AssignmentVsExpression(t *testing.T) {
	if _, ok := parseOne(t, "x = 1").(*ast.AssignStmt); !ok {
		t.Error("bare name on the LHS did not parse as an assignment")
	}
	if _, ok := parseOne(t, "f(1)").(*ast.ExprStmt); !ok {
		t.Error("call did not parse as an expression statement")
	}
}

func TestParse_FuncDef(t *testing.T) {
	stmt := parseOne(t, "def add(a, b):\n    return a + b\n")
	fd, ok := stmt.(*ast.FuncDef)
	if !ok {
		t.Fatalf("wrong node. expected=FuncDef, got=%T", stmt)
	}
	if fd.Name != "add" {
		t.Errorf("wrong name. expected=%q, got=%q", "add", fd.Name)
	}
	if len(fd.Params) != 2 || fd.Params[0] != "a" || fd.Params[1] != "b" {
		t.Errorf("wrong params. expected=[a b], got=%v", fd.Params)
	}
	if len(fd.Body) != 1 {
		t.Fatalf("wrong body length. expected=1, got=%d", len(fd.Body))
	}
	if _, ok := fd.Body[0].(*ast.ReturnStmt); !ok {
		t.Errorf("body[0] - wrong node. expected=ReturnStmt, got=%T", fd.Body[0])
	}
}

func TestParse_IfElifElse(t *testing.T) {
	src := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
	stmt := parseOne(t, src)
	ifs, ok := stmt.(*ast.IfStmt)
	if !ok {
		t.Fatalf("wrong node. expected=IfStmt, got=%T", stmt)
	}
	if len(ifs.Branches) != 3 {
		t.Fatalf("wrong branch count. expected=3, got=%d", len(ifs.Branches))
	}
	if ifs.Branches[0].Condition == nil || ifs.Branches[1].Condition == nil {
		t.Error("if/elif branches lost their conditions")
	}
	if ifs.Branches[2].Condition != nil {
		t.Error("else branch should have a nil condition")
	}
}

func TestParse_While(t *testing.T) {
	stmt := parseOne(t, "while i < 3:\n    i = i + 1\n")
	ws, ok := stmt.(*ast.WhileStmt)
	if !ok {
		t.Fatalf("wrong node. expected=WhileStmt, got=%T", stmt)
	}
	if cmp, ok := ws.Condition.(*ast.BinaryOp); !ok || cmp.Op != "<" {
		t.Errorf("condition - wrong node. expected=BinOp(<), got=%v", ws.Condition)
	}
	if len(ws.Body) != 1 {
		t.Errorf("wrong body length. expected=1, got=%d", len(ws.Body))
	}
}

func TestParse_ReturnForms(t *testing.T) {
	bare := parseOne(t, "return")
	if rs, ok := bare.(*ast.ReturnStmt); !ok || rs.Value != nil {
		t.Errorf("bare return - wrong node. got=%v", bare)
	}
	valued := parseOne(t, "return 42")
	if rs, ok := valued.(*ast.ReturnStmt); !ok || rs.Value == nil {
		t.Errorf("valued return - wrong node. got=%v", valued)
	}
}

func TestParse_BreakContinue(t *testing.T) {
	if _, ok := parseOne(t, "break").(*ast.BreakStmt); !ok {
		t.Error("break did not parse")
	}
	if _, ok := parseOne(t, "continue").(*ast.ContinueStmt); !ok {
		t.Error("continue did not parse")
	}
}

func TestParse_ArglistToleratesStrayCommas(t *testing.T) {
	e := exprOf(t, "f(1,, 2,)")
	call, ok := e.(*ast.CallExpr)
	if !ok {
		t.Fatalf("wrong node. expected=CallExpr, got=%v", e)
	}
	if len(call.Args) != 2 {
		t.Errorf("wrong arg count. expected=2, got=%d", len(call.Args))
	}
}

func TestParse_TruncatesOnUnrecognizedToken(t *testing.T) {
	// The ']' has no production; parsing keeps what it has and stops.
	m := ParseSource("x = 1\n]\ny = 2\n")
	if len(m.Body) != 1 {
		t.Fatalf("wrong statement count. expected=1, got=%d", len(m.Body))
	}
	if _, ok := m.Body[0].(*ast.AssignStmt); !ok {
		t.Errorf("body[0] - wrong node. expected=AssignStmt, got=%T", m.Body[0])
	}
}

func TestParse_NestedBlocks(t *testing.T) {
	src := "def f(x):\n    while x > 0:\n        if x == 1:\n            return x\n        x = x - 1\n    return 0\n"
	m := ParseSource(src)
	if len(m.Body) != 1 {
		t.Fatalf("wrong statement count. expected=1, got=%d", len(m.Body))
	}
	fd := m.Body[0].(*ast.FuncDef)
	if len(fd.Body) != 2 {
		t.Fatalf("wrong function body length. expected=2, got=%d", len(fd.Body))
	}
	ws, ok := fd.Body[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("body[0] - wrong node. expected=WhileStmt, got=%T", fd.Body[0])
	}
	if len(ws.Body) != 2 {
		t.Errorf("wrong loop body length. expected=2, got=%d", len(ws.Body))
	}
}

func TestParse_CommentsSkipped(t *testing.T) {
	m := ParseSource("# header\nx = 1 # trailing\n# footer\n")
	if len(m.Body) != 1 {
		t.Fatalf("wrong statement count. expected=1, got=%d", len(m.Body))
	}
}
