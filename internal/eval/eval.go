package eval

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/scope"
	"github.com/Chris-debuggs/cimple/internal/types"
)

// Evaluator executes a module's statements against a persistent scope
// stack and function table. A REPL reuses one Evaluator across turns, so
// RunModule may be called repeatedly and definitions accumulate.
type Evaluator struct {
	functions map[string]*ast.FuncDef
	scopes    *scope.Stack[Value]
	env       *types.TypeEnv

	// Out receives print output; ErrOut receives runtime failure
	// reports such as division by zero.
	Out    io.Writer
	ErrOut io.Writer
}

// New creates an evaluator. The TypeEnv is accepted for interface
// symmetry with the checker and a codegen backend; runtime semantics
// never consult it.
func New(env *types.TypeEnv) *Evaluator {
	return &Evaluator{
		functions: make(map[string]*ast.FuncDef),
		scopes:    scope.NewStack[Value](),
		env:       env,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
	}
}

// Scopes exposes the evaluator's scope stack for inspection in a REPL
func (ev *Evaluator) Scopes() *scope.Stack[Value] {
	return ev.scopes
}

// RegisterFunctions adds a module's top-level function definitions to the
// function table. A redefinition replaces the previous one.
func (ev *Evaluator) RegisterFunctions(module *ast.Module) {
	for _, stmt := range module.Body {
		if fd, ok := stmt.(*ast.FuncDef); ok {
			ev.functions[fd.Name] = fd
		}
	}
}

// RunModule registers the module's functions, executes its remaining
// top-level statements in order, and returns the value of the last
// expression statement, if any, for display.
func (ev *Evaluator) RunModule(module *ast.Module) (Value, bool) {
	ev.RegisterFunctions(module)

	var last Value
	var hasLast bool
	for _, stmt := range module.Body {
		if _, ok := stmt.(*ast.FuncDef); ok {
			continue
		}
		if es, ok := stmt.(*ast.ExprStmt); ok {
			last, hasLast = ev.EvalExpr(es.Expr)
			continue
		}
		last, hasLast = Value{}, false
		res := ev.EvalStmt(stmt)
		if res.IsNormal() {
			continue
		}
		if res.IsReturn() {
			return res.ReturnValue()
		}
		ev.reportf("invalid control flow: break or continue outside of a loop")
		return Value{}, false
	}
	return last, hasLast
}

// EvalStmt executes one statement and returns its control-flow result
func (ev *Evaluator) EvalStmt(stmt ast.Stmt) StmtResult {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		ev.EvalExpr(s.Expr)
		return Normal()

	case *ast.AssignStmt:
		// A failed right-hand side writes nothing.
		if v, ok := ev.EvalExpr(s.Value); ok {
			ev.scopes.SetLocal(s.Target, v)
		}
		return Normal()

	case *ast.ReturnStmt:
		if s.Value == nil {
			return ReturnOf(Value{}, false)
		}
		v, ok := ev.EvalExpr(s.Value)
		return ReturnOf(v, ok)

	case *ast.BreakStmt:
		return BreakSignal()

	case *ast.ContinueStmt:
		return ContinueSignal()

	case *ast.FuncDef:
		ev.functions[s.Name] = s
		return Normal()

	case *ast.IfStmt:
		return ev.evalIf(s)

	case *ast.WhileStmt:
		return ev.evalWhile(s)
	}
	return Normal()
}

// evalIf tries branches in order and runs the first whose condition is
// truthy (an else branch has no condition and always matches). The taken
// body runs in a fresh block scope; its result propagates unchanged.
func (ev *Evaluator) evalIf(s *ast.IfStmt) StmtResult {
	for _, branch := range s.Branches {
		if branch.Condition != nil {
			cond, ok := ev.EvalExpr(branch.Condition)
			if !ok || !cond.Truthy() {
				continue
			}
		}
		return ev.evalBranchBody(branch.Body)
	}
	return Normal()
}

func (ev *Evaluator) evalBranchBody(body []ast.Stmt) StmtResult {
	ev.scopes.Push(scope.Block)
	defer ev.scopes.Pop()
	for _, stmt := range body {
		if res := ev.EvalStmt(stmt); !res.IsNormal() {
			return res
		}
	}
	return Normal()
}

// evalWhile owns a single block scope for the loop's whole lifetime.
// Break stops the loop, Continue re-checks the condition, and Return
// propagates upward with the frame released on the way out.
func (ev *Evaluator) evalWhile(s *ast.WhileStmt) StmtResult {
	ev.scopes.Push(scope.Block)
	defer ev.scopes.Pop()
	for {
		cond, ok := ev.EvalExpr(s.Condition)
		if !ok || !cond.Truthy() {
			return Normal()
		}
	body:
		for _, stmt := range s.Body {
			res := ev.EvalStmt(stmt)
			switch {
			case res.IsBreak():
				return Normal()
			case res.IsContinue():
				break body
			case res.IsReturn():
				return res
			}
		}
	}
}

// EvalExpr evaluates an expression. The second return is false on any
// failure: unbound name, unknown function, incompatible operands, or
// division by zero. Failure propagates; enclosing expressions fail too.
func (ev *Evaluator) EvalExpr(expr ast.Expr) (Value, bool) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return evalNumber(e.Value)

	case *ast.StringLiteral:
		return StringValue(stripQuotes(e.Value)), true

	case *ast.BoolLiteral:
		return BoolValue(e.Value), true

	case *ast.VarRef:
		return ev.scopes.Lookup(e.Name)

	case *ast.UnaryOp:
		return ev.evalUnary(e)

	case *ast.BinaryOp:
		return ev.evalBinary(e)

	case *ast.LogicalExpr:
		return ev.evalLogical(e)

	case *ast.CallExpr:
		return ev.evalCall(e)
	}
	return Value{}, false
}

func (ev *Evaluator) evalUnary(e *ast.UnaryOp) (Value, bool) {
	v, ok := ev.EvalExpr(e.Operand)
	if !ok {
		return Value{}, false
	}
	switch e.Op {
	case "not":
		return BoolValue(!v.Truthy()), true
	case "-":
		switch v.Kind {
		case KindInt:
			return IntValue(-v.Int), true
		case KindFloat:
			return FloatValue(-v.Float), true
		}
	}
	return Value{}, false
}

func (ev *Evaluator) evalBinary(e *ast.BinaryOp) (Value, bool) {
	left, ok := ev.EvalExpr(e.Left)
	if !ok {
		return Value{}, false
	}
	right, ok := ev.EvalExpr(e.Right)
	if !ok {
		return Value{}, false
	}

	if isComparison(e.Op) {
		return evalComparison(e.Op, left, right)
	}

	if left.Kind == KindString && right.Kind == KindString && e.Op == "+" {
		return StringValue(left.Str + right.Str), true
	}

	if !left.IsNumeric() || !right.IsNumeric() {
		return Value{}, false
	}
	return ev.evalArithmetic(e.Op, left, right)
}

// evalArithmetic applies +,-,*,/ to numeric operands. Both-Int operations
// stay Int, except division, which stays Int only when evenly divisible.
func (ev *Evaluator) evalArithmetic(op string, left, right Value) (Value, bool) {
	if left.Kind == KindInt && right.Kind == KindInt {
		a, b := left.Int, right.Int
		switch op {
		case "+":
			return IntValue(a + b), true
		case "-":
			return IntValue(a - b), true
		case "*":
			return IntValue(a * b), true
		case "/":
			if b == 0 {
				ev.reportf("division by zero")
				return Value{}, false
			}
			if a%b == 0 {
				return IntValue(a / b), true
			}
			return FloatValue(float64(a) / float64(b)), true
		}
		return Value{}, false
	}

	a, b := left.AsFloat(), right.AsFloat()
	switch op {
	case "+":
		return FloatValue(a + b), true
	case "-":
		return FloatValue(a - b), true
	case "*":
		return FloatValue(a * b), true
	case "/":
		if b == 0 {
			ev.reportf("division by zero")
			return Value{}, false
		}
		return FloatValue(a / b), true
	}
	return Value{}, false
}

func evalComparison(op string, left, right Value) (Value, bool) {
	switch {
	case left.IsNumeric() && right.IsNumeric():
		a, b := left.AsFloat(), right.AsFloat()
		switch op {
		case "==":
			return BoolValue(a == b), true
		case "!=":
			return BoolValue(a != b), true
		case "<":
			return BoolValue(a < b), true
		case ">":
			return BoolValue(a > b), true
		case "<=":
			return BoolValue(a <= b), true
		case ">=":
			return BoolValue(a >= b), true
		}

	case left.Kind == KindString && right.Kind == KindString:
		a, b := left.Str, right.Str
		switch op {
		case "==":
			return BoolValue(a == b), true
		case "!=":
			return BoolValue(a != b), true
		case "<":
			return BoolValue(a < b), true
		case ">":
			return BoolValue(a > b), true
		case "<=":
			return BoolValue(a <= b), true
		case ">=":
			return BoolValue(a >= b), true
		}

	case left.Kind == KindBool && right.Kind == KindBool:
		switch op {
		case "==":
			return BoolValue(left.Bool == right.Bool), true
		case "!=":
			return BoolValue(left.Bool != right.Bool), true
		}
	}
	return Value{}, false
}

// evalLogical short-circuits: the right operand is evaluated only when
// the left side doesn't decide the result. The result is always Bool.
func (ev *Evaluator) evalLogical(e *ast.LogicalExpr) (Value, bool) {
	left, ok := ev.EvalExpr(e.Left)
	if !ok {
		return Value{}, false
	}
	switch e.Op {
	case "and":
		if !left.Truthy() {
			return BoolValue(false), true
		}
	case "or":
		if left.Truthy() {
			return BoolValue(true), true
		}
	default:
		return Value{}, false
	}
	right, ok := ev.EvalExpr(e.Right)
	if !ok {
		return Value{}, false
	}
	return BoolValue(right.Truthy()), true
}

func (ev *Evaluator) evalCall(e *ast.CallExpr) (Value, bool) {
	callee, ok := e.Callee.(*ast.VarRef)
	if !ok {
		return Value{}, false
	}

	if callee.Name == "print" {
		return ev.evalPrint(e.Args)
	}

	fd, ok := ev.functions[callee.Name]
	if !ok {
		ev.reportf("unknown function '%s'", callee.Name)
		return Value{}, false
	}

	// Arguments evaluate in the caller's scope, left to right; any
	// failure aborts before the callee is entered.
	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, ok := ev.EvalExpr(arg)
		if !ok {
			return Value{}, false
		}
		args = append(args, v)
	}

	ev.scopes.Push(scope.Function)
	defer ev.scopes.Pop()
	for i, p := range fd.Params {
		if i < len(args) {
			ev.scopes.SetLocal(p, args[i])
		}
	}

	for _, stmt := range fd.Body {
		res := ev.EvalStmt(stmt)
		switch {
		case res.IsReturn():
			return res.ReturnValue()
		case res.IsBreak(), res.IsContinue():
			ev.reportf("invalid control flow: break or continue escaped function '%s'", fd.Name)
			return Value{}, false
		}
	}
	return Value{}, false
}

// evalPrint writes the rendered arguments with no separator and one
// trailing newline. Arguments that fail to evaluate are skipped; the
// newline is written regardless. It produces no value.
func (ev *Evaluator) evalPrint(args []ast.Expr) (Value, bool) {
	var sb strings.Builder
	for _, arg := range args {
		if v, ok := ev.EvalExpr(arg); ok {
			sb.WriteString(v.Render())
		}
	}
	sb.WriteString("\n")
	io.WriteString(ev.Out, sb.String())
	return Value{}, false
}

func (ev *Evaluator) reportf(format string, args ...any) {
	fmt.Fprintf(ev.ErrOut, format+"\n", args...)
}

func evalNumber(lexeme string) (Value, bool) {
	if strings.Contains(lexeme, ".") {
		f, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return Value{}, false
		}
		return FloatValue(f), true
	}
	n, err := strconv.ParseInt(lexeme, 10, 64)
	if err != nil {
		return Value{}, false
	}
	return IntValue(n), true
}

func stripQuotes(lexeme string) string {
	if len(lexeme) >= 2 {
		first := lexeme[0]
		if (first == '"' || first == '\'') && lexeme[len(lexeme)-1] == first {
			return lexeme[1 : len(lexeme)-1]
		}
	}
	if len(lexeme) >= 1 && (lexeme[0] == '"' || lexeme[0] == '\'') {
		return lexeme[1:]
	}
	return lexeme
}

func isComparison(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}
