package checker

import (
	"fmt"
	"strings"

	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/diagnostic"
	"github.com/Chris-debuggs/cimple/internal/scope"
	"github.com/Chris-debuggs/cimple/internal/types"
)

// Checker validates a module against an inferred TypeEnv. It collects
// diagnostics without aborting traversal, so independent statements are
// all checked in one pass.
type Checker struct {
	module *ast.Module
	env    *types.TypeEnv
	diag   *diagnostic.Diagnostics
	scopes *scope.Stack[types.TypeKind]
	inLoop bool
	ran    bool
}

// New creates a checker for a module and its inferred environment
func New(module *ast.Module, env *types.TypeEnv) *Checker {
	c := &Checker{
		module: module,
		env:    env,
		diag:   diagnostic.New(),
		scopes: scope.NewStack[types.TypeKind](),
	}
	for name, t := range env.Vars {
		c.scopes.SetGlobal(name, t)
	}
	return c
}

// Check runs the checker and returns a single summary error if any
// diagnostics were produced.
func (c *Checker) Check() error {
	c.run()
	if c.diag.HasErrors() {
		return fmt.Errorf("type checking failed with %d error(s):\n%s",
			c.diag.ErrorCount(), c.diag.Format())
	}
	return nil
}

// Errors runs the checker and returns all diagnostic messages. It never
// fails; an empty slice means the module checked clean.
func (c *Checker) Errors() []string {
	c.run()
	return c.diag.Strings()
}

// Diagnostics exposes the underlying collection for styled rendering
func (c *Checker) Diagnostics() *diagnostic.Diagnostics {
	c.run()
	return c.diag
}

func (c *Checker) run() {
	if c.ran {
		return
	}
	c.ran = true
	for _, stmt := range c.module.Body {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		c.checkExpr(s.Expr)

	case *ast.AssignStmt:
		t := c.checkExpr(s.Value)
		if existing, ok := c.scopes.LookupCurrent(s.Target); ok {
			if existing != types.Unknown && t != types.Unknown && existing != t &&
				!(existing.IsNumeric() && t.IsNumeric()) {
				c.diag.Errorf("cannot reassign '%s' from %s to %s", s.Target, existing, t)
			}
			t = types.Unify(existing, t)
		}
		c.scopes.SetLocal(s.Target, t)

	case *ast.ReturnStmt:
		if s.Value != nil {
			c.checkExpr(s.Value)
		}

	case *ast.BreakStmt:
		if !c.inLoop {
			c.diag.Errorf("'break' outside of a loop")
		}

	case *ast.ContinueStmt:
		if !c.inLoop {
			c.diag.Errorf("'continue' outside of a loop")
		}

	case *ast.FuncDef:
		c.checkFuncDef(s)

	case *ast.IfStmt:
		for _, branch := range s.Branches {
			if branch.Condition != nil {
				c.checkCondition(branch.Condition, "if")
			}
			c.checkBlock(branch.Body)
		}

	case *ast.WhileStmt:
		c.checkCondition(s.Condition, "while")
		savedLoop := c.inLoop
		c.inLoop = true
		c.checkBlock(s.Body)
		c.inLoop = savedLoop
	}
}

// checkFuncDef checks a function body inside a fresh function frame.
// Loop context does not cross function boundaries: a nested def
// resets it even when lexically inside a while body.
func (c *Checker) checkFuncDef(fd *ast.FuncDef) {
	savedLoop := c.inLoop
	c.inLoop = false
	defer func() { c.inLoop = savedLoop }()

	c.scopes.Push(scope.Function)
	defer c.scopes.Pop()
	for _, p := range fd.Params {
		c.scopes.SetLocal(p, types.Unknown)
	}
	for _, stmt := range fd.Body {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkBlock(body []ast.Stmt) {
	c.scopes.Push(scope.Block)
	defer c.scopes.Pop()
	for _, stmt := range body {
		c.checkStmt(stmt)
	}
}

// checkCondition verifies that a condition's type has a defined boolean
// conversion: Unknown, Bool, Int, Float, or String.
func (c *Checker) checkCondition(cond ast.Expr, ctx string) {
	t := c.checkExpr(cond)
	switch t {
	case types.Unknown, types.Bool, types.Int, types.Float, types.String:
	default:
		c.diag.Errorf("%s condition has type %s, which has no truth value", ctx, t)
	}
}

func (c *Checker) checkExpr(expr ast.Expr) types.TypeKind {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		if strings.Contains(e.Value, ".") {
			return types.Float
		}
		return types.Int

	case *ast.StringLiteral:
		return types.String

	case *ast.BoolLiteral:
		return types.Bool

	case *ast.VarRef:
		if t, ok := c.scopes.Lookup(e.Name); ok {
			return t
		}
		return types.Unknown

	case *ast.UnaryOp:
		t := c.checkExpr(e.Operand)
		if e.Op == "not" {
			return types.Bool
		}
		if t != types.Unknown && !t.IsNumeric() {
			c.diag.Errorf("unary '-' requires a numeric operand, got %s", t)
			return types.Unknown
		}
		if t.IsNumeric() {
			return t
		}
		return types.Unknown

	case *ast.BinaryOp:
		return c.checkBinary(e)

	case *ast.LogicalExpr:
		c.checkExpr(e.Left)
		c.checkExpr(e.Right)
		return types.Bool

	case *ast.CallExpr:
		return c.checkCall(e)
	}
	return types.Unknown
}

func (c *Checker) checkBinary(e *ast.BinaryOp) types.TypeKind {
	left := c.checkExpr(e.Left)
	right := c.checkExpr(e.Right)

	if isComparisonOp(e.Op) {
		c.checkComparison(e.Op, left, right)
		return types.Bool
	}

	// String concatenation is the only string operator, and it never
	// stringifies the other side implicitly.
	if e.Op == "+" {
		if left == types.String && right == types.String {
			return types.String
		}
		if left == types.String || right == types.String {
			c.diag.Errorf("cannot concatenate %s and %s", left, right)
			return types.Unknown
		}
	}

	if left != types.Unknown && !left.IsNumeric() {
		c.diag.Errorf("operator '%s' requires numeric operands, got %s", e.Op, left)
		return types.Unknown
	}
	if right != types.Unknown && !right.IsNumeric() {
		c.diag.Errorf("operator '%s' requires numeric operands, got %s", e.Op, right)
		return types.Unknown
	}
	return binaryResultType(e.Op, left, right)
}

func (c *Checker) checkComparison(op string, left, right types.TypeKind) {
	if left == types.Unknown || right == types.Unknown {
		return
	}
	if left.IsNumeric() && right.IsNumeric() {
		return
	}
	if left == types.String && right == types.String {
		return
	}
	if left == types.Bool && right == types.Bool {
		if op == "==" || op == "!=" {
			return
		}
		c.diag.Errorf("operator '%s' is not defined for bool operands", op)
		return
	}
	c.diag.Errorf("cannot compare %s and %s", left, right)
}

func (c *Checker) checkCall(e *ast.CallExpr) types.TypeKind {
	for _, arg := range e.Args {
		c.checkExpr(arg)
	}
	callee, ok := e.Callee.(*ast.VarRef)
	if !ok {
		c.diag.Errorf("call target is not a function name")
		return types.Unknown
	}
	if callee.Name == "print" {
		return types.Void
	}
	if rt, ok := c.env.Functions[callee.Name]; ok {
		return rt
	}
	c.diag.Errorf("call to undefined function '%s'", callee.Name)
	return types.Unknown
}
