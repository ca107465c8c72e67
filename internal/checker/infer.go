// Package checker performs static analysis: type inference produces a
// TypeEnv from a parsed module, and the checker validates the module
// against that environment, collecting diagnostics without aborting.
package checker

import (
	"strings"

	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/scope"
	"github.com/Chris-debuggs/cimple/internal/types"
)

// Infer computes a total TypeEnv for a module: a type for every global
// variable and every declared function. It never fails; missing
// information surfaces as Unknown.
//
// Function return types are computed as a fixpoint: each round re-infers
// every function body against the current environment until no return
// type changes, bounded by function-count + 2 rounds. Afterwards global
// variables are recomputed once so assignments from now-typed calls
// resolve.
func Infer(module *ast.Module) *types.TypeEnv {
	env := types.NewTypeEnv()

	var funcs []*ast.FuncDef
	for _, stmt := range module.Body {
		if fd, ok := stmt.(*ast.FuncDef); ok {
			env.Functions[fd.Name] = types.Unknown
			funcs = append(funcs, fd)
		}
	}

	inferGlobals(module, env)

	for round := 0; round < len(funcs)+2; round++ {
		changed := false
		for _, fd := range funcs {
			rt := inferFunctionReturn(fd, env)
			if rt != env.Functions[fd.Name] {
				env.Functions[fd.Name] = rt
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	inferGlobals(module, env)
	return env
}

// inferGlobals runs every non-function top-level statement through a
// fresh scope stack and snapshots the resulting global bindings.
func inferGlobals(module *ast.Module, env *types.TypeEnv) {
	in := &inferrer{env: env, scopes: scope.NewStack[types.TypeKind]()}
	for _, stmt := range module.Body {
		if _, ok := stmt.(*ast.FuncDef); ok {
			continue
		}
		in.inferStmt(stmt)
	}
	env.Vars = in.scopes.GlobalValues()
}

// inferFunctionReturn infers one function body in an environment holding
// the current global variables plus Unknown-typed parameters, and returns
// the unification of every return expression's type. A body with no
// return statement yields Void.
func inferFunctionReturn(fd *ast.FuncDef, env *types.TypeEnv) types.TypeKind {
	in := &inferrer{env: env, scopes: scope.NewStack[types.TypeKind]()}
	for name, t := range env.Vars {
		in.scopes.SetGlobal(name, t)
	}
	in.scopes.Push(scope.Function)
	defer in.scopes.Pop()
	for _, p := range fd.Params {
		in.scopes.SetLocal(p, types.Unknown)
	}
	for _, stmt := range fd.Body {
		in.inferStmt(stmt)
	}
	if !in.sawReturn {
		return types.Void
	}
	return in.returnType
}

type inferrer struct {
	env        *types.TypeEnv
	scopes     *scope.Stack[types.TypeKind]
	returnType types.TypeKind
	sawReturn  bool
}

func (in *inferrer) inferStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		in.inferExpr(s.Expr)
	case *ast.AssignStmt:
		t := in.inferExpr(s.Value)
		if existing, ok := in.scopes.LookupCurrent(s.Target); ok {
			t = types.Unify(existing, t)
		}
		in.scopes.SetLocal(s.Target, t)
	case *ast.ReturnStmt:
		t := types.Void
		if s.Value != nil {
			t = in.inferExpr(s.Value)
		}
		if in.sawReturn {
			in.returnType = types.Unify(in.returnType, t)
		} else {
			in.returnType = t
			in.sawReturn = true
		}
	case *ast.IfStmt:
		for _, branch := range s.Branches {
			if branch.Condition != nil {
				in.inferExpr(branch.Condition)
			}
			in.inferBlock(branch.Body)
		}
	case *ast.WhileStmt:
		in.inferExpr(s.Condition)
		in.inferBlock(s.Body)
	case *ast.BreakStmt, *ast.ContinueStmt, *ast.FuncDef:
		// No type information; nested function declarations are not
		// registered (only top-level defs enter the function table).
	}
}

// inferBlock runs statements in a child Block frame so block-local
// assignments don't leak into the enclosing scope.
func (in *inferrer) inferBlock(body []ast.Stmt) {
	in.scopes.Push(scope.Block)
	defer in.scopes.Pop()
	for _, stmt := range body {
		in.inferStmt(stmt)
	}
}

func (in *inferrer) inferExpr(expr ast.Expr) types.TypeKind {
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
		if t, ok := in.scopes.Lookup(e.Name); ok {
			return t
		}
		return types.Unknown
	case *ast.UnaryOp:
		t := in.inferExpr(e.Operand)
		if e.Op == "not" {
			return types.Bool
		}
		if t.IsNumeric() {
			return t
		}
		return types.Unknown
	case *ast.BinaryOp:
		left := in.inferExpr(e.Left)
		right := in.inferExpr(e.Right)
		return binaryResultType(e.Op, left, right)
	case *ast.LogicalExpr:
		in.inferExpr(e.Left)
		in.inferExpr(e.Right)
		return types.Bool
	case *ast.CallExpr:
		for _, arg := range e.Args {
			in.inferExpr(arg)
		}
		callee, ok := e.Callee.(*ast.VarRef)
		if !ok {
			return types.Unknown
		}
		if callee.Name == "print" {
			return types.Void
		}
		if rt, ok := in.env.Functions[callee.Name]; ok {
			return rt
		}
		return types.Unknown
	}
	return types.Unknown
}

// binaryResultType gives the static result type of a binary operator
// application. Comparisons are always Bool; string concatenation is
// String; division is always Float; other numeric operators widen to
// Float when either side is Float. Anything else is Unknown.
func binaryResultType(op string, left, right types.TypeKind) types.TypeKind {
	if isComparisonOp(op) {
		return types.Bool
	}
	if op == "+" && left == types.String && right == types.String {
		return types.String
	}
	if left.IsNumeric() && right.IsNumeric() {
		if op == "/" {
			return types.Float
		}
		if left == types.Float || right == types.Float {
			return types.Float
		}
		return types.Int
	}
	return types.Unknown
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return true
	}
	return false
}
