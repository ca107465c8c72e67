// Package linter performs style and best-practice checks on a parsed
// module. It reports warnings (never errors) using the diagnostic system.
package linter

import (
	"unicode"

	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/diagnostic"
)

type linter struct {
	diag *diagnostic.Diagnostics
}

// Lint runs all lint rules on a module and returns the diagnostics.
func Lint(module *ast.Module) *diagnostic.Diagnostics {
	l := &linter{diag: diagnostic.New()}
	for _, stmt := range module.Body {
		if fd, ok := stmt.(*ast.FuncDef); ok {
			l.lintFunction(fd)
		}
	}
	l.lintLoops(module.Body)
	return l.diag
}

func (l *linter) lintFunction(fd *ast.FuncDef) {
	l.checkEmptyBody(fd)
	l.checkNaming(fd)

	used := make(map[string]bool)
	collectUsedNames(fd.Body, used)
	l.checkUnusedParams(fd, used)
	l.checkUnusedVariables(fd.Name, fd.Body, used)
	l.lintLoops(fd.Body)
}

// checkEmptyBody warns if a function body has no statements.
func (l *linter) checkEmptyBody(fd *ast.FuncDef) {
	if len(fd.Body) == 0 {
		l.diag.Warningf("function '%s' has an empty body", fd.Name)
	}
}

// checkNaming warns if a function name is not snake_case.
func (l *linter) checkNaming(fd *ast.FuncDef) {
	if !isSnakeCase(fd.Name) {
		l.diag.Warningf("function '%s' should use snake_case naming", fd.Name)
	}
}

// checkUnusedParams warns about parameters never read in the body.
func (l *linter) checkUnusedParams(fd *ast.FuncDef, used map[string]bool) {
	for _, p := range fd.Params {
		if !used[p] {
			l.diag.Warningf("parameter '%s' in '%s' is never used", p, fd.Name)
		}
	}
}

// checkUnusedVariables warns about assigned names that are never read.
func (l *linter) checkUnusedVariables(scopeName string, stmts []ast.Stmt, used map[string]bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.AssignStmt:
			if !used[s.Target] {
				l.diag.Warningf("variable '%s' in '%s' is assigned but never used",
					s.Target, scopeName)
			}
		case *ast.IfStmt:
			for _, branch := range s.Branches {
				l.checkUnusedVariables(scopeName, branch.Body, used)
			}
		case *ast.WhileStmt:
			l.checkUnusedVariables(scopeName, s.Body, used)
		}
	}
}

// lintLoops warns about while loops whose condition is a constant true
// and whose body contains no break or return.
func (l *linter) lintLoops(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.WhileStmt:
			if isConstantTrue(s.Condition) && !canLeaveLoop(s.Body) {
				l.diag.Warningf("while loop never terminates: constant condition with no break or return")
			}
			l.lintLoops(s.Body)
		case *ast.IfStmt:
			for _, branch := range s.Branches {
				l.lintLoops(branch.Body)
			}
		}
	}
}

func isConstantTrue(cond ast.Expr) bool {
	switch e := cond.(type) {
	case *ast.BoolLiteral:
		return e.Value
	case *ast.NumberLiteral:
		return e.Value != "0" && e.Value != "0.0"
	}
	return false
}

// canLeaveLoop reports whether any statement in the body, outside nested
// loops, can exit it.
func canLeaveLoop(stmts []ast.Stmt) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.BreakStmt, *ast.ReturnStmt:
			return true
		case *ast.IfStmt:
			for _, branch := range s.Branches {
				if canLeaveLoop(branch.Body) {
					return true
				}
			}
		}
	}
	return false
}

// collectUsedNames gathers every variable name read anywhere in a
// statement list, including nested blocks and expressions.
func collectUsedNames(stmts []ast.Stmt, used map[string]bool) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.ExprStmt:
			collectExprNames(s.Expr, used)
		case *ast.AssignStmt:
			collectExprNames(s.Value, used)
		case *ast.ReturnStmt:
			if s.Value != nil {
				collectExprNames(s.Value, used)
			}
		case *ast.IfStmt:
			for _, branch := range s.Branches {
				if branch.Condition != nil {
					collectExprNames(branch.Condition, used)
				}
				collectUsedNames(branch.Body, used)
			}
		case *ast.WhileStmt:
			collectExprNames(s.Condition, used)
			collectUsedNames(s.Body, used)
		case *ast.FuncDef:
			collectUsedNames(s.Body, used)
		}
	}
}

func collectExprNames(expr ast.Expr, used map[string]bool) {
	switch e := expr.(type) {
	case *ast.VarRef:
		used[e.Name] = true
	case *ast.UnaryOp:
		collectExprNames(e.Operand, used)
	case *ast.BinaryOp:
		collectExprNames(e.Left, used)
		collectExprNames(e.Right, used)
	case *ast.LogicalExpr:
		collectExprNames(e.Left, used)
		collectExprNames(e.Right, used)
	case *ast.CallExpr:
		for _, arg := range e.Args {
			collectExprNames(arg, used)
		}
	}
}

// isSnakeCase accepts lowercase names with underscores and digits.
func isSnakeCase(name string) bool {
	for _, r := range name {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
