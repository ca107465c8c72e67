// Package repl holds the interactive session state: the cumulative type
// environment, function table, and value scopes that persist across
// input lines. The session object owns that state explicitly rather than
// hiding it in globals, so a host can run several sessions side by side.
package repl

import (
	"io"

	"github.com/Chris-debuggs/cimple/internal/checker"
	"github.com/Chris-debuggs/cimple/internal/eval"
	"github.com/Chris-debuggs/cimple/internal/lexer"
	"github.com/Chris-debuggs/cimple/internal/parser"
	"github.com/Chris-debuggs/cimple/internal/types"
)

// Session evaluates source fragments one after another, carrying
// definitions and variable bindings forward between turns.
type Session struct {
	env *types.TypeEnv
	ev  *eval.Evaluator
}

// Result is the outcome of one session turn. Diagnostics come from the
// checker; when non-empty the fragment was not evaluated. HasValue marks
// whether the last expression of the fragment produced a displayable
// value.
type Result struct {
	Value       eval.Value
	HasValue    bool
	Diagnostics []string
}

// NewSession creates an empty session writing print output to out and
// runtime failure reports to errOut.
func NewSession(out, errOut io.Writer) *Session {
	env := types.NewTypeEnv()
	ev := eval.New(env)
	ev.Out = out
	ev.ErrOut = errOut
	return &Session{env: env, ev: ev}
}

// Eval lexes, parses, checks, and evaluates one source fragment. Checker
// diagnostics suppress evaluation so a bad line cannot half-mutate the
// session; the state from previous turns is untouched in that case.
func (s *Session) Eval(source string) Result {
	tokens := lexer.Lex(source)
	module := parser.New(tokens).Parse()

	turnEnv := checker.Infer(module)
	merged := s.mergedEnv(turnEnv)

	c := checker.New(module, merged)
	if diags := c.Errors(); len(diags) > 0 {
		return Result{Diagnostics: diags}
	}

	s.env.Vars = merged.Vars
	s.env.Functions = merged.Functions

	v, ok := s.ev.RunModule(module)
	return Result{Value: v, HasValue: ok}
}

// Env exposes the cumulative type environment, for display commands
func (s *Session) Env() *types.TypeEnv {
	return s.env
}

// GlobalValues snapshots the current global variable bindings
func (s *Session) GlobalValues() map[string]eval.Value {
	return s.ev.Scopes().GlobalValues()
}

// mergedEnv layers one turn's inferred environment over the session's
// cumulative one. A redefinition replaces the old entry; variable types
// merge so an Int later assigned a Float widens instead of conflicting.
func (s *Session) mergedEnv(turn *types.TypeEnv) *types.TypeEnv {
	merged := types.NewTypeEnv()
	for name, t := range s.env.Vars {
		merged.Vars[name] = t
	}
	for name, t := range s.env.Functions {
		merged.Functions[name] = t
	}
	for name, t := range turn.Vars {
		if old, ok := merged.Vars[name]; ok {
			merged.Vars[name] = types.Unify(old, t)
		} else {
			merged.Vars[name] = t
		}
	}
	for name, t := range turn.Functions {
		merged.Functions[name] = t
	}
	return merged
}
