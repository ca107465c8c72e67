package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/Chris-debuggs/cimple/internal/ast"
	"github.com/Chris-debuggs/cimple/internal/checker"
	"github.com/Chris-debuggs/cimple/internal/diagnostic"
	"github.com/Chris-debuggs/cimple/internal/eval"
	"github.com/Chris-debuggs/cimple/internal/lexer"
	"github.com/Chris-debuggs/cimple/internal/linter"
	"github.com/Chris-debuggs/cimple/internal/parser"
)

// Styles.
var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	tokenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// RunCmd evaluates a script after type-checking it.
type RunCmd struct {
	File      string `arg:"" help:"Script to run" type:"existingfile"`
	SkipCheck bool   `help:"Evaluate even when the checker reports errors"`
}

func (c *RunCmd) Run() error {
	source, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	tokens := lexer.Lex(string(source))
	slog.Debug("lexed", slog.Int("tokens", len(tokens)))

	module := parser.New(tokens).Parse()
	slog.Debug("parsed", slog.Int("statements", len(module.Body)))

	env := checker.Infer(module)
	ck := checker.New(module, env)
	if err := ck.Check(); err != nil {
		if !c.SkipCheck {
			printDiagnostics(ck.Diagnostics())
			return fmt.Errorf("%s has type errors", c.File)
		}
		slog.Debug("checker errors suppressed", slog.Int("count", ck.Diagnostics().ErrorCount()))
	}

	ev := eval.New(env)
	ev.RunModule(module)
	return nil
}

// CheckCmd parses and type-checks without evaluating.
type CheckCmd struct {
	File string `arg:"" help:"Script to check" type:"existingfile"`
}

func (c *CheckCmd) Run() error {
	source, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	module := parser.ParseSource(string(source))
	env := checker.Infer(module)
	ck := checker.New(module, env)
	if diags := ck.Errors(); len(diags) > 0 {
		printDiagnostics(ck.Diagnostics())
		return fmt.Errorf("%s has %d error(s)", c.File, ck.Diagnostics().ErrorCount())
	}

	fmt.Println(okStyle.Render("ok") + " " + c.File)
	return nil
}

// LintCmd runs style checks and prints warnings.
type LintCmd struct {
	File string `arg:"" help:"Script to lint" type:"existingfile"`
}

func (c *LintCmd) Run() error {
	source, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	diags := linter.Lint(parser.ParseSource(string(source)))
	if diags.Count() == 0 {
		fmt.Println(okStyle.Render("ok") + " " + c.File)
		return nil
	}
	printDiagnostics(diags)
	return nil
}

// LexCmd prints one token per line, for debugging the lexer.
type LexCmd struct {
	File string `arg:"" help:"Script to tokenize" type:"existingfile"`
}

func (c *LexCmd) Run() error {
	source, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	for _, tok := range lexer.Lex(string(source)) {
		fmt.Println(tokenStyle.Render(tok.String()))
	}
	return nil
}

// AstCmd prints the parsed syntax tree.
type AstCmd struct {
	File string `arg:"" help:"Script to parse" type:"existingfile"`
}

func (c *AstCmd) Run() error {
	source, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	fmt.Print(ast.Print(parser.ParseSource(string(source))))
	return nil
}

func printDiagnostics(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		line := fmt.Sprintf("%s: %s", d.Severity, d.Message)
		if d.Severity == diagnostic.Error {
			fmt.Fprintln(os.Stderr, errorStyle.Render(line))
		} else {
			fmt.Fprintln(os.Stderr, warningStyle.Render(line))
		}
	}
}
