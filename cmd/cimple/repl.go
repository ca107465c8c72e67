package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/Chris-debuggs/cimple/internal/repl"
)

const (
	promptMain = ">>> "
	promptCont = "... "

	historyFile = ".cimple_history"
)

var (
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ReplCmd starts an interactive session. Definitions and variables
// persist between inputs; a line ending in ':' opens a block that is
// submitted on the first empty line.
type ReplCmd struct{}

func (c *ReplCmd) Run() error {
	fmt.Println(bannerStyle.Render("cimple") + hintStyle.Render("  :help for commands, Ctrl-D to exit"))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := repl.NewSession(os.Stdout, os.Stderr)

	for {
		code, ok := readInput(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			if quit := runReplCommand(trimmed, session); quit {
				return nil
			}
			continue
		}

		res := session.Eval(code)
		for _, d := range res.Diagnostics {
			fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+d))
		}
		if res.HasValue {
			fmt.Println(resultStyle.Render(res.Value.Render()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readInput reads one logical input: a single line, or, when the line
// opens a block with ':', further lines until an empty one.
func readInput(ln *liner.State) (string, bool) {
	line, err := ln.Prompt(promptMain)
	if errors.Is(err, io.EOF) {
		return "", false
	}
	if err != nil {
		return "", true
	}
	if !strings.HasSuffix(strings.TrimRight(line, " \t"), ":") {
		return line, true
	}

	var b strings.Builder
	b.WriteString(line)
	for {
		cont, err := ln.Prompt(promptCont)
		if errors.Is(err, io.EOF) || strings.TrimSpace(cont) == "" {
			return b.String(), true
		}
		if err != nil {
			return b.String(), true
		}
		b.WriteByte('\n')
		b.WriteString(cont)
	}
}

func runReplCommand(cmd string, session *repl.Session) (quit bool) {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true
	case ":env":
		env := session.Env()
		names := make([]string, 0, len(env.Functions))
		for name := range env.Functions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("def %s -> %s\n", name, env.Functions[name])
		}
		varNames := make([]string, 0, len(env.Vars))
		for name := range env.Vars {
			varNames = append(varNames, name)
		}
		sort.Strings(varNames)
		for _, name := range varNames {
			fmt.Printf("%s: %s\n", name, env.Vars[name])
		}
	case ":vars":
		values := session.GlobalValues()
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s = %s\n", name, values[name].Render())
		}
	case ":help":
		fmt.Print(helpMessage)
	default:
		fmt.Printf("unknown command %q, :help for commands\n", cmd)
	}
	return false
}

const helpMessage = `Commands:
  :env    Show inferred types of functions and globals
  :vars   Show current global variable values
  :help   Show this message
  :quit   Exit

A line ending in ':' opens a block; submit it with an empty line.
`
