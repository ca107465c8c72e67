package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"
)

// CLI is the top-level command-line interface for cimple.
type CLI struct {
	Verbose bool   `help:"Enable debug logging of pipeline stages" short:"v"`
	Profile string `help:"Write a profile to ./pprof (cpu or mem)" enum:",cpu,mem" default:""`

	Run   RunCmd   `cmd:"" help:"Type-check and evaluate a script"`
	Check CheckCmd `cmd:"" help:"Parse and type-check without evaluating"`
	Lint  LintCmd  `cmd:"" help:"Run style checks on a script"`
	Lex   LexCmd   `cmd:"" help:"Print the token stream of a script"`
	Ast   AstCmd   `cmd:"" help:"Print the parsed syntax tree of a script"`
	Repl  ReplCmd  `cmd:"" help:"Start an interactive session"`
}

func main() {
	var cli CLI

	ktx := kong.Parse(&cli,
		kong.Name("cimple"),
		kong.Description("Interpreter for the Cimple language: lexes, parses, type-checks, and evaluates indentation-structured scripts."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
	)

	configureLogging(cli.Verbose)

	if stop := startProfile(cli.Profile); stop != nil {
		defer stop.Stop()
	}

	if err := ktx.Run(&cli); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("./pprof"), profile.Quiet)
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("./pprof"), profile.Quiet)
	}
	return nil
}
