package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-qtf2html/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names recognized as the first argument.
var commands = []string{"convert", "version", "help"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
// A first argument that is not a command is treated as convert input,
// so "qtf2html doc.qtf" and "qtf2html -i doc.qtf" both convert.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if !looksLikeInput(cmd) {
			fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "version":
		fmt.Fprintf(env.Stdout, "qtf2html %s\n", Version)
		return ExitSuccess
	case "help":
		if len(rest) > 0 && rest[0] == "convert" {
			printConvertUsage(env.Stdout)
		} else {
			printUsage(env.Stdout)
		}
		return ExitSuccess
	default:
		return runConvertCmd(rest, env)
	}
}

// runConvertCmd parses convert flags, wires logging and signals, and runs
// the batch.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	log := newLogger(flags.common, env.Stderr)
	defer func() { _ = log.Sync() }()

	if env.SetMaxProcs != nil {
		env.SetMaxProcs(log)
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env, log); err != nil {
		fmt.Fprintf(env.Stderr, "%v%s\n", err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether s names a subcommand. Matching is case sensitive.
func isCommand(s string) bool {
	for _, c := range commands {
		if s == c {
			return true
		}
	}
	return false
}

// looksLikeInput reports whether an unrecognized first argument should be
// handed to convert: a flag, a .qtf file, a path, or anything that exists.
func looksLikeInput(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "-") || hasQTFExtension(s) || fileutil.IsFilePath(s) {
		return true
	}
	_, err := os.Stat(s)
	return err == nil
}
