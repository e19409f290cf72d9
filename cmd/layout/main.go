// Command layout computes the physical layout of C-style records with
// bit-fields under a chosen ABI profile.
//
// Usage:
//
//	layout compute [-profile name] [-model name] [-format json|yaml|table] [-v] [-dump] [file|-]
//	layout compute -wit package.json -record name [-profile name] [-format json|yaml|table]
//	layout profiles
//	layout batch [-j N] [-profile name] [-model name] file...
//	layout explore [-profile name] [-model name] file
//	layout repl [-profile name] [-model name]
//
// Exit status is 0 on success, 1 for malformed input or layout errors and 2
// for an unknown profile or data model.
package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/wippyai/record-layout/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type command struct {
	name  string
	usage string
	run   func(args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

var commands = []command{
	{"compute", "compute [-profile name] [-model name] [-format json|yaml|table] [-v] [-dump] [file|- | -wit package.json -record name]", runCompute},
	{"profiles", "profiles", runProfiles},
	{"batch", "batch [-j N] [-profile name] [-model name] file...", runBatch},
	{"explore", "explore [-profile name] [-model name] file", runExplore},
	{"repl", "repl [-profile name] [-model name]", runREPL},
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return errors.ExitMalformed
	}

	name := args[0]
	if name == "-h" || name == "-help" || name == "--help" || name == "help" {
		usage(stdout)
		return errors.ExitOK
	}

	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(args[1:], stdin, stdout, stderr); err != nil {
			if stderrors.Is(err, flag.ErrHelp) {
				return errors.ExitOK
			}
			reportError(stderr, err)
			return exitCode(err)
		}
		return errors.ExitOK
	}

	reportError(stderr, fmt.Errorf("unknown command %q", name))
	usage(stderr)
	return errors.ExitMalformed
}

func exitCode(err error) int {
	var bf *batchFailed
	if stderrors.As(err, &bf) {
		return bf.code
	}
	return errors.ExitCode(err)
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  layout %s\n", cmd.usage)
	}
}

var errorColor = color.New(color.FgRed, color.Bold)

// reportError prints err to w in red when w is a colour terminal.
func reportError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %v\n", err)
}
