package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"

	"github.com/wippyai/record-layout/abi"
)

func runREPL(args []string, _ io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("repl", stderr)
	ov := overrideFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	profile, err := abi.Lookup(ov.Profile)
	if err != nil {
		return err
	}
	model, err := abi.LookupModel(ov.DataModel)
	if err != nil {
		return err
	}
	s := newSession(profile, model)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "layout> ",
		HistoryFile:     historyFile(),
		AutoComplete:    completer(model),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		return fmt.Errorf("start line editor: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(stdout, "profile %s, data model %s; type help for commands\n", profile.Name, model.Name)
	for {
		line, err := rl.Readline()
		if stderrors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if stderrors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.exec(line, stdout); err != nil {
			if stderrors.Is(err, errQuit) {
				return nil
			}
			reportError(stderr, err)
		}
	}
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "record-layout.history")
}

func completer(model *abi.DataModel) *readline.PrefixCompleter {
	var types []readline.PrefixCompleterInterface
	for _, name := range model.TypeNames() {
		types = append(types, readline.PcItem(name))
	}
	var profiles []readline.PrefixCompleterInterface
	for _, name := range abi.Names() {
		profiles = append(profiles, readline.PcItem(name))
	}
	onOff := []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}

	return readline.NewPrefixCompleter(
		readline.PcItem("add"),
		readline.PcItem("anon", types...),
		readline.PcItem("zero", types...),
		readline.PcItem("drop"),
		readline.PcItem("profile", profiles...),
		readline.PcItem("model", readline.PcItem("lp64"), readline.PcItem("llp64"), readline.PcItem("ilp32")),
		readline.PcItem("set",
			readline.PcItem("packed", onOff...),
			readline.PcItem("straddle", onOff...),
			readline.PcItem("overlap", onOff...),
			readline.PcItem("order", readline.PcItem("lsb"), readline.PcItem("msb")),
		),
		readline.PcItem("show"),
		readline.PcItem("fields"),
		readline.PcItem("reset"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
