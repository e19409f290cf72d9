package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/record-layout/abi"
)

func runProfiles(args []string, _ io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("profiles", stderr)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	rows := make([][]string, 0, len(abi.Names()))
	for _, name := range abi.Names() {
		p, err := abi.Lookup(name)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			name,
			yesNo(p.Packed),
			yesNo(p.AllowStraddle),
			p.BitOrder.String(),
			yesNo(p.AllowOverlap),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("profile", "packed", "straddle", "bit order", "overlap").
		Rows(rows...)
	fmt.Fprintln(stdout, t.Render())
	fmt.Fprintf(stdout, "data models: %s\n", strings.Join(abi.ModelNames(), ", "))
	return nil
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
