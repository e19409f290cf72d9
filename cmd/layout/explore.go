package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
	"github.com/wippyai/record-layout/render"
)

type exploreKeys struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Packed   key.Binding
	Straddle key.Binding
	Order    key.Binding
	Overlap  key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k exploreKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Help, k.Quit}
}

func (k exploreKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Packed, k.Straddle, k.Order, k.Overlap},
		{k.Reset, k.Help, k.Quit},
	}
}

var defaultExploreKeys = exploreKeys{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	Packed:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "packed")),
	Straddle: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "straddle")),
	Order:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "bit order")),
	Overlap:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "overlap")),
	Reset:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset profile")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Rows of the flag selector, in display order.
const (
	flagPacked = iota
	flagStraddle
	flagOrder
	flagOverlap
	flagCount
)

type exploreModel struct {
	source  string
	fields  []layout.FieldSpec
	initial abi.Profile
	profile abi.Profile
	calc    *layout.Calculator
	layout  *layout.Layout
	err     error
	keys    exploreKeys
	help    help.Model
	cursor  int
}

func newExploreModel(source string, fields []layout.FieldSpec, profile abi.Profile) *exploreModel {
	m := &exploreModel{
		source:  source,
		fields:  fields,
		initial: profile,
		profile: profile,
		calc:    layout.NewCalculator(0),
		keys:    defaultExploreKeys,
		help:    help.New(),
	}
	m.recompute()
	return m
}

func (m *exploreModel) Init() tea.Cmd {
	return nil
}

func (m *exploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < flagCount-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.toggle(m.cursor)
		case key.Matches(msg, m.keys.Packed):
			m.toggle(flagPacked)
		case key.Matches(msg, m.keys.Straddle):
			m.toggle(flagStraddle)
		case key.Matches(msg, m.keys.Order):
			m.toggle(flagOrder)
		case key.Matches(msg, m.keys.Overlap):
			m.toggle(flagOverlap)
		case key.Matches(msg, m.keys.Reset):
			m.profile = m.initial
			m.recompute()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func (m *exploreModel) toggle(flag int) {
	p := m.profile
	switch flag {
	case flagPacked:
		p = p.With(abi.WithPacked(!p.Packed))
	case flagStraddle:
		p = p.With(abi.WithStraddle(!p.AllowStraddle))
	case flagOrder:
		order := abi.MSBFirst
		if p.BitOrder == abi.MSBFirst {
			order = abi.LSBFirst
		}
		p = p.With(abi.WithBitOrder(order))
	case flagOverlap:
		p = p.With(abi.WithOverlap(!p.AllowOverlap))
	}
	m.profile = p
	m.cursor = flag
	m.recompute()
}

func (m *exploreModel) recompute() {
	m.layout, m.err = m.calc.Calculate(m.fields, m.profile)
}

func (m *exploreModel) View() string {
	var b strings.Builder

	b.WriteString(render.TitleStyle.Render("Record Layout"))
	b.WriteString(" ")
	b.WriteString(m.source)
	b.WriteString("\n\n")

	flags := []struct {
		label string
		value string
		on    bool
	}{
		{"packed", onOff(m.profile.Packed), m.profile.Packed},
		{"straddle", onOff(m.profile.AllowStraddle), m.profile.AllowStraddle},
		{"bit order", m.profile.BitOrder.String(), m.profile.BitOrder == abi.LSBFirst},
		{"overlap", onOff(m.profile.AllowOverlap), m.profile.AllowOverlap},
	}
	for i, f := range flags {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		style := render.OffStyle
		if f.on {
			style = render.OnStyle
		}
		fmt.Fprintf(&b, "%s%-10s %s\n", cursor, f.label, style.Render(f.value))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(render.OffStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else {
		if len(m.layout.Fields) > 0 {
			b.WriteString(render.Table(m.layout))
			b.WriteString("\n")
		}
		b.WriteString(render.Summary(m.layout, m.profile))
		b.WriteString("\n\n")
		b.WriteString(render.BitMap(m.layout))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func runExplore(args []string, _ io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("explore", stderr)
	ov := overrideFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 || fs.Arg(0) == "-" {
		return errors.InvalidInput(errors.PhaseDecode, nil, "explore needs exactly one document file")
	}

	req, err := loadRequest(fs.Arg(0), nil, *ov)
	if err != nil {
		return err
	}

	p := tea.NewProgram(newExploreModel(fs.Arg(0), req.Fields, req.Profile),
		tea.WithAltScreen(),
		tea.WithOutput(stdout),
	)
	_, err = p.Run()
	return err
}
