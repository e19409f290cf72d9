package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
	"github.com/wippyai/record-layout/render"
)

// session is the record being built in the REPL.
type session struct {
	fields  []layout.FieldSpec
	profile abi.Profile
	model   *abi.DataModel
	calc    *layout.Calculator
}

func newSession(profile abi.Profile, model *abi.DataModel) *session {
	return &session{
		profile: profile,
		model:   model,
		calc:    layout.NewCalculator(256),
	}
}

var errQuit = fmt.Errorf("quit")

const sessionHelp = `Commands:
  add NAME TYPE[:BITS]   append a member; BITS makes it a bit-field
  anon TYPE:BITS         append an anonymous bit-field
  zero TYPE              append a zero-width boundary
  drop                   remove the last member
  profile NAME           switch to a preset profile
  model NAME             switch data model (lp64, llp64, ilp32)
  set packed|straddle|overlap on|off
  set order lsb|msb
  show                   print the layout
  fields                 list the declared members
  reset                  clear all members
  quit                   leave
`

// exec runs one command line. It returns errQuit when the session ends.
func (s *session) exec(line string, out io.Writer) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	switch cmd := strings.ToLower(args[0]); cmd {
	case "help", "?":
		fmt.Fprint(out, sessionHelp)
	case "quit", "exit", "q":
		return errQuit
	case "add":
		if len(args) < 3 {
			return usageError("add NAME TYPE[:BITS]")
		}
		spec, err := s.parseMember(args[1], strings.Join(args[2:], " "))
		if err != nil {
			return err
		}
		return s.push(spec, out)
	case "anon":
		if len(args) < 2 {
			return usageError("anon TYPE:BITS")
		}
		spec, err := s.parseMember("", strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if !spec.IsBitField() {
			return usageError("anon TYPE:BITS")
		}
		return s.push(spec, out)
	case "zero":
		if len(args) < 2 {
			return usageError("zero TYPE")
		}
		typ, err := s.lookupType(strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return s.push(layout.ZeroWidth(typ), out)
	case "drop":
		if len(s.fields) > 0 {
			s.fields = s.fields[:len(s.fields)-1]
		}
		fmt.Fprintf(out, "%d members\n", len(s.fields))
	case "profile":
		if len(args) != 2 {
			return usageError("profile NAME")
		}
		p, err := abi.Lookup(args[1])
		if err != nil {
			return err
		}
		s.profile = p
		fmt.Fprintln(out, p)
	case "model":
		if len(args) != 2 {
			return usageError("model NAME")
		}
		m, err := abi.LookupModel(args[1])
		if err != nil {
			return err
		}
		s.model = m
		fmt.Fprintf(out, "data model %s\n", m.Name)
	case "set":
		if len(args) != 3 {
			return usageError("set FLAG VALUE")
		}
		if err := s.set(args[1], args[2]); err != nil {
			return err
		}
		fmt.Fprintln(out, s.profile)
	case "show":
		return s.show(out)
	case "fields":
		for i, f := range s.fields {
			fmt.Fprintf(out, "%3d  %s\n", i, describe(f))
		}
	case "reset":
		s.fields = nil
		fmt.Fprintln(out, "cleared")
	default:
		return errors.InvalidInput(errors.PhaseDecode, nil, fmt.Sprintf("unknown command %q (try help)", cmd))
	}
	return nil
}

// push appends spec if the record still lays out; otherwise the member is
// rejected and the error returned.
func (s *session) push(spec layout.FieldSpec, out io.Writer) error {
	candidate := append(append([]layout.FieldSpec(nil), s.fields...), spec)
	l, err := s.calc.Calculate(candidate, s.profile)
	if err != nil {
		return err
	}
	s.fields = candidate
	f := l.Fields[len(l.Fields)-1]
	fmt.Fprintf(out, "%s at byte %d bit %d, record %d bytes\n", describe(spec), f.ByteOffset, f.BitOffset, l.SizeBytes)
	return nil
}

func (s *session) show(out io.Writer) error {
	l, err := s.calc.Calculate(s.fields, s.profile)
	if err != nil {
		return err
	}
	if len(l.Fields) > 0 {
		fmt.Fprintln(out, render.Table(l))
	}
	fmt.Fprintln(out, render.Summary(l, s.profile))
	fmt.Fprint(out, render.BitMap(l))
	return nil
}

func (s *session) set(flagName, value string) error {
	if strings.ToLower(flagName) == "order" {
		order, err := abi.ParseBitOrder(value)
		if err != nil {
			return errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "set order")
		}
		s.profile = s.profile.With(abi.WithBitOrder(order))
		return nil
	}

	on, err := parseSwitch(value)
	if err != nil {
		return err
	}
	switch strings.ToLower(flagName) {
	case "packed":
		s.profile = s.profile.With(abi.WithPacked(on))
	case "straddle":
		s.profile = s.profile.With(abi.WithStraddle(on))
	case "overlap":
		s.profile = s.profile.With(abi.WithOverlap(on))
	default:
		return errors.InvalidInput(errors.PhaseDecode, nil, fmt.Sprintf("unknown flag %q", flagName))
	}
	return nil
}

// parseMember splits "TYPE[:BITS]".
func (s *session) parseMember(name, typeSpec string) (layout.FieldSpec, error) {
	typeName, bits, hasBits := strings.Cut(typeSpec, ":")
	typ, err := s.lookupType(typeName)
	if err != nil {
		return layout.FieldSpec{}, err
	}
	if !hasBits {
		return layout.Plain(name, typ), nil
	}
	w, err := strconv.Atoi(strings.TrimSpace(bits))
	if err != nil {
		return layout.FieldSpec{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Field(name).
			Value(bits).
			Cause(err).
			Detail("bit width must be an integer").
			Build()
	}
	return layout.BitField(name, typ, w), nil
}

func (s *session) lookupType(name string) (abi.Scalar, error) {
	name = strings.TrimSpace(name)
	typ, ok := s.model.Lookup(name)
	if !ok {
		return abi.Scalar{}, errors.UnknownType(nil, "", name, s.model.Name)
	}
	typ.Name = name
	return typ, nil
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, errors.InvalidInput(errors.PhaseDecode, nil, fmt.Sprintf("expected on or off, got %q", v))
}

func usageError(usage string) error {
	return errors.InvalidInput(errors.PhaseDecode, nil, "usage: "+usage)
}

func describe(f layout.FieldSpec) string {
	name := f.Name
	if name == "" {
		name = "(anonymous)"
	}
	if w, ok := f.Width(); ok {
		return fmt.Sprintf("%s %s:%d", name, abi.DisplayName(f.Type.Name), w)
	}
	return fmt.Sprintf("%s %s", name, abi.DisplayName(f.Type.Name))
}
