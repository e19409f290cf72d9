package abi

import (
	"fmt"
	"strings"
)

// BitOrder selects where inside an allocation unit successive bit-fields are
// assigned.
type BitOrder uint8

const (
	// LSBFirst assigns bit-fields starting at the least significant bit.
	LSBFirst BitOrder = iota
	// MSBFirst assigns bit-fields starting at the most significant bit.
	MSBFirst
)

var bitOrderNames = [...]string{
	LSBFirst: "lsb_first",
	MSBFirst: "msb_first",
}

func (o BitOrder) String() string {
	if int(o) < len(bitOrderNames) {
		return bitOrderNames[o]
	}
	return "unknown"
}

// ParseBitOrder accepts "lsb_first"/"msb_first" and the short forms
// "lsb"/"msb", case-insensitively.
func ParseBitOrder(s string) (BitOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lsb_first", "lsb-first", "lsb":
		return LSBFirst, nil
	case "msb_first", "msb-first", "msb":
		return MSBFirst, nil
	}
	return LSBFirst, fmt.Errorf("unknown bit direction %q", s)
}

// Profile is the set of implementation-defined packing rules of a target.
// The engine reads only the four flags; Name is for display.
type Profile struct {
	Name          string
	Packed        bool
	AllowStraddle bool
	BitOrder      BitOrder
	AllowOverlap  bool
}

// Option adjusts a single flag of a Profile.
type Option func(*Profile)

// WithPacked overrides the packed flag.
func WithPacked(v bool) Option {
	return func(p *Profile) { p.Packed = v }
}

// WithStraddle overrides whether bit-fields may span allocation units.
func WithStraddle(v bool) Option {
	return func(p *Profile) { p.AllowStraddle = v }
}

// WithBitOrder overrides the bit assignment direction.
func WithBitOrder(o BitOrder) Option {
	return func(p *Profile) { p.BitOrder = o }
}

// WithOverlap overrides whether ordinary members may occupy bit-field padding.
func WithOverlap(v bool) Option {
	return func(p *Profile) { p.AllowOverlap = v }
}

// With returns a copy of p with opts applied. The name gains a "+custom"
// suffix when any flag actually changed.
func (p Profile) With(opts ...Option) Profile {
	out := p
	for _, opt := range opts {
		opt(&out)
	}
	if out.flags() != p.flags() && !strings.HasSuffix(out.Name, "+custom") {
		out.Name += "+custom"
	}
	return out
}

type profileFlags struct {
	packed, straddle, overlap bool
	order                     BitOrder
}

func (p Profile) flags() profileFlags {
	return profileFlags{p.Packed, p.AllowStraddle, p.AllowOverlap, p.BitOrder}
}

// Equal compares the packing flags of two profiles, ignoring names.
func (p Profile) Equal(o Profile) bool {
	return p.flags() == o.flags()
}

func (p Profile) String() string {
	return fmt.Sprintf("%s{packed=%t straddle=%t order=%s overlap=%t}",
		p.Name, p.Packed, p.AllowStraddle, p.BitOrder, p.AllowOverlap)
}
