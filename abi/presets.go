package abi

import (
	"sort"
	"strings"

	"github.com/wippyai/record-layout/errors"
)

// Default is the unpacked System V style profile: no straddling, LSB-first
// assignment, ordinary members may sit in trailing bit-field padding.
func Default() Profile {
	return Profile{
		Name:         "default",
		BitOrder:     LSBFirst,
		AllowOverlap: true,
	}
}

// Packed is the __attribute__((packed)) profile: byte granularity, bit-fields
// continue across unit boundaries.
func Packed() Profile {
	return Profile{
		Name:          "packed",
		Packed:        true,
		AllowStraddle: true,
		BitOrder:      LSBFirst,
		AllowOverlap:  true,
	}
}

// MSVC never folds ordinary members into bit-field padding.
func MSVC() Profile {
	return Profile{
		Name:     "msvc",
		BitOrder: LSBFirst,
	}
}

var presets = map[string]func() Profile{
	"default":   Default,
	"sysv":      func() Profile { return rename(Default(), "sysv") },
	"packed":    Packed,
	"msvc":      MSVC,
	"sysv-be":   func() Profile { return rename(Default().With(WithBitOrder(MSBFirst)), "sysv-be") },
	"packed-be": func() Profile { return rename(Packed().With(WithBitOrder(MSBFirst)), "packed-be") },
}

func rename(p Profile, name string) Profile {
	p.Name = name
	return p
}

// Lookup resolves a preset by name. Names are case-insensitive; the empty
// name selects the default profile.
func Lookup(name string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Default(), nil
	}
	ctor, ok := presets[key]
	if !ok {
		return Profile{}, errors.UnsupportedProfile(name, Names())
	}
	return ctor(), nil
}

// Names lists preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
