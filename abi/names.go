package abi

import (
	"strings"

	"github.com/ianlancetaylor/demangle"
)

// DisplayName returns a human readable form of a type name. Itanium-mangled
// names (as found in symbol tables and RTTI) are demangled; anything else is
// returned unchanged.
func DisplayName(name string) string {
	if !strings.HasPrefix(name, "_Z") {
		return name
	}
	out, err := demangle.ToString(name)
	if err != nil {
		return name
	}
	return out
}
