// Package render draws computed layouts for terminals: a lipgloss table of
// placements and a per-byte bit map.
package render
