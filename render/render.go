package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/layout"
)

const symbols = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Symbol is the bit map character of the i-th field.
func Symbol(i int) byte {
	if i < len(symbols) {
		return symbols[i]
	}
	return '*'
}

// Table renders the field placements as a bordered table.
func Table(l *layout.Layout) string {
	rows := make([][]string, 0, len(l.Fields))
	for i, f := range l.Fields {
		name := f.Name
		if name == "" {
			name = "(anonymous)"
		}
		width := "-"
		if w, ok := f.Width(); ok {
			width = strconv.Itoa(w)
		}
		rows = append(rows, []string{
			string(Symbol(i)),
			name,
			abi.DisplayName(f.TypeName),
			f.Kind.String(),
			strconv.Itoa(f.ByteOffset),
			strconv.Itoa(f.BitOffset),
			width,
			notes(f),
		})
	}

	kinds := make([]layout.FieldKind, len(l.Fields))
	for i, f := range l.Fields {
		kinds[i] = f.Kind
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("", "field", "type", "kind", "byte", "bit", "width", "notes").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row < 0 || row >= len(kinds) {
				return cellStyle
			}
			switch kinds[row] {
			case layout.KindBitField:
				return bitFieldStyle
			case layout.KindZeroWidth:
				return markerStyle
			}
			return cellStyle
		}).
		Render()
}

func notes(f layout.FieldLayout) string {
	var parts []string
	if f.Straddles {
		parts = append(parts, fmt.Sprintf("straddles %d-bit container", f.ContainerBits))
	}
	if f.Overlaps {
		parts = append(parts, "in bit-field padding")
	}
	return strings.Join(parts, ", ")
}

// Summary is a one-line description of the record.
func Summary(l *layout.Layout, p abi.Profile) string {
	return fmt.Sprintf("size %d bytes, align %d, %d padding bits, profile %s",
		l.SizeBytes, l.AlignBytes, l.PaddingBits(), p)
}

// BitMap draws the record one byte per line in allocation order: bit 0 of
// each line is the first bit handed out in that byte. Every occupied bit
// shows its field's symbol; padding is '.'.
func BitMap(l *layout.Layout) string {
	owner := Occupancy(l)

	var b strings.Builder
	for byteIdx := 0; byteIdx < l.SizeBytes; byteIdx++ {
		fmt.Fprintf(&b, "%4d | ", byteIdx)
		for bit := 0; bit < 8; bit++ {
			idx := owner[byteIdx*8+bit]
			if idx < 0 {
				b.WriteString(paddingStyle.Render("."))
				continue
			}
			style := lipgloss.NewStyle().Foreground(palette[idx%len(palette)])
			b.WriteString(style.Render(string(Symbol(idx))))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Occupancy maps every bit of the record, in allocation order, to the index
// of the field occupying it, or -1 for padding.
func Occupancy(l *layout.Layout) []int {
	owner := make([]int, l.SizeBytes*8)
	for i := range owner {
		owner[i] = -1
	}
	for i, f := range l.Fields {
		if f.Kind == layout.KindZeroWidth {
			continue
		}
		end := min(f.AllocBit+f.StorageBits(), len(owner))
		for bit := f.AllocBit; bit < end; bit++ {
			owner[bit] = i
		}
	}
	return owner
}
