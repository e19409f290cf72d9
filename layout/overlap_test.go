package layout

import (
	"testing"

	"github.com/wippyai/record-layout/abi"
)

func TestCanOverlap(t *testing.T) {
	openAt := func(typ abi.Scalar, start, consumed int) *unit {
		u := openUnit(typ, start)
		u.consumed = consumed
		return u
	}

	tests := []struct {
		name    string
		unit    *unit
		field   FieldSpec
		profile abi.Profile
		offset  int
		ok      bool
	}{
		{"no open unit", nil, Plain("a", abi.Uint8), abi.Default(), 0, false},
		{"overlap disabled", openAt(abi.Uint64, 0, 40), Plain("a", abi.Uint8), abi.MSVC(), 0, false},
		{"fits after consumed bits", openAt(abi.Uint64, 0, 40), Plain("a", abi.Uint8), abi.Default(), 5, true},
		{"rounds to alignment", openAt(abi.Uint64, 0, 40), Plain("a", abi.Uint16), abi.Default(), 6, true},
		{"too large", openAt(abi.Uint64, 0, 40), Plain("a", abi.Uint32), abi.Default(), 0, false},
		{"packed ignores alignment", openAt(abi.Uint64, 0, 40), Plain("a", abi.Uint16), abi.Packed(), 5, true},
		{"alignment is record relative", openAt(abi.Uint32, 4, 1), Plain("a", abi.Uint16), abi.Default(), 6, true},
		{"full unit", openAt(abi.Uint32, 0, 32), Plain("a", abi.Uint8), abi.Default(), 0, false},
		{"bit-fields never overlap", openAt(abi.Uint64, 0, 40), BitField("a", abi.Uint8, 3), abi.Default(), 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offset, ok := canOverlap(tc.unit, tc.field, tc.profile)
			if ok != tc.ok || offset != tc.offset {
				t.Errorf("canOverlap = %d, %t; want %d, %t", offset, ok, tc.offset, tc.ok)
			}
		})
	}
}

func TestUnitShift(t *testing.T) {
	u := openUnit(abi.Uint16, 0)
	u.consumed = 5

	if got := u.shift(abi.LSBFirst, 3, 16); got != 5 {
		t.Errorf("lsb shift = %d, want 5", got)
	}
	if got := u.shift(abi.MSBFirst, 3, 16); got != 8 {
		t.Errorf("msb shift = %d, want 8", got)
	}
	if got := u.shift(abi.MSBFirst, 13, 32); got != 14 {
		t.Errorf("msb straddle shift = %d, want 14", got)
	}
}

func TestUnitLimit(t *testing.T) {
	tests := []struct {
		name     string
		typ      abi.Scalar
		start    int
		consumed int
		want     int
	}{
		{"partly used", abi.Uint32, 2, 3, 6},
		{"spans two bytes", abi.Uint32, 2, 9, 6},
		{"full", abi.Uint32, 2, 32, 6},
		{"single byte", abi.Uint8, 5, 1, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := openUnit(tc.typ, tc.start)
			u.consumed = tc.consumed
			if got := u.limit(); got != tc.want {
				t.Errorf("limit = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	placed := []FieldLayout{
		{Kind: KindOrdinary, AlignBytes: 2},
		{Kind: KindZeroWidth, AlignBytes: 8},
		{Kind: KindBitField, AlignBytes: 4},
	}

	size, align := finalize(nil, 5, placed, abi.Default())
	if size != 8 || align != 4 {
		t.Errorf("unpacked: got %d/%d, want 8/4", size, align)
	}

	size, align = finalize(nil, 5, placed, abi.Packed())
	if size != 5 || align != 1 {
		t.Errorf("packed: got %d/%d, want 5/1", size, align)
	}

	open := openUnit(abi.Uint64, 8)
	open.consumed = 1
	size, _ = finalize(open, 8, placed, abi.Default())
	if size != 16 {
		t.Errorf("open unit: got %d, want 16", size)
	}

	open = openUnit(abi.Uint32, 2)
	open.consumed = 3
	size, align = finalize(open, 2, nil, abi.Packed())
	if size != 6 || align != 1 {
		t.Errorf("packed open unit: got %d/%d, want 6/1", size, align)
	}
}
