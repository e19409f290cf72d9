package abi

import (
	"errors"
	"testing"

	lerrors "github.com/wippyai/record-layout/errors"
)

func TestAlignTo(t *testing.T) {
	tests := []struct {
		offset, align, want int
	}{
		{0, 4, 0},
		{1, 4, 4},
		{4, 4, 4},
		{5, 8, 8},
		{9, 1, 9},
		{7, 0, 7},
	}

	for _, tc := range tests {
		if got := AlignTo(tc.offset, tc.align); got != tc.want {
			t.Errorf("AlignTo(%d, %d) = %d, want %d", tc.offset, tc.align, got, tc.want)
		}
	}
}

func TestBytesFor(t *testing.T) {
	for bits, want := range map[int]int{0: 0, 1: 1, 8: 1, 9: 2, 40: 5, 64: 8} {
		if got := BytesFor(bits); got != want {
			t.Errorf("BytesFor(%d) = %d, want %d", bits, got, want)
		}
	}
}

func TestScalarValidate(t *testing.T) {
	tests := []struct {
		name    string
		scalar  Scalar
		wantErr bool
	}{
		{"u8", Uint8, false},
		{"u64", Uint64, false},
		{"i386 double", Scalar{Name: "double", SizeBits: 64, AlignBits: 32}, false},
		{"zero size", Scalar{Name: "x", SizeBits: 0, AlignBits: 8}, true},
		{"odd size", Scalar{Name: "x", SizeBits: 12, AlignBits: 8}, true},
		{"zero align", Scalar{Name: "x", SizeBits: 16, AlignBits: 0}, true},
		{"align not power of two", Scalar{Name: "x", SizeBits: 24, AlignBits: 24}, true},
		{"align exceeds size", Scalar{Name: "x", SizeBits: 8, AlignBits: 16}, true},
		{"size not a multiple of align", Scalar{Name: "x", SizeBits: 48, AlignBits: 32}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.scalar.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestScalarSameStorage(t *testing.T) {
	signed := NewScalar("int", 32)
	unsigned := NewScalar("unsigned", 32)
	if !signed.SameStorage(unsigned) {
		t.Error("int and unsigned should share storage")
	}
	if Uint32.SameStorage(Uint16) {
		t.Error("uint32 and uint16 must not share storage")
	}
	packedDouble := Scalar{Name: "double", SizeBits: 64, AlignBits: 32}
	if packedDouble.SameStorage(Uint64) {
		t.Error("alignment differences must separate storage")
	}
}

func TestLookupPresets(t *testing.T) {
	tests := []struct {
		name     string
		packed   bool
		straddle bool
		order    BitOrder
		overlap  bool
	}{
		{"", false, false, LSBFirst, true},
		{"default", false, false, LSBFirst, true},
		{"SYSV", false, false, LSBFirst, true},
		{"msvc", false, false, LSBFirst, false},
		{"sysv-be", false, false, MSBFirst, true},
		{"packed", true, true, LSBFirst, true},
		{"packed-be", true, true, MSBFirst, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Lookup(tc.name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tc.name, err)
			}
			if p.Packed != tc.packed || p.AllowStraddle != tc.straddle ||
				p.BitOrder != tc.order || p.AllowOverlap != tc.overlap {
				t.Errorf("Lookup(%q) = %v", tc.name, p)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("vax")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, &lerrors.Error{Phase: lerrors.PhaseProfile, Kind: lerrors.KindUnsupportedProfile}) {
		t.Errorf("unexpected error %v", err)
	}
	if lerrors.ExitCode(err) != lerrors.ExitUnsupported {
		t.Errorf("exit code = %d", lerrors.ExitCode(err))
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
	if len(names) != 6 {
		t.Errorf("got %d presets", len(names))
	}
}

func TestProfileWith(t *testing.T) {
	base := Default()
	same := base.With(WithPacked(false))
	if same.Name != "default" {
		t.Errorf("unchanged flags should keep name, got %q", same.Name)
	}

	custom := base.With(WithPacked(true), WithStraddle(true))
	if !custom.Packed || !custom.AllowStraddle {
		t.Errorf("options not applied: %v", custom)
	}
	if custom.Name != "default+custom" {
		t.Errorf("Name = %q", custom.Name)
	}
	if base.Packed {
		t.Error("With must not mutate the receiver")
	}

	again := custom.With(WithOverlap(false))
	if again.Name != "default+custom" {
		t.Errorf("suffix should not repeat, got %q", again.Name)
	}
}

func TestProfileEqual(t *testing.T) {
	a, _ := Lookup("default")
	b, _ := Lookup("sysv")
	if !a.Equal(b) {
		t.Error("default and sysv carry identical flags")
	}
	if a.Equal(MSVC()) {
		t.Error("default and msvc differ in overlap")
	}
}

func TestParseBitOrder(t *testing.T) {
	for in, want := range map[string]BitOrder{
		"lsb_first": LSBFirst,
		"LSB":       LSBFirst,
		"msb-first": MSBFirst,
		" msb ":     MSBFirst,
	} {
		got, err := ParseBitOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseBitOrder(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBitOrder("middle"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestDataModels(t *testing.T) {
	tests := []struct {
		model     string
		typ       string
		size      int
		alignBits int
	}{
		{"lp64", "long", 64, 64},
		{"llp64", "long", 32, 32},
		{"ilp32", "long", 32, 32},
		{"lp64", "unsigned  long long", 64, 64},
		{"ilp32", "long long", 64, 32},
		{"ilp32", "double", 64, 32},
		{"ilp32", "pointer", 32, 32},
		{"lp64", "uint8_t", 8, 8},
		{"lp64", "_Bool", 8, 8},
		{"", "int", 32, 32},
	}

	for _, tc := range tests {
		t.Run(tc.model+"/"+tc.typ, func(t *testing.T) {
			m, err := LookupModel(tc.model)
			if err != nil {
				t.Fatal(err)
			}
			s, ok := m.Lookup(tc.typ)
			if !ok {
				t.Fatalf("%s not defined", tc.typ)
			}
			if s.SizeBits != tc.size || s.AlignBits != tc.alignBits {
				t.Errorf("got %v", s)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("model scalar invalid: %v", err)
			}
		})
	}
}

func TestLookupModelUnknown(t *testing.T) {
	_, err := LookupModel("pdp11")
	if lerrors.ExitCode(err) != lerrors.ExitUnsupported {
		t.Errorf("err = %v", err)
	}
	m, _ := LookupModel("lp64")
	if _, ok := m.Lookup("quad"); ok {
		t.Error("quad should be unknown")
	}
	if len(m.TypeNames()) == 0 {
		t.Error("TypeNames empty")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("uint32_t"); got != "uint32_t" {
		t.Errorf("plain names pass through, got %q", got)
	}
	if got := DisplayName("_ZN3foo3barEv"); got != "foo::bar()" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := DisplayName("_Z!!"); got != "_Z!!" {
		t.Errorf("invalid mangled names pass through, got %q", got)
	}
}
