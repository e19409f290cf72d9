package layout

import "github.com/wippyai/record-layout/abi"

// FieldSpec is one declared member of a record. A nil BitWidth marks an
// ordinary member, zero a zero-width boundary marker, anything else a
// bit-field of that many bits.
type FieldSpec struct {
	Name     string
	Type     abi.Scalar
	BitWidth *int
}

// Plain declares an ordinary member.
func Plain(name string, typ abi.Scalar) FieldSpec {
	return FieldSpec{Name: name, Type: typ}
}

// BitField declares a bit-field of width bits.
func BitField(name string, typ abi.Scalar, width int) FieldSpec {
	return FieldSpec{Name: name, Type: typ, BitWidth: &width}
}

// ZeroWidth declares an unnamed zero-width bit-field.
func ZeroWidth(typ abi.Scalar) FieldSpec {
	return BitField("", typ, 0)
}

// Width returns the declared bit width and whether the member is a bit-field.
func (f FieldSpec) Width() (int, bool) {
	if f.BitWidth == nil {
		return 0, false
	}
	return *f.BitWidth, true
}

// IsBitField reports whether the member was declared with a width.
func (f FieldSpec) IsBitField() bool {
	return f.BitWidth != nil
}

// IsZeroWidth reports whether the member is a zero-width boundary marker.
func (f FieldSpec) IsZeroWidth() bool {
	return f.BitWidth != nil && *f.BitWidth == 0
}
