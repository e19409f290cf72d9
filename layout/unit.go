package layout

import "github.com/wippyai/record-layout/abi"

// unit is the allocation unit currently accepting bit-fields. It lives only
// for the duration of one Compute call.
type unit struct {
	typ      abi.Scalar
	start    int // byte offset of the unit
	consumed int // bits handed out, in allocation order
}

func openUnit(typ abi.Scalar, start int) *unit {
	return &unit{typ: typ, start: start}
}

func (u *unit) bits() int { return u.typ.SizeBits }

func (u *unit) remaining() int { return u.typ.SizeBits - u.consumed }

// accepts reports whether a bit-field of typ and width can join the unit
// without crossing its boundary.
func (u *unit) accepts(typ abi.Scalar, width int) bool {
	return u.typ.SameStorage(typ) && u.consumed+width <= u.bits()
}

// allocBit is the record-relative index of the next free bit.
func (u *unit) allocBit() int {
	return u.start*8 + u.consumed
}

// limit is the first byte past the unit's full storage. A closed unit
// always keeps that storage and its unused bits become padding, packed or
// not.
func (u *unit) limit() int {
	return u.start + u.typ.SizeBytes()
}

// shift returns the bit offset of a width-bit field that begins after the
// unit's consumed bits, inside a container of containerBits bits.
func (u *unit) shift(order abi.BitOrder, width, containerBits int) int {
	if order == abi.MSBFirst {
		return containerBits - u.consumed - width
	}
	return u.consumed
}
