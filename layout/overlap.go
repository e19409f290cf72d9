package layout

import "github.com/wippyai/record-layout/abi"

// canOverlap decides whether the ordinary member f can be placed inside the
// unused trailing bits of the open unit u, and returns its byte offset.
//
// The member starts at the first whole byte after the consumed bits, rounded
// up to its alignment (1 when packed) relative to the record start, and must
// end within the unit's storage.
func canOverlap(u *unit, f FieldSpec, p abi.Profile) (int, bool) {
	if !p.AllowOverlap || u == nil || f.IsBitField() {
		return 0, false
	}

	align := f.Type.AlignBytes()
	if p.Packed {
		align = 1
	}

	offset := abi.AlignTo(abi.BytesFor(u.allocBit()), align)
	if offset+f.Type.SizeBytes() > u.limit() {
		return 0, false
	}
	return offset, true
}
