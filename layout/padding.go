package layout

import "github.com/wippyai/record-layout/abi"

// finalize closes the record: the still-open unit is padded out, the record
// alignment is the largest natural alignment of any placed member (1 when
// packed) and the size is rounded up to it.
func finalize(open *unit, cursor int, placed []FieldLayout, p abi.Profile) (size, align int) {
	end := cursor
	if open != nil && open.limit() > end {
		end = open.limit()
	}

	align = 1
	if !p.Packed {
		for _, f := range placed {
			if f.Kind != KindZeroWidth && f.AlignBytes > align {
				align = f.AlignBytes
			}
		}
	}

	return abi.AlignTo(end, align), align
}
