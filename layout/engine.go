package layout

import (
	"go.uber.org/zap"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
)

// Compute lays out fields in declaration order under profile p.
//
// The whole field list is validated before anything is placed; on error the
// returned layout is nil. Compute keeps no state between calls and is safe
// for concurrent use.
func Compute(fields []FieldSpec, p abi.Profile) (*Layout, error) {
	if err := validate(fields); err != nil {
		return nil, err
	}

	pl := &placer{
		profile: p,
		fields:  make([]FieldLayout, 0, len(fields)),
	}
	for _, f := range fields {
		pl.place(f)
	}

	size, align := finalize(pl.open, pl.cursor, pl.fields, p)

	if ce := Logger().Check(zap.DebugLevel, "record laid out"); ce != nil {
		ce.Write(
			zap.String("profile", p.Name),
			zap.Int("fields", len(fields)),
			zap.Int("size", size),
			zap.Int("align", align),
		)
	}

	return &Layout{
		SizeBytes:  size,
		AlignBytes: align,
		Fields:     pl.fields,
	}, nil
}

func validate(fields []FieldSpec) error {
	seen := make(map[string]int, len(fields))
	for i, f := range fields {
		if err := f.Type.Validate(); err != nil {
			return errors.InvalidType(f.Name, f.Type.Name, err.Error())
		}

		if w, ok := f.Width(); ok {
			if w < 0 || w > f.Type.SizeBits {
				return errors.InvalidFieldWidth(f.Name, f.Type.Name, w, f.Type.SizeBits)
			}
		} else if f.Name == "" {
			return errors.UnnamedField(i)
		}

		if f.Name == "" {
			continue
		}
		if first, dup := seen[f.Name]; dup {
			return errors.DuplicateFieldName(f.Name, first, i)
		}
		seen[f.Name] = i
	}
	return nil
}

// placer is the single-pass state of one Compute call.
type placer struct {
	profile abi.Profile
	cursor  int   // next free byte outside the open unit
	open    *unit // nil when no unit accepts bit-fields
	fields  []FieldLayout
	markers []int // zero-width markers waiting for the next member
}

func (pl *placer) place(f FieldSpec) {
	w, isBitField := f.Width()
	switch {
	case !isBitField:
		pl.placeOrdinary(f)
	case w == 0:
		pl.placeZeroWidth(f)
		return
	default:
		pl.placeBitField(f, w)
	}
	pl.settleMarkers()
}

// settleMarkers moves pending zero-width markers to the offset of the member
// just placed, which is where the forced unit begins.
func (pl *placer) settleMarkers() {
	if len(pl.markers) == 0 {
		return
	}
	at := pl.fields[len(pl.fields)-1].ByteOffset
	for _, i := range pl.markers {
		pl.fields[i].ByteOffset = at
		pl.fields[i].AllocBit = at * 8
	}
	pl.markers = pl.markers[:0]
}

func (pl *placer) closeUnit() {
	if pl.open == nil {
		return
	}
	if end := pl.open.limit(); end > pl.cursor {
		pl.cursor = end
	}
	pl.trace("close unit", zap.Int("start", pl.open.start), zap.Int("consumed", pl.open.consumed))
	pl.open = nil
}

func (pl *placer) alignFor(typ abi.Scalar) int {
	if pl.profile.Packed {
		return 1
	}
	return typ.AlignBytes()
}

func (pl *placer) placeOrdinary(f FieldSpec) {
	fl := FieldLayout{
		Name:       f.Name,
		TypeName:   f.Type.Name,
		Kind:       KindOrdinary,
		SizeBytes:  f.Type.SizeBytes(),
		AlignBytes: f.Type.AlignBytes(),
	}

	if offset, ok := canOverlap(pl.open, f, pl.profile); ok {
		fl.ByteOffset = offset
		fl.AllocBit = offset * 8
		fl.Overlaps = true
		pl.open.consumed = (offset+fl.SizeBytes)*8 - pl.open.start*8
		pl.fields = append(pl.fields, fl)
		pl.trace("overlap", zap.String("field", f.Name), zap.Int("offset", offset))
		return
	}

	pl.closeUnit()
	offset := abi.AlignTo(pl.cursor, pl.alignFor(f.Type))
	fl.ByteOffset = offset
	fl.AllocBit = offset * 8
	pl.cursor = offset + fl.SizeBytes
	pl.fields = append(pl.fields, fl)
	pl.trace("ordinary", zap.String("field", f.Name), zap.Int("offset", offset))
}

// placeZeroWidth forces the next member into a fresh unit. The marker is
// reported at the offset where that member lands, or at the cursor after
// closing when nothing follows.
func (pl *placer) placeZeroWidth(f FieldSpec) {
	pl.closeUnit()
	pl.markers = append(pl.markers, len(pl.fields))
	pl.fields = append(pl.fields, FieldLayout{
		Name:       f.Name,
		TypeName:   f.Type.Name,
		Kind:       KindZeroWidth,
		ByteOffset: pl.cursor,
		AllocBit:   pl.cursor * 8,
		SizeBytes:  f.Type.SizeBytes(),
		AlignBytes: f.Type.AlignBytes(),
	})
	pl.trace("zero-width boundary", zap.Int("cursor", pl.cursor))
}

func (pl *placer) placeBitField(f FieldSpec, width int) {
	fl := FieldLayout{
		Name:       f.Name,
		TypeName:   f.Type.Name,
		Kind:       KindBitField,
		BitWidth:   width,
		SizeBytes:  f.Type.SizeBytes(),
		AlignBytes: f.Type.AlignBytes(),
	}
	order := pl.profile.BitOrder
	u := pl.open

	switch {
	case u != nil && u.accepts(f.Type, width):
		fl.ContainerBits = u.bits()

	case u != nil && pl.profile.AllowStraddle && u.typ.SameStorage(f.Type) && u.remaining() > 0:
		// The field keeps the current unit's tail and spills into the
		// adjoining unit, which stays open for the following members.
		fl.ByteOffset = u.start
		fl.BitOffset = u.shift(order, width, 2*u.bits())
		fl.AllocBit = u.allocBit()
		fl.ContainerBits = 2 * u.bits()
		fl.Straddles = true

		next := openUnit(f.Type, u.limit())
		next.consumed = u.consumed + width - u.bits()
		pl.open = next
		pl.cursor = next.start
		pl.fields = append(pl.fields, fl)
		pl.trace("straddle", zap.String("field", f.Name), zap.Int("unit", u.start), zap.Int("spill", next.consumed))
		return

	default:
		pl.closeUnit()
		start := abi.AlignTo(pl.cursor, pl.alignFor(f.Type))
		u = openUnit(f.Type, start)
		pl.open = u
		pl.cursor = start
		fl.ContainerBits = u.bits()
		pl.trace("open unit", zap.String("type", f.Type.Name), zap.Int("start", start))
	}

	fl.ByteOffset = u.start
	fl.BitOffset = u.shift(order, width, u.bits())
	fl.AllocBit = u.allocBit()
	u.consumed += width
	pl.fields = append(pl.fields, fl)
}

func (pl *placer) trace(msg string, fields ...zap.Field) {
	if ce := Logger().Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields...)
	}
}
