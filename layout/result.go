package layout

// FieldKind distinguishes how a member occupies storage.
type FieldKind uint8

const (
	KindOrdinary FieldKind = iota
	KindBitField
	KindZeroWidth
)

func (k FieldKind) String() string {
	switch k {
	case KindOrdinary:
		return "ordinary"
	case KindBitField:
		return "bit-field"
	case KindZeroWidth:
		return "zero-width"
	default:
		return "unknown"
	}
}

// FieldLayout is the placement of one member.
//
// For bit-fields ByteOffset is the start of the allocation unit and BitOffset
// is the shift of the field's least significant bit inside a storage word of
// ContainerBits bits starting at ByteOffset. ContainerBits is the unit width,
// or twice that when the field straddles into the following unit.
type FieldLayout struct {
	Name       string
	TypeName   string
	Kind       FieldKind
	ByteOffset int
	BitOffset  int
	BitWidth   int // 0 for ordinary members

	// AllocBit is the record-relative bit index, in allocation order, of the
	// first bit the member occupies.
	AllocBit      int
	ContainerBits int
	SizeBytes     int
	AlignBytes    int

	Straddles bool // bit-field continues into an adjoined unit
	Overlaps  bool // ordinary member placed inside bit-field padding
}

// Width returns the bit width and whether the member is a bit-field.
func (f FieldLayout) Width() (int, bool) {
	return f.BitWidth, f.Kind != KindOrdinary
}

// StorageBits is the number of bits the member occupies.
func (f FieldLayout) StorageBits() int {
	if f.Kind == KindOrdinary {
		return f.SizeBytes * 8
	}
	return f.BitWidth
}

// Layout is the computed physical layout of a record.
type Layout struct {
	SizeBytes  int
	AlignBytes int
	Fields     []FieldLayout
}

// Field looks up a member by name.
func (l *Layout) Field(name string) (FieldLayout, bool) {
	for _, f := range l.Fields {
		if f.Name == name && name != "" {
			return f, true
		}
	}
	return FieldLayout{}, false
}

// PaddingBits counts the bits of the record no member occupies.
func (l *Layout) PaddingBits() int {
	used := 0
	for _, f := range l.Fields {
		used += f.StorageBits()
	}
	return l.SizeBytes*8 - used
}

// Clone returns a deep copy.
func (l *Layout) Clone() *Layout {
	if l == nil {
		return nil
	}
	out := *l
	out.Fields = append([]FieldLayout(nil), l.Fields...)
	return &out
}
