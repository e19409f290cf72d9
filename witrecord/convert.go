package witrecord

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
)

// Converter turns WIT records into field lists. Sizes of named typedefs are
// cached, so one Converter should be reused across the records of a package.
// A Converter is not safe for concurrent use.
type Converter struct {
	canon  *canon
	logger *zap.Logger
}

// NewConverter creates a Converter logging to logger; nil means no logging.
func NewConverter(logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{canon: newCanon(), logger: logger}
}

// FromRecord converts r with a fresh Converter.
func FromRecord(r *wit.Record) ([]layout.FieldSpec, error) {
	return NewConverter(nil).Record(r)
}

// TypeDef converts a typedef whose kind is a record.
func (c *Converter) TypeDef(t *wit.TypeDef) ([]layout.FieldSpec, error) {
	r, ok := t.Kind.(*wit.Record)
	if !ok {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Type(TypeName(t)).
			Detail("not a record").
			Build()
	}
	return c.Record(r)
}

// Record converts the members of r in declaration order. Zero-sized members
// (empty records, tuples and flags) occupy no storage and are left out.
func (c *Converter) Record(r *wit.Record) ([]layout.FieldSpec, error) {
	fields := make([]layout.FieldSpec, 0, len(r.Fields))
	for i, f := range r.Fields {
		if td, ok := f.Type.(*wit.TypeDef); ok {
			if flags, ok := td.Kind.(*wit.Flags); ok {
				fields = append(fields, c.flags(f.Name, flags)...)
				continue
			}
		}

		s, err := c.Scalar(f.Type)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				e.Field = f.Name
				e.Path = []string{"fields", strconv.Itoa(i)}
			}
			return nil, err
		}
		if s.SizeBits == 0 {
			c.logger.Debug("skipping zero-sized member", zap.String("field", f.Name), zap.String("type", s.Name))
			continue
		}
		fields = append(fields, layout.Plain(f.Name, s))
	}
	return fields, nil
}

// Scalar returns the storage descriptor of t as an opaque member.
func (c *Converter) Scalar(t wit.Type) (abi.Scalar, error) {
	name := TypeName(t)
	in, ok := c.canon.of(t)
	if !ok {
		return abi.Scalar{}, errors.New(errors.PhaseDecode, errors.KindInvalidType).
			Type(name).
			Detail("no Canonical ABI storage for %T", t).
			Build()
	}

	size, err := safecast.Conv[int32](uint64(in.size) * 8)
	if err != nil {
		return abi.Scalar{}, errors.Overflow(errors.PhaseDecode, nil, in.size, "int32 bits")
	}
	align, err := safecast.Conv[int32](uint64(in.align) * 8)
	if err != nil {
		return abi.Scalar{}, errors.Overflow(errors.PhaseDecode, nil, in.align, "int32 bits")
	}
	return abi.Scalar{Name: name, SizeBits: int(size), AlignBits: int(align)}, nil
}

// flags expands a flags value into 1-bit bit-fields named "field.flag".
func (c *Converter) flags(field string, f *wit.Flags) []layout.FieldSpec {
	if len(f.Flags) == 0 {
		return nil
	}

	storage := flagsStorage(len(f.Flags))
	out := make([]layout.FieldSpec, 0, len(f.Flags)+2)
	out = append(out, layout.ZeroWidth(storage))
	for _, flag := range f.Flags {
		out = append(out, layout.BitField(field+"."+flag.Name, storage, 1))
	}
	out = append(out, layout.ZeroWidth(storage))
	return out
}

func flagsStorage(n int) abi.Scalar {
	switch in := flagsInfo(n); in.size {
	case 1:
		return abi.Uint8
	case 2:
		return abi.Uint16
	case 8:
		return abi.Uint64
	}
	return abi.Uint32
}

// TypeName renders t the way WIT source spells it.
func TypeName(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.U8:
		return "u8"
	case wit.S8:
		return "s8"
	case wit.U16:
		return "u16"
	case wit.S16:
		return "s16"
	case wit.U32:
		return "u32"
	case wit.S32:
		return "s32"
	case wit.U64:
		return "u64"
	case wit.S64:
		return "s64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		return kindName(v.Kind)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func kindName(k wit.TypeDefKind) string {
	switch k.(type) {
	case *wit.Record:
		return "record"
	case *wit.Tuple:
		return "tuple"
	case *wit.Variant:
		return "variant"
	case *wit.Enum:
		return "enum"
	case *wit.List:
		return "list"
	case *wit.Option:
		return "option"
	case *wit.Result:
		return "result"
	case *wit.Flags:
		return "flags"
	}
	if t, ok := k.(wit.Type); ok {
		return TypeName(t)
	}
	return "typedef"
}
