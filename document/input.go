package document

import (
	"strconv"

	"fortio.org/safecast"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
)

// Input is a record description as read from JSON or YAML.
type Input struct {
	Profile   string `json:"profile,omitempty" yaml:"profile,omitempty"`
	DataModel string `json:"data_model,omitempty" yaml:"data_model,omitempty"`

	// Flag overrides applied on top of the named profile.
	Packed         *bool   `json:"packed,omitempty" yaml:"packed,omitempty"`
	AllowStraddle  *bool   `json:"allow_straddle,omitempty" yaml:"allow_straddle,omitempty"`
	BitDirection   *string `json:"bit_direction,omitempty" yaml:"bit_direction,omitempty"`
	OverlapAllowed *bool   `json:"overlap_allowed,omitempty" yaml:"overlap_allowed,omitempty"`

	Fields []FieldInput `json:"fields" yaml:"fields"`
}

// FieldInput is one declared member. A null or missing Bits marks an
// ordinary member.
type FieldInput struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	TypeBits      *int64 `json:"type_bits,omitempty" yaml:"type_bits,omitempty"`
	TypeAlignBits *int64 `json:"type_align_bits,omitempty" yaml:"type_align_bits,omitempty"`
	Bits          *int64 `json:"bits" yaml:"bits"`
}

// Overrides take precedence over the document's own profile and data model
// when non-empty. The command line fills them from flags.
type Overrides struct {
	Profile   string
	DataModel string
}

// Request is a resolved document, ready for the engine.
type Request struct {
	Profile abi.Profile
	Model   *abi.DataModel
	Fields  []layout.FieldSpec
}

// Resolve looks up the profile and data model, applies the flag overrides
// and converts every field to a layout.FieldSpec.
func (in *Input) Resolve(ov Overrides) (*Request, error) {
	profileName := in.Profile
	if ov.Profile != "" {
		profileName = ov.Profile
	}
	p, err := abi.Lookup(profileName)
	if err != nil {
		return nil, err
	}

	modelName := in.DataModel
	if ov.DataModel != "" {
		modelName = ov.DataModel
	}
	model, err := abi.LookupModel(modelName)
	if err != nil {
		return nil, err
	}

	var opts []abi.Option
	if in.Packed != nil {
		opts = append(opts, abi.WithPacked(*in.Packed))
	}
	if in.AllowStraddle != nil {
		opts = append(opts, abi.WithStraddle(*in.AllowStraddle))
	}
	if in.BitDirection != nil {
		order, err := abi.ParseBitOrder(*in.BitDirection)
		if err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
				Path("bit_direction").
				Value(*in.BitDirection).
				Cause(err).
				Detail("expected lsb_first or msb_first").
				Build()
		}
		opts = append(opts, abi.WithBitOrder(order))
	}
	if in.OverlapAllowed != nil {
		opts = append(opts, abi.WithOverlap(*in.OverlapAllowed))
	}
	p = p.With(opts...)

	fields := make([]layout.FieldSpec, 0, len(in.Fields))
	for i, f := range in.Fields {
		spec, err := f.resolve(model, strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		fields = append(fields, spec)
	}

	return &Request{Profile: p, Model: model, Fields: fields}, nil
}

func (f FieldInput) resolve(model *abi.DataModel, index string) (layout.FieldSpec, error) {
	path := func(key string) []string { return []string{"fields", index, key} }

	var typ abi.Scalar
	switch {
	case f.TypeBits != nil:
		size, err := toInt(*f.TypeBits, path("type_bits"))
		if err != nil {
			return layout.FieldSpec{}, err
		}
		typ = abi.Scalar{Name: f.Type, SizeBits: size, AlignBits: size}
		if typ.Name == "" {
			typ.Name = "u" + strconv.Itoa(size)
		}
	case f.Type != "":
		s, ok := model.Lookup(f.Type)
		if !ok {
			return layout.FieldSpec{}, errors.UnknownType(path("type"), f.Name, f.Type, model.Name)
		}
		typ = s
		typ.Name = f.Type
	default:
		return layout.FieldSpec{}, errors.New(errors.PhaseDecode, errors.KindInvalidInput).
			Field(f.Name).
			Path(path("type")...).
			Detail("either type or type_bits is required").
			Build()
	}

	if f.TypeAlignBits != nil {
		align, err := toInt(*f.TypeAlignBits, path("type_align_bits"))
		if err != nil {
			return layout.FieldSpec{}, err
		}
		typ.AlignBits = align
	}

	spec := layout.FieldSpec{Name: f.Name, Type: typ}
	if f.Bits != nil {
		w, err := toInt(*f.Bits, path("bits"))
		if err != nil {
			return layout.FieldSpec{}, err
		}
		spec.BitWidth = &w
	}
	return spec, nil
}

// toInt narrows a document integer to the engine's range. Widths beyond
// int32 cannot describe any real type.
func toInt(v int64, path []string) (int, error) {
	n, err := safecast.Conv[int32](v)
	if err != nil {
		return 0, errors.Overflow(errors.PhaseDecode, path, v, "int32")
	}
	return int(n), nil
}
