package document

import "github.com/wippyai/record-layout/layout"

// Output is the computed layout as written by the command line.
type Output struct {
	SizeBytes  int           `json:"size_bytes" yaml:"size_bytes"`
	AlignBytes int           `json:"align_bytes" yaml:"align_bytes"`
	Fields     []FieldOutput `json:"fields" yaml:"fields"`
}

// FieldOutput is the placement of one member. BitWidth is null for ordinary
// members.
type FieldOutput struct {
	Name       string `json:"name" yaml:"name"`
	ByteOffset int    `json:"byte_offset" yaml:"byte_offset"`
	BitOffset  int    `json:"bit_offset" yaml:"bit_offset"`
	BitWidth   *int   `json:"bit_width" yaml:"bit_width"`
}

// FromLayout converts an engine result into an output document.
func FromLayout(l *layout.Layout) *Output {
	out := &Output{
		SizeBytes:  l.SizeBytes,
		AlignBytes: l.AlignBytes,
		Fields:     make([]FieldOutput, 0, len(l.Fields)),
	}
	for _, f := range l.Fields {
		fo := FieldOutput{
			Name:       f.Name,
			ByteOffset: f.ByteOffset,
			BitOffset:  f.BitOffset,
		}
		if w, ok := f.Width(); ok {
			fo.BitWidth = &w
		}
		out.Fields = append(out.Fields, fo)
	}
	return out
}

// Compute runs the engine on a resolved request. A nil calculator computes
// directly.
func (r *Request) Compute(calc *layout.Calculator) (*layout.Layout, error) {
	if calc == nil {
		return layout.Compute(r.Fields, r.Profile)
	}
	return calc.Calculate(r.Fields, r.Profile)
}
