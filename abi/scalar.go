package abi

import "fmt"

// Scalar describes the storage of an underlying type: its width and natural
// alignment, both in bits.
type Scalar struct {
	Name      string
	SizeBits  int
	AlignBits int
}

// NewScalar describes a type whose alignment equals its size.
func NewScalar(name string, sizeBits int) Scalar {
	return Scalar{Name: name, SizeBits: sizeBits, AlignBits: sizeBits}
}

// Predeclared fixed-width scalars with size == alignment.
var (
	Uint8  = NewScalar("uint8", 8)
	Uint16 = NewScalar("uint16", 16)
	Uint32 = NewScalar("uint32", 32)
	Uint64 = NewScalar("uint64", 64)
)

// SizeBytes returns the storage size in bytes.
func (s Scalar) SizeBytes() int { return s.SizeBits / 8 }

// AlignBytes returns the natural alignment in bytes.
func (s Scalar) AlignBytes() int { return s.AlignBits / 8 }

// SameStorage reports whether bit-fields of s and o may share an allocation
// unit. Names are not compared: `int` and `unsigned int` share storage.
func (s Scalar) SameStorage(o Scalar) bool {
	return s.SizeBits == o.SizeBits && s.AlignBits == o.AlignBits
}

// Validate checks that the descriptor can describe addressable storage.
func (s Scalar) Validate() error {
	switch {
	case s.SizeBits <= 0 || s.SizeBits%8 != 0:
		return fmt.Errorf("size %d bits is not a positive whole number of bytes", s.SizeBits)
	case s.AlignBits <= 0 || s.AlignBits%8 != 0:
		return fmt.Errorf("alignment %d bits is not a positive whole number of bytes", s.AlignBits)
	case !IsPowerOfTwo(s.AlignBytes()):
		return fmt.Errorf("alignment %d bytes is not a power of two", s.AlignBytes())
	case s.SizeBits%s.AlignBits != 0:
		return fmt.Errorf("size %d bits is not a multiple of alignment %d bits", s.SizeBits, s.AlignBits)
	}
	return nil
}

func (s Scalar) String() string {
	name := s.Name
	if name == "" {
		name = "scalar"
	}
	if s.SizeBits == s.AlignBits {
		return fmt.Sprintf("%s(%d)", DisplayName(name), s.SizeBits)
	}
	return fmt.Sprintf("%s(%d/%d)", DisplayName(name), s.SizeBits, s.AlignBits)
}
