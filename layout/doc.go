// Package layout computes the physical layout of records that mix ordinary
// members and bit-fields.
//
// Compute walks the declared members once, in order, keeping at most one
// open allocation unit: a run of storage sized to a bit-field's underlying
// type into which consecutive compatible bit-fields are packed. The four
// flags of abi.Profile decide the implementation-defined parts:
//
//   - Packed: members and new units are byte aligned and the record
//     alignment is 1. A closed unit still keeps its full storage.
//   - AllowStraddle: a bit-field that does not fit the open unit continues
//     into an adjoining unit of the same type.
//   - BitOrder: LSB-first or MSB-first bit assignment inside a unit.
//   - AllowOverlap: an ordinary member may be placed in the unused trailing
//     bytes of the open unit when its alignment permits.
//
// A zero-width bit-field closes the open unit so the next member starts a
// fresh one. The marker is reported at the offset where that member lands. Once all members are placed, the record is padded to a multiple
// of its alignment.
//
// # Usage
//
//	fields := []layout.FieldSpec{
//		layout.BitField("first", abi.Uint32, 20),
//		layout.Plain("second", abi.Uint32),
//		layout.BitField("third", abi.Uint32, 12),
//	}
//	l, err := layout.Compute(fields, abi.Default())
//	// l.SizeBytes == 12, l.AlignBytes == 4
//
// Calculator wraps Compute with a concurrency-safe cache keyed by
// Fingerprint.
package layout
