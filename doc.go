// Package recordlayout computes the physical memory layout of C-style
// records that mix ordinary members with bit-fields.
//
// Given an ordered list of field declarations and an ABI profile, the engine
// reports the record size and alignment and the byte and bit offset of every
// field, reproducing allocation-unit packing, straddling, zero-width
// boundaries, placement of ordinary members in bit-field padding and tail
// padding.
//
// # Architecture Overview
//
//	recordlayout/
//	├── abi/         Scalars, ABI profiles and presets, C data models
//	├── layout/      The engine: Compute, Calculator and result types
//	├── errors/      Structured error types and exit codes
//	├── document/    JSON and YAML input/output documents
//	├── batch/       Concurrent evaluation of many documents
//	├── render/      Terminal table and bit map
//	├── witrecord/   WIT records as field lists
//	└── cmd/layout/  Command line: compute, profiles, batch, explore, repl
//
// # Quick Start
//
//	fields := []layout.FieldSpec{
//		layout.BitField("first", abi.Uint64, 40),
//		layout.Plain("second", abi.Uint8),
//		layout.Plain("third", abi.Uint16),
//	}
//	l, err := layout.Compute(fields, abi.Default())
//	// l.SizeBytes == 8: second and third sit in the bit-field's padding
//
// # Profiles
//
// A profile carries four independent rules: whether the record is packed,
// whether a bit-field may straddle two allocation units, the order bits are
// assigned in, and whether ordinary members may occupy the unused tail of a
// bit-field unit. abi.Lookup resolves the named presets.
package recordlayout
