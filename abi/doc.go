// Package abi describes the implementation-defined parts of record layout.
//
// A Profile carries the four flags that vary between targets and packing
// attributes: whether the record is packed, whether bit-fields may straddle
// allocation units, the bit assignment direction, and whether ordinary
// members may be folded into the trailing padding of a bit-field unit.
// Named presets are resolved with Lookup; unknown names fail with an
// unsupported_profile error.
//
// A Scalar is the storage descriptor of an underlying type. DataModel maps
// C type names to scalars for the lp64, llp64 and ilp32 families so input
// documents can name types instead of spelling out their widths.
//
// # Presets
//
//	default, sysv  unpacked, no straddle, lsb_first, overlap
//	msvc           unpacked, no straddle, lsb_first, no overlap
//	sysv-be        unpacked, no straddle, msb_first, overlap
//	packed         packed, straddle, lsb_first, overlap
//	packed-be      packed, straddle, msb_first, overlap
package abi
