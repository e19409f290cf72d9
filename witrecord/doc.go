// Package witrecord describes WIT records as C-style field lists so their
// layout can be compared under different packing profiles.
//
// Primitive members map to scalars of their Canonical ABI size. A flags
// member becomes a run of 1-bit bit-fields over its Canonical ABI storage
// type, fenced by zero-width markers so each flags value keeps storage of its
// own. Every other composite (nested records, tuples, variants, options,
// results, enums, strings, lists) is an opaque member sized by the Canonical
// ABI rules.
//
// Under the msvc profile the computed offsets of ordinary members match the
// Canonical ABI record layout.
package witrecord
