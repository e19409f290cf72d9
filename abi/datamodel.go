package abi

import (
	"sort"
	"strings"

	"github.com/wippyai/record-layout/errors"
)

// DataModel maps C type names to scalar descriptors for one target family.
type DataModel struct {
	Name  string
	types map[string]Scalar
}

// Lookup resolves a type name. Whitespace is normalised so "unsigned  long"
// and "unsigned long" match.
func (m *DataModel) Lookup(name string) (Scalar, bool) {
	s, ok := m.types[normalizeTypeName(name)]
	return s, ok
}

// TypeNames lists the names the model defines, sorted.
func (m *DataModel) TypeNames() []string {
	names := make([]string, 0, len(m.types))
	for name := range m.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeTypeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

type modelSpec struct {
	short, integer, long, longLong, pointer int
	// alignment of 64-bit integers and double when it differs from size
	align64 int
}

func newDataModel(name string, spec modelSpec) *DataModel {
	m := &DataModel{Name: name, types: make(map[string]Scalar, 64)}

	add := func(size, align int, names ...string) {
		for _, n := range names {
			m.types[n] = Scalar{Name: n, SizeBits: size, AlignBits: align}
		}
	}
	align := func(size int) int {
		if size == 64 && spec.align64 != 0 {
			return spec.align64
		}
		return size
	}

	add(8, 8, "char", "signed char", "unsigned char", "_bool", "bool",
		"int8_t", "uint8_t", "int8", "uint8", "u8", "s8", "i8")
	add(spec.short, align(spec.short), "short", "unsigned short", "short int", "unsigned short int")
	add(16, 16, "int16_t", "uint16_t", "int16", "uint16", "u16", "s16", "i16")
	add(spec.integer, align(spec.integer), "int", "signed", "unsigned", "signed int", "unsigned int", "enum")
	add(32, 32, "int32_t", "uint32_t", "int32", "uint32", "u32", "s32", "i32", "float", "char32_t")
	add(spec.long, align(spec.long), "long", "unsigned long", "long int", "unsigned long int")
	add(spec.longLong, align(spec.longLong), "long long", "unsigned long long", "long long int", "unsigned long long int")
	add(64, align(64), "int64_t", "uint64_t", "int64", "uint64", "u64", "s64", "i64", "double")
	add(spec.pointer, spec.pointer, "pointer", "void*", "uintptr_t", "intptr_t", "size_t", "ssize_t", "ptrdiff_t")
	return m
}

var dataModels = map[string]*DataModel{
	"lp64":  newDataModel("lp64", modelSpec{short: 16, integer: 32, long: 64, longLong: 64, pointer: 64}),
	"llp64": newDataModel("llp64", modelSpec{short: 16, integer: 32, long: 32, longLong: 64, pointer: 64}),
	// i386 System V: 64-bit scalars are only 4-byte aligned inside records.
	"ilp32": newDataModel("ilp32", modelSpec{short: 16, integer: 32, long: 32, longLong: 64, pointer: 32, align64: 32}),
}

// LookupModel resolves a data model by name; empty selects lp64.
func LookupModel(name string) (*DataModel, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "lp64"
	}
	m, ok := dataModels[key]
	if !ok {
		return nil, errors.UnsupportedModel(name, ModelNames())
	}
	return m, nil
}

// ModelNames lists data model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(dataModels))
	for name := range dataModels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
