// Package errors provides structured error types for the record layout engine.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending field, scalar type name, document path and
// cause chain so boundary layers can report which field broke which rule.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindInvalidFieldWidth).
//		Field("flags").
//		Type("uint8_t").
//		Detail("bit-field width %d exceeds the %d bits of its type", 9, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidFieldWidth("flags", "uint8_t", 9, 8)
//	err := errors.DuplicateFieldName("len", 0, 3)
//	err := errors.UnsupportedProfile("vax", abi.Names())
//
// All errors implement the standard error interface and support errors.Is/As.
// ExitCode maps an error onto the command line exit status.
package errors
