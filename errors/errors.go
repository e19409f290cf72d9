package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseValidate Phase = "validate" // field list validation
	PhaseLayout   Phase = "layout"   // placement
	PhaseProfile  Phase = "profile"  // ABI preset and data model resolution
	PhaseDecode   Phase = "decode"   // input document to field specs
	PhaseEncode   Phase = "encode"   // layout to output document
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidFieldWidth  Kind = "invalid_field_width"
	KindDuplicateFieldName Kind = "duplicate_field_name"
	KindUnsupportedProfile Kind = "unsupported_profile"
	KindUnsupportedModel   Kind = "unsupported_data_model"
	KindInvalidType        Kind = "invalid_type"
	KindUnknownType        Kind = "unknown_type"
	KindUnnamedField       Kind = "unnamed_field"
	KindInvalidInput       Kind = "invalid_input"
	KindOverflow           Kind = "overflow"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Field  string
	Type   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Field != "" {
		b.WriteString(" in field ")
		b.WriteString(fmt.Sprintf("%q", e.Field))
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Field sets the offending field name
func (b *Builder) Field(name string) *Builder {
	b.err.Field = name
	return b
}

// Path sets the document path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the scalar type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidFieldWidth reports a bit-field width outside [0, typeBits].
func InvalidFieldWidth(field, typeName string, width, typeBits int) *Error {
	detail := fmt.Sprintf("bit-field width %d exceeds the %d bits of its type", width, typeBits)
	if width < 0 {
		detail = fmt.Sprintf("bit-field width %d is negative", width)
	}
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidFieldWidth,
		Field:  field,
		Type:   typeName,
		Detail: detail,
		Value:  width,
	}
}

// DuplicateFieldName reports a second declaration of an already used name.
func DuplicateFieldName(field string, first, second int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindDuplicateFieldName,
		Field:  field,
		Detail: fmt.Sprintf("declared at positions %d and %d", first, second),
		Value:  second,
	}
}

// InvalidType reports a scalar descriptor that cannot describe storage.
func InvalidType(field, typeName, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidType,
		Field:  field,
		Type:   typeName,
		Detail: detail,
	}
}

// UnnamedField reports an ordinary member without a name.
func UnnamedField(index int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindUnnamedField,
		Detail: fmt.Sprintf("member at position %d has no name; only bit-fields may be anonymous", index),
		Value:  index,
	}
}

// UnsupportedProfile reports an unknown ABI preset name.
func UnsupportedProfile(name string, known []string) *Error {
	return &Error{
		Phase:  PhaseProfile,
		Kind:   KindUnsupportedProfile,
		Detail: fmt.Sprintf("unknown ABI profile %q (known: %s)", name, joinSorted(known)),
		Value:  name,
	}
}

// UnsupportedModel reports an unknown data model name.
func UnsupportedModel(name string, known []string) *Error {
	return &Error{
		Phase:  PhaseProfile,
		Kind:   KindUnsupportedModel,
		Detail: fmt.Sprintf("unknown data model %q (known: %s)", name, joinSorted(known)),
		Value:  name,
	}
}

// UnknownType reports a type name the data model cannot resolve.
func UnknownType(path []string, field, typeName, model string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownType,
		Path:   path,
		Field:  field,
		Type:   typeName,
		Detail: fmt.Sprintf("no type_bits given and %s does not define it", model),
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Path:   path,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Exit codes used by the command line boundary.
const (
	ExitOK          = 0
	ExitMalformed   = 1
	ExitUnsupported = 2
)

// ExitCode maps an error to the process exit code: unknown profiles and data
// models exit with 2, everything else with 1.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var e *Error
	if errors.As(err, &e) && e.Phase == PhaseProfile {
		return ExitUnsupported
	}
	return ExitMalformed
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func joinSorted(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	s := append([]string(nil), names...)
	sort.Strings(s)
	return strings.Join(s, ", ")
}
