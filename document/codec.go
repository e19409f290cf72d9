package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/record-layout/errors"
)

// Format selects a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml"/"yml" and "" (auto).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("unknown document format %q", s)
}

// FormatForPath guesses the format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatAuto
}

// sniff treats anything starting with '{' as JSON.
func sniff(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Decode reads one input document. Unknown keys are rejected in both
// encodings.
func Decode(r io.Reader, format Format) (*Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "read document")
	}
	return DecodeBytes(data, format)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte, format Format) (*Input, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.InvalidInput(errors.PhaseDecode, nil, "empty document")
	}
	if format == FormatAuto {
		format = sniff(data)
	}

	var in Input
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "malformed JSON document")
		}
		if dec.More() {
			return nil, errors.InvalidInput(errors.PhaseDecode, nil, "trailing data after JSON document")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&in); err != nil {
			return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "malformed YAML document")
		}
	default:
		return nil, errors.InvalidInput(errors.PhaseDecode, nil, fmt.Sprintf("unsupported format %q", format))
	}
	return &in, nil
}

// Encode writes v (normally an *Output) in the given format. JSON is the
// default.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "encode YAML")
		}
		if err := enc.Close(); err != nil {
			return errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "encode YAML")
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(errors.PhaseEncode, errors.KindInvalidInput, err, "encode JSON")
		}
	}
	return nil
}
