package witrecord

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"

	"github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
)

// LoadRecord decodes a WIT package in the JSON form written by
// `wasm-tools component wit --json` and converts the record typedef name.
func (c *Converter) LoadRecord(r io.Reader, name string) ([]layout.FieldSpec, error) {
	res, err := wit.DecodeJSON(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseDecode, errors.KindInvalidInput, err, "decode WIT JSON")
	}
	t, err := FindRecord(res, name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("record found", zap.String("record", name), zap.Int("typedefs", len(res.TypeDefs)))
	return c.TypeDef(t)
}

// FindRecord returns the named record typedef of res.
func FindRecord(res *wit.Resolve, name string) (*wit.TypeDef, error) {
	var records []string
	for _, t := range res.TypeDefs {
		if t.Name == nil {
			continue
		}
		if _, ok := t.Kind.(*wit.Record); !ok {
			continue
		}
		if *t.Name == name {
			return t, nil
		}
		records = append(records, *t.Name)
	}

	sort.Strings(records)
	known := "none"
	if len(records) > 0 {
		known = strings.Join(records, ", ")
	}
	return nil, errors.InvalidInput(errors.PhaseDecode, nil,
		fmt.Sprintf("no record %q in WIT document (records: %s)", name, known))
}
