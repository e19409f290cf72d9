package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/wippyai/record-layout/document"
	lerrors "github.com/wippyai/record-layout/errors"
	"github.com/wippyai/record-layout/layout"
)

const (
	overlapDoc = `{"fields": [{"name": "first", "type": "u64", "bits": 40}, {"name": "second", "type": "u8"}, {"name": "third", "type": "u16"}]}`
	badWidth   = `{"fields": [{"name": "a", "type": "u8", "bits": 9}]}`
	badProfile = `{"profile": "vax", "fields": []}`
)

func TestRunOrderAndErrors(t *testing.T) {
	jobs := []Job{
		{Source: "ok", Data: []byte(overlapDoc)},
		{Source: "width", Data: []byte(badWidth)},
		{Source: "profile", Data: []byte(badProfile)},
		{Source: "yaml", Data: []byte("fields:\n  - {name: a, type: u16, bits: 7}\n")},
	}

	results, err := Run(context.Background(), jobs, Options{Concurrency: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}

	tests := []struct {
		source string
		exit   int
		size   int
	}{
		{"ok", lerrors.ExitOK, 8},
		{"width", lerrors.ExitMalformed, 0},
		{"profile", lerrors.ExitUnsupported, 0},
		{"yaml", lerrors.ExitOK, 2},
	}
	seen := map[string]bool{}
	for i, tc := range tests {
		r := results[i]
		if r.Source != tc.source {
			t.Errorf("result %d is %q, want %q", i, r.Source, tc.source)
		}
		if r.ExitCode != tc.exit {
			t.Errorf("%s: exit %d, want %d (%s)", tc.source, r.ExitCode, tc.exit, r.Error)
		}
		if tc.exit == lerrors.ExitOK {
			if r.Output == nil || r.Output.SizeBytes != tc.size {
				t.Errorf("%s: output %+v", tc.source, r.Output)
			}
		} else if r.Error == "" || r.Output != nil {
			t.Errorf("%s: error %q output %+v", tc.source, r.Error, r.Output)
		}

		id, err := uuid.Parse(r.ID)
		if err != nil || id.Version() != 7 {
			t.Errorf("%s: id %q is not a v7 uuid", tc.source, r.ID)
		}
		if seen[r.ID] {
			t.Errorf("duplicate id %s", r.ID)
		}
		seen[r.ID] = true
	}

	if got := ExitCode(results); got != lerrors.ExitUnsupported {
		t.Errorf("ExitCode = %d, want %d", got, lerrors.ExitUnsupported)
	}
}

func TestRunReadsFiles(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "rec.json")
	yamlPath := filepath.Join(dir, "rec.yaml")
	if err := os.WriteFile(jsonPath, []byte(overlapDoc), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(yamlPath, []byte("profile: msvc\nfields:\n  - {name: a, type: u64, bits: 40}\n  - {name: b, type: u8}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	results, err := Run(context.Background(), []Job{
		{Source: jsonPath},
		{Source: yamlPath},
		{Source: filepath.Join(dir, "missing.json")},
	}, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if results[0].Output == nil || results[0].Output.SizeBytes != 8 {
		t.Errorf("json: %+v", results[0])
	}
	if results[1].Output == nil || results[1].Output.SizeBytes != 16 {
		t.Errorf("yaml: %+v", results[1])
	}
	if results[2].ExitCode != lerrors.ExitMalformed {
		t.Errorf("missing file: %+v", results[2])
	}
}

func TestRunSharesCalculator(t *testing.T) {
	calc := layout.NewCalculator(0)
	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = Job{Source: "same", Data: []byte(overlapDoc), Format: document.FormatJSON}
	}
	results, err := Run(context.Background(), jobs, Options{Calculator: calc, Concurrency: 4})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calc.Len() != 1 {
		t.Errorf("calculator holds %d layouts, want 1", calc.Len())
	}
	if results[0].Layout == results[1].Layout {
		t.Error("results share a layout")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Run(ctx, []Job{
		{Source: "a", Data: []byte(overlapDoc)},
		{Source: "b", Data: []byte(overlapDoc)},
	}, Options{Concurrency: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	for _, r := range results {
		if r.Output != nil || r.Error == "" || r.ExitCode != lerrors.ExitMalformed {
			t.Errorf("%s: %+v", r.Source, r)
		}
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := Run(context.Background(), nil, Options{})
	if err != nil || len(results) != 0 {
		t.Errorf("got %v, %v", results, err)
	}
	if ExitCode(results) != lerrors.ExitOK {
		t.Error("empty batch should succeed")
	}
}
