package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/wippyai/record-layout/abi"
	"github.com/wippyai/record-layout/errors"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	model, err := abi.LookupModel("lp64")
	if err != nil {
		t.Fatal(err)
	}
	return newSession(abi.Default(), model)
}

func execAll(t *testing.T, s *session, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	for _, line := range lines {
		if err := s.exec(line, &out); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
	return out.String()
}

func TestSessionBuildsRecord(t *testing.T) {
	s := newTestSession(t)
	out := execAll(t, s,
		"add first uint64_t:40",
		"add second uint8_t",
		"add third uint16_t",
		"show",
	)
	for _, want := range []string{"second uint8_t at byte 5 bit 0", "size 8 bytes", "in bit-field padding"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out = execAll(t, s, "set overlap off", "show")
	if !strings.Contains(out, "size 16 bytes") {
		t.Errorf("overlap off:\n%s", out)
	}
	if s.profile.AllowOverlap {
		t.Error("overlap flag still set")
	}
}

func TestSessionCommands(t *testing.T) {
	s := newTestSession(t)
	execAll(t, s,
		"add a unsigned int:3",
		"anon int:2",
		"zero int",
		"add b char",
	)
	if len(s.fields) != 4 {
		t.Fatalf("got %d fields, want 4", len(s.fields))
	}
	if s.fields[0].Type.SizeBits != 32 || s.fields[0].Type.Name != "unsigned int" {
		t.Errorf("a = %+v", s.fields[0])
	}
	if !s.fields[2].IsZeroWidth() {
		t.Error("third member should be a zero-width marker")
	}

	out := execAll(t, s, "fields")
	if !strings.Contains(out, "(anonymous) int:2") {
		t.Errorf("fields listing:\n%s", out)
	}

	execAll(t, s, "drop")
	if len(s.fields) != 3 {
		t.Errorf("drop left %d fields", len(s.fields))
	}

	execAll(t, s, "profile packed", "set order msb", "set straddle off")
	if !s.profile.Packed || s.profile.BitOrder != abi.MSBFirst || s.profile.AllowStraddle {
		t.Errorf("profile = %s", s.profile)
	}

	execAll(t, s, "model ilp32", "add c long long")
	if s.fields[len(s.fields)-1].Type.AlignBits != 32 {
		t.Errorf("ilp32 long long align = %d", s.fields[len(s.fields)-1].Type.AlignBits)
	}

	execAll(t, s, "reset")
	if len(s.fields) != 0 {
		t.Error("reset kept fields")
	}
	if out := execAll(t, s, "show"); !strings.Contains(out, "size 0 bytes") {
		t.Errorf("empty record:\n%s", out)
	}
}

func TestSessionRejectsInvalidMembers(t *testing.T) {
	s := newTestSession(t)
	execAll(t, s, "add a u8:3")

	tests := []struct {
		line string
		kind errors.Kind
	}{
		{"add a u8:2", errors.KindDuplicateFieldName},
		{"add b u8:9", errors.KindInvalidFieldWidth},
		{"add c quad", errors.KindUnknownType},
		{"add d u8:x", errors.KindInvalidInput},
		{"anon u8", errors.KindInvalidInput},
		{"profile vax", errors.KindUnsupportedProfile},
		{"model lp128", errors.KindUnsupportedModel},
		{"set packed maybe", errors.KindInvalidInput},
		{"set colour on", errors.KindInvalidInput},
		{"frob", errors.KindInvalidInput},
		{"add", errors.KindInvalidInput},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			var out bytes.Buffer
			err := s.exec(tc.line, &out)
			if kind, _ := errors.KindOf(err); kind != tc.kind {
				t.Errorf("kind = %v, want %v (%v)", kind, tc.kind, err)
			}
		})
	}

	if len(s.fields) != 1 {
		t.Errorf("rejected members were kept: %d fields", len(s.fields))
	}
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer
	if err := s.exec("quit", &out); !stderrors.Is(err, errQuit) {
		t.Errorf("quit returned %v", err)
	}
	if err := s.exec("   ", &out); err != nil {
		t.Errorf("blank line returned %v", err)
	}
	if err := s.exec("help", &out); err != nil || !strings.Contains(out.String(), "add NAME") {
		t.Errorf("help: %v\n%s", err, out.String())
	}
}
