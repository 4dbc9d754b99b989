package emit

import (
	"strings"
	"testing"

	"github.com/km6i/prefill/internal/model"
)

func sampleEntries() map[string]model.ResolvedEntry {
	return map[string]model.ResolvedEntry{
		"WZ6Z": {
			Callsign: "WZ6Z",
			Year:     2012,
			Fields: map[string]string{
				model.FieldSection: "EB",
				model.FieldCheck:   "64",
				model.FieldPrec:    "A",
			},
		},
		"K6XX": {
			Callsign: "K6XX",
			Year:     2012,
			Fields: map[string]string{
				model.FieldSection: "SCV",
			},
		},
	}
}

func TestForFormat(t *testing.T) {
	for _, format := range Formats() {
		e, err := ForFormat(format)
		if err != nil {
			t.Errorf("ForFormat(%q): %v", format, err)
			continue
		}
		if e.Name() != format {
			t.Errorf("expected name %q, got %q", format, e.Name())
		}
	}

	// Empty format defaults to N1MM.
	if e, err := ForFormat(""); err != nil || e.Name() != "n1mm" {
		t.Errorf("expected n1mm default, got %v %v", e, err)
	}

	if _, err := ForFormat("adif"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestN1MMEmitter_Emit(t *testing.T) {
	var buf strings.Builder
	e := &N1MMEmitter{}
	if err := e.Emit(&buf, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(buf.String(), "\r\n")
	if len(lines) != 3 || lines[2] != "" {
		t.Fatalf("expected 2 CRLF-terminated lines, got %q", buf.String())
	}

	// Sorted by callsign: K6XX before WZ6Z.
	if lines[0] != "K6XX,,,,SCV,,,-1," {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "WZ6Z,,,,EB,,64,-1,A" {
		t.Errorf("unexpected second line: %q", lines[1])
	}
}

func TestWinTestEmitter_Emit(t *testing.T) {
	var buf strings.Builder
	e := &WinTestEmitter{}
	if err := e.Emit(&buf, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	// K6XX has no prec or check; placeholders fill in.
	if lines[0] != "K6XX     - K6XX     -- SCV " {
		t.Errorf("unexpected line: %q", lines[0])
	}
	if lines[1] != "WZ6Z     A WZ6Z     64 EB  " {
		t.Errorf("unexpected line: %q", lines[1])
	}
}

func TestWriteLogEmitter_Emit(t *testing.T) {
	var buf strings.Builder
	e := &WriteLogEmitter{}
	if err := e.Emit(&buf, sampleEntries()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, "<EOR>"); got != 2 {
		t.Errorf("expected 2 stanzas, got %d", got)
	}
	if !strings.Contains(out, "<CALL:4>WZ6Z") {
		t.Errorf("expected length-prefixed callsign tag, got %q", out)
	}
	if !strings.Contains(out, "<ARRL_SECT:3>SCV") {
		t.Errorf("expected section tag, got %q", out)
	}
	// Serials increment across stanzas, TIME_ON steps by 2.
	if !strings.Contains(out, "<SRX:1>1") || !strings.Contains(out, "<SRX:1>2") {
		t.Errorf("expected incrementing serials, got %q", out)
	}
	if !strings.Contains(out, "<TIME_ON:6>000000") || !strings.Contains(out, "<TIME_ON:6>000002") {
		t.Errorf("expected stepped TIME_ON, got %q", out)
	}
}

func TestEmit_Empty(t *testing.T) {
	for _, format := range Formats() {
		e, _ := ForFormat(format)
		var buf strings.Builder
		if err := e.Emit(&buf, nil); err != nil {
			t.Errorf("%s: unexpected error: %v", format, err)
		}
		if buf.Len() != 0 {
			t.Errorf("%s: expected empty output, got %q", format, buf.String())
		}
	}
}
