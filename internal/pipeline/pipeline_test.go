package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/km6i/prefill/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testConfig(t *testing.T) *model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Concurrency.Workers = 2
	return cfg
}

func TestPipeline_Run_EndToEnd(t *testing.T) {
	logs := t.TempDir()

	// Two logs both worked W1AW in 2012 but disagree on the check; a third
	// only has 2011 data for K6XX.
	writeFile(t, logs, "n3en.log", `START-OF-LOG: 3.0
CONTEST: ARRL-SS-CW
QSO: 21039 CW 2012-11-03 2100 N3EN 0001 U 75 MDC W1AW 0014 B 99 CT
QSO: 21040 CW 2012-11-03 2101 N3EN 0002 U 75 MDC K2ABC 0020 A 55 NNJ
END-OF-LOG:
`)
	writeFile(t, logs, "km6i.log", `START-OF-LOG: 3.0
CONTEST: ARRL-SS-CW
QSO: 14039 CW 2012-11-03 2200 KM6I 0001 U 75 SCV W1AW 0015 B 98 CT
QSO: 14040 CW 2012-11-03 2201 KM6I 0002 U 75 SCV W1AW 0016 B 99 CT
END-OF-LOG:
`)
	writeFile(t, logs, "old.log", `START-OF-LOG: 3.0
CONTEST: ARRL-SS-CW
QSO: 7039 CW 2011-11-05 0300 N6TV 0101 A 71 SCV K6XX 0200 M 61 SCV
END-OF-LOG:
`)

	seed := writeFile(t, t.TempDir(), "seed.txt", "WZ6Z,HOWARD,,,EB,CA,64,-1,A\r\n")

	cfg := testConfig(t)
	cfg.Logs.Dirs = []string{logs}
	cfg.Logs.Seed = seed

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Files != 3 || result.QSOs != 5 {
		t.Errorf("unexpected stats: %+v", result)
	}
	if result.SeedStats.Valid != 1 {
		t.Errorf("expected 1 seed line, got %d", result.SeedStats.Valid)
	}

	w1aw := result.Entries["W1AW"]
	if w1aw.Year != 2012 {
		t.Errorf("expected 2012 for W1AW, got %d", w1aw.Year)
	}
	// CHECK seen as 99,98,99: plurality picks 99.
	if w1aw.Fields[model.FieldCheck] != "99" {
		t.Errorf("expected CHECK=99, got %q", w1aw.Fields[model.FieldCheck])
	}

	// Seed-only callsign survives with its seed exchange.
	if result.Entries["WZ6Z"].Fields[model.FieldSection] != "EB" {
		t.Errorf("expected seed entry for WZ6Z, got %v", result.Entries["WZ6Z"])
	}

	// The W1AW check disagreement is reported.
	foundAmbiguity := false
	for _, amb := range result.Ambiguities {
		if amb.Callsign == "W1AW" && amb.Field == model.FieldCheck {
			foundAmbiguity = true
		}
	}
	if !foundAmbiguity {
		t.Errorf("expected W1AW CHECK ambiguity, got %v", result.Ambiguities)
	}
}

func TestPipeline_Run_EmptyInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Logs.Dirs = []string{t.TempDir()}

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("empty input is not an error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected empty mapping, got %d entries", len(result.Entries))
	}
}

func TestPipeline_Run_CacheStable(t *testing.T) {
	logs := t.TempDir()
	writeFile(t, logs, "km6i.log", `CONTEST: ARRL-SS-CW
QSO: 21039 CW 2012-11-03 2100 KM6I 0001 U 75 SCV N3EN 0001 A 56 MDC
`)

	cfg := testConfig(t)
	cfg.Logs.Dirs = []string{logs}
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CachedFiles != 0 {
		t.Errorf("first run must parse fresh, got %d cached", first.CachedFiles)
	}

	// A second pipeline over the same cache dir serves the parse from disk
	// and resolves identically.
	p2, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := p2.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.CachedFiles != 1 {
		t.Errorf("expected cached parse on rerun, got %d", second.CachedFiles)
	}
	if !reflect.DeepEqual(first.Entries, second.Entries) {
		t.Errorf("cached rerun changed output: %v vs %v", first.Entries, second.Entries)
	}
}

func TestPipeline_WriteOutput(t *testing.T) {
	logs := t.TempDir()
	writeFile(t, logs, "km6i.log", `CONTEST: ARRL-SS-CW
QSO: 21039 CW 2012-11-03 2100 KM6I 0001 U 75 SCV N3EN 0001 A 56 MDC
`)

	out := filepath.Join(t.TempDir(), "prefill.txt")
	cfg := testConfig(t)
	cfg.Logs.Dirs = []string{logs}
	cfg.Output.Path = out

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.WriteOutput(result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "N3EN,,,,MDC,,56,-1,A\r\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestNewPipeline_BadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Format = "adif"
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for unknown format")
	}

	cfg = testConfig(t)
	cfg.Logs.Dialect = "nosuch"
	if _, err := NewPipeline(cfg); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestPipeline_Run_MalformedSeedLinesSkipped(t *testing.T) {
	seed := writeFile(t, t.TempDir(), "seed.txt", "not a seed line\nWZ6Z,HOWARD,,,EB,CA,64,-1,A\n")

	cfg := testConfig(t)
	cfg.Logs.Seed = seed

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.SeedStats.Skipped) != 1 {
		t.Errorf("expected 1 skipped seed line, got %v", result.SeedStats.Skipped)
	}
	if !strings.Contains(result.SeedStats.Skipped[0], "not a seed line") {
		t.Errorf("unexpected skipped line: %q", result.SeedStats.Skipped[0])
	}
}
