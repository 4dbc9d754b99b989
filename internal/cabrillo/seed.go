package cabrillo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/km6i/prefill/internal/model"
)

// seedColumns is the N1MM prefill column order:
// Call,Name,Grid1,Grid2,Section,State,CK,Birthdate,Prec
var seedColumns = []string{
	model.FieldName,
	model.FieldGrid1,
	model.FieldGrid2,
	model.FieldSection,
	model.FieldState,
	model.FieldCheck,
	model.FieldBirthdate,
	model.FieldPrec,
}

// SeedStats counts what a seed load saw
type SeedStats struct {
	Lines   int
	Valid   int
	Skipped []string // Raw lines that did not parse
}

// LoadSeedFile loads a pre-existing prefill file (N1MM comma-separated
// format), typically the output of a previous year's run. Seed records
// carry model.SeedYear so fresh log data always outranks them.
func LoadSeedFile(path string) ([]model.ContactRecord, SeedStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SeedStats{}, fmt.Errorf("open seed: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, stats, err := LoadSeed(f)
	if err != nil {
		return nil, stats, fmt.Errorf("load seed %s: %w", path, err)
	}
	return records, stats, nil
}

// LoadSeed loads seed records from a reader. Malformed lines are collected
// in the stats rather than aborting the load; empty columns contribute no
// observation.
func LoadSeed(r io.Reader) ([]model.ContactRecord, SeedStats, error) {
	var records []model.ContactRecord
	var stats SeedStats

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		stats.Lines++
		if line == "" {
			continue
		}

		// WZ6Z,HOWARD,,,EB,CA,64,-1,A
		cols := strings.Split(line, ",")
		if len(cols) != len(seedColumns)+1 || cols[0] == "" {
			stats.Skipped = append(stats.Skipped, line)
			continue
		}

		fields := make(map[string]string)
		for i, name := range seedColumns {
			if v := cols[i+1]; v != "" {
				fields[name] = v
			}
		}

		records = append(records, model.ContactRecord{
			Callsign: strings.ToUpper(cols[0]),
			Year:     model.SeedYear,
			Fields:   fields,
		})
		stats.Valid++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan seed: %w", err)
	}
	return records, stats, nil
}
