// Package cabrillo parses contest logs and pre-existing prefill files into
// contact records. Callsigns are uppercased here; the resolver treats them
// as exact-match strings.
package cabrillo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/km6i/prefill/internal/cabrillo/dialect"
	"github.com/km6i/prefill/internal/model"
)

// Stats counts what a parse saw
type Stats struct {
	Lines int // Total lines read
	QSOs  int // QSO lines successfully parsed
}

// Parser parses Cabrillo logs using a dialect registry
type Parser struct {
	registry *dialect.Registry
	forced   dialect.Dialect // Non-nil when a dialect is forced from config
}

// NewParser creates a parser that selects the dialect from each log's
// CONTEST: header
func NewParser() *Parser {
	return &Parser{registry: dialect.NewRegistry()}
}

// NewParserForDialect creates a parser locked to one named dialect
func NewParserForDialect(name string) (*Parser, error) {
	registry := dialect.NewRegistry()
	d, ok := registry.ByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q", name)
	}
	return &Parser{registry: registry, forced: d}, nil
}

// ParseFile parses one Cabrillo log file
func (p *Parser) ParseFile(path string) ([]model.ContactRecord, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, stats, err := p.Parse(f)
	if err != nil {
		return nil, stats, fmt.Errorf("parse %s: %w", path, err)
	}
	return records, stats, nil
}

// Parse parses a Cabrillo log from a reader. The dialect is taken from the
// CONTEST: header when not forced; QSO lines seen before the header, or
// lines that do not fit the dialect, are skipped.
func (p *Parser) Parse(r io.Reader) ([]model.ContactRecord, Stats, error) {
	var records []model.ContactRecord
	var stats Stats

	d := p.forced

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		stats.Lines++

		if p.forced == nil {
			if contest, ok := strings.CutPrefix(line, "CONTEST:"); ok {
				d = p.registry.Find(strings.TrimSpace(contest))
				continue
			}
		}

		if !strings.HasPrefix(line, "QSO:") || d == nil {
			continue
		}

		rec, ok := parseQSO(d, line)
		if !ok {
			continue
		}
		records = append(records, rec)
		stats.QSOs++
	}

	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scan log: %w", err)
	}
	return records, stats, nil
}

// parseQSO turns one QSO line into a record. The date token sits at a fixed
// position in every Cabrillo dialect; the received exchange does not.
func parseQSO(d dialect.Dialect, line string) (model.ContactRecord, bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 5 {
		return model.ContactRecord{}, false
	}

	year, ok := parseYear(tokens[3])
	if !ok {
		return model.ContactRecord{}, false
	}

	call, fields, ok := d.Parse(tokens)
	if !ok || call == "" {
		return model.ContactRecord{}, false
	}

	return model.ContactRecord{Callsign: call, Year: year, Fields: fields}, true
}

// parseYear extracts the year from a Cabrillo date token (2012-11-03)
func parseYear(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}
