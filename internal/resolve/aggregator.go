package resolve

import (
	"errors"
	"fmt"
	"sync"

	"github.com/km6i/prefill/internal/model"
)

// ErrInvalidRecord is returned when a record is missing its callsign or year.
// Well-formedness is the parser's job; the aggregator still refuses to fold
// garbage into its state.
var ErrInvalidRecord = errors.New("invalid contact record")

// ValueCounts is the evidence for one (callsign, year, field): how many times
// each distinct value was copied. Duplicates are the votes.
type ValueCounts map[string]int

// FieldObservations maps field name to its observed value counts.
type FieldObservations map[string]ValueCounts

// YearObservations maps year to the fields observed in that year.
type YearObservations map[int]FieldObservations

// Aggregator folds contact records into per-callsign observation sets.
// Ingest is safe for concurrent use; log files are parsed in parallel and
// the same callsign can arrive from several files at once.
type Aggregator struct {
	mu    sync.Mutex
	calls map[string]YearObservations
}

// NewAggregator creates an empty aggregator
func NewAggregator() *Aggregator {
	return &Aggregator{
		calls: make(map[string]YearObservations),
	}
}

// Ingest adds one record's fields to the observation set for its
// (callsign, year). Fields absent from the record contribute nothing:
// an uncopied field is not an observed empty value.
func (a *Aggregator) Ingest(rec model.ContactRecord) error {
	if rec.Callsign == "" {
		return fmt.Errorf("%w: empty callsign", ErrInvalidRecord)
	}
	if rec.Year == 0 {
		return fmt.Errorf("%w: missing year for %s", ErrInvalidRecord, rec.Callsign)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	years, ok := a.calls[rec.Callsign]
	if !ok {
		years = make(YearObservations)
		a.calls[rec.Callsign] = years
	}

	fields, ok := years[rec.Year]
	if !ok {
		fields = make(FieldObservations)
		years[rec.Year] = fields
	}

	for name, value := range rec.Fields {
		counts, ok := fields[name]
		if !ok {
			counts = make(ValueCounts)
			fields[name] = counts
		}
		counts[value]++
	}

	return nil
}

// IngestAll folds a batch of records, stopping at the first invalid one.
func (a *Aggregator) IngestAll(records []model.ContactRecord) error {
	for _, rec := range records {
		if err := a.Ingest(rec); err != nil {
			return err
		}
	}
	return nil
}

// Callsigns returns every callsign with at least one observation.
func (a *Aggregator) Callsigns() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	calls := make([]string, 0, len(a.calls))
	for call := range a.calls {
		calls = append(calls, call)
	}
	return calls
}

// Observations returns the observation set for one callsign. The returned
// map is the aggregator's own state; callers must not mutate it and must
// only read it after ingestion is complete.
func (a *Aggregator) Observations(callsign string) (YearObservations, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	years, ok := a.calls[callsign]
	return years, ok
}

// Len returns the number of distinct callsigns observed.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.calls)
}
