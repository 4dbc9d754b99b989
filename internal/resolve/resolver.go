package resolve

import (
	"sort"

	"github.com/km6i/prefill/internal/model"
)

// Ambiguity records a field where more than one distinct value was observed
// for the selected year. Diagnostic only; the chosen value already won.
type Ambiguity struct {
	Callsign string
	Field    string
	Chosen   string
	Counts   ValueCounts
}

// SelectYear returns the most recent year with any observation. Freshness
// beats corroboration: one observation in a later year discards every
// observation from earlier years, no matter how many there were.
func SelectYear(years YearObservations) (int, bool) {
	selected := 0
	found := false
	for year := range years {
		if !found || year > selected {
			selected = year
			found = true
		}
	}
	return selected, found
}

// ResolveField picks one value from a field's observed counts: the value
// with the strictly highest count, or the lexicographically least among the
// tied leaders. Lexicographic tie-break keeps resolution deterministic no
// matter what order records were ingested in. The second return reports
// whether more than one distinct value was observed.
func ResolveField(counts ValueCounts) (string, bool) {
	best := ""
	bestCount := 0
	first := true
	for value, count := range counts {
		if first || count > bestCount || (count == bestCount && value < best) {
			best = value
			bestCount = count
			first = false
		}
	}
	return best, len(counts) > 1
}

// ResolveCall resolves one callsign's observation set into a ResolvedEntry.
// Fields with no observation in the selected year are simply absent from
// the entry.
func ResolveCall(callsign string, years YearObservations) (model.ResolvedEntry, []Ambiguity, bool) {
	year, ok := SelectYear(years)
	if !ok {
		return model.ResolvedEntry{}, nil, false
	}

	fields := years[year]
	entry := model.ResolvedEntry{
		Callsign: callsign,
		Year:     year,
		Fields:   make(map[string]string, len(fields)),
	}

	var ambiguities []Ambiguity
	for name, counts := range fields {
		value, ambiguous := ResolveField(counts)
		entry.Fields[name] = value
		if ambiguous {
			ambiguities = append(ambiguities, Ambiguity{
				Callsign: callsign,
				Field:    name,
				Chosen:   value,
				Counts:   counts,
			})
		}
	}

	sort.Slice(ambiguities, func(i, j int) bool {
		return ambiguities[i].Field < ambiguities[j].Field
	})

	return entry, ambiguities, true
}

// Resolve runs the full pipeline over a batch of records: aggregate, then
// resolve each callsign independently. Empty input yields an empty mapping.
func Resolve(records []model.ContactRecord) (map[string]model.ResolvedEntry, []Ambiguity, error) {
	agg := NewAggregator()
	if err := agg.IngestAll(records); err != nil {
		return nil, nil, err
	}
	return ResolveAggregated(agg)
}

// ResolveAggregated resolves every callsign in an already-populated
// aggregator. Sequential; the pipeline package runs the same per-callsign
// step on a worker pool when configured for it.
func ResolveAggregated(agg *Aggregator) (map[string]model.ResolvedEntry, []Ambiguity, error) {
	entries := make(map[string]model.ResolvedEntry, agg.Len())
	var ambiguities []Ambiguity

	for _, call := range agg.Callsigns() {
		years, ok := agg.Observations(call)
		if !ok {
			continue
		}
		entry, amb, ok := ResolveCall(call, years)
		if !ok {
			continue
		}
		entries[call] = entry
		ambiguities = append(ambiguities, amb...)
	}

	sort.Slice(ambiguities, func(i, j int) bool {
		if ambiguities[i].Callsign != ambiguities[j].Callsign {
			return ambiguities[i].Callsign < ambiguities[j].Callsign
		}
		return ambiguities[i].Field < ambiguities[j].Field
	})

	return entries, ambiguities, nil
}
