package worker

import (
	"context"
	"sort"

	"github.com/km6i/prefill/internal/model"
	"github.com/km6i/prefill/internal/resolve"
)

// ResolveJob resolves one callsign's observation set. Callsigns are
// independent, so resolution parallelizes with no shared state beyond the
// final merge.
type ResolveJob struct {
	Callsign string
	Years    resolve.YearObservations
}

// ResolveResult is the outcome of resolving one callsign
type ResolveResult struct {
	Entry       model.ResolvedEntry
	Ambiguities []resolve.Ambiguity
	OK          bool
}

// GetError returns nil; per-callsign resolution cannot fail
func (r *ResolveResult) GetError() error {
	return nil
}

// Execute resolves the callsign
func (j *ResolveJob) Execute(ctx context.Context) Result {
	entry, ambiguities, ok := resolve.ResolveCall(j.Callsign, j.Years)
	return &ResolveResult{Entry: entry, Ambiguities: ambiguities, OK: ok}
}

// ResolveAll resolves every callsign in the aggregator on a worker pool and
// merges the per-callsign results. Output is identical to the sequential
// resolve.ResolveAggregated.
func ResolveAll(agg *resolve.Aggregator, workers int) (map[string]model.ResolvedEntry, []resolve.Ambiguity) {
	pool := NewPool(workers)
	pool.Start()

	for _, call := range agg.Callsigns() {
		years, ok := agg.Observations(call)
		if !ok {
			continue
		}
		pool.Submit(&ResolveJob{Callsign: call, Years: years})
	}

	entries := make(map[string]model.ResolvedEntry)
	var ambiguities []resolve.Ambiguity
	for _, result := range pool.Wait() {
		r := result.(*ResolveResult)
		if !r.OK {
			continue
		}
		entries[r.Entry.Callsign] = r.Entry
		ambiguities = append(ambiguities, r.Ambiguities...)
	}

	sort.Slice(ambiguities, func(i, j int) bool {
		if ambiguities[i].Callsign != ambiguities[j].Callsign {
			return ambiguities[i].Callsign < ambiguities[j].Callsign
		}
		return ambiguities[i].Field < ambiguities[j].Field
	})

	return entries, ambiguities
}
