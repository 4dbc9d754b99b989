package worker

import (
	"reflect"
	"testing"

	"github.com/km6i/prefill/internal/model"
	"github.com/km6i/prefill/internal/resolve"
)

func TestResolveAll_MatchesSequential(t *testing.T) {
	records := []model.ContactRecord{
		{Callsign: "W1AW", Year: 2011, Fields: map[string]string{model.FieldPrec: "A"}},
		{Callsign: "W1AW", Year: 2012, Fields: map[string]string{model.FieldPrec: "B"}},
		{Callsign: "K2ABC", Year: 2012, Fields: map[string]string{model.FieldCheck: "55"}},
		{Callsign: "K2ABC", Year: 2012, Fields: map[string]string{model.FieldCheck: "56"}},
		{Callsign: "K2ABC", Year: 2012, Fields: map[string]string{model.FieldCheck: "55"}},
		{Callsign: "N3XYZ", Year: 2012, Fields: map[string]string{model.FieldSection: "EMA"}},
		{Callsign: "N3XYZ", Year: 2012, Fields: map[string]string{model.FieldSection: "WMA"}},
	}

	agg := resolve.NewAggregator()
	if err := agg.IngestAll(records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantEntries, wantAmb, err := resolve.ResolveAggregated(agg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, workers := range []int{1, 2, 8} {
		agg := resolve.NewAggregator()
		if err := agg.IngestAll(records); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, ambiguities := ResolveAll(agg, workers)
		if !reflect.DeepEqual(entries, wantEntries) {
			t.Errorf("workers=%d: entries differ from sequential: %v vs %v", workers, entries, wantEntries)
		}
		if !reflect.DeepEqual(ambiguities, wantAmb) {
			t.Errorf("workers=%d: ambiguities differ: %v vs %v", workers, ambiguities, wantAmb)
		}
	}
}

func TestResolveAll_Empty(t *testing.T) {
	entries, ambiguities := ResolveAll(resolve.NewAggregator(), 4)
	if len(entries) != 0 || len(ambiguities) != 0 {
		t.Errorf("expected empty output, got %v %v", entries, ambiguities)
	}
}
