package emit

import (
	"fmt"
	"io"

	"github.com/km6i/prefill/internal/model"
)

// N1MMEmitter writes the N1MM comma-separated prefill format:
//
//	Call,Name,Grid1,Grid2,Section,State,CK,Birthdate,Prec
//
// Unresolved fields are left empty except Birthdate, which N1MM expects as
// -1 when unknown.
type N1MMEmitter struct{}

// Name returns the format name
func (e *N1MMEmitter) Name() string { return "n1mm" }

// Emit writes all entries in N1MM format
func (e *N1MMEmitter) Emit(w io.Writer, entries map[string]model.ResolvedEntry) error {
	for _, call := range sortedCallsigns(entries) {
		entry := entries[call]

		birthdate := entry.Field(model.FieldBirthdate)
		if birthdate == "" {
			birthdate = "-1"
		}

		line := fmt.Sprintf("%s,%s,%s,%s,%s,%s,%s,%s,%s",
			call,
			entry.Field(model.FieldName),
			entry.Field(model.FieldGrid1),
			entry.Field(model.FieldGrid2),
			entry.Field(model.FieldSection),
			entry.Field(model.FieldState),
			entry.Field(model.FieldCheck),
			birthdate,
			entry.Field(model.FieldPrec),
		)
		if _, err := io.WriteString(w, line+crlf); err != nil {
			return fmt.Errorf("write n1mm line: %w", err)
		}
	}
	return nil
}
