package emit

import (
	"fmt"
	"io"

	"github.com/km6i/prefill/internal/model"
)

// WinTestEmitter writes the WinTest fixed-width prefill format:
//
//	4U1WB    U 4U1WB    89 MDC
//
// WinTest shows dashes for exchange parts it has no data for.
type WinTestEmitter struct{}

// Name returns the format name
func (e *WinTestEmitter) Name() string { return "wintest" }

// Emit writes all entries in WinTest format
func (e *WinTestEmitter) Emit(w io.Writer, entries map[string]model.ResolvedEntry) error {
	for _, call := range sortedCallsigns(entries) {
		entry := entries[call]

		prec := entry.Field(model.FieldPrec)
		if prec == "" {
			prec = "-"
		}
		check := entry.Field(model.FieldCheck)
		if check == "" {
			check = "--"
		}

		line := fmt.Sprintf("%-9s%-2s%-9s%-3s%-4s",
			call, prec, call, check, entry.Field(model.FieldSection))
		if _, err := io.WriteString(w, line+crlf); err != nil {
			return fmt.Errorf("write wintest line: %w", err)
		}
	}
	return nil
}
