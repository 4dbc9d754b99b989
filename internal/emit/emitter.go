// Package emit serializes resolved entries into prefill file formats. Each
// emitter owns its format's field translation and placeholder rules; the
// resolver never synthesizes placeholders itself.
package emit

import (
	"fmt"
	"io"
	"sort"

	"github.com/km6i/prefill/internal/model"
)

// Prefill files use CRLF line endings regardless of platform; the logging
// programs that consume them expect it.
const crlf = "\r\n"

// Emitter writes a prefill file for a resolved callsign mapping
type Emitter interface {
	// Name returns the format name
	Name() string

	// Emit writes all entries, sorted by callsign
	Emit(w io.Writer, entries map[string]model.ResolvedEntry) error
}

// ForFormat returns the emitter for a format name
func ForFormat(format string) (Emitter, error) {
	switch format {
	case "n1mm", "":
		return &N1MMEmitter{}, nil
	case "wintest":
		return &WinTestEmitter{}, nil
	case "writelog":
		return &WriteLogEmitter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Formats lists the supported format names
func Formats() []string {
	return []string{"n1mm", "wintest", "writelog"}
}

// sortedCallsigns returns the entry keys in lexicographic order
func sortedCallsigns(entries map[string]model.ResolvedEntry) []string {
	calls := make([]string, 0, len(entries))
	for call := range entries {
		calls = append(calls, call)
	}
	sort.Strings(calls)
	return calls
}
