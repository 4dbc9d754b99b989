package emit

import (
	"fmt"
	"io"

	"github.com/km6i/prefill/internal/model"
)

// WriteLogEmitter writes the WriteLog ADIF-style prefill format: one stanza
// per callsign with a synthetic QSO date, an incrementing serial and
// length-prefixed tags. WriteLog only reads the tag payloads; the date,
// frequency and mode are fixed filler.
type WriteLogEmitter struct{}

// Name returns the format name
func (e *WriteLogEmitter) Name() string { return "writelog" }

// Emit writes all entries in WriteLog format
func (e *WriteLogEmitter) Emit(w io.Writer, entries map[string]model.ResolvedEntry) error {
	serial := 1
	timeOn := 0

	for _, call := range sortedCallsigns(entries) {
		entry := entries[call]
		prec := entry.Field(model.FieldPrec)
		check := entry.Field(model.FieldCheck)
		section := entry.Field(model.FieldSection)

		stanza := fmt.Sprintf("<QSO_DATE:8>20021116 <TIME_ON:6>%06d <FREQ:6>28.375 <BAND:3>10m <STX:1>1 <MODE:3>SSB <M:1>1 <ML:1>2"+crlf+
			" <SRX:%d>%d"+crlf+
			" <P:%d>%s"+crlf+
			" <CALL:%d>%s"+crlf+
			" <CK:%d>%s"+crlf+
			" <ARRL_SECT:%d>%s"+crlf+
			"<EOR>"+crlf,
			timeOn,
			len(fmt.Sprint(serial)), serial,
			len(prec), prec,
			len(call), call,
			len(check), check,
			len(section), section,
		)
		if _, err := io.WriteString(w, stanza); err != nil {
			return fmt.Errorf("write writelog stanza: %w", err)
		}

		serial++
		timeOn += 2
	}
	return nil
}
