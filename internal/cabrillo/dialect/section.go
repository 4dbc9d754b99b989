package dialect

import (
	"strings"

	"github.com/km6i/prefill/internal/model"
)

// SectionDialect is the fallback for section-exchange contests it has no
// specific grammar for (ARRL 160, NAQP-style logs and the like):
//
//	QSO: 1815 CW 2012-12-01 0001 KM6I 599 SCV W1AW 599 CT
//
// Only the trailing token is kept, as the section. Anything shorter than
// the fixed Cabrillo preamble plus both callsigns is skipped.
type SectionDialect struct{}

// NewSectionDialect creates the fallback section dialect
func NewSectionDialect() *SectionDialect {
	return &SectionDialect{}
}

// Name returns the dialect name
func (d *SectionDialect) Name() string {
	return "section"
}

// CanHandle always returns false; this dialect is only used as fallback
func (d *SectionDialect) CanHandle(contest string) bool {
	return false
}

// Parse extracts the received callsign and section
func (d *SectionDialect) Parse(tokens []string) (string, map[string]string, bool) {
	// QSO: freq mode date time mycall <sent...> call <rcvd...>; the sent and
	// received groups mirror each other, so the received call sits at the
	// midpoint of the trailing tokens.
	if len(tokens) < 9 || len(tokens)%2 != 1 {
		return "", nil, false
	}

	rest := tokens[5:]
	call := strings.ToUpper(rest[len(rest)/2])
	fields := map[string]string{
		model.FieldSection: tokens[len(tokens)-1],
	}
	return call, fields, true
}
