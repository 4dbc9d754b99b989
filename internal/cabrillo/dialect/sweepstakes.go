package dialect

import (
	"strings"

	"github.com/km6i/prefill/internal/model"
)

// SweepstakesDialect parses ARRL Sweepstakes QSO lines:
//
//	QSO: 21039 CW 2012-11-03 2100 KM6I 0001 U 75 SCV N3EN 0001 A 56 MDC
//
// The received exchange is serial, precedence, check, section. The serial
// changes per QSO and is never prefill material; precedence, check and
// section are.
type SweepstakesDialect struct{}

// NewSweepstakesDialect creates a Sweepstakes dialect
func NewSweepstakesDialect() *SweepstakesDialect {
	return &SweepstakesDialect{}
}

// Name returns the dialect name
func (d *SweepstakesDialect) Name() string {
	return "sweepstakes"
}

// CanHandle matches ARRL-SS-CW and ARRL-SS-SSB headers
func (d *SweepstakesDialect) CanHandle(contest string) bool {
	return strings.HasPrefix(strings.ToUpper(contest), "ARRL-SS")
}

// Parse extracts the received callsign, precedence, check and section
func (d *SweepstakesDialect) Parse(tokens []string) (string, map[string]string, bool) {
	if len(tokens) != 15 {
		return "", nil, false
	}

	call := strings.ToUpper(tokens[10])
	fields := map[string]string{
		model.FieldPrec:    tokens[12],
		model.FieldCheck:   tokens[13],
		model.FieldSection: tokens[14],
	}
	return call, fields, true
}
