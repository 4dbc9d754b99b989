package dialect

import (
	"strings"

	"github.com/km6i/prefill/internal/model"
)

// FieldDayDialect parses ARRL Field Day QSO lines:
//
//	QSO: 14250 PH 2023-06-24 1812 W1AW 3A CT K2XYZ 1D NNJ
//
// The received exchange is class and section.
type FieldDayDialect struct{}

// NewFieldDayDialect creates a Field Day dialect
func NewFieldDayDialect() *FieldDayDialect {
	return &FieldDayDialect{}
}

// Name returns the dialect name
func (d *FieldDayDialect) Name() string {
	return "fieldday"
}

// CanHandle matches ARRL-FD headers
func (d *FieldDayDialect) CanHandle(contest string) bool {
	return strings.HasPrefix(strings.ToUpper(contest), "ARRL-FD")
}

// Parse extracts the received callsign, class and section
func (d *FieldDayDialect) Parse(tokens []string) (string, map[string]string, bool) {
	if len(tokens) != 11 {
		return "", nil, false
	}

	call := strings.ToUpper(tokens[8])
	fields := map[string]string{
		model.FieldClass:   tokens[9],
		model.FieldSection: tokens[10],
	}
	return call, fields, true
}
