package model

// Canonical exchange field names. The Cabrillo dialects and the seed loader
// translate into these; emitters translate out of them.
const (
	FieldName      = "NAME"
	FieldGrid1     = "GRID1"
	FieldGrid2     = "GRID2"
	FieldSection   = "SECTION"
	FieldState     = "STATE"
	FieldCheck     = "CHECK"
	FieldBirthdate = "BIRTHDATE"
	FieldPrec      = "PREC"
	FieldClass     = "CLASS"
)

// SeedYear marks observations loaded from a pre-existing prefill file.
// Any observation from a real log carries a positive year and outranks it.
const SeedYear = -1

// ContactRecord is one observation of a station's exchange: one QSO line in
// one log, or one seed-file row. The same physical contact appears once per
// log that recorded it, so many records may share (callsign, year) and
// disagree on field values.
type ContactRecord struct {
	Callsign string
	Year     int
	Fields   map[string]string
}

// ResolvedEntry is the per-callsign output of resolution: the selected year
// and one value per field observed in that year. Fields with no observation
// in the selected year are absent, never empty.
type ResolvedEntry struct {
	Callsign string            `json:"callsign"`
	Year     int               `json:"year"`
	Fields   map[string]string `json:"fields"`
}

// Field returns the resolved value for name, or empty string if absent.
func (e ResolvedEntry) Field(name string) string {
	return e.Fields[name]
}
