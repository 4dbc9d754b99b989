// Package dialect knows the per-contest QSO exchange grammars. A Cabrillo
// QSO line is whitespace-tokenized; which trailing tokens carry the received
// exchange depends on the contest named in the log's CONTEST: header.
package dialect

import "strings"

// Dialect parses the received side of one tokenized QSO line
type Dialect interface {
	// Name returns the dialect name
	Name() string

	// CanHandle checks if this dialect handles the given CONTEST: header value
	CanHandle(contest string) bool

	// Parse extracts the received callsign and exchange fields from a
	// tokenized QSO line (tokens[0] is "QSO:"). Returns ok=false when the
	// line does not fit this dialect's shape.
	Parse(tokens []string) (callsign string, fields map[string]string, ok bool)
}

// Registry manages contest dialects
type Registry struct {
	dialects []Dialect
	generic  Dialect
}

// NewRegistry creates a registry with the built-in dialects registered and
// the section-only dialect as fallback
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewSweepstakesDialect())
	r.Register(NewFieldDayDialect())
	r.generic = NewSectionDialect()
	return r
}

// Register registers a dialect
func (r *Registry) Register(d Dialect) {
	r.dialects = append(r.dialects, d)
}

// Find returns the dialect for a CONTEST: header value, falling back to the
// generic section dialect
func (r *Registry) Find(contest string) Dialect {
	for _, d := range r.dialects {
		if d.CanHandle(contest) {
			return d
		}
	}
	return r.generic
}

// ByName returns a dialect by its name, for forcing a dialect from
// configuration. ok=false if no dialect has that name.
func (r *Registry) ByName(name string) (Dialect, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, false
	}
	for _, d := range r.dialects {
		if d.Name() == name {
			return d, true
		}
	}
	if r.generic.Name() == name {
		return r.generic, true
	}
	return nil, false
}
