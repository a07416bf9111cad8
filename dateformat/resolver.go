package dateformat

import (
	"time"
)

// Resolver converts between time.Time and its textual representation.
//
// Format always uses the first (canonical) candidate. Parse tries every
// candidate in order and returns the first successful result. A Resolver
// never changes after construction, so it can be shared between goroutines
// and mappers freely. Use Extend to derive a resolver with another extension.
type Resolver struct {
	candidates []Candidate
	extension  Candidate
	loc        *time.Location
}

type Option func(r *Resolver)

// WithLocation sets the location used when the text carries no zone
// and the location dates are rendered in.
//
// Default: time.Local
func WithLocation(loc *time.Location) Option {
	return func(r *Resolver) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// WithExtension sets the one additional candidate tried after the built-in ones.
//
// Default: RFC3339
func WithExtension(c Candidate) Option {
	return func(r *Resolver) {
		r.extension = c
	}
}

// WithoutExtension leaves the extension slot empty.
func WithoutExtension() Option {
	return func(r *Resolver) {
		r.extension = Candidate{}
	}
}

// New creates a Resolver with the built-in candidates:
//
//	yyyy-MM-dd HH:mm:ss (canonical)
//	yyyyMMddHHmmss
//	yyyy/MM/dd HH:mm:ss
//	yyyy-MM-dd
//	yyyyMMdd
//
// followed by the extension candidate.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		candidates: builtins(),
		extension:  RFC3339,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Extend returns a copy of r whose extension candidate is c.
// The receiver is left untouched.
func (r *Resolver) Extend(c Candidate) *Resolver {
	return &Resolver{
		candidates: r.candidates,
		extension:  c,
		loc:        r.loc,
	}
}

// In returns a copy of r that works in loc.
func (r *Resolver) In(loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{
		candidates: r.candidates,
		extension:  r.extension,
		loc:        loc,
	}
}

func (r *Resolver) Location() *time.Location { return r.loc }

// Candidates returns the ordered candidate list, extension included.
func (r *Resolver) Candidates() []Candidate {
	n := len(r.candidates)
	if !r.extension.IsZero() {
		n++
	}
	candidates := make([]Candidate, 0, n)
	candidates = append(candidates, r.candidates...)
	if !r.extension.IsZero() {
		candidates = append(candidates, r.extension)
	}
	return candidates
}

func (r *Resolver) Canonical() Candidate { return r.candidates[0] }

func (r *Resolver) Format(t time.Time) string {
	return t.In(r.loc).Format(r.candidates[0].layout)
}

// Parse tries every candidate in order. Failures of individual candidates
// are discarded; if none of them recognizes text, a *ParseError is returned.
func (r *Resolver) Parse(text string) (time.Time, error) {
	t, _, err := r.ParseCandidate(text)
	return t, err
}

// ParseCandidate is like Parse but also reports which candidate matched.
func (r *Resolver) ParseCandidate(text string) (time.Time, Candidate, error) {
	for _, c := range r.candidates {
		t, err := c.parse(text, r.loc)
		if err == nil {
			return t, c, nil
		}
	}
	if !r.extension.IsZero() {
		t, err := r.extension.parse(text, r.loc)
		if err == nil {
			return t, r.extension, nil
		}
	}
	return time.Time{}, Candidate{}, &ParseError{Text: text, Tried: r.Candidates()}
}
