package dateformat

import (
	"fmt"
	"strings"
	"time"
)

// A Candidate is one textual date/time pattern usable for decoding
// (and, when it is the first one of a Resolver, for encoding).
type Candidate struct {
	pattern string
	layout  string

	// Further layouts accepted by Parse only.
	alternatives []string
}

// Pattern compiles a Java style date pattern such as "yyyy-MM-dd HH:mm:ss"
// into a Candidate. Supported letters:
//
//	yy             two-digit year
//	y yyy yyyy     year
//	MMMM MMM MM M  month
//	dd d           day of month
//	EEEE EEE       day of week
//	HH H           hour (00-23)
//	hh h           hour (01-12)
//	mm m           minute
//	ss s           second
//	SSS...         fractional second, must follow a '.'
//	a              AM/PM marker
//	XXX Z z        zone
//
// Text between single quotes is copied literally, '' is a single quote.
func Pattern(pattern string) (Candidate, error) {
	layout, err := translate(pattern)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{pattern: pattern, layout: layout}, nil
}

// MustPattern is like Pattern but panics if the pattern cannot be translated.
func MustPattern(pattern string) Candidate {
	c, err := Pattern(pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Layout wraps a Go reference layout (see the time package) as a Candidate.
// When parsing, the alternatives are tried after layout, in order.
func Layout(layout string, alternatives ...string) Candidate {
	return Candidate{pattern: layout, layout: layout, alternatives: alternatives}
}

// The pattern the candidate was created from.
func (c Candidate) String() string { return c.pattern }

// The Go layout used for time.Format and time.Parse.
func (c Candidate) GoLayout() string { return c.layout }

func (c Candidate) IsZero() bool { return c.layout == "" }

func (c Candidate) parse(text string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(c.layout, text, loc)
	if err == nil {
		return t, nil
	}
	for _, layout := range c.alternatives {
		if t, altErr := time.ParseInLocation(layout, text, loc); altErr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

var letterLayouts = map[byte][]struct {
	count  int
	layout string
}{
	'y': {{4, "2006"}, {3, "2006"}, {2, "06"}, {1, "2006"}},
	'M': {{4, "January"}, {3, "Jan"}, {2, "01"}, {1, "1"}},
	'd': {{2, "02"}, {1, "2"}},
	'E': {{4, "Monday"}, {3, "Mon"}},
	'H': {{2, "15"}, {1, "15"}},
	'h': {{2, "03"}, {1, "3"}},
	'm': {{2, "04"}, {1, "4"}},
	's': {{2, "05"}, {1, "5"}},
	'a': {{1, "PM"}},
	'X': {{3, "Z07:00"}, {2, "Z0700"}, {1, "Z07"}},
	'Z': {{1, "-0700"}},
	'z': {{1, "MST"}},
}

func translate(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("dateformat: empty pattern")
	}

	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]

		if c == '\'' {
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			j := i + 1
			closed := false
			for j < len(pattern) {
				if pattern[j] == '\'' {
					if j+1 < len(pattern) && pattern[j+1] == '\'' {
						b.WriteByte('\'')
						j += 2
						continue
					}
					closed = true
					break
				}
				b.WriteByte(pattern[j])
				j++
			}
			if !closed {
				return "", fmt.Errorf("dateformat: unterminated quote in pattern %q", pattern)
			}
			i = j + 1
			continue
		}

		if !isLetter(c) {
			b.WriteByte(c)
			i++
			continue
		}

		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		if c == 'S' {
			if i == 0 || pattern[i-1] != '.' {
				return "", fmt.Errorf("dateformat: fractional seconds must follow '.' in pattern %q", pattern)
			}
			b.WriteString(strings.Repeat("0", n))
			i += n
			continue
		}

		layouts, ok := letterLayouts[c]
		if !ok {
			return "", fmt.Errorf("dateformat: unsupported pattern letter %q in %q", c, pattern)
		}
		found := false
		for _, l := range layouts {
			if n >= l.count {
				// The widest form is used for runs longer than any known count (yyyyy -> 2006).
				b.WriteString(l.layout)
				found = true
				break
			}
		}
		if !found {
			return "", fmt.Errorf("dateformat: unsupported width %d for letter %q in %q", n, c, pattern)
		}
		i += n
	}
	return b.String(), nil
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Built-in candidates, in the order they are tried.
var (
	DateTime        = MustPattern("yyyy-MM-dd HH:mm:ss")
	CompactDateTime = MustPattern("yyyyMMddHHmmss")
	SlashDateTime   = MustPattern("yyyy/MM/dd HH:mm:ss")
	Date            = MustPattern("yyyy-MM-dd")
	CompactDate     = MustPattern("yyyyMMdd")

	// What Go JSON libraries write for time.Time by default. Parsing also
	// takes a numeric zone without colon (+0800) or no zone at all.
	RFC3339 = Layout(time.RFC3339Nano, "2006-01-02T15:04:05Z0700", "2006-01-02T15:04:05")
)

func builtins() []Candidate {
	return []Candidate{DateTime, CompactDateTime, SlashDateTime, Date, CompactDate}
}
