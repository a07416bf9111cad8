package dateformat

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoMatchingFormat = errors.New("dateformat: no registered format recognizes the text")

type ParseError struct {
	Text  string
	Tried []Candidate
}

func (e *ParseError) Error() string {
	patterns := make([]string, len(e.Tried))
	for i, c := range e.Tried {
		patterns[i] = c.String()
	}
	return fmt.Sprintf("%s: %q (tried %s)", ErrNoMatchingFormat.Error(), e.Text, strings.Join(patterns, ", "))
}

func (e *ParseError) Unwrap() error {
	return ErrNoMatchingFormat
}
