package serializer

import (
	"errors"
	"io"
)

// A JSONSerializer turns JSON text into trees (map[string]any, []any,
// string, json.Number, bool and nil) and back. Implementations must decode
// numbers as json.Number when the target is an interface, and must reject
// trailing data after the top-level value.
type (
	JSONSerializer interface {
		JSONMarshalUnmarshaler
		JSONEncodeDecoder
	}

	JSONMarshalUnmarshaler interface {
		Marshal(v any) ([]byte, error)
		MarshalIndent(v any, prefix, indent string) ([]byte, error)
		Unmarshal(data []byte, v any) error
	}

	JSONEncodeDecoder interface {
		NewEncoder(w io.Writer) JSONEncoder
		NewDecoder(r io.Reader) JSONDecoder
	}

	JSONEncoder interface {
		Encode(v any) error
	}

	JSONDecoder interface {
		Decode(v any) error
	}
)

// Named is implemented by serializers that can report which library they use.
type Named interface {
	Name() string
}

// Name returns the library name of s, or "<unknown>".
func Name(s JSONSerializer) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "<unknown>"
}

var ErrTrailingData = errors.New("serializer: invalid character after top-level value")

// CheckTrailing returns ErrTrailingData if rest holds anything other than
// JSON whitespace.
func CheckTrailing(rest io.Reader) error {
	b, err := io.ReadAll(rest)
	if err != nil {
		return err
	}
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return ErrTrailingData
		}
	}
	return nil
}
