package jsonlike

import "io"

// Shortcuts for the default mapper.

func ParseObject(text string) (*Object, error) { return Default().ParseObject(text) }

func ParseObjectBytes(data []byte) (*Object, error) { return Default().ParseObjectBytes(data) }

func ParseArray(text string) (*Array, error) { return Default().ParseArray(text) }

func ParseArrayBytes(data []byte) (*Array, error) { return Default().ParseArrayBytes(data) }

func ReadObject(r io.Reader) (*Object, error) { return Default().ReadObject(r) }

func ReadArray(r io.Reader) (*Array, error) { return Default().ReadArray(r) }

func ConvertObject(v any) (*Object, error) { return Default().ConvertObject(v) }

func ConvertArray(v any) (*Array, error) { return Default().ConvertArray(v) }

func Convert(v any, out any) error { return Default().Convert(v, out) }

func ConvertLenient(v any, out any) error { return Default().ConvertLenient(v, out) }

func Unmarshal(text string, out any) error { return Default().Unmarshal(text, out) }

func UnmarshalBytes(data []byte, out any) error { return Default().UnmarshalBytes(data, out) }

func ToString(v any) (string, error) { return Default().ToString(v) }

func ToStringPretty(v any) (string, error) { return Default().ToStringPretty(v) }

// ToStringWithNaming renders v with s as naming strategy for this call only.
func ToStringWithNaming(v any, s NamingStrategy) (string, error) {
	return Default().ToStringWithNaming(v, s)
}

func ToBytes(v any) ([]byte, error) { return Default().ToBytes(v) }

func Encode(w io.Writer, v any) error { return Default().Encode(w, v) }
