package stdjson

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/karagenc/jsonlike/serializer"
)

type stdjsonSerializer struct {
	escapeHTML bool
}

func (s stdjsonSerializer) Name() string { return "encoding/json" }

func (s stdjsonSerializer) Marshal(v any) ([]byte, error) {
	if s.escapeHTML {
		return json.Marshal(v)
	}
	var buf bytes.Buffer
	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (s stdjsonSerializer) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	e := json.NewEncoder(&buf)
	e.SetEscapeHTML(s.escapeHTML)
	e.SetIndent(prefix, indent)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

func (s stdjsonSerializer) Unmarshal(data []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(v); err != nil {
		return err
	}
	if _, err := d.Token(); err != io.EOF {
		return serializer.ErrTrailingData
	}
	return nil
}

func (s stdjsonSerializer) NewEncoder(w io.Writer) serializer.JSONEncoder {
	e := json.NewEncoder(w)
	e.SetEscapeHTML(s.escapeHTML)
	return e
}

func (s stdjsonSerializer) NewDecoder(r io.Reader) serializer.JSONDecoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return d
}

func New() serializer.JSONSerializer {
	return &stdjsonSerializer{escapeHTML: true}
}

// NewWithoutHTMLEscape returns a serializer that leaves <, > and & as they are.
func NewWithoutHTMLEscape() serializer.JSONSerializer {
	return &stdjsonSerializer{}
}
