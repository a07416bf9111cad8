package gojson

import (
	"bytes"
	"io"

	"github.com/goccy/go-json"
	"github.com/karagenc/jsonlike/serializer"
)

type gojsonSerializer struct {
	encodeOptions []json.EncodeOptionFunc
	decodeOptions []json.DecodeOptionFunc
}

func (s *gojsonSerializer) Name() string { return "go-json" }

func (s *gojsonSerializer) Marshal(v any) ([]byte, error) {
	return json.MarshalWithOption(v, s.encodeOptions...)
}

func (s *gojsonSerializer) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.MarshalIndentWithOption(v, prefix, indent, s.encodeOptions...)
}

// Unmarshal goes through a Decoder because UseNumber has no option func.
func (s *gojsonSerializer) Unmarshal(data []byte, v any) error {
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.DecodeWithOption(v, s.decodeOptions...); err != nil {
		return err
	}
	offset := d.InputOffset()
	if offset < 0 || offset > int64(len(data)) {
		return serializer.ErrTrailingData
	}
	return serializer.CheckTrailing(bytes.NewReader(data[offset:]))
}

func (s *gojsonSerializer) NewEncoder(w io.Writer) serializer.JSONEncoder {
	e := json.NewEncoder(w)
	return encoder{e: e, options: s.encodeOptions}
}

func (s *gojsonSerializer) NewDecoder(r io.Reader) serializer.JSONDecoder {
	d := json.NewDecoder(r)
	d.UseNumber()
	return decoder{d: d, options: s.decodeOptions}
}

func New(encodeOptions []json.EncodeOptionFunc, decodeOptions []json.DecodeOptionFunc) serializer.JSONSerializer {
	return &gojsonSerializer{
		encodeOptions: encodeOptions,
		decodeOptions: decodeOptions,
	}
}
