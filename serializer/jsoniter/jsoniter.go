package jsoniter

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/karagenc/jsonlike/serializer"
)

type Config = jsoniter.Config

type jsoniterSerializer struct {
	api jsoniter.API
}

func (s *jsoniterSerializer) Name() string { return "json-iterator" }

func (s *jsoniterSerializer) Marshal(v any) ([]byte, error) {
	return s.api.Marshal(v)
}

func (s *jsoniterSerializer) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return s.api.MarshalIndent(v, prefix, indent)
}

func (s *jsoniterSerializer) Unmarshal(data []byte, v any) error {
	return s.api.Unmarshal(data, v)
}

func (s *jsoniterSerializer) NewEncoder(w io.Writer) serializer.JSONEncoder {
	return s.api.NewEncoder(w)
}

func (s *jsoniterSerializer) NewDecoder(r io.Reader) serializer.JSONDecoder {
	return s.api.NewDecoder(r)
}

// New freezes config. UseNumber is forced on, trees need it.
func New(config jsoniter.Config) serializer.JSONSerializer {
	config.UseNumber = true
	return &jsoniterSerializer{api: config.Froze()}
}

// DefaultConfig is encoding/json compatible with sorted keys and numbers kept as json.Number.
func DefaultConfig() jsoniter.Config {
	return jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
	}
}
