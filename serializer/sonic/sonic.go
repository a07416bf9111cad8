//go:build amd64 && (linux || windows || darwin)

package sonic

import (
	"bytes"
	"io"

	"github.com/bytedance/sonic"
	"github.com/karagenc/jsonlike/serializer"
)

type Config = sonic.Config

type sonicSerializer struct {
	api sonic.API
}

func (s *sonicSerializer) Name() string { return "sonic" }

func (s *sonicSerializer) Marshal(v any) ([]byte, error) {
	return s.api.Marshal(v)
}

func (s *sonicSerializer) MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return s.api.MarshalIndent(v, prefix, indent)
}

// Unmarshal goes through a stream decoder so that whatever follows the
// top-level value can be checked.
func (s *sonicSerializer) Unmarshal(data []byte, v any) error {
	r := bytes.NewReader(data)
	d := s.api.NewDecoder(r)
	if err := d.Decode(v); err != nil {
		return err
	}
	return serializer.CheckTrailing(io.MultiReader(d.Buffered(), r))
}

func (s *sonicSerializer) NewEncoder(w io.Writer) serializer.JSONEncoder {
	return s.api.NewEncoder(w)
}

func (s *sonicSerializer) NewDecoder(r io.Reader) serializer.JSONDecoder {
	return s.api.NewDecoder(r)
}

// New freezes config. UseNumber is forced on, trees need it.
func New(config sonic.Config) serializer.JSONSerializer {
	config.UseNumber = true
	config.UseInt64 = false
	return &sonicSerializer{api: config.Froze()}
}
