package fast

import (
	"github.com/bytedance/sonic"
	"github.com/goccy/go-json"
)

type Config struct {
	SonicConfig sonic.Config
	GoJSON      GoJSONConfig
}

type GoJSONConfig struct {
	EncodeOptions []json.EncodeOptionFunc
	DecodeOptions []json.DecodeOptionFunc
}

func DefaultConfig() Config {
	return Config{
		SonicConfig: sonic.Config{
			// Trees outlive the input buffer, don't let strings pin it.
			CopyString: true,
			EscapeHTML: true,
			// Output of the same tree must be the same text.
			SortMapKeys: true,
			// Keeps int64 ids intact.
			UseNumber: true,
		},
		GoJSON: GoJSONConfig{
			// go-json sorts map keys unless json.UnorderedMap() is given.
			EncodeOptions: nil,
		},
	}
}

// WithEscapeHTML returns a copy of c in which both libraries escape <, > and &
// inside strings only if escape is true.
func (c Config) WithEscapeHTML(escape bool) Config {
	c.SonicConfig.EscapeHTML = escape
	options := make([]json.EncodeOptionFunc, 0, len(c.GoJSON.EncodeOptions)+1)
	options = append(options, c.GoJSON.EncodeOptions...)
	if !escape {
		options = append(options, json.DisableHTMLEscape())
	}
	c.GoJSON.EncodeOptions = options
	return c
}
