//go:build !amd64 || (amd64 && !(linux || windows || darwin))

package fast

import (
	"github.com/karagenc/jsonlike/serializer"
	"github.com/karagenc/jsonlike/serializer/gojson"
)

func New() serializer.JSONSerializer {
	defaultConfig := DefaultConfig()
	return gojson.New(defaultConfig.GoJSON.EncodeOptions, defaultConfig.GoJSON.DecodeOptions)
}

func NewWithConfig(config Config) serializer.JSONSerializer {
	return gojson.New(config.GoJSON.EncodeOptions, config.GoJSON.DecodeOptions)
}

func Type() SerializerType {
	return SerializerTypeGoJSON
}
