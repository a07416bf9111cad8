package jsonlike

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// ConvertLenient is Convert with weak typing: "42" fills an int field,
// 1 fills a string field, "true" fills a bool field and so on.
// Dates are read through the mapper's resolver.
func (m *Mapper) ConvertLenient(v any, out any) error {
	tree, err := m.toTree(v)
	if err != nil {
		return m.wrap("convert lenient", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(m.timeHook, numberHook),
		WeaklyTypedInput: true,
		ErrorUnused:      m.config.DisallowUnknownFields,
		TagName:          "json",
		MatchName:        m.matchName,
		Result:           out,
	})
	if err != nil {
		return m.wrap("convert lenient", err)
	}
	return m.wrap("convert lenient", decoder.Decode(tree))
}

func (m *Mapper) matchName(key, fieldName string) bool {
	if strings.EqualFold(key, fieldName) {
		return true
	}
	return m.naming != nil && key == m.naming.Translate(fieldName)
}

func (m *Mapper) timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return m.dates.Parse(v)
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return nil, err
		}
		return time.UnixMilli(ms).In(m.dates.Location()), nil
	}
	return data, nil
}

// json.Number is a string kind, so bool targets would only accept "0" and "1".
func numberHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok || to.Kind() != reflect.Bool {
		return data, nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil, err
	}
	return f != 0, nil
}
