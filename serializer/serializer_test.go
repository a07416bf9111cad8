package serializer_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/karagenc/jsonlike/serializer"
	"github.com/karagenc/jsonlike/serializer/fast"
	"github.com/karagenc/jsonlike/serializer/gojson"
	"github.com/karagenc/jsonlike/serializer/jsoniter"
	"github.com/karagenc/jsonlike/serializer/stdjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends() map[string]serializer.JSONSerializer {
	return map[string]serializer.JSONSerializer{
		"stdjson":  stdjson.New(),
		"go-json":  gojson.New(nil, nil),
		"jsoniter": jsoniter.New(jsoniter.DefaultConfig()),
		"fast":     fast.New(),
	}
}

func TestTreeDecoding(t *testing.T) {
	for name, s := range backends() {
		t.Run(name, func(t *testing.T) {
			var tree any
			err := s.Unmarshal([]byte(`{"id":9007199254740993,"price":1.5,"ok":true,"tags":["a",null],"user":{"name":"lgl"}}`), &tree)
			require.NoError(t, err)

			m, ok := tree.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, json.Number("9007199254740993"), m["id"])
			assert.Equal(t, json.Number("1.5"), m["price"])
			assert.Equal(t, true, m["ok"])
			assert.Equal(t, []any{"a", nil}, m["tags"])
			assert.Equal(t, map[string]any{"name": "lgl"}, m["user"])
		})
	}
}

func TestRejectsMalformedInput(t *testing.T) {
	inputs := []string{`{"a":`, `{"a":1}}`, `{"a":1}{"b":2}`, `[1,2] x`, `[1,2]]`, `nope`}
	for name, s := range backends() {
		t.Run(name, func(t *testing.T) {
			for _, input := range inputs {
				var tree any
				assert.Error(t, s.Unmarshal([]byte(input), &tree), input)
			}
		})
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	tree := map[string]any{"b": json.Number("2"), "a": "x", "c": []any{true}}
	for name, s := range backends() {
		t.Run(name, func(t *testing.T) {
			b, err := s.Marshal(tree)
			require.NoError(t, err)
			assert.Equal(t, `{"a":"x","b":2,"c":[true]}`, string(b))

			b, err = s.MarshalIndent(tree, "", "  ")
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(b), "{\n  \"a\": \"x\""), string(b))
		})
	}
}

func TestEncoderDecoder(t *testing.T) {
	for name, s := range backends() {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, s.NewEncoder(&buf).Encode(map[string]any{"n": json.Number("12")}))

			var tree map[string]any
			require.NoError(t, s.NewDecoder(&buf).Decode(&tree))
			assert.Equal(t, json.Number("12"), tree["n"])
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "encoding/json", serializer.Name(stdjson.New()))
	assert.Equal(t, "go-json", serializer.Name(gojson.New(nil, nil)))
	assert.Equal(t, "json-iterator", serializer.Name(jsoniter.New(jsoniter.DefaultConfig())))
	assert.Equal(t, fast.Type().Name(), serializer.Name(fast.New()))
}

func TestCheckTrailing(t *testing.T) {
	assert.NoError(t, serializer.CheckTrailing(strings.NewReader("")))
	assert.NoError(t, serializer.CheckTrailing(strings.NewReader(" \n\t\r")))
	assert.ErrorIs(t, serializer.CheckTrailing(strings.NewReader(" }")), serializer.ErrTrailingData)
	assert.ErrorIs(t, serializer.CheckTrailing(strings.NewReader("x")), serializer.ErrTrailingData)
}

func TestFastEscapeHTML(t *testing.T) {
	b, err := fast.NewWithConfig(fast.DefaultConfig()).Marshal("<x>")
	require.NoError(t, err)
	assert.Equal(t, `"\u003cx\u003e"`, string(b))

	b, err = fast.NewWithConfig(fast.DefaultConfig().WithEscapeHTML(false)).Marshal(map[string]any{"b": "<x>", "a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":"<x>"}`, string(b))
}
