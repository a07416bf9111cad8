package jsonlike

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/fatih/structs"
	jsoniter "github.com/json-iterator/go"
	"github.com/karagenc/jsonlike/dateformat"
	"github.com/karagenc/jsonlike/internal/sync"
	"github.com/karagenc/jsonlike/serializer"
	"github.com/karagenc/jsonlike/serializer/fast"
)

type (
	MapperConfig struct {
		// Reads and writes time.Time values, and backs GetTime.
		//
		// Default: dateformat.New() (built-in candidates, RFC 3339 extension, local time)
		Dates *dateformat.Resolver

		// Renames struct fields that don't have an explicit json name.
		//
		// Default: nil (Go field names)
		Naming NamingStrategy

		// The library used to read and write trees (Object and Array contents).
		// It must decode numbers as json.Number.
		//
		// Default: fast.New() (sonic where available, go-json elsewhere)
		Trees serializer.JSONSerializer

		// Should we fail on input fields the target struct doesn't have?
		// Default: false (unknown fields are ignored)
		DisallowUnknownFields bool

		// Should we leave <, > and & unescaped in strings?
		// Default: false (escape them)
		NoEscapeHTML bool

		// Indentation of pretty output.
		// Default: two spaces
		Indent string

		// For debugging purposes. Leave it nil if it is of no use.
		Debugger Debugger
	}

	// A Mapper holds one serialization configuration. It never changes after
	// NewMapper returns and can be used from multiple goroutines.
	Mapper struct {
		config MapperConfig

		dates  *dateformat.Resolver
		naming NamingStrategy
		trees  serializer.JSONSerializer
		api    jsoniter.API
		indent string
		debug  Debugger

		// Mappers derived by WithNaming, keyed by strategy name.
		namedMu sync.Mutex
		named   map[string]*Mapper
	}
)

const DefaultIndent = "  "

func NewMapper(config *MapperConfig) *Mapper {
	if config == nil {
		config = new(MapperConfig)
	}
	c := *config

	if c.Dates == nil {
		c.Dates = dateformat.New()
	}
	if c.Indent == "" {
		c.Indent = DefaultIndent
	}
	if c.Debugger == nil {
		c.Debugger = NewNoopDebugger()
	}
	if c.Trees == nil {
		c.Trees = fast.NewWithConfig(fast.DefaultConfig().WithEscapeHTML(!c.NoEscapeHTML))
	}

	m := &Mapper{
		config: c,
		dates:  c.Dates,
		naming: c.Naming,
		trees:  c.Trees,
		indent: c.Indent,
		debug:  c.Debugger.WithContext("jsonlike"),
		named:  make(map[string]*Mapper),
	}

	api := jsoniter.Config{
		EscapeHTML:             !c.NoEscapeHTML,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		UseNumber:              true,
		DisallowUnknownFields:  c.DisallowUnknownFields,
	}.Froze()
	api.RegisterExtension(&timeExtension{codec: &timeCodec{dates: c.Dates, debug: m.debug}})
	if c.Naming != nil {
		api.RegisterExtension(&namingExtension{strategy: c.Naming})
	}
	m.api = api

	m.debug.Log("mapper created", "trees", serializer.Name(c.Trees))
	return m
}

var (
	defaultOnce   sync.Once
	defaultMapper *Mapper
)

// Default returns the mapper built from the default MapperConfig.
// It is created on first use and never changes.
func Default() *Mapper {
	defaultOnce.Do(func() {
		defaultMapper = NewMapper(nil)
	})
	return defaultMapper
}

// Config returns a copy of the configuration with defaults filled in.
func (m *Mapper) Config() MapperConfig { return m.config }

func (m *Mapper) Resolver() *dateformat.Resolver { return m.dates }

func (m *Mapper) Trees() serializer.JSONSerializer { return m.trees }

// WithNaming returns a mapper that differs from m only in its naming strategy.
// m itself is never modified; derived mappers are cached.
func (m *Mapper) WithNaming(s NamingStrategy) *Mapper {
	if s == nil {
		if m.naming == nil {
			return m
		}
		c := m.config
		c.Naming = nil
		return NewMapper(&c)
	}
	if m.naming != nil && m.naming.Name() == s.Name() {
		return m
	}

	m.namedMu.Lock()
	defer m.namedMu.Unlock()

	if derived, ok := m.named[s.Name()]; ok {
		return derived
	}
	c := m.config
	c.Naming = s
	derived := NewMapper(&c)
	m.named[s.Name()] = derived
	return derived
}

func (m *Mapper) NewObject() *Object {
	return &Object{m: make(map[string]any), mapper: m}
}

func (m *Mapper) NewArray() *Array {
	return &Array{a: make([]any, 0), mapper: m}
}

// ConvertObject converts a struct or a map (or a pointer to one) into an Object.
func (m *Mapper) ConvertObject(v any) (*Object, error) {
	if o, ok := v.(*Object); ok && o != nil {
		return o.Clone(), nil
	}
	if !structs.IsStruct(v) && indirectKind(v) != reflect.Map {
		return nil, m.wrap("convert object", ErrNotObject)
	}
	tree, err := m.toTree(v)
	if err != nil {
		return nil, m.wrap("convert object", err)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, m.wrap("convert object", ErrNotObject)
	}
	return &Object{m: obj, mapper: m}, nil
}

// ConvertArray converts a slice or an array (or a pointer to one) into an Array.
func (m *Mapper) ConvertArray(v any) (*Array, error) {
	if a, ok := v.(*Array); ok && a != nil {
		return a.Clone(), nil
	}
	if k := indirectKind(v); k != reflect.Slice && k != reflect.Array {
		return nil, m.wrap("convert array", ErrNotArray)
	}
	tree, err := m.toTree(v)
	if err != nil {
		return nil, m.wrap("convert array", err)
	}
	arr, ok := tree.([]any)
	if !ok {
		return nil, m.wrap("convert array", ErrNotArray)
	}
	return &Array{a: arr, mapper: m}, nil
}

// Convert converts v into out (a non-nil pointer) the way decoding the JSON
// text of v would. Unknown fields are ignored unless DisallowUnknownFields is set.
func (m *Mapper) Convert(v any, out any) error {
	data, err := m.api.Marshal(v)
	if err != nil {
		return m.wrap("convert", err)
	}
	err = m.api.Unmarshal(data, out)
	return m.wrap("convert", err)
}

// ToTree converts v into a tree node: map[string]any, []any, string,
// json.Number, bool or nil.
func (m *Mapper) ToTree(v any) (any, error) {
	tree, err := m.toTree(v)
	return tree, m.wrap("to tree", err)
}

func (m *Mapper) toTree(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case *Object:
		if x == nil {
			return nil, nil
		}
		if x.m == nil {
			x.m = make(map[string]any)
		}
		return x.m, nil
	case *Array:
		if x == nil {
			return nil, nil
		}
		items := x.raw()
		if x.slot == nil {
			x.a = withIdentity(items)
		}
		return x.a, nil
	case string, bool, json.Number:
		return x, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return numberOf(x), nil
	}

	data, err := m.api.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	err = m.api.Unmarshal(data, &tree)
	return tree, err
}

func (m *Mapper) ParseObject(text string) (*Object, error) {
	return m.ParseObjectBytes([]byte(text))
}

// ParseObjectBytes parses a JSON object. Empty input gives an empty object.
func (m *Mapper) ParseObjectBytes(data []byte) (*Object, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return m.NewObject(), nil
	}
	var tree any
	if err := m.trees.Unmarshal(data, &tree); err != nil {
		return nil, m.wrap("parse object", err)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, m.wrap("parse object", ErrNotObject)
	}
	return &Object{m: obj, mapper: m}, nil
}

func (m *Mapper) ParseArray(text string) (*Array, error) {
	return m.ParseArrayBytes([]byte(text))
}

// ParseArrayBytes parses a JSON array. Unlike objects, empty input is an error.
func (m *Mapper) ParseArrayBytes(data []byte) (*Array, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, m.wrap("parse array", io.ErrUnexpectedEOF)
	}
	var tree any
	if err := m.trees.Unmarshal(data, &tree); err != nil {
		return nil, m.wrap("parse array", err)
	}
	arr, ok := tree.([]any)
	if !ok {
		return nil, m.wrap("parse array", ErrNotArray)
	}
	return &Array{a: arr, mapper: m}, nil
}

// ReadObject decodes the next JSON object from r.
func (m *Mapper) ReadObject(r io.Reader) (*Object, error) {
	var tree any
	if err := m.trees.NewDecoder(r).Decode(&tree); err != nil {
		return nil, m.wrap("read object", err)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, m.wrap("read object", ErrNotObject)
	}
	return &Object{m: obj, mapper: m}, nil
}

// ReadArray decodes the next JSON array from r.
func (m *Mapper) ReadArray(r io.Reader) (*Array, error) {
	var tree any
	if err := m.trees.NewDecoder(r).Decode(&tree); err != nil {
		return nil, m.wrap("read array", err)
	}
	arr, ok := tree.([]any)
	if !ok {
		return nil, m.wrap("read array", ErrNotArray)
	}
	return &Array{a: arr, mapper: m}, nil
}

// Unmarshal decodes JSON text into out.
func (m *Mapper) Unmarshal(text string, out any) error {
	return m.UnmarshalBytes([]byte(text), out)
}

func (m *Mapper) UnmarshalBytes(data []byte, out any) error {
	return m.wrap("unmarshal", m.api.Unmarshal(data, out))
}

func (m *Mapper) ToString(v any) (string, error) {
	s, err := m.api.MarshalToString(v)
	if err != nil {
		return "", m.wrap("to string", err)
	}
	return s, nil
}

// ToStringPretty is ToString with indentation. Struct fields keep their declaration order.
func (m *Mapper) ToStringPretty(v any) (string, error) {
	data, err := m.api.Marshal(v)
	if err != nil {
		return "", m.wrap("to pretty string", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", m.indent); err != nil {
		return "", m.wrap("to pretty string", err)
	}
	return buf.String(), nil
}

// ToStringWithNaming renders v with s as naming strategy. m is not affected.
func (m *Mapper) ToStringWithNaming(v any, s NamingStrategy) (string, error) {
	return m.WithNaming(s).ToString(v)
}

func (m *Mapper) ToBytes(v any) ([]byte, error) {
	data, err := m.api.Marshal(v)
	if err != nil {
		return nil, m.wrap("to bytes", err)
	}
	return data, nil
}

// Encode writes the JSON text of v followed by a newline.
func (m *Mapper) Encode(w io.Writer, v any) error {
	return m.wrap("encode", m.api.NewEncoder(w).Encode(v))
}

func indirectKind(v any) reflect.Kind {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Invalid
		}
		rv = rv.Elem()
	}
	return rv.Kind()
}
