package jsonlike

import (
	"encoding/json"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/karagenc/jsonlike/dateformat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testObjectJSON = `{
	"int": 42,
	"intText": "42",
	"float": 1.5,
	"floatText": "1.5",
	"sci": "1e3",
	"large": 300,
	"negative": -1,
	"flag": true,
	"flagText": "true",
	"one": 1,
	"zero": 0,
	"name": "lgl",
	"nested": {"a": 1},
	"list": [1, 2],
	"nothing": null,
	"bytes": "aGVsbG8="
}`

func TestObjectGetters(t *testing.T) {
	m := newTestMapper(t, nil)
	o, err := m.ParseObject(testObjectJSON)
	require.NoError(t, err)

	t.Run("integers", func(t *testing.T) {
		i, ok := o.GetInt("int")
		assert.True(t, ok)
		assert.Equal(t, 42, i)
		assert.Equal(t, 42, o.IntValue("intText"))
		assert.Equal(t, int64(1000), o.Int64Value("sci"))
		assert.Equal(t, int32(300), o.Int32Value("large"))
		assert.Equal(t, int16(300), o.Int16Value("large"))

		_, ok = o.GetInt8("large")
		assert.False(t, ok)
		_, ok = o.GetInt("float")
		assert.False(t, ok)
		_, ok = o.GetUint64("negative")
		assert.False(t, ok)
		assert.Equal(t, uint64(42), o.Uint64Value("intText"))
		assert.Equal(t, 1, o.IntValue("flag"))
		assert.Equal(t, 0, o.IntValue("missing"))
		assert.Equal(t, 0, o.IntValue("name"))
	})

	t.Run("floats", func(t *testing.T) {
		assert.Equal(t, 1.5, o.Float64Value("float"))
		assert.Equal(t, 1.5, o.Float64Value("floatText"))
		assert.Equal(t, float32(1.5), o.Float32Value("float"))
		assert.Equal(t, float64(42), o.Float64Value("int"))
		_, ok := o.GetFloat64("nested")
		assert.False(t, ok)

		wide, err := m.ParseObject(`{"huge":1e300,"max":3.4028234663852886e38}`)
		require.NoError(t, err)
		_, ok = wide.GetFloat32("huge")
		assert.False(t, ok)
		assert.Equal(t, float32(0), wide.Float32Value("huge"))
		assert.Equal(t, 1e300, wide.Float64Value("huge"))
		f, ok := wide.GetFloat32("max")
		assert.True(t, ok)
		assert.Equal(t, float32(math.MaxFloat32), f)
	})

	t.Run("big numbers", func(t *testing.T) {
		assert.True(t, decimal.RequireFromString("1.5").Equal(o.DecimalValue("floatText")))
		assert.True(t, decimal.NewFromInt(42).Equal(o.DecimalValue("int")))

		bi, ok := o.GetBigInt("sci")
		require.True(t, ok)
		assert.Equal(t, 0, bi.Cmp(big.NewInt(1000)))
		_, ok = o.GetBigInt("float")
		assert.False(t, ok)
	})

	t.Run("booleans", func(t *testing.T) {
		assert.True(t, o.BoolValue("flag"))
		assert.True(t, o.BoolValue("flagText"))
		assert.True(t, o.BoolValue("one"))
		assert.False(t, o.BoolValue("zero"))
		_, ok := o.GetBool("name")
		assert.False(t, ok)
		_, ok = o.GetBool("nothing")
		assert.False(t, ok)
	})

	t.Run("strings", func(t *testing.T) {
		assert.Equal(t, "lgl", o.StringValue("name"))
		assert.Equal(t, "42", o.StringValue("int"))
		assert.Equal(t, "true", o.StringValue("flag"))
		assert.Equal(t, `{"a":1}`, o.StringValue("nested"))
		assert.Equal(t, `[1,2]`, o.StringValue("list"))

		_, ok := o.GetString("nothing")
		assert.False(t, ok)
		assert.True(t, o.Contains("nothing"))
	})

	t.Run("bytes", func(t *testing.T) {
		b, ok := o.GetBytes("bytes")
		require.True(t, ok)
		assert.Equal(t, []byte("hello"), b)
		_, ok = o.GetBytes("int")
		assert.False(t, ok)
	})

	t.Run("raw", func(t *testing.T) {
		v, ok := o.Get("int")
		require.True(t, ok)
		assert.Equal(t, json.Number("42"), v)
		assert.Equal(t, 16, o.Len())
		assert.Equal(t, "bytes", o.Keys()[0])
		assert.True(t, o.KeySet().Contains("nested", "list"))
		assert.Nil(t, o.GetObject("list"))
		assert.Nil(t, o.GetArray("nested"))
	})
}

func TestObjectChildrenShareState(t *testing.T) {
	m := newTestMapper(t, nil)
	o, err := m.ParseObject(`{"nested":{"a":1},"list":[1,2]}`)
	require.NoError(t, err)

	require.NoError(t, o.GetObject("nested").Put("b", 2))
	assert.Equal(t, 2, o.GetObject("nested").IntValue("b"))

	list := o.GetArray("list")
	require.NoError(t, list.Add(3))
	require.NoError(t, list.Insert(0, "zero"))
	assert.Equal(t, 4, o.GetArray("list").Len())
	assert.Equal(t, "zero", o.GetArray("list").StringValue(0))

	s, err := o.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"list":["zero",1,2,3],"nested":{"a":1,"b":2}}`, s)

	clone := o.Clone()
	require.NoError(t, clone.GetObject("nested").Put("c", 3))
	assert.False(t, o.GetObject("nested").Contains("c"))
}

func TestObjectMutation(t *testing.T) {
	m := newTestMapper(t, nil)
	o := m.NewObject()

	require.NoError(t, o.Put("user", testUserDTO{ID: 1, Name: "lgl"}))
	assert.Equal(t, "lgl", o.GetObject("user").StringValue("name"))

	child := m.NewObject()
	require.NoError(t, o.Put("child", child))
	require.NoError(t, child.Put("x", true))
	assert.True(t, o.GetObject("child").BoolValue("x"))

	err := o.PutAll(map[string]any{"ok": 1, "bad": make(chan int)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerialization))
	assert.False(t, o.Contains("ok"))

	require.NoError(t, o.PutAll(map[string]any{"a": 1, "b": "two"}))
	assert.Equal(t, 4, o.Len())

	v, ok := o.Remove("a")
	assert.True(t, ok)
	assert.Equal(t, json.Number("1"), v)
	_, ok = o.Remove("a")
	assert.False(t, ok)

	got := o.Map("b", func(v any, ok bool) any {
		if !ok {
			return nil
		}
		return v.(string) + "!"
	})
	assert.Equal(t, "two!", got)
	assert.Nil(t, o.Map("missing", func(v any, ok bool) any {
		if !ok {
			return nil
		}
		return v
	}))

	called := false
	o.IfPresent("b", func(any) { called = true })
	o.IfPresent("missing", func(any) { t.Fatal("called for a missing key") })
	assert.True(t, called)

	var keys []string
	o.Range(func(key string, _ any) bool {
		keys = append(keys, key)
		return len(keys) < 2
	})
	assert.Equal(t, []string{"b", "child"}, keys)

	o.Clear()
	assert.True(t, o.IsEmpty())
}

func TestObjectTimes(t *testing.T) {
	m := newTestMapper(t, nil)
	o := m.NewObject()
	when := time.Date(2022, 4, 3, 10, 11, 12, 0, time.UTC)

	require.NoError(t, o.Put("when", when))
	assert.Equal(t, "2022-04-03 10:11:12", o.StringValue("when"))
	assert.True(t, when.Equal(o.TimeValue("when")))

	require.NoError(t, o.Put("compact", "20220403"))
	assert.True(t, time.Date(2022, 4, 3, 0, 0, 0, 0, time.UTC).Equal(o.TimeValue("compact")))

	require.NoError(t, o.Put("millis", when.UnixMilli()))
	assert.True(t, when.Equal(o.TimeValue("millis")))

	require.NoError(t, o.Put("bad", "not-a-date"))
	_, err := o.ParseTime("bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSerialization))
	assert.True(t, errors.Is(err, dateformat.ErrNoMatchingFormat))

	_, err = o.ParseTime("missing")
	assert.True(t, errors.Is(err, ErrKeyNotFound))

	_, ok := o.GetTime("bad")
	assert.False(t, ok)
}

func TestObjectConversion(t *testing.T) {
	m := newTestMapper(t, nil)
	o, err := m.ParseObject(`{"id":"12","name":99,"active":"true","when":"2022-04-03","extra":[1]}`)
	require.NoError(t, err)

	var strict testUserDTO
	err = o.To(&strict)
	assert.True(t, errors.Is(err, ErrSerialization))

	var lenient struct {
		ID     int       `json:"id"`
		Name   string    `json:"name"`
		Active bool      `json:"active"`
		When   time.Time `json:"when"`
	}
	require.NoError(t, o.ToLenient(&lenient))
	assert.Equal(t, 12, lenient.ID)
	assert.Equal(t, "99", lenient.Name)
	assert.True(t, lenient.Active)
	assert.True(t, time.Date(2022, 4, 3, 0, 0, 0, 0, time.UTC).Equal(lenient.When))

	var asStrings map[string]string
	flat, err := m.ParseObject(`{"a":1,"b":true,"c":"x"}`)
	require.NoError(t, err)
	require.NoError(t, flat.ToLenient(&asStrings))
	assert.Equal(t, map[string]string{"a": "1", "b": "1", "c": "x"}, asStrings)

	var id int
	require.NoError(t, o.DecodeLenient("id", &id))
	assert.Equal(t, 12, id)

	var extra []int
	require.NoError(t, o.Decode("extra", &extra))
	assert.Equal(t, []int{1}, extra)
	assert.True(t, errors.Is(o.Decode("missing", &extra), ErrKeyNotFound))

	pretty, err := flat.Pretty()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": true,\n  \"c\": \"x\"\n}", pretty)
	assert.Equal(t, `{"a":1,"b":true,"c":"x"}`, flat.String())
}

func TestObjectEmbedded(t *testing.T) {
	type envelope struct {
		Kind    string  `json:"kind"`
		Payload *Object `json:"payload"`
	}

	var e envelope
	require.NoError(t, Unmarshal(`{"kind":"k","payload":{"a":[1,2]}}`, &e))
	require.NotNil(t, e.Payload)
	assert.Equal(t, 2, e.Payload.GetArray("a").Len())

	require.NoError(t, e.Payload.Put("b", "c"))
	s, err := ToString(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"k","payload":{"a":[1,2],"b":"c"}}`, s)

	var zero Object
	require.NoError(t, zero.Put("x", 1))
	assert.True(t, zero.Mapper() == Default())
	assert.Equal(t, 1, zero.IntValue("x"))
}

func TestNormalizeDates(t *testing.T) {
	m := newTestMapper(t, nil)
	o, err := m.ParseObject(`{"a":"20220403","b":{"c":["2022/04/03 10:11:12","x"]},"d":"2022-04-03 00:00:00","n":20220403}`)
	require.NoError(t, err)

	assert.Equal(t, 2, o.NormalizeDates())
	assert.Equal(t, "2022-04-03 00:00:00", o.StringValue("a"))
	assert.Equal(t, "2022-04-03 10:11:12", o.GetObject("b").GetArray("c").StringValue(0))
	assert.Equal(t, "x", o.GetObject("b").GetArray("c").StringValue(1))
	assert.Equal(t, int64(20220403), o.Int64Value("n"))
	assert.Equal(t, 0, o.NormalizeDates())

	a, err := m.ParseArray(`["2022-04-03T10:11:12Z"]`)
	require.NoError(t, err)
	assert.Equal(t, 1, a.NormalizeDates())
	assert.Equal(t, "2022-04-03 10:11:12", a.StringValue(0))
}
