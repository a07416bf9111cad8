package jsonlike

import (
	"reflect"
	"time"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/karagenc/jsonlike/dateformat"
	"github.com/modern-go/reflect2"
)

var timeType = reflect.TypeOf(time.Time{})

// timeExtension makes a frozen json-iterator API read and write time.Time
// (and *time.Time) through a dateformat.Resolver.
type timeExtension struct {
	jsoniter.DummyExtension
	codec *timeCodec
}

func (e *timeExtension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Type1() == timeType {
		return e.codec
	}
	return nil
}

func (e *timeExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Type1() == timeType {
		return e.codec
	}
	return nil
}

type timeCodec struct {
	dates *dateformat.Resolver
	debug Debugger
}

var (
	_ jsoniter.ValEncoder = (*timeCodec)(nil)
	_ jsoniter.ValDecoder = (*timeCodec)(nil)
)

// The zero time counts as empty for omitempty.
func (c *timeCodec) IsEmpty(ptr unsafe.Pointer) bool {
	return (*time.Time)(ptr).IsZero()
}

func (c *timeCodec) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString(c.dates.Format(*(*time.Time)(ptr)))
}

// Strings go through the resolver, numbers are epoch milliseconds.
func (c *timeCodec) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		s := iter.ReadString()
		t, err := c.dates.Parse(s)
		if err != nil {
			c.debug.Log("decode time.Time", err)
			iter.ReportError("decode time.Time", err.Error())
			return
		}
		*(*time.Time)(ptr) = t
	case jsoniter.NumberValue:
		ms := iter.ReadInt64()
		*(*time.Time)(ptr) = time.UnixMilli(ms).In(c.dates.Location())
	case jsoniter.NilValue:
		iter.ReadNil()
		*(*time.Time)(ptr) = time.Time{}
	default:
		iter.Skip()
		iter.ReportError("decode time.Time", "expected a string or a number")
	}
}
