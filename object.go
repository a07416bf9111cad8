package jsonlike

import (
	"encoding/json"
	"math"
	"math/big"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/shopspring/decimal"
)

// Object is a mutable view over a JSON object.
//
// Objects and Arrays returned by GetObject and GetArray share their
// contents with the parent: changes made through a child are visible in
// the parent. An Object is not safe for concurrent mutation.
//
// The zero value is an empty object bound to Default().
type Object struct {
	m      map[string]any
	mapper *Mapper
}

// NewObject creates an empty Object bound to Default().
func NewObject() *Object {
	return Default().NewObject()
}

func (o *Object) mp() *Mapper {
	if o.mapper == nil {
		o.mapper = Default()
	}
	return o.mapper
}

func (o *Object) Mapper() *Mapper { return o.mp() }

func (o *Object) Len() int { return len(o.m) }

func (o *Object) IsEmpty() bool { return len(o.m) == 0 }

func (o *Object) Contains(key string) bool {
	_, ok := o.m[key]
	return ok
}

// Keys returns the keys in sorted order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.m))
	for k := range o.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// KeySet returns a snapshot of the keys. The set is not safe for concurrent use.
func (o *Object) KeySet() mapset.Set[string] {
	set := mapset.NewThreadUnsafeSetWithSize[string](len(o.m))
	for k := range o.m {
		set.Add(k)
	}
	return set
}

// Get returns the raw tree node stored under key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.m[key]
	return v, ok
}

// Values returns a shallow copy of the underlying map.
func (o *Object) Values() map[string]any {
	c := make(map[string]any, len(o.m))
	for k, v := range o.m {
		c[k] = v
	}
	return c
}

// Raw returns the underlying map itself.
func (o *Object) Raw() map[string]any {
	if o.m == nil {
		o.m = make(map[string]any)
	}
	return o.m
}

// value returns the node under key, treating JSON null as absent.
func (o *Object) value(key string) (any, bool) {
	v, ok := o.m[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o *Object) GetObject(key string) *Object {
	v, _ := o.value(key)
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &Object{m: m, mapper: o.mp()}
}

func (o *Object) GetArray(key string) *Array {
	v, _ := o.value(key)
	a, ok := v.([]any)
	if !ok {
		return nil
	}
	return &Array{
		a:      a,
		mapper: o.mp(),
		slot:   &arraySlot{object: o, key: key},
	}
}

// Decode converts the value under key into out.
func (o *Object) Decode(key string, out any) error {
	v, ok := o.m[key]
	if !ok {
		return o.mp().wrap("decode "+key, ErrKeyNotFound)
	}
	return o.mp().Convert(v, out)
}

// DecodeLenient is Decode with weak typing, see Mapper.ConvertLenient.
func (o *Object) DecodeLenient(key string, out any) error {
	v, ok := o.m[key]
	if !ok {
		return o.mp().wrap("decode "+key, ErrKeyNotFound)
	}
	return o.mp().ConvertLenient(v, out)
}

func (o *Object) GetBool(key string) (bool, bool) {
	v, ok := o.value(key)
	if !ok {
		return false, false
	}
	return toBool(v)
}

func (o *Object) BoolValue(key string) bool {
	b, _ := o.GetBool(key)
	return b
}

func (o *Object) GetInt8(key string) (int8, bool) {
	v, _ := o.value(key)
	i, ok := toInt64InRange(v, math.MinInt8, math.MaxInt8)
	return int8(i), ok
}

func (o *Object) Int8Value(key string) int8 {
	i, _ := o.GetInt8(key)
	return i
}

func (o *Object) GetInt16(key string) (int16, bool) {
	v, _ := o.value(key)
	i, ok := toInt64InRange(v, math.MinInt16, math.MaxInt16)
	return int16(i), ok
}

func (o *Object) Int16Value(key string) int16 {
	i, _ := o.GetInt16(key)
	return i
}

func (o *Object) GetInt32(key string) (int32, bool) {
	v, _ := o.value(key)
	i, ok := toInt64InRange(v, math.MinInt32, math.MaxInt32)
	return int32(i), ok
}

func (o *Object) Int32Value(key string) int32 {
	i, _ := o.GetInt32(key)
	return i
}

func (o *Object) GetInt(key string) (int, bool) {
	v, _ := o.value(key)
	i, ok := toInt64InRange(v, math.MinInt, math.MaxInt)
	return int(i), ok
}

func (o *Object) IntValue(key string) int {
	i, _ := o.GetInt(key)
	return i
}

func (o *Object) GetInt64(key string) (int64, bool) {
	v, _ := o.value(key)
	return toInt64(v)
}

func (o *Object) Int64Value(key string) int64 {
	i, _ := o.GetInt64(key)
	return i
}

func (o *Object) GetUint64(key string) (uint64, bool) {
	v, _ := o.value(key)
	return toUint64(v)
}

func (o *Object) Uint64Value(key string) uint64 {
	u, _ := o.GetUint64(key)
	return u
}

func (o *Object) GetFloat32(key string) (float32, bool) {
	f, ok := o.GetFloat64(key)
	if !ok || math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}

func (o *Object) Float32Value(key string) float32 {
	f, _ := o.GetFloat32(key)
	return f
}

func (o *Object) GetFloat64(key string) (float64, bool) {
	v, _ := o.value(key)
	return toFloat64(v)
}

func (o *Object) Float64Value(key string) float64 {
	f, _ := o.GetFloat64(key)
	return f
}

func (o *Object) GetDecimal(key string) (decimal.Decimal, bool) {
	v, _ := o.value(key)
	return toDecimal(v)
}

func (o *Object) DecimalValue(key string) decimal.Decimal {
	d, _ := o.GetDecimal(key)
	return d
}

func (o *Object) GetBigInt(key string) (*big.Int, bool) {
	v, _ := o.value(key)
	return toBigInt(v)
}

// GetString returns strings as they are, numbers and booleans as text,
// and objects and arrays as compact JSON.
func (o *Object) GetString(key string) (string, bool) {
	v, _ := o.value(key)
	return o.mp().toString(v)
}

func (o *Object) StringValue(key string) string {
	s, _ := o.GetString(key)
	return s
}

// GetBytes decodes a base64 string. Any other value gives (nil, false).
func (o *Object) GetBytes(key string) ([]byte, bool) {
	v, _ := o.value(key)
	return toBytes(v)
}

// GetTime reads a date string through the mapper's resolver,
// or a number as epoch milliseconds.
func (o *Object) GetTime(key string) (time.Time, bool) {
	t, err := o.ParseTime(key)
	return t, err == nil
}

func (o *Object) TimeValue(key string) time.Time {
	t, _ := o.GetTime(key)
	return t
}

// ParseTime is GetTime with the reason of the failure.
func (o *Object) ParseTime(key string) (time.Time, error) {
	v, ok := o.value(key)
	if !ok {
		return time.Time{}, o.mp().wrap("parse time "+key, ErrKeyNotFound)
	}
	t, err := o.mp().toTime(v)
	if err != nil {
		return time.Time{}, o.mp().wrap("parse time "+key, err)
	}
	return t, nil
}

// Put stores v under key after converting it into a tree node.
// Objects and Arrays are stored by reference: a root Array put here keeps
// writing to this key afterwards.
func (o *Object) Put(key string, v any) error {
	node, err := o.mp().toTree(v)
	if err != nil {
		return o.mp().wrap("put "+key, err)
	}
	if o.m == nil {
		o.m = make(map[string]any)
	}
	adopt(v, &arraySlot{object: o, key: key})
	o.m[key] = node
	return nil
}

// PutAll puts every entry of values. Nothing is stored if one of them fails.
func (o *Object) PutAll(values map[string]any) error {
	nodes := make(map[string]any, len(values))
	for k, v := range values {
		node, err := o.mp().toTree(v)
		if err != nil {
			return o.mp().wrap("put "+k, err)
		}
		nodes[k] = node
	}
	if o.m == nil {
		o.m = make(map[string]any, len(nodes))
	}
	for k, node := range nodes {
		adopt(values[k], &arraySlot{object: o, key: k})
		o.m[k] = node
	}
	return nil
}

func (o *Object) Remove(key string) (any, bool) {
	v, ok := o.m[key]
	if ok {
		delete(o.m, key)
	}
	return v, ok
}

func (o *Object) Clear() {
	for k := range o.m {
		delete(o.m, k)
	}
}

// Map passes the node under key (and whether it exists) to fn.
func (o *Object) Map(key string, fn func(v any, ok bool) any) any {
	v, ok := o.m[key]
	return fn(v, ok)
}

// IfPresent calls fn with the node under key if the key exists.
func (o *Object) IfPresent(key string, fn func(v any)) {
	if v, ok := o.m[key]; ok {
		fn(v)
	}
}

// Range calls fn for each entry in key order until fn returns false.
func (o *Object) Range(fn func(key string, v any) bool) {
	for _, k := range o.Keys() {
		if !fn(k, o.m[k]) {
			return
		}
	}
}

// NormalizeDates rewrites every string value the mapper's resolver can read
// as a date into the canonical format, at any depth. It returns the number of
// values changed.
func (o *Object) NormalizeDates() int {
	_, n := normalizeDates(o.Raw(), o.mp().dates)
	return n
}

// To converts the whole object into out.
func (o *Object) To(out any) error {
	return o.mp().Convert(o.Raw(), out)
}

// ToLenient converts the whole object into out with weak typing.
func (o *Object) ToLenient(out any) error {
	return o.mp().ConvertLenient(o.Raw(), out)
}

// Clone returns a deep copy bound to the same mapper.
func (o *Object) Clone() *Object {
	m, _ := deepCopy(o.Raw()).(map[string]any)
	return &Object{m: m, mapper: o.mp()}
}

func (o *Object) JSON() (string, error) {
	b, err := o.Bytes()
	return string(b), err
}

func (o *Object) Bytes() ([]byte, error) {
	b, err := o.mp().trees.Marshal(o.Raw())
	if err != nil {
		return nil, o.mp().wrap("object to string", err)
	}
	return b, nil
}

func (o *Object) Pretty() (string, error) {
	b, err := o.mp().trees.MarshalIndent(o.Raw(), "", o.mp().indent)
	if err != nil {
		return "", o.mp().wrap("object to pretty string", err)
	}
	return string(b), nil
}

// String returns the JSON text, or "" if it cannot be produced.
func (o *Object) String() string {
	s, err := o.JSON()
	if err != nil {
		return ""
	}
	return s
}

func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.Bytes()
}

func (o *Object) UnmarshalJSON(data []byte) error {
	parsed, err := o.mp().ParseObjectBytes(data)
	if err != nil {
		return err
	}
	o.m = parsed.m
	return nil
}

var (
	_ json.Marshaler   = (*Object)(nil)
	_ json.Unmarshaler = (*Object)(nil)
)
