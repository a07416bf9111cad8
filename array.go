package jsonlike

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"time"
	"unsafe"

	"github.com/shopspring/decimal"
)

// Array is a mutable view over a JSON array. See Object for sharing rules.
//
// An Array obtained from a parent (or stored into one by reference) looks its
// elements up in the parent on every call and writes its new slice back when
// its length changes. A view taken from an array element keeps following that
// element when the parent inserts or removes others before it; if the element
// is gone, it follows whatever array now sits at its old index.
//
// The zero value is an empty array bound to Default().
type Array struct {
	a      []any
	mapper *Mapper
	slot   *arraySlot
}

// arraySlot is the place in a parent where a child view's slice lives:
// a key of an object or an index of an array.
type arraySlot struct {
	object *Object
	key    string

	array *Array
	index int
}

// load returns the slice currently stored in the slot. last is the slice the
// view saw the previous time.
func (s *arraySlot) load(last []any) ([]any, bool) {
	if s.array == nil {
		n, ok := s.object.m[s.key].([]any)
		return n, ok
	}

	items := s.array.items()
	if s.index < len(items) && sameBacking(items[s.index], last) {
		return items[s.index].([]any), true
	}
	for i, v := range items {
		if sameBacking(v, last) {
			s.index = i
			return v.([]any), true
		}
	}
	if s.index < len(items) {
		n, ok := items[s.index].([]any)
		return n, ok
	}
	return nil, false
}

func (s *arraySlot) store(n []any) {
	if s.array == nil {
		if _, ok := s.object.m[s.key].([]any); ok {
			s.object.m[s.key] = n
		}
		return
	}
	items := s.array.items()
	if s.index < len(items) {
		if _, ok := items[s.index].([]any); ok {
			items[s.index] = n
		}
	}
}

func sameBacking(v any, last []any) bool {
	n, ok := v.([]any)
	return ok && cap(n) > 0 && cap(last) > 0 && unsafe.SliceData(n) == unsafe.SliceData(last)
}

// withIdentity gives empty slices their own backing array, so that views
// on two empty arrays can be told apart.
func withIdentity(n []any) []any {
	if cap(n) == 0 {
		return make([]any, 0, 1)
	}
	return n
}

// adopt links a root Array that was stored by reference to the slot it was stored in.
func adopt(v any, s *arraySlot) {
	x, ok := v.(*Array)
	if !ok || x == nil || x.slot != nil || x == s.array {
		return
	}
	x.slot = s
}

// NewArray creates an empty Array bound to Default().
func NewArray() *Array {
	return Default().NewArray()
}

func (a *Array) mp() *Mapper {
	if a.mapper == nil {
		a.mapper = Default()
	}
	return a.mapper
}

func (a *Array) Mapper() *Mapper { return a.mp() }

// items refreshes a.a from the parent, if any, and returns it.
func (a *Array) items() []any {
	if a.slot != nil {
		if n, ok := a.slot.load(a.a); ok {
			a.a = n
		}
	}
	return a.a
}

func (a *Array) sync() {
	if a.slot != nil {
		a.slot.store(a.a)
	}
}

func (a *Array) Len() int { return len(a.items()) }

func (a *Array) IsEmpty() bool { return a.Len() == 0 }

// Contains reports whether index is within the array.
func (a *Array) Contains(index int) bool {
	return index >= 0 && index < a.Len()
}

// ContainsValue reports whether an element equals the tree of v.
func (a *Array) ContainsValue(v any) bool {
	return a.IndexOf(v) >= 0
}

func (a *Array) Get(index int) (any, bool) {
	if !a.Contains(index) {
		return nil, false
	}
	return a.a[index], true
}

// Values returns a shallow copy of the elements.
func (a *Array) Values() []any {
	items := a.items()
	c := make([]any, len(items))
	copy(c, items)
	return c
}

func (a *Array) value(index int) (any, bool) {
	v, ok := a.Get(index)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (a *Array) GetObject(index int) *Object {
	v, _ := a.value(index)
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return &Object{m: m, mapper: a.mp()}
}

func (a *Array) GetArray(index int) *Array {
	v, _ := a.value(index)
	child, ok := v.([]any)
	if !ok {
		return nil
	}
	if cap(child) == 0 {
		child = withIdentity(child)
		a.a[index] = child
	}
	return &Array{
		a:      child,
		mapper: a.mp(),
		slot:   &arraySlot{array: a, index: index},
	}
}

// Objects returns a view for every element that is an object.
func (a *Array) Objects() []*Object {
	items := a.items()
	objects := make([]*Object, 0, len(items))
	for _, v := range items {
		if m, ok := v.(map[string]any); ok {
			objects = append(objects, &Object{m: m, mapper: a.mp()})
		}
	}
	return objects
}

func (a *Array) Decode(index int, out any) error {
	v, ok := a.Get(index)
	if !ok {
		return a.mp().wrap("decode", a.outOfRange(index))
	}
	return a.mp().Convert(v, out)
}

func (a *Array) DecodeLenient(index int, out any) error {
	v, ok := a.Get(index)
	if !ok {
		return a.mp().wrap("decode", a.outOfRange(index))
	}
	return a.mp().ConvertLenient(v, out)
}

func (a *Array) GetBool(index int) (bool, bool) {
	v, ok := a.value(index)
	if !ok {
		return false, false
	}
	return toBool(v)
}

func (a *Array) BoolValue(index int) bool {
	b, _ := a.GetBool(index)
	return b
}

func (a *Array) GetInt8(index int) (int8, bool) {
	v, _ := a.value(index)
	i, ok := toInt64InRange(v, math.MinInt8, math.MaxInt8)
	return int8(i), ok
}

func (a *Array) Int8Value(index int) int8 {
	i, _ := a.GetInt8(index)
	return i
}

func (a *Array) GetInt16(index int) (int16, bool) {
	v, _ := a.value(index)
	i, ok := toInt64InRange(v, math.MinInt16, math.MaxInt16)
	return int16(i), ok
}

func (a *Array) Int16Value(index int) int16 {
	i, _ := a.GetInt16(index)
	return i
}

func (a *Array) GetInt32(index int) (int32, bool) {
	v, _ := a.value(index)
	i, ok := toInt64InRange(v, math.MinInt32, math.MaxInt32)
	return int32(i), ok
}

func (a *Array) Int32Value(index int) int32 {
	i, _ := a.GetInt32(index)
	return i
}

func (a *Array) GetInt(index int) (int, bool) {
	v, _ := a.value(index)
	i, ok := toInt64InRange(v, math.MinInt, math.MaxInt)
	return int(i), ok
}

func (a *Array) IntValue(index int) int {
	i, _ := a.GetInt(index)
	return i
}

func (a *Array) GetInt64(index int) (int64, bool) {
	v, _ := a.value(index)
	return toInt64(v)
}

func (a *Array) Int64Value(index int) int64 {
	i, _ := a.GetInt64(index)
	return i
}

func (a *Array) GetUint64(index int) (uint64, bool) {
	v, _ := a.value(index)
	return toUint64(v)
}

func (a *Array) Uint64Value(index int) uint64 {
	u, _ := a.GetUint64(index)
	return u
}

func (a *Array) GetFloat32(index int) (float32, bool) {
	f, ok := a.GetFloat64(index)
	if !ok || math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}

func (a *Array) Float32Value(index int) float32 {
	f, _ := a.GetFloat32(index)
	return f
}

func (a *Array) GetFloat64(index int) (float64, bool) {
	v, _ := a.value(index)
	return toFloat64(v)
}

func (a *Array) Float64Value(index int) float64 {
	f, _ := a.GetFloat64(index)
	return f
}

func (a *Array) GetDecimal(index int) (decimal.Decimal, bool) {
	v, _ := a.value(index)
	return toDecimal(v)
}

func (a *Array) DecimalValue(index int) decimal.Decimal {
	d, _ := a.GetDecimal(index)
	return d
}

func (a *Array) GetBigInt(index int) (*big.Int, bool) {
	v, _ := a.value(index)
	return toBigInt(v)
}

func (a *Array) GetString(index int) (string, bool) {
	v, _ := a.value(index)
	return a.mp().toString(v)
}

func (a *Array) StringValue(index int) string {
	s, _ := a.GetString(index)
	return s
}

func (a *Array) GetBytes(index int) ([]byte, bool) {
	v, _ := a.value(index)
	return toBytes(v)
}

func (a *Array) GetTime(index int) (time.Time, bool) {
	t, err := a.ParseTime(index)
	return t, err == nil
}

func (a *Array) TimeValue(index int) time.Time {
	t, _ := a.GetTime(index)
	return t
}

func (a *Array) ParseTime(index int) (time.Time, error) {
	v, ok := a.value(index)
	if !ok {
		return time.Time{}, a.mp().wrap("parse time", a.outOfRange(index))
	}
	t, err := a.mp().toTime(v)
	if err != nil {
		return time.Time{}, a.mp().wrap("parse time", err)
	}
	return t, nil
}

func (a *Array) Add(v any) error {
	node, err := a.mp().toTree(v)
	if err != nil {
		return a.mp().wrap("add", err)
	}
	adopt(v, &arraySlot{array: a, index: len(a.items())})
	a.a = append(a.a, node)
	a.sync()
	return nil
}

// AddAll appends every value. Nothing is appended if one of them fails.
func (a *Array) AddAll(values ...any) error {
	nodes := make([]any, len(values))
	for i, v := range values {
		node, err := a.mp().toTree(v)
		if err != nil {
			return a.mp().wrap("add", err)
		}
		nodes[i] = node
	}
	n := len(a.items())
	for i, v := range values {
		adopt(v, &arraySlot{array: a, index: n + i})
	}
	a.a = append(a.a, nodes...)
	a.sync()
	return nil
}

// Insert puts v at index, shifting later elements. index may equal Len.
func (a *Array) Insert(index int, v any) error {
	if index < 0 || index > len(a.items()) {
		return a.mp().wrap("insert", a.outOfRange(index))
	}
	node, err := a.mp().toTree(v)
	if err != nil {
		return a.mp().wrap("insert", err)
	}
	adopt(v, &arraySlot{array: a, index: index})
	a.a = append(a.a, nil)
	copy(a.a[index+1:], a.a[index:])
	a.a[index] = node
	a.sync()
	return nil
}

func (a *Array) Set(index int, v any) error {
	if !a.Contains(index) {
		return a.mp().wrap("set", a.outOfRange(index))
	}
	node, err := a.mp().toTree(v)
	if err != nil {
		return a.mp().wrap("set", err)
	}
	adopt(v, &arraySlot{array: a, index: index})
	a.a[index] = node
	return nil
}

func (a *Array) Remove(index int) (any, bool) {
	if !a.Contains(index) {
		return nil, false
	}
	v := a.a[index]
	a.a = append(a.a[:index], a.a[index+1:]...)
	a.sync()
	return v, true
}

// Clear removes every element.
func (a *Array) Clear() {
	items := a.items()
	clear(items)
	a.a = withIdentity(items[:0])
	a.sync()
}

// IndexOf returns the index of the first element equal to the tree of v, or -1.
func (a *Array) IndexOf(v any) int {
	node, err := a.mp().toTree(v)
	if err != nil {
		return -1
	}
	for i, e := range a.items() {
		if treeEqual(e, node) {
			return i
		}
	}
	return -1
}

// SubList returns a detached copy of the elements in [from, to).
func (a *Array) SubList(from, to int) (*Array, error) {
	if from < 0 || to > len(a.items()) || from > to {
		return nil, a.mp().wrap("sub list", fmt.Errorf("%w: [%d, %d) of %d", ErrIndexOutOfRange, from, to, len(a.a)))
	}
	c := make([]any, to-from)
	copy(c, a.a[from:to])
	return &Array{a: c, mapper: a.mp()}, nil
}

// Range calls fn for each element until fn returns false.
func (a *Array) Range(fn func(index int, v any) bool) {
	for i, v := range a.items() {
		if !fn(i, v) {
			return
		}
	}
}

// NormalizeDates is Object.NormalizeDates for arrays.
func (a *Array) NormalizeDates() int {
	_, n := normalizeDates(a.raw(), a.mp().dates)
	return n
}

func (a *Array) To(out any) error {
	return a.mp().Convert(a.raw(), out)
}

func (a *Array) ToLenient(out any) error {
	return a.mp().ConvertLenient(a.raw(), out)
}

func (a *Array) Clone() *Array {
	c, _ := deepCopy(a.raw()).([]any)
	return &Array{a: c, mapper: a.mp()}
}

func (a *Array) raw() []any {
	if a.items() == nil {
		a.a = make([]any, 0)
	}
	return a.a
}

func (a *Array) JSON() (string, error) {
	b, err := a.Bytes()
	return string(b), err
}

func (a *Array) Bytes() ([]byte, error) {
	b, err := a.mp().trees.Marshal(a.raw())
	if err != nil {
		return nil, a.mp().wrap("array to string", err)
	}
	return b, nil
}

func (a *Array) Pretty() (string, error) {
	b, err := a.mp().trees.MarshalIndent(a.raw(), "", a.mp().indent)
	if err != nil {
		return "", a.mp().wrap("array to pretty string", err)
	}
	return string(b), nil
}

func (a *Array) String() string {
	s, err := a.JSON()
	if err != nil {
		return ""
	}
	return s
}

func (a *Array) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	return a.Bytes()
}

func (a *Array) UnmarshalJSON(data []byte) error {
	parsed, err := a.mp().ParseArrayBytes(data)
	if err != nil {
		return err
	}
	a.a = parsed.a
	a.sync()
	return nil
}

func (a *Array) outOfRange(index int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, index, len(a.items()))
}

var (
	_ json.Marshaler   = (*Array)(nil)
	_ json.Unmarshaler = (*Array)(nil)
)
