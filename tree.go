package jsonlike

import (
	"encoding/json"
	"reflect"
	"strconv"

	"github.com/karagenc/jsonlike/dateformat"
)

func numberOf(v any) json.Number {
	switch x := v.(type) {
	case int:
		return json.Number(strconv.FormatInt(int64(x), 10))
	case int8:
		return json.Number(strconv.FormatInt(int64(x), 10))
	case int16:
		return json.Number(strconv.FormatInt(int64(x), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(x), 10))
	case int64:
		return json.Number(strconv.FormatInt(x, 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return json.Number(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return json.Number(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return json.Number(strconv.FormatUint(x, 10))
	}
	return ""
}

// deepCopy copies maps and slices of a tree, leaves are immutable.
func deepCopy(node any) any {
	switch x := node.(type) {
	case map[string]any:
		c := make(map[string]any, len(x))
		for k, v := range x {
			c[k] = deepCopy(v)
		}
		return c
	case []any:
		c := make([]any, len(x))
		for i, v := range x {
			c[i] = deepCopy(v)
		}
		return c
	}
	return node
}

// treeEqual compares two trees. Numbers compare by value when both parse as floats.
func treeEqual(a, b any) bool {
	switch x := a.(type) {
	case json.Number:
		y, ok := b.(json.Number)
		if !ok {
			return false
		}
		if x == y {
			return true
		}
		fx, errx := x.Float64()
		fy, erry := y.Float64()
		return errx == nil && erry == nil && fx == fy
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, ok := y[k]
			if !ok || !treeEqual(v, w) {
				return false
			}
		}
		return true
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !treeEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// normalizeDates rewrites, in place, every string leaf the resolver
// recognizes into its canonical format. It returns the number of rewrites.
func normalizeDates(node any, dates *dateformat.Resolver) (any, int) {
	switch x := node.(type) {
	case string:
		t, err := dates.Parse(x)
		if err != nil {
			return x, 0
		}
		formatted := dates.Format(t)
		if formatted == x {
			return x, 0
		}
		return formatted, 1
	case map[string]any:
		total := 0
		for k, v := range x {
			var n int
			x[k], n = normalizeDates(v, dates)
			total += n
		}
		return x, total
	case []any:
		total := 0
		for i, v := range x {
			var n int
			x[i], n = normalizeDates(v, dates)
			total += n
		}
		return x, total
	}
	return node, 0
}
