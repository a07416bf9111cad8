package jsonlike

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Coercion of tree leaves for the typed getters.
// Integer targets accept integral values only, they never truncate.

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case json.Number:
		return parseInt64(string(v))
	case string:
		return parseInt64(strings.TrimSpace(v))
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v == math.Trunc(v) && v >= math.MinInt64 && v < math.MaxInt64 {
			return int64(v), true
		}
	}
	return 0, false
}

func parseInt64(s string) (int64, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	// 1e3, 10.0
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return 0, false
	}
	bi := d.BigInt()
	if !bi.IsInt64() {
		return 0, false
	}
	return bi.Int64(), true
}

func toInt64InRange(value any, min, max int64) (int64, bool) {
	i, ok := toInt64(value)
	if !ok || i < min || i > max {
		return 0, false
	}
	return i, true
}

func toUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case json.Number:
		return parseUint64(string(v))
	case string:
		return parseUint64(strings.TrimSpace(v))
	case uint64:
		return v, true
	}
	i, ok := toInt64(value)
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

func parseUint64(s string) (uint64, bool) {
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return u, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || d.IsNegative() {
		return 0, false
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, false
	}
	return bi.Uint64(), true
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func toBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return b, err == nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	}
	if f, ok := toFloat64(value); ok {
		return f != 0, true
	}
	return false, false
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case json.Number:
		d, err := decimal.NewFromString(string(v))
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case bool:
		if v {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	}
	return decimal.Zero, false
}

func toBigInt(value any) (*big.Int, bool) {
	var s string
	switch v := value.(type) {
	case json.Number:
		s = string(v)
	case string:
		s = strings.TrimSpace(v)
	case bool:
		if v {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	default:
		return nil, false
	}
	if bi, ok := new(big.Int).SetString(s, 10); ok {
		return bi, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return nil, false
	}
	return d.BigInt(), true
}

func toBytes(value any) ([]byte, bool) {
	s, ok := value.(string)
	if !ok {
		return nil, false
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// toString renders scalars as text and containers as compact JSON.
func (m *Mapper) toString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	case map[string]any, []any:
		b, err := m.trees.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
	s, err := m.api.MarshalToString(value)
	return s, err == nil
}

func (m *Mapper) toTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case string:
		return m.dates.Parse(v)
	case json.Number:
		ms, err := v.Int64()
		if err != nil {
			return time.Time{}, err
		}
		return time.UnixMilli(ms).In(m.dates.Location()), nil
	}
	return time.Time{}, ErrUnsupportedValue
}
