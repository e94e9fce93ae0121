// Package coerce converts loosely typed values (JSON numbers, numeric strings,
// delimited lists) into the concrete types the rest of the module works with.
// An unparseable value reports ok=false and is treated as absent by callers.
package coerce

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Float returns v as a finite float64.
func Float(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimPrefix(strings.TrimSpace(x), "$")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FloatPtr is Float returning nil for absent values.
func FloatPtr(v any) *float64 {
	f, ok := Float(v)
	if !ok {
		return nil
	}
	return &f
}

// Int returns v rounded to the nearest integer.
func Int(v any) (int, bool) {
	f, ok := Float(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// IntPtr is Int returning nil for absent values.
func IntPtr(v any) *int {
	n, ok := Int(v)
	if !ok {
		return nil
	}
	return &n
}

// String returns v as trimmed text. Numbers are formatted without trailing zeros.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}
	if f, ok := Float(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// Set normalizes a scalar, a comma or semicolon delimited string, or a list into
// an ordered set of trimmed, non-empty strings. Duplicates are dropped
// case-insensitively, keeping the first spelling.
func Set(v any) []string {
	var raw []string
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		raw = splitList(x)
	case []string:
		for _, s := range x {
			raw = append(raw, splitList(s)...)
		}
	case []any:
		for _, item := range x {
			raw = append(raw, splitList(String(item))...)
		}
	default:
		raw = []string{String(v)}
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
}
