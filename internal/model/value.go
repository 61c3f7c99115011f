package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Value coercion helpers shared by the visibility evaluator and the scoring
// engine. Answer values arrive as decoded JSON/YAML (bool, float64, string,
// []any), so both components must agree on how loose values map onto the
// question's declared answer type.

// IsEmptyValue reports whether v counts as "no answer": nil, a blank
// string, or an empty list.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	default:
		return false
	}
}

// AsBool coerces v to a bool. Accepts native bools and the strings
// "true"/"false" (case-insensitive).
func AsBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

// AsFloat coerces v to a float64. Accepts numeric types and numeric strings.
func AsFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsString coerces v to a string. Numbers and bools are formatted; lists
// are not strings.
func AsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	}
	return "", false
}

// AsStringList coerces v to a list of strings. Elements that are not
// strings are formatted with fmt.Sprint so mixed JSON arrays still compare.
func AsStringList(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := AsString(e); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out, true
	}
	return nil, false
}

// dateLayouts are the accepted string layouts for date answers.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01",
}

// AsTime coerces v to a time.Time. Accepts time.Time and the layouts in
// dateLayouts.
func AsTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// ValuesEqual compares two answer values with strict type-aware equality:
// numbers compare numerically, bools as bools, everything else as strings.
func ValuesEqual(a, b any) bool {
	if af, ok := AsFloat(a); ok {
		if bf, ok := AsFloat(b); ok {
			return af == bf
		}
		return false
	}
	if ab, ok := AsBool(a); ok {
		if bb, ok := AsBool(b); ok {
			return ab == bb
		}
		return false
	}
	as, aok := AsString(a)
	bs, bok := AsString(b)
	return aok && bok && as == bs
}
