package model

import (
	"fmt"
	"strconv"
	"strings"
)

// StringValue renders a scalar input as its string form. Numbers are
// formatted without an exponent so phone numbers survive intact; nil and
// empty strings map to nil. Raw inputs arrive from JSON bodies and
// spreadsheet cells, so the concrete type varies.
func StringValue(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		return &s
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		return &s
	case int:
		s := strconv.Itoa(x)
		return &s
	case int64:
		s := strconv.FormatInt(x, 10)
		return &s
	case bool:
		s := strconv.FormatBool(x)
		return &s
	default:
		s := fmt.Sprint(x)
		return &s
	}
}

// Int64Value parses a scalar input as an int64, returning nil when the
// value is absent or not numeric.
func Int64Value(v any) *int64 {
	switch x := v.(type) {
	case float64:
		n := int64(x)
		return &n
	case int:
		n := int64(x)
		return &n
	case int64:
		return &x
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		return &n
	default:
		return nil
	}
}

// coerceString adapts StringValue for patch assignments, where a JSON null
// must stay null rather than becoming the string "null".
func coerceString(v any) any {
	if s := StringValue(v); s != nil {
		return *s
	}
	return nil
}
