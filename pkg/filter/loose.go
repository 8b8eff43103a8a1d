package filter

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// normalize folds the Go representations of scalar values into string, float64 and bool,
// so that e.g. an int loaded from one source compares equal to a float64 loaded from another.
func normalize(v any) any {
	switch v := v.(type) {
	case nil, string, float64, bool:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
	}

	return v
}

// truthy reports whether v counts as true when used as a condition on its own.
// nil, false, 0, NaN and the empty string are falsy, everything else is truthy.
func truthy(v any) bool {
	switch v := normalize(v).(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	default:
		return true
	}
}

// toNumber converts v to a number the way loose comparisons do.
// Returns false if v has no numeric interpretation.
func toNumber(v any) (float64, bool) {
	switch v := normalize(v).(type) {
	case nil:
		return 0, true
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	case float64:
		return v, !math.IsNaN(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, true
		}

		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}

// looseEqual compares a and b with type coercion: numbers and numeric strings compare numerically,
// booleans are treated as 0 and 1, nil only equals nil. Any other combination falls back to a deep comparison.
func looseEqual(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case string:
		switch y := b.(type) {
		case string:
			return x == y
		case float64, bool:
			n, ok := toNumber(x)
			m, _ := toNumber(y)

			return ok && n == m
		}
	case float64:
		switch y := b.(type) {
		case float64, bool, string:
			n, ok := toNumber(y)

			return ok && x == n
		}
	case bool:
		switch y := b.(type) {
		case bool:
			return x == y
		case float64, string:
			return looseEqual(y, x)
		}
	}

	return reflect.DeepEqual(a, b)
}

// strictEqual compares a and b without type coercion, except that all numeric types are treated alike.
func strictEqual(a, b any) bool {
	a, b = normalize(a), normalize(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return reflect.DeepEqual(a, b)
	}
}

// looseLess reports whether a < b, or a <= b if orEqual is set.
// Two strings are compared lexically, anything else numerically. Values without a numeric interpretation
// never compare.
func looseLess(a, b any, orEqual bool) bool {
	if x, ok := normalize(a).(string); ok {
		if y, ok := normalize(b).(string); ok {
			if orEqual {
				return x <= y
			}

			return x < y
		}
	}

	x, ok := toNumber(a)
	if !ok {
		return false
	}
	y, ok := toNumber(b)
	if !ok {
		return false
	}

	if orEqual {
		return x <= y
	}

	return x < y
}

// toString is used for substring checks on string fields.
func toString(v any) string {
	switch v := normalize(v).(type) {
	case nil:
		return "null"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
