package filter

import (
	"reflect"
	"strings"
)

// Record is a map-like Filterable whose fields are accessed by name.
//
// A key containing dots, e.g. "host.name", walks into nested maps unless the record has a field with that
// exact name. Absent fields never cause an error: they are falsy, only loosely equal to nil and never
// compare relationally.
type Record map[string]any

// Lookup returns the value stored under the given key and whether it exists.
func (r Record) Lookup(key string) (any, bool) {
	if v, ok := r[key]; ok {
		return v, true
	}

	return lookupPath(map[string]any(r), key)
}

func (r Record) EvalExists(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

func (r Record) EvalTruthy(key string) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && truthy(v), nil
}

func (r Record) EvalEqual(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok {
		// An absent field loosely equals nil only.
		return normalize(value) == nil, nil
	}

	return looseEqual(v, value), nil
}

func (r Record) EvalStrictEqual(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && strictEqual(v, value), nil
}

func (r Record) EvalLess(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && looseLess(v, value, false), nil
}

func (r Record) EvalLessOrEqual(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && looseLess(v, value, true), nil
}

func (r Record) EvalGreater(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && looseLess(value, v, false), nil
}

func (r Record) EvalGreaterOrEqual(key string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	return ok && looseLess(value, v, true), nil
}

func (r Record) EvalIncludes(key string, element any) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok || !truthy(v) {
		return false, nil
	}

	if s, ok := normalize(v).(string); ok {
		return strings.Contains(s, toString(element)), nil
	}

	list, ok := asList(v)
	if !ok {
		return false, nil
	}

	for _, e := range list {
		if strictEqual(e, element) {
			return true, nil
		}
	}

	return false, nil
}

func (r Record) EvalIncludesWhere(key string, nestedKey string, value any) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok || !truthy(v) {
		return false, nil
	}

	list, ok := asList(v)
	if !ok {
		return false, nil
	}

	for _, e := range list {
		if nested, ok := lookupPath(e, nestedKey); ok && strictEqual(nested, value) {
			return true, nil
		}
	}

	return false, nil
}

func (r Record) EvalIn(key string, values []any) (bool, error) {
	v, ok := r.Lookup(key)
	if !ok || !truthy(v) {
		return false, nil
	}

	for _, candidate := range values {
		if strictEqual(v, candidate) {
			return true, nil
		}
	}

	return false, nil
}

// lookupPath resolves a dotted path starting at the given container.
func lookupPath(container any, path string) (any, bool) {
	current := container
	for _, name := range strings.Split(path, ".") {
		var ok bool
		if current, ok = field(current, name); !ok {
			return nil, false
		}
	}

	return current, true
}

// field returns the named field of a map-like value.
func field(container any, name string) (any, bool) {
	switch m := container.(type) {
	case Record:
		v, ok := m[name]
		return v, ok
	case map[string]any:
		v, ok := m[name]
		return v, ok
	case map[any]any:
		v, ok := m[name]
		return v, ok
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(container)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}

	v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
	if !v.IsValid() {
		return nil, false
	}

	return v.Interface(), true
}

// asList returns the elements of a slice or array value.
func asList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}

	return list, true
}

// Assert interface compliance.
var _ Filterable = Record(nil)
