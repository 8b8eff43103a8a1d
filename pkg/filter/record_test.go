package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type label string

func TestLooseEqual(t *testing.T) {
	t.Parallel()

	testdata := []struct {
		a, b     any
		expected bool
	}{
		{nil, nil, true},
		{nil, 0, false},
		{"", nil, false},
		{"open", "open", true},
		{"open", "Open", false},
		{label("open"), "open", true},
		{1, "1", true},
		{int8(1), 1.0, true},
		{uint(7), "7.0", true},
		{"1e3", 1000, true},
		{" 42 ", 42, true},
		{"", 0, true},
		{"abc", 0, false},
		{true, 1, true},
		{true, "1", true},
		{false, "", true},
		{false, "false", false},
		{math.NaN(), math.NaN(), false},
		{[]any{"a"}, []any{"a"}, true},
		{map[string]any{"a": 1}, map[string]any{"a": 2}, false},
	}

	for _, td := range testdata {
		assert.Equal(t, td.expected, looseEqual(td.a, td.b), "%#v == %#v", td.a, td.b)
		assert.Equal(t, td.expected, looseEqual(td.b, td.a), "%#v == %#v", td.b, td.a)
	}
}

func TestStrictEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, strictEqual(1, 1.0))
	assert.True(t, strictEqual(int64(3), uint16(3)))
	assert.True(t, strictEqual("a", label("a")))
	assert.True(t, strictEqual(nil, nil))
	assert.False(t, strictEqual(1, "1"))
	assert.False(t, strictEqual(true, 1))
	assert.False(t, strictEqual(nil, ""))
	assert.False(t, strictEqual("alice", "Alice"))
}

func TestLooseLess(t *testing.T) {
	t.Parallel()

	testdata := []struct {
		a, b    any
		less    bool
		lessOrE bool
	}{
		{1, 2, true, true},
		{2, 2, false, true},
		{"10", "9", true, true},
		{"10", 9, false, false},
		{10, "9", false, false},
		{"b", "a", false, false},
		{"abc", 1, false, false},
		{nil, 1, true, true},
		{false, true, true, true},
		{[]any{1}, 2, false, false},
		{math.NaN(), 1, false, false},
	}

	for _, td := range testdata {
		assert.Equal(t, td.less, looseLess(td.a, td.b, false), "%#v < %#v", td.a, td.b)
		assert.Equal(t, td.lessOrE, looseLess(td.a, td.b, true), "%#v <= %#v", td.a, td.b)
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	for _, v := range []any{nil, false, 0, 0.0, uint8(0), "", math.NaN(), (*int)(nil)} {
		assert.False(t, truthy(v), "%#v should be falsy", v)
	}

	for _, v := range []any{true, 1, -1, "0", "false", []any{}, map[string]any{}, struct{}{}} {
		assert.True(t, truthy(v), "%#v should be truthy", v)
	}
}

func TestRecord(t *testing.T) {
	t.Parallel()

	r := Record{
		"host":      map[string]any{"name": "web-1", "vars": map[string]string{"os": "linux"}},
		"host.name": "literal",
		"services":  []map[string]any{{"name": "http", "state": 0}, {"name": "ssh", "state": 2}},
		"null":      nil,
	}

	t.Run("Lookup", func(t *testing.T) {
		v, ok := r.Lookup("host.name")
		assert.True(t, ok)
		assert.Equal(t, "literal", v, "an exact field name takes precedence over a path")

		v, ok = r.Lookup("host.vars.os")
		assert.True(t, ok)
		assert.Equal(t, "linux", v)

		_, ok = r.Lookup("host.vars.arch")
		assert.False(t, ok)

		_, ok = r.Lookup("host.name.first")
		assert.False(t, ok)

		assert.True(t, r.EvalExists("null"))
		assert.False(t, r.EvalExists("missing"))
	})

	t.Run("AbsentAndNil", func(t *testing.T) {
		matched, _ := r.EvalEqual("missing", nil)
		assert.True(t, matched, "absent loosely equals nil")

		matched, _ = r.EvalEqual("null", nil)
		assert.True(t, matched)

		matched, _ = r.EvalStrictEqual("missing", nil)
		assert.False(t, matched, "absent never strictly equals anything")

		matched, _ = r.EvalLessOrEqual("null", 0)
		assert.True(t, matched, "nil compares as 0")

		matched, _ = r.EvalGreaterOrEqual("missing", 0)
		assert.False(t, matched, "absent never compares")

		matched, _ = r.EvalLess("missing", 0)
		assert.False(t, matched, "absent never compares")
	})

	t.Run("IncludesWhere", func(t *testing.T) {
		matched, _ := r.EvalIncludesWhere("services", "state", 2)
		assert.True(t, matched)

		matched, _ = r.EvalIncludesWhere("services", "state", "2")
		assert.False(t, matched, "nested values are compared strictly")

		matched, _ = r.EvalIncludesWhere("services", "missing", nil)
		assert.False(t, matched)

		matched, _ = r.EvalIncludesWhere("host", "name", "web-1")
		assert.False(t, matched, "a map is not a collection")
	})

	t.Run("Includes", func(t *testing.T) {
		matched, _ := r.EvalIncludes("host.name", "lit")
		assert.True(t, matched, "strings are searched for substrings")

		matched, _ = r.EvalIncludes("null", nil)
		assert.False(t, matched)
	})
}
