package filter

// Filterable is implemented by every value a Filter can be evaluated against.
//
// The key passed to each method is the column a leaf references. Implementations decide how a key is
// resolved; Record supports dotted paths into nested maps.
type Filterable interface {
	// EvalExists reports whether the key is present at all.
	EvalExists(key string) bool
	EvalTruthy(key string) (bool, error)
	EvalEqual(key string, value any) (bool, error)
	EvalStrictEqual(key string, value any) (bool, error)
	EvalLess(key string, value any) (bool, error)
	EvalLessOrEqual(key string, value any) (bool, error)
	EvalGreater(key string, value any) (bool, error)
	EvalGreaterOrEqual(key string, value any) (bool, error)
	// EvalIncludes reports whether the collection stored at key contains element.
	EvalIncludes(key string, element any) (bool, error)
	// EvalIncludesWhere reports whether any element of the collection stored at key has nestedKey set to value.
	EvalIncludesWhere(key string, nestedKey string, value any) (bool, error)
	// EvalIn reports whether the value stored at key is one of values.
	EvalIn(key string, values []any) (bool, error)
}

// Filter is implemented by every filter chains and filter conditions.
type Filter interface {
	Eval(filterable Filterable) (bool, error)

	// String renders the filter as a fully parenthesized formula. It's only meant for logging.
	String() string
}
