package filter

import (
	"fmt"
	"go.uber.org/zap"
	"reflect"
	"slices"
)

// Builder accumulates chained Where calls into a single Filter and applies it to a fixed list of records.
//
// The accumulated expression is a disjunction of conjunctions: Where adds to the current conjunction,
// OrWhere starts a new one. Thus, AND binds tighter than OR and groups built with Where(func(*Builder[T]))
// are needed to express anything else, e.g. (a OR b) AND c.
//
// Every literal passed to the builder is compared as a string: Where("code", ">", 18) compares like
// code > "18", i.e. lexically against string fields and numerically against numeric ones. Use the
// constructors of the individual filters, e.g. NewCondition, to compare against typed values instead.
//
// A Builder is meant to be used by a single goroutine for a single query. Invalid arguments don't
// panic, the first one is remembered and returned by Filter, Matches and Get.
type Builder[T Filterable] struct {
	records []T
	logger  *zap.SugaredLogger

	terms [][]Filter // Each term is a conjunction, the terms are OR-ed.
	err   error
}

type options struct {
	logger *zap.SugaredLogger
}

// Option configures a Builder.
type Option func(o *options)

// WithLogger sets the logger used to log the evaluated filter at debug level.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Builder bound to the given records.
func New[T Filterable](records []T, opts ...Option) *Builder[T] {
	o := options{logger: zap.NewNop().Sugar()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Builder[T]{records: records, logger: o.logger}
}

// Where adds a condition joined by AND to the expression. Supported forms are:
//
//	Where(func(*Builder[T]))        // group, also accepts func(*Builder[T]) *Builder[T]
//	Where(field)                    // field is truthy
//	Where(field, value)             // field == value
//	Where(field, operator, value)   // field <operator> value, see CompOperator
func (b *Builder[T]) Where(args ...any) *Builder[T] {
	b.add(b.condition("Where", args))
	return b
}

// OrWhere is like Where but joins the condition by OR.
func (b *Builder[T]) OrWhere(args ...any) *Builder[T] {
	b.or()
	b.add(b.condition("OrWhere", args))
	return b
}

// WhereIncludes adds a condition joined by AND that matches when the collection stored in listField
// contains key. If a value is given, it instead matches when any element of the collection has its key
// field strictly equal to the value. Records without listField never match.
func (b *Builder[T]) WhereIncludes(listField string, key any, value ...any) *Builder[T] {
	b.add(b.includes("WhereIncludes", listField, key, value))
	return b
}

// OrWhereIncludes is like WhereIncludes but joins the condition by OR.
func (b *Builder[T]) OrWhereIncludes(listField string, key any, value ...any) *Builder[T] {
	b.or()
	b.add(b.includes("OrWhereIncludes", listField, key, value))
	return b
}

// WhereIn adds a condition joined by AND that matches when the value of field is one of the elements of
// list, which must be a slice or an array. Records without field never match.
func (b *Builder[T]) WhereIn(field string, list any) *Builder[T] {
	b.add(b.in("WhereIn", field, list))
	return b
}

// OrWhereIn is like WhereIn but joins the condition by OR.
func (b *Builder[T]) OrWhereIn(field string, list any) *Builder[T] {
	b.or()
	b.add(b.in("OrWhereIn", field, list))
	return b
}

// Filter returns the accumulated expression with empty groups removed.
// An empty expression matches everything.
func (b *Builder[T]) Filter() (Filter, error) {
	if b.err != nil {
		return nil, b.err
	}

	if f := b.expression(); f != nil {
		return f, nil
	}

	return &Chain{op: All}, nil
}

// Matches evaluates the accumulated expression against a single filterable.
func (b *Builder[T]) Matches(filterable T) (bool, error) {
	f, err := b.Filter()
	if err != nil {
		return false, err
	}

	return f.Eval(filterable)
}

// Get evaluates the accumulated expression against all records and returns the matching ones in input order.
// It may be called repeatedly and always yields the same result for the same records.
func (b *Builder[T]) Get() ([]T, error) {
	f, err := b.Filter()
	if err != nil {
		return nil, err
	}

	b.logger.Debugw("Evaluating filter", zap.Stringer("filter", f), zap.Int("records", len(b.records)))

	matches, err := Apply(f, b.records)
	if err != nil {
		return nil, err
	}

	b.logger.Debugw("Evaluated filter", zap.Int("records", len(b.records)), zap.Int("matches", len(matches)))

	return matches, nil
}

// String renders the accumulated expression, or an empty string if nothing was added yet.
func (b *Builder[T]) String() string {
	if f := b.expression(); f != nil {
		return f.String()
	}

	return ""
}

// condition builds the leaf or group requested by the arguments of Where and OrWhere.
// A nil Filter without an error means there is nothing to add.
func (b *Builder[T]) condition(method string, args []any) (Filter, error) {
	if len(args) == 0 || len(args) > 3 {
		return nil, fmt.Errorf("%w: %s called with %d arguments", ErrInvalidCondition, method, len(args))
	}

	switch fn := args[0].(type) {
	case func(*Builder[T]):
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %s called with a group and %d more arguments", ErrInvalidCondition, method, len(args)-1)
		}

		return b.group(fn)
	case func(*Builder[T]) *Builder[T]:
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %s called with a group and %d more arguments", ErrInvalidCondition, method, len(args)-1)
		}

		return b.group(func(sub *Builder[T]) { fn(sub) })
	}

	field, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s expects a field name or a group, got %T", ErrInvalidCondition, method, args[0])
	}

	switch len(args) {
	case 1:
		return NewTruthy(field), nil
	case 2:
		return NewCondition(field, Equal, literal(args[1]))
	default:
		var op CompOperator
		switch v := args[1].(type) {
		case CompOperator:
			op = v
		case string:
			op = CompOperator(v)
		default:
			return nil, fmt.Errorf("%w: %s expects an operator, got %T", ErrInvalidCondition, method, args[1])
		}

		return NewCondition(field, op, literal(args[2]))
	}
}

// group runs fn against a fresh Builder and returns what it accumulated as a single unit.
func (b *Builder[T]) group(fn func(*Builder[T])) (Filter, error) {
	sub := &Builder[T]{logger: b.logger}
	fn(sub)
	if sub.err != nil {
		return nil, sub.err
	}

	f := sub.expression()
	if f == nil {
		b.logger.Debug("Skipping empty filter group")
	}

	return f, nil
}

func (b *Builder[T]) includes(method, listField string, key any, value []any) (Filter, error) {
	switch len(value) {
	case 0:
		return NewIncludes(listField, literal(key)), nil
	case 1:
		nestedKey, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a string key when a value is given, got %T", ErrInvalidCondition, method, key)
		}

		return NewIncludesWhere(listField, nestedKey, literal(value[0])), nil
	default:
		return nil, fmt.Errorf("%w: %s called with %d values", ErrInvalidCondition, method, len(value))
	}
}

func (b *Builder[T]) in(method, field string, list any) (Filter, error) {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s expects a list, got %T", ErrInvalidCondition, method, list)
	}

	values := make([]any, rv.Len())
	for i := range values {
		values[i] = literal(rv.Index(i).Interface())
	}

	return NewIn(field, values), nil
}

// literal converts a value passed to the builder into the string it is compared against.
// Numbers are formatted in their shortest form and nil becomes "null".
func literal(v any) string {
	return toString(v)
}

// add appends f to the current conjunction, i.e. joins it by AND to whatever precedes it.
func (b *Builder[T]) add(f Filter, err error) {
	if err != nil {
		if b.err == nil {
			b.err = err
		}

		return
	}

	if f == nil {
		return
	}

	if len(b.terms) == 0 {
		b.terms = append(b.terms, nil)
	}

	last := len(b.terms) - 1
	b.terms[last] = append(b.terms[last], f)
}

// or starts a new conjunction unless the current one is still empty.
// This way, neither a leading OR nor an OR followed by an empty group leaves a dangling operator behind.
func (b *Builder[T]) or() {
	if n := len(b.terms); n > 0 && len(b.terms[n-1]) > 0 {
		b.terms = append(b.terms, nil)
	}
}

// expression assembles the accumulated terms into a Filter, dropping empty terms and unwrapping
// single element chains. Returns nil if nothing was added.
func (b *Builder[T]) expression() Filter {
	var disjunction []Filter
	for _, term := range b.terms {
		switch len(term) {
		case 0:
			continue
		case 1:
			disjunction = append(disjunction, term[0])
		default:
			disjunction = append(disjunction, &Chain{op: All, rules: slices.Clone(term)})
		}
	}

	switch len(disjunction) {
	case 0:
		return nil
	case 1:
		return disjunction[0]
	default:
		return &Chain{op: Any, rules: disjunction}
	}
}
