package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// LogicalOp is a type used for grouping the logical operators of a filter chain.
type LogicalOp string

const (
	// All represents a filter chain type that matches when all of its ruleset matches.
	All LogicalOp = "&&"
	// Any represents a filter chain type that matches when at least one of its ruleset matches.
	Any LogicalOp = "||"
)

// Chain is a filter type that wraps other filter rules and itself.
// Therefore, it implements the Filter interface to allow it to be part of its ruleset.
type Chain struct {
	op    LogicalOp // The filter chain operator to be used to evaluate the rules
	rules []Filter
}

// NewChain returns a new Chain of the given operator wrapping the given rules.
func NewChain(op LogicalOp, rules ...Filter) (*Chain, error) {
	switch op {
	case All, Any:
		return &Chain{op: op, rules: rules}, nil
	default:
		return nil, fmt.Errorf("invalid logical operator provided: %q", op)
	}
}

// Eval evaluates the filter rule sets recursively based on their operator type.
//
// Rules are evaluated from left to right and the evaluation stops as soon as the result is known.
// An empty All chain matches everything, an empty Any chain matches nothing.
func (c *Chain) Eval(filterable Filterable) (bool, error) {
	switch c.op {
	case All:
		for _, rule := range c.rules {
			matched, err := rule.Eval(filterable)
			if err != nil {
				return false, err
			}

			if !matched {
				return false, nil
			}
		}

		return true, nil
	case Any:
		for _, rule := range c.rules {
			matched, err := rule.Eval(filterable)
			if err != nil {
				return false, err
			}

			if matched {
				return true, nil
			}
		}

		return false, nil
	default:
		return false, fmt.Errorf("invalid logical operator provided: %q", c.op)
	}
}

// Op returns the logical operator of this Chain.
func (c *Chain) Op() LogicalOp {
	return c.op
}

// Rules returns the rules wrapped by this Chain.
func (c *Chain) Rules() []Filter {
	return c.rules
}

func (c *Chain) String() string {
	parts := make([]string, 0, len(c.rules))
	for _, rule := range c.rules {
		parts = append(parts, rule.String())
	}

	return "(" + strings.Join(parts, " "+string(c.op)+" ") + ")"
}

// CompOperator is a type used for grouping the individual comparison operators of a condition.
type CompOperator string

// List of the supported comparison operators.
const (
	Equal            CompOperator = "=="
	UnEqual          CompOperator = "!="
	StrictEqual      CompOperator = "==="
	StrictUnEqual    CompOperator = "!=="
	LessThan         CompOperator = "<"
	LessThanEqual    CompOperator = "<="
	GreaterThan      CompOperator = ">"
	GreaterThanEqual CompOperator = ">="
)

// ParseCompOperator returns the CompOperator matching the given string.
func ParseCompOperator(op string) (CompOperator, error) {
	switch c := CompOperator(op); c {
	case Equal, UnEqual, StrictEqual, StrictUnEqual, LessThan, LessThanEqual, GreaterThan, GreaterThanEqual:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
}

// Condition represents a single comparison of a column against a literal value.
// All it's fields are read-only and aren't supposed to change at runtime. For read access, you can
// check the available exported methods.
type Condition struct {
	op     CompOperator
	column string
	value  any
}

// NewCondition returns a new Condition comparing the column against the value using the given operator.
func NewCondition(column string, op CompOperator, value any) (*Condition, error) {
	if _, err := ParseCompOperator(string(op)); err != nil {
		return nil, err
	}

	return &Condition{op: op, column: column, value: value}, nil
}

// Eval evaluates this Condition based on its operator.
// Returns true when the filter evaluates to true false otherwise.
//
// An absent column is loosely equal to nil only, never strictly equal to anything and never
// compares relationally. The filterable isn't asked for its value in that case.
func (c *Condition) Eval(filterable Filterable) (bool, error) {
	if !filterable.EvalExists(c.column) {
		switch c.op {
		case Equal:
			return normalize(c.value) == nil, nil
		case UnEqual:
			return normalize(c.value) != nil, nil
		case StrictUnEqual:
			return true, nil
		case StrictEqual, LessThan, LessThanEqual, GreaterThan, GreaterThanEqual:
			return false, nil
		default:
			return false, fmt.Errorf("%w: %q", ErrInvalidOperator, c.op)
		}
	}

	switch c.op {
	case Equal:
		return filterable.EvalEqual(c.column, c.value)
	case UnEqual:
		match, err := filterable.EvalEqual(c.column, c.value)
		if err != nil {
			return false, err
		}

		return !match, nil
	case StrictEqual:
		return filterable.EvalStrictEqual(c.column, c.value)
	case StrictUnEqual:
		match, err := filterable.EvalStrictEqual(c.column, c.value)
		if err != nil {
			return false, err
		}

		return !match, nil
	case LessThan:
		return filterable.EvalLess(c.column, c.value)
	case LessThanEqual:
		return filterable.EvalLessOrEqual(c.column, c.value)
	case GreaterThan:
		return filterable.EvalGreater(c.column, c.value)
	case GreaterThanEqual:
		return filterable.EvalGreaterOrEqual(c.column, c.value)
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, c.op)
	}
}

// Column returns the column of this Condition.
func (c *Condition) Column() string {
	return c.column
}

// Op returns the comparison operator of this Condition.
func (c *Condition) Op() CompOperator {
	return c.op
}

// Value returns the value of this Condition.
func (c *Condition) Value() any {
	return c.value
}

func (c *Condition) String() string {
	return fmt.Sprintf("(%s %s %s)", c.column, c.op, formatValue(c.value))
}

// Truthy matches when the value of its column is truthy.
type Truthy struct {
	column string
}

func NewTruthy(column string) *Truthy {
	return &Truthy{column: column}
}

func (t *Truthy) Eval(filterable Filterable) (bool, error) {
	if !filterable.EvalExists(t.column) {
		return false, nil
	}

	return filterable.EvalTruthy(t.column)
}

func (t *Truthy) String() string {
	return "(" + t.column + ")"
}

// Includes matches when the collection stored in its column contains the element.
type Includes struct {
	column  string
	element any
}

func NewIncludes(column string, element any) *Includes {
	return &Includes{column: column, element: element}
}

func (i *Includes) Eval(filterable Filterable) (bool, error) {
	if !filterable.EvalExists(i.column) {
		return false, nil
	}

	return filterable.EvalIncludes(i.column, i.element)
}

func (i *Includes) String() string {
	return fmt.Sprintf("(%s includes %s)", i.column, formatValue(i.element))
}

// IncludesWhere matches when at least one element of the collection stored in its column
// has its key field strictly equal to the value.
type IncludesWhere struct {
	column string
	key    string
	value  any
}

func NewIncludesWhere(column, key string, value any) *IncludesWhere {
	return &IncludesWhere{column: column, key: key, value: value}
}

func (i *IncludesWhere) Eval(filterable Filterable) (bool, error) {
	if !filterable.EvalExists(i.column) {
		return false, nil
	}

	return filterable.EvalIncludesWhere(i.column, i.key, i.value)
}

func (i *IncludesWhere) String() string {
	return fmt.Sprintf("(%s some %s === %s)", i.column, i.key, formatValue(i.value))
}

// In matches when the value of its column is one of a fixed list of values.
type In struct {
	column string
	values []any
}

func NewIn(column string, values []any) *In {
	return &In{column: column, values: values}
}

func (i *In) Eval(filterable Filterable) (bool, error) {
	if !filterable.EvalExists(i.column) {
		return false, nil
	}

	return filterable.EvalIn(i.column, i.values)
}

func (i *In) String() string {
	values := make([]string, 0, len(i.values))
	for _, v := range i.values {
		values = append(values, formatValue(v))
	}

	return fmt.Sprintf("(%s in [%s])", i.column, strings.Join(values, ", "))
}

// formatValue renders a literal for String. Strings are quoted so that the rendered formula is unambiguous.
func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}

	return fmt.Sprintf("%v", v)
}

// Assert interface compliance.
var (
	_ Filter = (*Chain)(nil)
	_ Filter = (*Condition)(nil)
	_ Filter = (*Truthy)(nil)
	_ Filter = (*Includes)(nil)
	_ Filter = (*IncludesWhere)(nil)
	_ Filter = (*In)(nil)
)
