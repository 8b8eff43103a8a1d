package query

import (
	"errors"
	"fmt"
	"github.com/icinga/icinga-filter/pkg/filter"
)

// Query is a list of steps, each of which translates to one call on a filter.Builder.
// The steps are applied in order, so the usual AND before OR precedence of the builder applies.
type Query []Step

// Step is a single builder call. Exactly one of its fields must be set.
type Step struct {
	Where           *Condition `yaml:"where"`
	OrWhere         *Condition `yaml:"or-where"`
	WhereIncludes   *Includes  `yaml:"where-includes"`
	OrWhereIncludes *Includes  `yaml:"or-where-includes"`
	WhereIn         *In        `yaml:"where-in"`
	OrWhereIn       *In        `yaml:"or-where-in"`
	Group           Query      `yaml:"group"`
	OrGroup         Query      `yaml:"or-group"`
}

// Condition describes a Where or OrWhere call.
//
// Without an operator and a value, it's a truthiness check of the field. Without an operator,
// it's an equality check. Like every literal passed to the builder, the value is compared as a
// string, so `value: 3` compares like "3" and `op: "==", value: null` like "null".
type Condition struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value any    `yaml:"value"`
}

// Includes describes a WhereIncludes or OrWhereIncludes call.
// Either Element or Key and Value are used.
type Includes struct {
	Field   string `yaml:"field"`
	Element any    `yaml:"element"`
	Key     string `yaml:"key"`
	Value   any    `yaml:"value"`
}

// In describes a WhereIn or OrWhereIn call.
type In struct {
	Field  string `yaml:"field"`
	Values []any  `yaml:"values"`
}

// Validate checks the structure of the query, i.e. that every step sets exactly one call, names a field
// and carries the arguments its call can't do without.
func (q Query) Validate() error {
	for i, step := range q {
		if err := step.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	return nil
}

func (s *Step) validate() error {
	var calls []string
	var field string // Groups don't reference a field, but must not be reported as missing one.
	var missing string
	if s.Where != nil {
		calls, field = append(calls, "where"), s.Where.Field
	}
	if s.OrWhere != nil {
		calls, field = append(calls, "or-where"), s.OrWhere.Field
	}
	if s.WhereIncludes != nil {
		calls, field = append(calls, "where-includes"), s.WhereIncludes.Field
		missing = s.WhereIncludes.missing()
	}
	if s.OrWhereIncludes != nil {
		calls, field = append(calls, "or-where-includes"), s.OrWhereIncludes.Field
		missing = s.OrWhereIncludes.missing()
	}
	if s.WhereIn != nil {
		calls, field = append(calls, "where-in"), s.WhereIn.Field
		missing = s.WhereIn.missing()
	}
	if s.OrWhereIn != nil {
		calls, field = append(calls, "or-where-in"), s.OrWhereIn.Field
		missing = s.OrWhereIn.missing()
	}
	if s.Group != nil {
		if err := s.Group.Validate(); err != nil {
			return fmt.Errorf("group: %w", err)
		}

		calls, field = append(calls, "group"), "(group)"
	}
	if s.OrGroup != nil {
		if err := s.OrGroup.Validate(); err != nil {
			return fmt.Errorf("or-group: %w", err)
		}

		calls, field = append(calls, "or-group"), "(group)"
	}

	switch {
	case len(calls) == 0:
		return errors.New("no call specified")
	case len(calls) > 1:
		return fmt.Errorf("exactly one call expected, got %v", calls)
	case field == "":
		return fmt.Errorf("%s: missing field", calls[0])
	case missing != "":
		return fmt.Errorf("%s: missing %s", calls[0], missing)
	}

	return nil
}

// Apply validates the query and replays its steps on the given builder.
// Errors caused by invalid conditions are reported by the builder itself.
func Apply[T filter.Filterable](b *filter.Builder[T], q Query) error {
	if err := q.Validate(); err != nil {
		return err
	}

	apply(b, q)

	return nil
}

func apply[T filter.Filterable](b *filter.Builder[T], q Query) {
	for _, step := range q {
		switch {
		case step.Where != nil:
			b.Where(step.Where.args()...)
		case step.OrWhere != nil:
			b.OrWhere(step.OrWhere.args()...)
		case step.WhereIncludes != nil:
			b.WhereIncludes(step.WhereIncludes.Field, step.WhereIncludes.key(), step.WhereIncludes.value()...)
		case step.OrWhereIncludes != nil:
			b.OrWhereIncludes(step.OrWhereIncludes.Field, step.OrWhereIncludes.key(), step.OrWhereIncludes.value()...)
		case step.WhereIn != nil:
			b.WhereIn(step.WhereIn.Field, step.WhereIn.Values)
		case step.OrWhereIn != nil:
			b.OrWhereIn(step.OrWhereIn.Field, step.OrWhereIn.Values)
		case step.Group != nil:
			group := step.Group
			b.Where(func(g *filter.Builder[T]) { apply(g, group) })
		case step.OrGroup != nil:
			group := step.OrGroup
			b.OrWhere(func(g *filter.Builder[T]) { apply(g, group) })
		}
	}
}

func (c *Condition) args() []any {
	switch {
	case c.Op != "":
		return []any{c.Field, c.Op, c.Value}
	case c.Value != nil:
		return []any{c.Field, c.Value}
	default:
		return []any{c.Field}
	}
}

// missing names what's lacking to build a WhereIncludes call, if anything.
func (i *Includes) missing() string {
	if i.Element == nil && i.Key == "" {
		return "element or key"
	}

	return ""
}

func (i *Includes) key() any {
	if i.Key != "" {
		return i.Key
	}

	return i.Element
}

func (i *Includes) value() []any {
	if i.Key != "" {
		return []any{i.Value}
	}

	return nil
}

func (i *In) missing() string {
	if i.Values == nil {
		return "values"
	}

	return ""
}
