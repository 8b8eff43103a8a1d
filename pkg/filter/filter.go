package filter

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCondition is returned when a condition was requested with an unsupported argument shape.
	ErrInvalidCondition = errors.New("invalid condition")

	// ErrInvalidOperator is returned for comparison operators other than the supported CompOperator.
	ErrInvalidOperator = fmt.Errorf("%w: invalid comparison operator provided", ErrInvalidCondition)
)

// Apply evaluates the filter against every filterable in order and returns the ones it matches.
//
// The input slice is never modified, the result preserves the input order and is never nil.
// The first evaluation error aborts and is returned together with the index of the offending filterable.
func Apply[T Filterable](f Filter, filterables []T) ([]T, error) {
	matches := make([]T, 0)
	for i, filterable := range filterables {
		matched, err := f.Eval(filterable)
		if err != nil {
			return nil, fmt.Errorf("cannot evaluate filter %s against record #%d: %w", f, i, err)
		}

		if matched {
			matches = append(matches, filterable)
		}
	}

	return matches, nil
}
