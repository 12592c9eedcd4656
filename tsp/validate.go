// Package tsp - validation of options and start index.
//
// Everything here runs before any heuristic work, so a malformed configuration
// fails fast and leaves no partial state behind.
package tsp

import (
	"fmt"
	"math"
)

// Validate checks Options without reference to a point set.
//
// Errors: ErrUnknownMethod, ErrUnknownMetric, ErrInvalidBudget.
//
// Complexity: O(1).
func (o Options) Validate() error {
	if !o.Method.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, string(o.Method))
	}
	if !o.Metric.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMetric, int(o.Metric))
	}
	if o.MaxIterations < 0 {
		return fmt.Errorf("%w: max iterations %d", ErrInvalidBudget, o.MaxIterations)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: time limit %s", ErrInvalidBudget, o.TimeLimit)
	}
	if o.Eps < 0 || math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0) {
		return fmt.Errorf("%w: eps %g", ErrInvalidBudget, o.Eps)
	}
	if o.ProgressInterval < 0 {
		return fmt.Errorf("%w: progress interval %s", ErrInvalidBudget, o.ProgressInterval)
	}

	return nil
}

// validateStart verifies start∈[0..n-1]. An empty set only accepts start 0.
func validateStart(n, start int) error {
	if n == 0 && start == 0 {
		return nil
	}
	if start < 0 || start >= n {
		return fmt.Errorf("%w: start=%d, n=%d", ErrStartOutOfRange, start, n)
	}

	return nil
}
