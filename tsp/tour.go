// Package tsp - tour utilities shared by construction and improvement.
//
// A tour is a permutation of 0..n-1 stored in its open form (length n).
// Whether the return edge counts is a property of how length is measured
// (see cost.go), never of the representation.
//
// Design:
//   - No logging, no panics on user input; only sentinel errors from types.go.
//   - O(n) time for every helper; in-place mutations avoid extra allocations.
package tsp

import "fmt"

// ValidatePermutation checks that tour is a permutation of {0..n-1}.
//
// Errors: ErrDimensionMismatch when len(tour) != n, ErrNotPermutation for an
// out-of-range or duplicated index.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(tour []int, n int) error {
	if len(tour) != n {
		return fmt.Errorf("%w: len(tour)=%d, n=%d", ErrDimensionMismatch, len(tour), n)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return fmt.Errorf("%w: tour[%d]=%d out of range", ErrNotPermutation, i, v)
		}
		if seen[v] {
			return fmt.Errorf("%w: tour[%d]=%d repeated", ErrNotPermutation, i, v)
		}
		seen[v] = true
	}

	return nil
}

// CopyTour returns an independent copy of tour (nil stays nil).
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)

	return out
}

// ReverseTour returns a reversed copy of tour.
// A reversed tour has the same open and closed length.
func ReverseTour(tour []int) []int {
	out := CopyTour(tour)
	reverseSegment(out, 0, len(out)-1)

	return out
}

// reverseSegment reverses tour[i..k] (inclusive) in place. This is the 2-opt move.
// Indices outside the slice are a programming error and are not checked here.
//
// Complexity: O(k-i) time, O(1) space.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}
