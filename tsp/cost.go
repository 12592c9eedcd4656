// Package tsp - length utilities.
//
// Design:
//   - Strict index checks: an index outside the matrix is an IndexError-kind
//     failure (matrix.ErrOutOfRange), never clamped.
//   - Compensated (Neumaier) summation, then rounding to 1e-9, so that a tour and
//     its reverse report identical lengths and results are stable across runs.
package tsp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/tourlab/matrix"
)

// roundScale controls final length stabilisation precision (1e-9).
const roundScale = 1e9

// TourLength sums dist(tour[k], tour[k+1]) over consecutive pairs and, when
// closed is true, adds the wrap-around edge dist(tour[n-1], tour[0]).
// Tours of length ≤ 1 have length 0.
//
// Errors: ErrDimensionMismatch for a non-square matrix; a wrapped
// matrix.ErrOutOfRange for any tour entry outside [0..n-1].
//
// Complexity: O(len(tour)).
func TourLength(dist *matrix.Dense, tour []int, closed bool) (float64, error) {
	if err := checkIndices(dist, tour); err != nil {
		return 0, err
	}

	return round1e9(sumLength(dist.Raw(), dist.Rows(), tour, closed)), nil
}

// Lengths returns both the open and the closed length of tour.
//
// Complexity: O(len(tour)).
func Lengths(dist *matrix.Dense, tour []int) (open, closed float64, err error) {
	if err = checkIndices(dist, tour); err != nil {
		return 0, 0, err
	}
	var (
		w = dist.Raw()
		n = dist.Rows()
	)
	open = sumLength(w, n, tour, false)
	closed = open
	if len(tour) > 1 {
		closed = sumLength(w, n, tour, true)
	}

	return round1e9(open), round1e9(closed), nil
}

// EdgeLengths returns the len(tour)-1 consecutive-pair distances of tour
// (the per-edge listing of an open route). Empty for tours shorter than 2.
//
// Complexity: O(len(tour)).
func EdgeLengths(dist *matrix.Dense, tour []int) ([]float64, error) {
	if err := checkIndices(dist, tour); err != nil {
		return nil, err
	}
	if len(tour) < 2 {
		return []float64{}, nil
	}
	var (
		w   = dist.Raw()
		n   = dist.Rows()
		out = make([]float64, len(tour)-1)
		k   int
	)
	for k = 0; k+1 < len(tour); k++ {
		out[k] = w[tour[k]*n+tour[k+1]]
	}

	return out, nil
}

// checkIndices validates shape and every tour entry against dist.
func checkIndices(dist *matrix.Dense, tour []int) error {
	if dist == nil || dist.Rows() != dist.Cols() {
		return ErrDimensionMismatch
	}
	n := dist.Rows()
	for k, v := range tour {
		if v < 0 || v >= n {
			return fmt.Errorf("tsp: tour[%d]=%d: %w", k, v, matrix.ErrOutOfRange)
		}
	}

	return nil
}

// sumLength is the unchecked, unrounded kernel behind TourLength/Lengths.
// Neumaier summation keeps forward and reverse sums within rounding distance.
func sumLength(w []float64, n int, tour []int, closed bool) float64 {
	if len(tour) < 2 {
		return 0
	}
	var (
		sum, c float64
		x, t   float64
		k      int
		last   = len(tour) - 1
	)
	add := func(v float64) {
		t = sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}
	for k = 0; k < last; k++ {
		x = w[tour[k]*n+tour[k+1]]
		add(x)
	}
	if closed {
		add(w[tour[last]*n+tour[0]])
	}

	return sum + c
}

// round1e9 returns x rounded to 1e-9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
