// SPDX-License-Identifier: MIT

// Package matrix - bulk pairwise Euclidean distances.
//
// NewEuclidean is the dominant precomputation of a solve: n² square roots for
// n≈6000 points. The kernel works row by row over structure-of-arrays
// coordinates so that the inner loop is a single contiguous pass with no
// bounds checks, no interface calls and sequential writes.
//
// Exactness:
//   - Entry (i,j) is sqrt(dx*dx + dy*dy) with dx = x_i - x_j, dy = y_i - y_j.
//   - IEEE subtraction is exactly antisymmetric, so (i,j) and (j,i) are
//     bit-identical and the diagonal is exactly 0.

package matrix

import "math"

// Euclidean returns the planar distance between (x1,y1) and (x2,y2).
func Euclidean(x1, y1, x2, y2 float64) float64 {
	dx := x1 - x2
	dy := y1 - y2

	return math.Sqrt(dx*dx + dy*dy)
}

// NewEuclidean builds the n×n distance matrix for coordinates xs, ys.
//
// Errors:
//   - ErrDimensionMismatch if len(xs) != len(ys).
//   - ErrNaNInf if any coordinate is not finite.
//
// Complexity: O(n²) time and space.
func NewEuclidean(xs, ys []float64) (*Dense, error) {
	if len(xs) != len(ys) {
		return nil, ErrDimensionMismatch
	}
	n := len(xs)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return nil, ErrNaNInf
		}
	}

	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		euclidRow(m.data[i*n:(i+1)*n], xs, ys, xs[i], ys[i])
	}

	return m, nil
}

// euclidRow fills dst[j] = |(x,y) - (xs[j],ys[j])| for every j.
// The reslices let the compiler drop per-element bounds checks.
func euclidRow(dst, xs, ys []float64, x, y float64) {
	ys = ys[:len(xs)]
	dst = dst[:len(xs)]
	for j := range xs {
		dx := x - xs[j]
		dy := y - ys[j]
		dst[j] = math.Sqrt(dx*dx + dy*dy)
	}
}
