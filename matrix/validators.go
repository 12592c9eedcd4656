// SPDX-License-Identifier: MIT

// Package matrix - validation of caller-supplied distance matrices.

package matrix

import "math"

// DefaultTolerance is the structural tolerance used for symmetry and diagonal checks.
const DefaultTolerance = 1e-6

// ValidateDistance checks that m is a usable distance matrix:
// square, finite, non-negative, zero diagonal and symmetric within tol.
// It returns the matrix order on success.
//
// Error priority: nil -> shape -> NaN/Inf -> negative -> diagonal -> symmetry.
//
// Complexity: O(n²).
func ValidateDistance(m Matrix, tol float64) (int, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	n := m.Rows()
	if n != m.Cols() {
		return 0, ErrNonSquare
	}
	if tol < 0 || math.IsNaN(tol) {
		tol = 0
	}

	if d, ok := m.(*Dense); ok {
		return n, validateDenseDistance(d.data, n, tol)
	}

	var (
		i, j     int
		aij, aji float64
		err      error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if aij, err = m.At(i, j); err != nil {
				return 0, err
			}
			if aji, err = m.At(j, i); err != nil {
				return 0, err
			}
			if err = checkEntry(i, j, aij, aji, tol); err != nil {
				return 0, err
			}
		}
	}

	return n, nil
}

// validateDenseDistance is the flat-buffer fast path of ValidateDistance.
func validateDenseDistance(data []float64, n int, tol float64) error {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err := checkEntry(i, j, data[i*n+j], data[j*n+i], tol); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkEntry(i, j int, aij, aji, tol float64) error {
	if math.IsNaN(aij) || math.IsInf(aij, 0) {
		return denseErrorf(ctxAt, i, j, ErrNaNInf)
	}
	if aij < 0 {
		return denseErrorf(ctxAt, i, j, ErrNegative)
	}
	if i == j {
		if aij > tol {
			return denseErrorf(ctxAt, i, j, ErrNonZeroDiagonal)
		}
		return nil
	}
	if math.Abs(aij-aji) > tol {
		return denseErrorf(ctxAt, i, j, ErrAsymmetry)
	}

	return nil
}
