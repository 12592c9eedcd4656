// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with call-site context
// via %w). Tests and callers match them with errors.Is.

package matrix

import "errors"

var (
	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// At/Set return it instead of panicking; it is never silently clamped.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrInvalidDimensions indicates that requested matrix dimensions are negative.
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrDimensionMismatch indicates incompatible operand lengths
	// (e.g. len(xs) != len(ys) in NewEuclidean).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that m[i][j] and m[j][i] differ beyond tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tolerance")

	// ErrNonZeroDiagonal signals a diagonal entry that is not ~0.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero within tolerance")

	// ErrNegative signals a negative distance.
	ErrNegative = errors.New("matrix: negative distance")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
