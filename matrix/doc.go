// SPDX-License-Identifier: MIT

// Package matrix is the distance model of the tour engine.
//
// It provides a row-major Dense matrix with safe accessors, a bulk builder
// for pairwise Euclidean distances over structure-of-arrays coordinates and a
// validator for distance matrices supplied by callers.
//
// Guarantees:
//   - At/Set never panic on bad indices; they return ErrOutOfRange wrapped with
//     the call-site coordinates.
//   - NewEuclidean produces a bit-exact symmetric matrix with a zero diagonal.
//   - Loop orders are fixed; no map iteration, no randomness.
//
// Complexity quicksheet:
//   - NewEuclidean: O(n²) time and space; At/Set: O(1); ValidateDistance: O(n²).
package matrix
