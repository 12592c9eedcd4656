// Package tsp_test provides helpers shared across *_test.go files in this package.
package tsp_test

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/matrix"
	"github.com/katalvlaran/tourlab/tsp"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	// epsLen is the tolerance for comparing rounded lengths computed along different paths.
	epsLen = 1e-6

	// seedDet seeds every pseudo-random instance.
	seedDet = uint64(42)

	// nMedium is large enough that nearest-neighbour is never 2-opt optimal.
	nMedium = 200
)

// -----------------------------------------------------------------------------
// Instances
// -----------------------------------------------------------------------------

// squareCenter is the unit square plus its centre.
func squareCenter() []geo.Point {
	return []geo.Point{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 0, Y: 1},
		{ID: 2, X: 1, Y: 1},
		{ID: 3, X: 1, Y: 0},
		{ID: 4, X: 0.5, Y: 0.5},
	}
}

// unitSquare is the four corners in counter-clockwise order.
func unitSquare() []geo.Point {
	return []geo.Point{
		{ID: 0, X: 0, Y: 0},
		{ID: 1, X: 1, Y: 0},
		{ID: 2, X: 1, Y: 1},
		{ID: 3, X: 0, Y: 1},
	}
}

// randomPoints returns n points uniformly drawn from [0,1000)² with a fixed seed.
func randomPoints(n int, seed uint64) []geo.Point {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pts := make([]geo.Point, n)
	var i int
	for i = 0; i < n; i++ {
		pts[i] = geo.Point{ID: int64(i + 1), X: r.Float64() * 1000, Y: r.Float64() * 1000}
	}

	return pts
}

// mustDist builds the Euclidean matrix of pts or fails the test.
func mustDist(t testing.TB, pts []geo.Point) *matrix.Dense {
	t.Helper()
	xs, ys := geo.Coords(pts)
	d, err := matrix.NewEuclidean(xs, ys)
	require.NoError(t, err)

	return d
}

// -----------------------------------------------------------------------------
// Assertions
// -----------------------------------------------------------------------------

// requirePermutation asserts that tour is a permutation of 0..n-1.
func requirePermutation(t testing.TB, tour []int, n int) {
	t.Helper()
	require.NoError(t, tsp.ValidatePermutation(tour, n), "tour=%v", tour)
}

// Repeat runs fn n times to surface hidden nondeterminism.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	var i int
	for i = 0; i < n; i++ {
		fn(t)
	}
}

// identity returns [0..n-1].
func identity(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}

	return out
}

// shuffled returns a seeded random permutation of 0..n-1.
func shuffled(n int, seed uint64) []int {
	out := identity(n)
	r := rand.New(rand.NewPCG(seed, 7))
	r.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })

	return out
}

func sqrt2() float64 { return math.Sqrt2 }

// sameTour reports exact equality of two tours.
func sameTour(a, b []int) bool { return slices.Equal(a, b) }
