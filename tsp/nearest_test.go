package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/matrix"
	"github.com/katalvlaran/tourlab/tsp"
)

func TestNearestNeighbor_SquareCenter(t *testing.T) {
	Repeat(t, 3, func(t *testing.T) {
		d := mustDist(t, squareCenter())

		tour, err := tsp.NearestNeighborTour(d, 0)
		require.NoError(t, err)
		// 0 → centre; from the centre all corners tie, lowest index wins.
		require.Equal(t, []int{0, 4, 1, 2, 3}, tour)

		open, closed, err := tsp.Lengths(d, tour)
		require.NoError(t, err)
		require.InDelta(t, 2+sqrt2(), open, 1e-9)
		require.InDelta(t, 3+sqrt2(), closed, 1e-9)
	})
}

func TestNearestNeighbor_TieBreakLowestIndex(t *testing.T) {
	// Points 1..4 all at distance 1 from point 0.
	pts := []geo.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}
	d := mustDist(t, pts)

	tour, err := tsp.NearestNeighborTour(d, 0)
	require.NoError(t, err)
	require.Equal(t, 1, tour[1])
}

func TestNearestNeighbor_StartIsFirst(t *testing.T) {
	pts := randomPoints(40, seedDet)
	d := mustDist(t, pts)

	var start int
	for start = 0; start < len(pts); start += 13 {
		tour, err := tsp.NearestNeighborTour(d, start)
		require.NoError(t, err)
		require.Equal(t, start, tour[0])
		requirePermutation(t, tour, len(pts))
	}
}

func TestNearestNeighbor_Degenerate(t *testing.T) {
	empty, err := matrix.NewDense(0, 0)
	require.NoError(t, err)
	tour, err := tsp.NearestNeighborTour(empty, 0)
	require.NoError(t, err)
	require.Empty(t, tour)

	one := mustDist(t, []geo.Point{{X: 3, Y: 4}})
	tour, err = tsp.NearestNeighborTour(one, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0}, tour)
}

func TestNearestNeighbor_Errors(t *testing.T) {
	d := mustDist(t, unitSquare())

	_, err := tsp.NearestNeighborTour(d, 4)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)
	_, err = tsp.NearestNeighborTour(d, -1)
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = tsp.NearestNeighborTour(rect, 0)
	require.ErrorIs(t, err, tsp.ErrDimensionMismatch)
}
