// Package tsp - nearest-neighbour construction.
//
// Visited bookkeeping is a flag array scanned in index order, so "lowest index
// wins ties" holds regardless of container iteration order.
package tsp

import (
	"github.com/katalvlaran/tourlab/matrix"
)

// NearestNeighborTour builds a tour from start by repeatedly stepping to the
// closest unvisited point. Ties are broken by the lowest point index.
//
// Contracts:
//   - dist is square; n == 0 yields an empty tour.
//   - 0 ≤ start < n, otherwise ErrStartOutOfRange.
//
// Complexity: O(n²) time, O(n) space.
func NearestNeighborTour(dist *matrix.Dense, start int) ([]int, error) {
	if dist == nil {
		return nil, ErrDimensionMismatch
	}
	n, cols := dist.Shape()
	if n != cols {
		return nil, ErrDimensionMismatch
	}
	if n == 0 {
		return []int{}, nil
	}
	if err := validateStart(n, start); err != nil {
		return nil, err
	}

	var (
		visited = make([]bool, n)
		tour    = make([]int, 0, n)
		cur     = start
		best    int
		bestD   float64
		row     []float64
		j       int
		d       float64
	)
	visited[cur] = true
	tour = append(tour, cur)

	for len(tour) < n {
		// cur is always a valid row here.
		row, _ = dist.Row(cur)
		best = -1
		for j, d = range row {
			if visited[j] {
				continue
			}
			// Strict < keeps the earliest (lowest) index among equal distances.
			if best < 0 || d < bestD {
				best = j
				bestD = d
			}
		}
		visited[best] = true
		tour = append(tour, best)
		cur = best
	}

	return tour, nil
}
