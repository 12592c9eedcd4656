package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// Point is a stable integer identifier bound to a planar coordinate.
type Point struct {
	ID int64
	X  float64
	Y  float64
}

// Orb returns the coordinate as an orb.Point (X, Y).
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

// FromOrb builds a Point from an identifier and an orb.Point.
func FromOrb(id int64, op orb.Point) Point {
	return Point{ID: id, X: op.X(), Y: op.Y()}
}

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Coords splits points into structure-of-arrays coordinate slices.
// The distance kernels in package matrix run over these contiguous slices.
//
// Complexity: O(n) time, O(n) space.
func Coords(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i := range points {
		xs[i] = points[i].X
		ys[i] = points[i].Y
	}

	return xs, ys
}

// IDs returns the identifiers of points in input order.
func IDs(points []Point) []int64 {
	out := make([]int64, len(points))
	for i := range points {
		out[i] = points[i].ID
	}

	return out
}

// MultiPoint converts the set to an orb.MultiPoint (shared by bound and GeoJSON helpers).
func MultiPoint(points []Point) orb.MultiPoint {
	mp := make(orb.MultiPoint, len(points))
	for i := range points {
		mp[i] = points[i].Orb()
	}

	return mp
}

// Bound returns the axis-aligned bounding box of the set.
// An empty set yields the zero orb.Bound.
func Bound(points []Point) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}

	return MultiPoint(points).Bound()
}
