package geo

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ErrUnknownProjection is returned by ParseProjection for unsupported names.
var ErrUnknownProjection = errors.New("geo: unknown projection")

// Projection selects how longitude/latitude pairs become planar coordinates.
type Projection int

const (
	// ProjectionNone keeps coordinates as they are (already planar, or raw degrees).
	ProjectionNone Projection = iota

	// ProjectionEquirectangular maps degrees to kilometres around the centre of
	// the set's bounding box. Accurate for regional data sets.
	ProjectionEquirectangular

	// ProjectionMercator applies spherical web mercator and scales metres to kilometres.
	ProjectionMercator
)

// earthRadiusKm is orb's spherical radius expressed in kilometres.
const earthRadiusKm = orb.EarthRadius / 1000

// String returns the configuration name of the projection.
func (p Projection) String() string {
	switch p {
	case ProjectionNone:
		return "none"
	case ProjectionEquirectangular:
		return "equirectangular"
	case ProjectionMercator:
		return "mercator"
	default:
		return fmt.Sprintf("Projection(%d)", int(p))
	}
}

// ParseProjection maps a configuration string to a Projection.
// The empty string selects ProjectionNone.
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ProjectionNone, nil
	case "equirectangular", "equirect", "km":
		return ProjectionEquirectangular, nil
	case "mercator", "webmercator":
		return ProjectionMercator, nil
	default:
		return ProjectionNone, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
	}
}

// Project returns a projected copy of points. Identifiers and order are kept.
//
// Complexity: O(n).
func Project(points []Point, p Projection) ([]Point, error) {
	out := make([]Point, len(points))
	switch p {
	case ProjectionNone:
		copy(out, points)

	case ProjectionEquirectangular:
		if len(points) == 0 {
			return out, nil
		}
		c := Bound(points).Center()
		lon0, lat0 := c.X(), c.Y()
		k := math.Cos(lat0 * math.Pi / 180)
		for i, pt := range points {
			out[i] = Point{
				ID: pt.ID,
				X:  earthRadiusKm * (pt.X - lon0) * math.Pi / 180 * k,
				Y:  earthRadiusKm * (pt.Y - lat0) * math.Pi / 180,
			}
		}

	case ProjectionMercator:
		for i, pt := range points {
			m := project.Point(pt.Orb(), project.WGS84.ToMercator)
			out[i] = Point{ID: pt.ID, X: m.X() / 1000, Y: m.Y() / 1000}
		}

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownProjection, p)
	}

	return out, nil
}
