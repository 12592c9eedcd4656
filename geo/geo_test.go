package geo_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/require"

	tgeo "github.com/katalvlaran/tourlab/geo"
)

func TestCoords_SplitsAndKeepsOrder(t *testing.T) {
	pts := []tgeo.Point{{ID: 7, X: 1, Y: 2}, {ID: 3, X: -4, Y: 5}}
	xs, ys := tgeo.Coords(pts)
	require.Equal(t, []float64{1, -4}, xs)
	require.Equal(t, []float64{2, 5}, ys)
	require.Equal(t, []int64{7, 3}, tgeo.IDs(pts))
}

func TestOrbRoundTrip(t *testing.T) {
	p := tgeo.Point{ID: 42, X: 92.87, Y: 56.01}
	require.Equal(t, orb.Point{92.87, 56.01}, p.Orb())
	require.Equal(t, p, tgeo.FromOrb(42, p.Orb()))
}

func TestFinite(t *testing.T) {
	require.True(t, tgeo.Point{X: 1, Y: 1}.Finite())
	require.False(t, tgeo.Point{X: math.NaN(), Y: 1}.Finite())
	require.False(t, tgeo.Point{X: 1, Y: math.Inf(-1)}.Finite())
}

func TestParseProjection(t *testing.T) {
	cases := map[string]tgeo.Projection{
		"":                tgeo.ProjectionNone,
		"none":            tgeo.ProjectionNone,
		"Equirectangular": tgeo.ProjectionEquirectangular,
		"mercator":        tgeo.ProjectionMercator,
	}
	for in, want := range cases {
		got, err := tgeo.ParseProjection(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := tgeo.ParseProjection("lambert")
	require.ErrorIs(t, err, tgeo.ErrUnknownProjection)
}

func TestProject_NoneCopies(t *testing.T) {
	pts := []tgeo.Point{{ID: 1, X: 1, Y: 2}}
	out, err := tgeo.Project(pts, tgeo.ProjectionNone)
	require.NoError(t, err)
	require.Equal(t, pts, out)

	out[0].X = 99
	require.Equal(t, 1.0, pts[0].X, "input must not be mutated")
}

// Equirectangular kilometres should agree with orb's great-circle distance for
// points a few kilometres apart.
func TestProject_EquirectangularMatchesGreatCircle(t *testing.T) {
	pts := []tgeo.Point{
		{ID: 1, X: 92.85, Y: 56.00},
		{ID: 2, X: 92.95, Y: 56.03},
	}
	out, err := tgeo.Project(pts, tgeo.ProjectionEquirectangular)
	require.NoError(t, err)

	planar := math.Hypot(out[0].X-out[1].X, out[0].Y-out[1].Y)
	sphere := geo.Distance(pts[0].Orb(), pts[1].Orb()) / 1000
	require.InDelta(t, sphere, planar, 0.01*sphere)
}

func TestProject_MercatorOrigin(t *testing.T) {
	out, err := tgeo.Project([]tgeo.Point{{ID: 1}}, tgeo.ProjectionMercator)
	require.NoError(t, err)
	require.InDelta(t, 0, out[0].X, 1e-9)
	require.InDelta(t, 0, out[0].Y, 1e-9)
}

func TestBound_Empty(t *testing.T) {
	require.Equal(t, orb.Bound{}, tgeo.Bound(nil))
	b := tgeo.Bound([]tgeo.Point{{X: 0, Y: 0}, {X: 2, Y: 4}})
	require.Equal(t, orb.Point{1, 2}, b.Center())
}
