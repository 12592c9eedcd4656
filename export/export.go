// Package export writes solve results to disk.
//
// Files produced by WriteAll:
//
//	route.csv      one point id per line, in visiting order
//	solution.csv   n-1 lines "from_id;distance" for consecutive stops
//	meta.json      run metadata (tsp.Meta), indented by two spaces
//	route.geojson  optional FeatureCollection: the route line plus one feature per stop
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/matrix"
	"github.com/katalvlaran/tourlab/tsp"
)

// File names written by WriteAll.
const (
	RouteFile    = "route.csv"
	SolutionFile = "solution.csv"
	MetaFile     = "meta.json"
	GeoJSONFile  = "route.geojson"
)

// ErrTourMismatch is returned when a tour does not index the given points.
var ErrTourMismatch = errors.New("export: tour does not match points")

// WriteRoute writes the id of every visited point, one per line.
func WriteRoute(w io.Writer, tour []int, points []geo.Point) error {
	if err := checkTour(tour, points); err != nil {
		return err
	}
	cw := newCSV(w)
	for _, idx := range tour {
		if err := cw.Write([]string{strconv.FormatInt(points[idx].ID, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteSolution writes "from_id;distance" for each consecutive pair of the tour.
// Tours shorter than two points produce no lines.
func WriteSolution(w io.Writer, tour []int, points []geo.Point, dist *matrix.Dense) error {
	if err := checkTour(tour, points); err != nil {
		return err
	}
	edges, err := tsp.EdgeLengths(dist, tour)
	if err != nil {
		return err
	}
	cw := newCSV(w)
	for k, d := range edges {
		rec := []string{
			strconv.FormatInt(points[tour[k]].ID, 10),
			strconv.FormatFloat(d, 'g', -1, 64),
		}
		if err = cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// WriteMeta writes meta as indented JSON.
func WriteMeta(w io.Writer, meta tsp.Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(meta)
}

// WriteGeoJSON writes the route as a FeatureCollection. points are expected in
// longitude/latitude order (X, Y). The route LineString is closed back to the
// first stop when the result was optimised for the closed metric. props are
// copied onto the route feature.
func WriteGeoJSON(w io.Writer, res tsp.Result, points []geo.Point, props map[string]any) error {
	if err := checkTour(res.Tour, points); err != nil {
		return err
	}
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, len(res.Tour)+1)
	for _, idx := range res.Tour {
		line = append(line, points[idx].Orb())
	}
	if res.Metric == tsp.MetricClosed && len(res.Tour) > 1 {
		line = append(line, points[res.Tour[0]].Orb())
	}
	route := geojson.NewFeature(line)
	for k, v := range props {
		route.Properties[k] = v
	}
	route.Properties["method"] = string(res.Method)
	route.Properties["metric"] = res.Metric.String()
	route.Properties["open_length"] = res.OpenLength
	route.Properties["closed_length"] = res.ClosedLength
	route.Properties["iterations"] = res.Iterations
	route.Properties["stop"] = res.Stop.String()
	fc.Append(route)

	for order, idx := range res.Tour {
		stop := geojson.NewFeature(points[idx].Orb())
		stop.ID = points[idx].ID
		stop.Properties["id"] = points[idx].ID
		stop.Properties["order"] = order
		fc.Append(stop)
	}

	raw, err := fc.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(raw)

	return err
}

// AllOptions selects the optional outputs of WriteAll.
type AllOptions struct {
	// GeoJSON also writes route.geojson from GeoPoints.
	GeoJSON bool

	// GeoPoints are the unprojected lon/lat points for route.geojson
	// (nil ⇒ the solve points).
	GeoPoints []geo.Point

	// Properties are attached to the GeoJSON route feature.
	Properties map[string]any
}

// WriteAll writes every output file into dir (created if needed) and returns
// the paths written, in order.
func WriteAll(dir string, res tsp.Result, points []geo.Point, dist *matrix.Dense, opts AllOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	var written []string
	write := func(name string, fn func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		if err = fn(f); err != nil {
			f.Close()
			return fmt.Errorf("export: %s: %w", name, err)
		}
		if err = f.Close(); err != nil {
			return fmt.Errorf("export: %s: %w", name, err)
		}
		written = append(written, path)

		return nil
	}

	if err := write(RouteFile, func(w io.Writer) error { return WriteRoute(w, res.Tour, points) }); err != nil {
		return written, err
	}
	if err := write(SolutionFile, func(w io.Writer) error { return WriteSolution(w, res.Tour, points, dist) }); err != nil {
		return written, err
	}
	if err := write(MetaFile, func(w io.Writer) error { return WriteMeta(w, res.Meta()) }); err != nil {
		return written, err
	}
	if opts.GeoJSON {
		gp := opts.GeoPoints
		if gp == nil {
			gp = points
		}
		if err := write(GeoJSONFile, func(w io.Writer) error { return WriteGeoJSON(w, res, gp, opts.Properties) }); err != nil {
			return written, err
		}
	}

	return written, nil
}

func newCSV(w io.Writer) *csv.Writer {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	return cw
}

func checkTour(tour []int, points []geo.Point) error {
	if len(tour) != len(points) {
		return fmt.Errorf("%w: len(tour)=%d, len(points)=%d", ErrTourMismatch, len(tour), len(points))
	}
	if err := tsp.ValidatePermutation(tour, len(points)); err != nil {
		return fmt.Errorf("%w: %w", ErrTourMismatch, err)
	}

	return nil
}
