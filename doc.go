// Package tourlab approximates Euclidean travelling-salesman tours over a
// fixed point set (a few thousand coordinates) under a time or iteration
// budget, with cooperative cancellation and live progress.
//
// What is inside:
//
//	geo/         Point (id + planar coordinate), orb interop, lon/lat projections
//	matrix/      Dense row-major distance matrix, Euclidean builder, validation
//	tsp/         nearest-neighbour construction, first-improvement 2-opt, Solve
//	metrics/     Prometheus progress sink and solve counters
//	dataset/     delimited point files with delimiter sniffing
//	export/      route.csv, solution.csv, meta.json, route.geojson
//	config/      YAML configuration with TOURLAB_* environment overrides
//	logging/     zerolog setup
//	tui/         Bubble Tea progress view with a Stop action
//	cmd/tourlab  the command-line front end
//
// Quick start:
//
//	res, err := tsp.Solve(ctx, points, tsp.DefaultOptions())
//	if err != nil { ... } // only malformed input is an error
//	fmt.Println(res.Tour, res.ClosedLength, res.Stop)
//
// The engine is single-threaded and synchronous. Run it on its own goroutine,
// cancel its context to stop it, and read snapshots from a tsp.LatestProgress.
package tourlab
