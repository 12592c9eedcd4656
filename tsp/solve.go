// Package tsp - solve orchestration.
//
// Solve and SolveMatrix are the canonical entry points:
//
//   - Solve: accept points, build the Euclidean distance matrix once, then
//     delegate to the shared pipeline.
//   - SolveMatrix: accept a caller-built distance matrix (validated as a
//     distance matrix first) and run the same pipeline.
//
// Pipeline: validate → NearestNeighborTour → (optional) TwoOpt → final lengths.
//
// Design principles:
//   - Budgets and cancellation are graceful stops, never errors.
//   - Progress is pushed synchronously from TwoOpt checkpoints; sinks must not block.
//   - Stable lengths: every reported length is rounded to 1e-9.
package tsp

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/matrix"
)

// Solve approximates a short tour through points.
//
// Contracts:
//   - opts passes Options.Validate.
//   - 0 ≤ opts.StartIndex < len(points) (an empty point set accepts 0 only).
//   - Every coordinate is finite.
//
// Errors (all match ErrInvalidArgument): ErrUnknownMethod, ErrUnknownMetric,
// ErrInvalidBudget, ErrStartOutOfRange, and matrix-construction failures.
// A cancelled ctx or an exhausted budget is reported through Result.Stop.
//
// Complexity: O(n²) to build the matrix and construct; O(n²) per 2-opt pass.
// Memory: one n×n float64 matrix.
func Solve(ctx context.Context, points []geo.Point, opts Options) (Result, error) {
	t0 := opts.clockStart()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateStart(len(points), opts.StartIndex); err != nil {
		return Result{}, err
	}

	xs, ys := geo.Coords(points)
	dist, err := matrix.NewEuclidean(xs, ys)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	opts.logger().Debug().
		Int("n", len(points)).
		Dur("elapsed", time.Since(t0)).
		Msg("distance matrix built")

	return solve(ctx, dist, opts, t0)
}

// SolveMatrix runs the same pipeline as Solve on a precomputed distance matrix.
// dist must be square, symmetric within matrix.DefaultTolerance, with a zero
// diagonal and finite non-negative entries.
func SolveMatrix(ctx context.Context, dist *matrix.Dense, opts Options) (Result, error) {
	t0 := opts.clockStart()
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if dist == nil {
		return Result{}, fmt.Errorf("%w: %w", ErrDimensionMismatch, matrix.ErrNilMatrix)
	}
	n, err := matrix.ValidateDistance(dist, matrix.DefaultTolerance)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err = validateStart(n, opts.StartIndex); err != nil {
		return Result{}, err
	}

	return solve(ctx, dist, opts, t0)
}

// run holds the per-solve reporting state.
type run struct {
	sink      ProgressSink
	log       *zerolog.Logger
	t0        time.Time
	heartbeat time.Duration
	lastEmit  time.Time
	snapshot  bool
	closed    bool
	w         []float64
	n         int
	tour      []int
}

// solve is the shared pipeline behind Solve and SolveMatrix. Inputs are validated.
func solve(ctx context.Context, dist *matrix.Dense, opts Options, t0 time.Time) (Result, error) {
	n := dist.Rows()
	r := &run{
		sink:      opts.Progress,
		log:       opts.logger(),
		t0:        t0,
		heartbeat: opts.heartbeat(),
		snapshot:  opts.SnapshotTour,
		closed:    opts.Metric == MetricClosed,
		w:         dist.Raw(),
		n:         n,
	}
	if r.sink == nil {
		r.sink = nopSink{}
	}
	res := Result{
		Method:     opts.Method,
		Metric:     opts.Metric,
		N:          n,
		StartIndex: opts.StartIndex,
		Stop:       StopCompleted,
	}

	if n == 0 {
		res.Tour = []int{}
		res.Elapsed = time.Since(t0)
		r.emit(PhaseDone, 0, 0, 0)

		return res, nil
	}

	// --- Construction (not interruptible; O(n²)).
	tour, err := NearestNeighborTour(dist, opts.StartIndex)
	if err != nil {
		return Result{}, err
	}
	r.tour = tour

	open, closed, err := Lengths(dist, tour)
	if err != nil {
		return Result{}, err
	}
	r.emit(PhaseConstruction, open, closed, 0)
	r.log.Debug().
		Str("method", string(opts.Method)).
		Int("start", opts.StartIndex).
		Float64("open_length", open).
		Float64("closed_length", closed).
		Dur("elapsed", time.Since(t0)).
		Msg("construction done")

	// --- Improvement.
	if opts.Method == NearestNeighbor2Opt {
		var deadline time.Time
		if opts.TimeLimit > 0 {
			deadline = t0.Add(opts.TimeLimit)
		}
		stats, err := TwoOpt(ctx, dist, tour, TwoOptConfig{
			Metric:        opts.Metric,
			MaxIterations: opts.MaxIterations,
			Deadline:      deadline,
			Eps:           opts.Eps,
			Checkpoint:    r.checkpoint,
		})
		if err != nil {
			return Result{}, err
		}
		res.Iterations = stats.Iterations
		res.Stop = stats.Stop
		r.log.Debug().
			Int("iterations", stats.Iterations).
			Int("checkpoints", stats.Checkpoints).
			Stringer("stop", stats.Stop).
			Float64("length", stats.Length).
			Msg("2-opt done")
	} else if ctx.Err() != nil {
		res.Stop = StopCancelled
	}

	// --- Final lengths, recomputed from the tour.
	if res.OpenLength, res.ClosedLength, err = Lengths(dist, tour); err != nil {
		return Result{}, err
	}
	res.Tour = tour
	res.Elapsed = time.Since(t0)
	r.emit(PhaseDone, res.OpenLength, res.ClosedLength, res.Iterations)

	return res, nil
}

// checkpoint forwards TwoOpt checkpoints to the sink: always after an accepted
// swap, otherwise only once the heartbeat interval has passed.
func (r *run) checkpoint(c Checkpoint) {
	if !c.Swapped && time.Since(r.lastEmit) < r.heartbeat {
		return
	}
	// The tracked length is the objective; derive the other one from the wrap edge.
	wrap := r.w[r.tour[r.n-1]*r.n+r.tour[0]]
	open, closed := c.Length, c.Length+wrap
	if r.closed {
		open, closed = c.Length-wrap, c.Length
	}
	r.emit(PhaseImprovement, round1e9(open), round1e9(closed), c.Iterations)
}

func (r *run) emit(phase Phase, open, closed float64, iterations int) {
	now := time.Now()
	r.lastEmit = now
	p := Progress{
		Phase:        phase,
		OpenLength:   open,
		ClosedLength: closed,
		Elapsed:      now.Sub(r.t0),
		Iterations:   iterations,
	}
	if r.snapshot && r.tour != nil {
		p.Tour = CopyTour(r.tour)
	}
	r.sink.Report(p)
}
