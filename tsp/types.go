package tsp

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrInvalidArgument is the kind of every configuration or input error.
// All sentinels below wrap it, so errors.Is(err, ErrInvalidArgument) holds.
var ErrInvalidArgument = errors.New("tsp: invalid argument")

var (
	// ErrUnknownMethod is returned for a method outside {nearest-neighbor, nearest-neighbor+2opt}.
	ErrUnknownMethod = fmt.Errorf("%w: unknown method", ErrInvalidArgument)

	// ErrUnknownMetric is returned for a Metric other than MetricOpen/MetricClosed.
	ErrUnknownMetric = fmt.Errorf("%w: unknown metric", ErrInvalidArgument)

	// ErrStartOutOfRange is returned when the start index is not in [0..n-1].
	ErrStartOutOfRange = fmt.Errorf("%w: start index out of range", ErrInvalidArgument)

	// ErrDimensionMismatch is returned when a tour and a distance matrix disagree on n,
	// or the matrix is not square.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidArgument)

	// ErrNotPermutation is returned when a tour is not a permutation of 0..n-1.
	ErrNotPermutation = fmt.Errorf("%w: tour is not a permutation", ErrInvalidArgument)

	// ErrInvalidBudget is returned for negative iteration/time budgets, negative or NaN
	// epsilon and negative progress intervals.
	ErrInvalidBudget = fmt.Errorf("%w: invalid budget", ErrInvalidArgument)
)

// Method selects which heuristics a solve runs.
type Method string

const (
	// NearestNeighbor runs construction only.
	NearestNeighbor Method = "nearest-neighbor"

	// NearestNeighbor2Opt runs construction followed by 2-opt improvement.
	NearestNeighbor2Opt Method = "nearest-neighbor+2opt"
)

// ParseMethod maps a configuration string to a Method.
// The short forms "nn" and "nn+2opt" are accepted as aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(NearestNeighbor), "nn":
		return NearestNeighbor, nil
	case string(NearestNeighbor2Opt), "nn+2opt", "nn-2opt":
		return NearestNeighbor2Opt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

func (m Method) valid() bool { return m == NearestNeighbor || m == NearestNeighbor2Opt }

// Metric is the tour length the improvement heuristic minimises.
// It is fixed for a whole solve and reported in Result.Metric.
type Metric int

const (
	// MetricClosed measures the cycle: open length plus the edge back to the first point.
	MetricClosed Metric = iota

	// MetricOpen measures the path without the return edge.
	MetricOpen
)

// String returns "closed" or "open".
func (m Metric) String() string {
	switch m {
	case MetricClosed:
		return "closed"
	case MetricOpen:
		return "open"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// ParseMetric maps "open"/"closed" to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "closed", "cycle":
		return MetricClosed, nil
	case "open", "path":
		return MetricOpen, nil
	default:
		return MetricClosed, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
}

func (m Metric) valid() bool { return m == MetricClosed || m == MetricOpen }

// StopReason tells how a solve (or a TwoOpt run) terminated.
type StopReason int

const (
	// StopCompleted means the selected heuristics ran to their natural end:
	// construction finished, and for 2-opt a full scan found no improving swap.
	StopCompleted StopReason = iota

	// StopIterationLimit means MaxIterations accepted swaps were applied.
	StopIterationLimit

	// StopTimeLimit means the wall-clock budget ran out at a checkpoint.
	StopTimeLimit

	// StopCancelled means the context was cancelled and observed at a checkpoint.
	StopCancelled
)

// String returns a stable lower-case name.
func (s StopReason) String() string {
	switch s {
	case StopCompleted:
		return "completed"
	case StopIterationLimit:
		return "iteration-limit"
	case StopTimeLimit:
		return "time-limit"
	case StopCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(s))
	}
}

// Phase tags a progress snapshot with the solve stage that produced it.
type Phase int

const (
	PhaseConstruction Phase = iota
	PhaseImprovement
	PhaseDone
)

// String returns a stable lower-case name.
func (p Phase) String() string {
	switch p {
	case PhaseConstruction:
		return "construction"
	case PhaseImprovement:
		return "improvement"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Defaults used by DefaultOptions.
const (
	DefaultMaxIterations    = 1000
	DefaultEps              = 1e-9
	DefaultProgressInterval = time.Second
)

// Options configures a solve.
//
// Zero budgets mean "unbounded": MaxIterations == 0 puts no cap on accepted
// swaps and TimeLimit == 0 puts no cap on wall-clock time. Negative values are
// rejected with ErrInvalidBudget.
type Options struct {
	// Method selects construction only or construction + 2-opt.
	Method Method

	// StartIndex is the first point of the nearest-neighbour tour.
	StartIndex int

	// MaxIterations caps accepted 2-opt swaps (0 ⇒ unlimited).
	MaxIterations int

	// TimeLimit caps the whole solve, measured from StartedAt (0 ⇒ unbounded).
	TimeLimit time.Duration

	// StartedAt starts the clock for TimeLimit and Result.Elapsed. Zero means
	// the Solve/SolveMatrix call; callers that build the matrix themselves set
	// it before the build so the budget covers it.
	StartedAt time.Time

	// Metric is the objective the 2-opt acceptance test uses.
	Metric Metric

	// Eps is the acceptance tolerance: a swap is taken only if Δ < −Eps.
	Eps float64

	// ProgressInterval is the heartbeat: the longest gap between two snapshots
	// while improvement runs (0 ⇒ DefaultProgressInterval).
	ProgressInterval time.Duration

	// Progress receives snapshots. nil disables reporting.
	Progress ProgressSink

	// SnapshotTour copies the current tour into every snapshot (O(n) per snapshot).
	SnapshotTour bool

	// Logger receives phase-level debug events. nil disables logging.
	Logger *zerolog.Logger
}

// DefaultOptions returns nearest-neighbor+2opt from index 0, 1000 swaps,
// unbounded time, closed-tour objective, Eps 1e-9 and a 1s heartbeat.
func DefaultOptions() Options {
	return Options{
		Method:           NearestNeighbor2Opt,
		StartIndex:       0,
		MaxIterations:    DefaultMaxIterations,
		TimeLimit:        0,
		Metric:           MetricClosed,
		Eps:              DefaultEps,
		ProgressInterval: DefaultProgressInterval,
	}
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()

	return &nop
}

func (o Options) clockStart() time.Time {
	if o.StartedAt.IsZero() {
		return time.Now()
	}

	return o.StartedAt
}

func (o Options) heartbeat() time.Duration {
	if o.ProgressInterval > 0 {
		return o.ProgressInterval
	}

	return DefaultProgressInterval
}

// Result is the immutable outcome of one solve.
type Result struct {
	// Method and Metric echo the configuration the solve ran with.
	Method Method
	Metric Metric

	// N is the number of points.
	N int

	// Tour is a permutation of 0..N-1 (open form; the return edge is implied
	// by ClosedLength only).
	Tour []int

	// OpenLength and ClosedLength are always both computed from Tour.
	OpenLength   float64
	ClosedLength float64

	// StartIndex is the index construction started from.
	StartIndex int

	// Elapsed is the wall-clock time of the whole solve.
	Elapsed time.Duration

	// Iterations is the number of accepted 2-opt swaps.
	Iterations int

	// Stop tells whether the solve converged, hit a budget or was cancelled.
	Stop StopReason
}

// Meta is the run metadata record consumed by exporters.
// Field names are part of the output contract.
type Meta struct {
	Method           string  `json:"method"`
	N                int     `json:"n"`
	TimeSeconds      float64 `json:"time_seconds"`
	BestOpenLength   float64 `json:"best_open_length"`
	BestClosedLength float64 `json:"best_closed_length"`
	StartIdx         int     `json:"start_idx"`
}

// Meta returns the metadata record of r.
func (r Result) Meta() Meta {
	return Meta{
		Method:           string(r.Method),
		N:                r.N,
		TimeSeconds:      r.Elapsed.Seconds(),
		BestOpenLength:   r.OpenLength,
		BestClosedLength: r.ClosedLength,
		StartIdx:         r.StartIndex,
	}
}

// Progress is a transient snapshot pushed to a ProgressSink.
type Progress struct {
	Phase        Phase
	OpenLength   float64
	ClosedLength float64
	Elapsed      time.Duration
	Iterations   int

	// Tour is a private copy of the current tour when Options.SnapshotTour is set.
	Tour []int
}
