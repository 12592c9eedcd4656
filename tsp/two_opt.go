// Package tsp - 2-opt local search engine.
//
// TwoOpt performs deterministic first-improvement 2-opt in place.
//
// Move: for edges (T[a],T[a+1]) and (T[b],T[b+1]) with a < b and the edges
// non-adjacent, reverse the segment T[a+1..b]:
//
//	Δ = w(T[a],T[b]) + w(T[a+1],T[b+1]) − w(T[a],T[a+1]) − w(T[b],T[b+1])
//
// Neighbourhood:
//   - MetricOpen:   edges a ∈ [0..n-2]; the path has no return edge.
//   - MetricClosed: edges a ∈ [0..n-1], edge n-1 being (T[n-1],T[0]); the pair
//     (a=0, b=n-1) shares T[0] and is skipped.
//
// Policy:
//   - Scan a ascending, b ascending; apply the first Δ < −Eps and restart from a=0.
//   - Cooperative checkpoints after every inner-loop pass (each a) and after every
//     accepted swap. Budgets and cancellation are observed only there, so the tour
//     is always a complete permutation whenever TwoOpt returns.
//
// Complexity:
//   - One pass: O(n²) candidate checks, O(1) each; an accepted move costs O(b−a).
//   - Checkpoints: O(n) per pass, each O(1) (clock read + ctx poll).
package tsp

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/tourlab/matrix"
)

// TwoOptConfig carries the budgets and hooks of one TwoOpt run.
type TwoOptConfig struct {
	// Metric selects the open or closed neighbourhood and objective.
	Metric Metric

	// MaxIterations caps accepted swaps (0 ⇒ unlimited).
	MaxIterations int

	// Deadline is the absolute wall-clock cutoff (zero ⇒ none).
	Deadline time.Time

	// Eps is the acceptance tolerance (Δ < −Eps).
	Eps float64

	// Checkpoint, when set, is called synchronously at every checkpoint while
	// the tour is in a consistent state. It must be cheap.
	Checkpoint func(Checkpoint)
}

// Checkpoint describes the search state at a cooperative checkpoint.
type Checkpoint struct {
	// Iterations is the number of accepted swaps so far.
	Iterations int

	// Length is the objective length tracked incrementally (unrounded).
	Length float64

	// Swapped is true when the checkpoint follows an accepted swap.
	Swapped bool
}

// TwoOptStats summarises a TwoOpt run.
type TwoOptStats struct {
	// Iterations is the number of accepted swaps.
	Iterations int

	// Checkpoints is the number of cooperative checkpoints taken.
	Checkpoints int

	// Stop is why the run ended.
	Stop StopReason

	// Length is the final objective length, recomputed from scratch and rounded.
	Length float64
}

// TwoOpt improves tour in place under cfg and returns run statistics.
//
// Errors (all before any mutation): ErrDimensionMismatch if len(tour) does not
// match the matrix, ErrNotPermutation, ErrUnknownMetric, ErrInvalidBudget.
// Cancellation and budget exhaustion are reported through TwoOptStats.Stop.
func TwoOpt(ctx context.Context, dist *matrix.Dense, tour []int, cfg TwoOptConfig) (TwoOptStats, error) {
	// --- Shape & invariants.
	if dist == nil || dist.Rows() != dist.Cols() {
		return TwoOptStats{}, ErrDimensionMismatch
	}
	n := dist.Rows()
	if err := ValidatePermutation(tour, n); err != nil {
		return TwoOptStats{}, err
	}
	if !cfg.Metric.valid() {
		return TwoOptStats{}, fmt.Errorf("%w: %d", ErrUnknownMetric, int(cfg.Metric))
	}
	if cfg.MaxIterations < 0 || cfg.Eps < 0 || math.IsNaN(cfg.Eps) || math.IsInf(cfg.Eps, 0) {
		return TwoOptStats{}, ErrInvalidBudget
	}

	var (
		w        = dist.Raw()
		closed   = cfg.Metric == MetricClosed
		eps      = cfg.Eps
		stats    TwoOptStats
		length   = sumLength(w, n, tour, closed)
		deadline = cfg.Deadline
	)

	// check is the cooperative checkpoint: report, then poll budgets.
	check := func(swapped bool) bool {
		stats.Checkpoints++
		if cfg.Checkpoint != nil {
			cfg.Checkpoint(Checkpoint{Iterations: stats.Iterations, Length: length, Swapped: swapped})
		}
		if cfg.MaxIterations > 0 && stats.Iterations >= cfg.MaxIterations {
			stats.Stop = StopIterationLimit
			return true
		}
		if ctx.Err() != nil {
			stats.Stop = StopCancelled
			return true
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			stats.Stop = StopTimeLimit
			return true
		}

		return false
	}

	finish := func() (TwoOptStats, error) {
		stats.Length = round1e9(sumLength(w, n, tour, closed))
		return stats, nil
	}

	// Budgets may already be spent (e.g. construction used the whole time limit).
	if ctx.Err() != nil {
		stats.Stop = StopCancelled
		return finish()
	}
	if !deadline.IsZero() && !time.Now().Before(deadline) {
		stats.Stop = StopTimeLimit
		return finish()
	}
	if n < 4 {
		// No two non-adjacent edges exist.
		stats.Stop = StopCompleted
		return finish()
	}

	// lastEdge is the highest edge index of the neighbourhood.
	lastEdge := n - 2
	if closed {
		lastEdge = n - 1
	}

	for {
		improved := false

		var (
			a, b        int
			ta, ta1     int // endpoints of edge a
			tb, tb1     int // endpoints of edge b
			rowA, rowA1 []float64
			dAA1, delta float64
			next        int
		)

	scan:
		for a = 0; a <= lastEdge-2; a++ {
			ta = tour[a]
			ta1 = tour[a+1]
			rowA = w[ta*n : (ta+1)*n]
			rowA1 = w[ta1*n : (ta1+1)*n]
			dAA1 = rowA[ta1]

			for b = a + 2; b <= lastEdge; b++ {
				if closed && a == 0 && b == n-1 {
					continue // edges share tour[0]
				}
				next = b + 1
				if next == n {
					next = 0
				}
				tb = tour[b]
				tb1 = tour[next]

				delta = (rowA[tb] + rowA1[tb1]) - (dAA1 + w[tb*n+tb1])
				if delta < -eps {
					reverseSegment(tour, a+1, b)
					length += delta
					stats.Iterations++
					improved = true

					break scan
				}
			}

			// Inner pass over b finished without a move.
			if check(false) {
				return finish()
			}
		}

		if !improved {
			// Local optimum under the chosen neighbourhood.
			stats.Stop = StopCompleted
			return finish()
		}
		if check(true) {
			return finish()
		}
	}
}
