// Package tsp approximates Euclidean Travelling Salesman tours over a fixed
// point set under a time or iteration budget.
//
// The engine is a two-stage heuristic on a dense distance matrix:
//
//   - NearestNeighborTour: greedy construction from a start index.
//     Deterministic: ties go to the lowest point index.
//     Complexity: O(n²).
//
//   - TwoOpt: first-improvement 2-opt local search, applied in place.
//     Deterministic scan order (a ascending, b ascending), restart after every
//     accepted swap, open or closed tour objective.
//     Complexity: O(n²) per scan pass.
//
// Solve ties both together behind a single call. It is single-threaded and
// synchronous; cancellation (via context.Context) and the time budget are
// observed cooperatively at checkpoints placed after every inner-loop pass and
// after every accepted swap, and progress snapshots are pushed to a
// ProgressSink that must never block.
//
// Budget exhaustion and cancellation are not errors: Solve returns the best
// tour found so far with Result.Stop describing why it stopped. Only malformed
// input (unknown method, bad start index, negative budgets, size mismatch) is
// reported as an error, and every such error matches ErrInvalidArgument.
//
// Use this package for instances of a few thousand points (n≈6000 keeps the
// matrix at ~288 MB of float64).
package tsp
