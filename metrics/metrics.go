// Package metrics exposes solver progress and outcomes as Prometheus metrics.
//
// A Sink is a tsp.ProgressSink: every snapshot overwrites the current-run
// gauges, and Observe records the finished solve in the counters/histograms.
// Report only sets gauges, so it is cheap enough to be called from the solver
// goroutine directly.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tourlab/tsp"
)

// Namespace prefixes every metric name.
const Namespace = "tourlab"

// Sink publishes progress gauges and solve outcomes for one method.
type Sink struct {
	method string

	bestOpen   prometheus.Gauge
	bestClosed prometheus.Gauge
	iterations prometheus.Gauge
	elapsed    prometheus.Gauge

	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ tsp.ProgressSink = (*Sink)(nil)

// NewSink registers the tourlab collectors on reg and returns a Sink labelled
// with method. Registering twice on the same registry panics, as promauto does.
func NewSink(reg prometheus.Registerer, method string) *Sink {
	f := promauto.With(reg)

	return &Sink{
		method: method,
		bestOpen: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "best_open_length",
			Help:      "Open length of the current tour of the running solve",
		}),
		bestClosed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "best_closed_length",
			Help:      "Closed length of the current tour of the running solve",
		}),
		iterations: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "iterations",
			Help:      "Accepted 2-opt swaps in the running solve",
		}),
		elapsed: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "elapsed_seconds",
			Help:      "Wall-clock time of the running solve",
		}),
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solves_total",
			Help:      "Finished solves by method and stop reason",
		}, []string{"method", "stop"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Solve wall-clock duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		}, []string{"method"}),
	}
}

// Report implements tsp.ProgressSink.
func (s *Sink) Report(p tsp.Progress) {
	s.bestOpen.Set(p.OpenLength)
	s.bestClosed.Set(p.ClosedLength)
	s.iterations.Set(float64(p.Iterations))
	s.elapsed.Set(p.Elapsed.Seconds())
}

// Observe records a finished solve.
func (s *Sink) Observe(r tsp.Result) {
	s.solves.WithLabelValues(s.method, r.Stop.String()).Inc()
	s.duration.WithLabelValues(s.method).Observe(r.Elapsed.Seconds())
	s.Report(tsp.Progress{
		Phase:        tsp.PhaseDone,
		OpenLength:   r.OpenLength,
		ClosedLength: r.ClosedLength,
		Elapsed:      r.Elapsed,
		Iterations:   r.Iterations,
	})
}
