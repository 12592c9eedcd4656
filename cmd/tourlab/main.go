// Command tourlab approximates a short tour through the points of a CSV file
// and writes the route, per-leg distances and run metadata to a directory.
//
//	tourlab -input points.csv -method nn+2opt -time 30s -out out/
//
// SIGINT/SIGTERM (or "s" in the -tui view) stop the search; the best tour found
// so far is still exported.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/tourlab/config"
	"github.com/katalvlaran/tourlab/dataset"
	"github.com/katalvlaran/tourlab/export"
	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/logging"
	"github.com/katalvlaran/tourlab/matrix"
	"github.com/katalvlaran/tourlab/metrics"
	"github.com/katalvlaran/tourlab/tsp"
	"github.com/katalvlaran/tourlab/tui"
)

var interruptSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals...)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "tourlab:", err)
		os.Exit(1)
	}
}

// flags holds the command line; only flags the user set override the config.
type flags struct {
	configPath  string
	input       string
	method      string
	start       int
	iters       int
	timeLimit   time.Duration
	metric      string
	out         string
	tui         bool
	metricsAddr string
	logLevel    string
}

func parseFlags(args []string, stderr io.Writer) (flags, map[string]bool, error) {
	var f flags
	fs := flag.NewFlagSet("tourlab", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "tourlab.yaml", "Path to YAML config file (optional)")
	fs.StringVar(&f.input, "input", "", "Point CSV file")
	fs.StringVar(&f.method, "method", "", "nearest-neighbor | nearest-neighbor+2opt (aliases nn, nn+2opt)")
	fs.IntVar(&f.start, "start", 0, "Start point index")
	fs.IntVar(&f.iters, "iters", 0, "Max accepted 2-opt swaps (0 = unlimited)")
	fs.DurationVar(&f.timeLimit, "time", 0, "Time limit, e.g. 30s (0 = unbounded)")
	fs.StringVar(&f.metric, "metric", "", "Objective: closed | open")
	fs.StringVar(&f.out, "out", "", "Output directory")
	fs.BoolVar(&f.tui, "tui", false, "Show the interactive terminal UI")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	fs.StringVar(&f.logLevel, "log-level", "", "debug | info | warn | error")
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	return f, set, nil
}

func (f flags) apply(cfg *config.Config, set map[string]bool) {
	if set["input"] {
		cfg.Input.Path = f.input
	}
	if set["method"] {
		cfg.Solver.Method = f.method
	}
	if set["start"] {
		cfg.Solver.StartIndex = f.start
	}
	if set["iters"] {
		cfg.Solver.MaxIterations = f.iters
	}
	if set["time"] {
		cfg.Solver.TimeLimit = config.Duration(f.timeLimit)
	}
	if set["metric"] {
		cfg.Solver.Metric = f.metric
	}
	if set["out"] {
		cfg.Output.Dir = f.out
	}
	if set["tui"] {
		cfg.UI.TUI = f.tui
	}
	if set["metrics-addr"] {
		cfg.Metrics.Addr = f.metricsAddr
	}
	if set["log-level"] {
		cfg.Log.Level = f.logLevel
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	f, set, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(cfg, set)
	if err = cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input.Path == "" {
		return errors.New("no input file (use -input or input.path)")
	}

	base, err := logging.New(logging.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty && !cfg.UI.TUI, Out: stderr})
	if err != nil {
		return err
	}
	if cfg.UI.TUI {
		// The TUI owns the terminal; only problems get through.
		base = base.Level(max(base.GetLevel(), zerolog.WarnLevel))
	}
	runID := uuid.NewString()
	log := logging.WithRun(base, runID)

	// --- Input.
	ds, err := dataset.Load(cfg.Input.Path, dataset.Options{
		Delimiter:       []rune(cfg.Input.Delimiter)[0],
		RequiredColumns: cfg.Input.RequiredColumns,
		IDColumn:        cfg.Input.IDColumn,
		LatColumn:       cfg.Input.LatColumn,
		LonColumn:       cfg.Input.LonColumn,
		ScaleDegrees:    cfg.Input.ScaleDegrees,
	})
	if err != nil {
		return err
	}
	proj, err := geo.ParseProjection(cfg.Input.Projection)
	if err != nil {
		return err
	}
	points, err := geo.Project(ds.Points, proj)
	if err != nil {
		return err
	}
	log.Info().
		Str("input", cfg.Input.Path).
		Int("points", len(points)).
		Str("delimiter", string(ds.Delimiter)).
		Stringer("projection", proj).
		Msg("dataset loaded")

	// The time budget covers the matrix build, as it does inside tsp.Solve.
	started := time.Now()
	xs, ys := geo.Coords(points)
	dist, err := matrix.NewEuclidean(xs, ys)
	if err != nil {
		return fmt.Errorf("distance matrix: %w", err)
	}

	// --- Solver wiring.
	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}
	opts.Logger = &log
	opts.StartedAt = started

	latest := tsp.NewLatestProgress()
	sinks := []tsp.ProgressSink{latest}

	var sink *metrics.Sink
	reg := prometheus.NewRegistry()
	if cfg.Metrics.Addr != "" {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		sink = metrics.NewSink(reg, string(opts.Method))
		sinks = append(sinks, sink)
	}
	opts.Progress = tsp.MultiSink(sinks...)

	g, gctx := errgroup.WithContext(ctx)
	solveCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	var (
		res      tsp.Result
		solveErr error
		done     = make(chan struct{})
		program  *tea.Program
	)
	if cfg.UI.TUI {
		program = tea.NewProgram(tui.New(tui.Config{
			Method:    opts.Method,
			N:         len(points),
			TimeLimit: opts.TimeLimit,
			Cancel:    cancel,
			Progress:  latest,
			Done:      done,
		}), tea.WithOutput(stderr))
	}

	log.Info().
		Str("method", string(opts.Method)).
		Stringer("metric", opts.Metric).
		Int("start", opts.StartIndex).
		Int("max_iterations", opts.MaxIterations).
		Dur("time_limit", opts.TimeLimit).
		Msg("solve started")

	g.Go(func() error {
		defer close(done)
		res, solveErr = solveMatrix(solveCtx, dist, opts, sink)
		if program != nil {
			if solveErr != nil {
				program.Send(tui.ErrMsg{Err: solveErr})
			} else {
				program.Send(tui.DoneMsg{Result: res})
			}
		}

		return solveErr
	})

	if program != nil {
		g.Go(func() error {
			_, err := program.Run()
			cancel()
			return err
		})
	} else {
		g.Go(func() error {
			printProgress(log, latest, done, opts.ProgressInterval)
			return nil
		})
	}

	if cfg.Metrics.Addr != "" {
		runMetricsServer(g, log, cfg.Metrics.Addr, reg, done)
	}

	if err = g.Wait(); err != nil {
		return err
	}

	log.Info().
		Stringer("stop", res.Stop).
		Int("iterations", res.Iterations).
		Float64("open_length", res.OpenLength).
		Float64("closed_length", res.ClosedLength).
		Dur("elapsed", res.Elapsed).
		Msg("solve finished")

	// --- Output.
	files, err := export.WriteAll(cfg.Output.Dir, res, ds.Points, dist, export.AllOptions{
		GeoJSON:    cfg.Output.GeoJSON,
		GeoPoints:  ds.Points,
		Properties: map[string]any{"run_id": runID},
	})
	if err != nil {
		return err
	}
	log.Info().Strs("files", files).Msg("results written")

	return nil
}

// printProgress logs the newest snapshot at most once per interval until done.
func printProgress(log zerolog.Logger, latest *tsp.LatestProgress, done <-chan struct{}, interval time.Duration) {
	if interval <= 0 {
		interval = tsp.DefaultProgressInterval
	}
	s := rate.Sometimes{Interval: interval}
	for {
		select {
		case <-done:
			return
		case <-latest.Updates():
			s.Do(func() {
				p, _ := latest.Latest()
				log.Info().
					Stringer("phase", p.Phase).
					Int("iterations", p.Iterations).
					Float64("open_length", p.OpenLength).
					Float64("closed_length", p.ClosedLength).
					Dur("elapsed", p.Elapsed).
					Msg("progress")
			})
		}
	}
}

// runMetricsServer serves /metrics until the solve is done.
// solveMatrix runs the solve and records its outcome on sink (if any). It
// returns before done is closed, so the outcome is on /metrics while the
// server is still up.
func solveMatrix(ctx context.Context, dist *matrix.Dense, opts tsp.Options, sink *metrics.Sink) (tsp.Result, error) {
	res, err := tsp.SolveMatrix(ctx, dist, opts)
	if err == nil && sink != nil {
		sink.Observe(res)
	}

	return res, err
}

func runMetricsServer(g *errgroup.Group, log zerolog.Logger, addr string, reg *prometheus.Registry, done <-chan struct{}) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-done
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("graceful shutdown metrics server")
		return srv.Shutdown(shutdownCtx)
	})
}
