package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/config"
	"github.com/katalvlaran/tourlab/tsp"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tourlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	require.Equal(t, tsp.NearestNeighbor2Opt, opts.Method)
	require.Equal(t, tsp.MetricClosed, opts.Metric)
	require.Equal(t, tsp.DefaultMaxIterations, opts.MaxIterations)
}

func TestLoad_PartialYAML(t *testing.T) {
	path := writeFile(t, `
input:
  path: points.csv
  projection: equirectangular
solver:
  method: nn
  time_limit: 1m30s
  progress_interval: 2
  metric: open
output:
  geojson: false
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "points.csv", cfg.Input.Path)
	require.Equal(t, ";", cfg.Input.Delimiter)
	require.Equal(t, "latitude_dd", cfg.Input.LatColumn)
	require.Equal(t, "out", cfg.Output.Dir)
	require.False(t, cfg.Output.GeoJSON)

	opts, err := cfg.SolverOptions()
	require.NoError(t, err)
	require.Equal(t, tsp.NearestNeighbor, opts.Method)
	require.Equal(t, tsp.MetricOpen, opts.Metric)
	require.Equal(t, 90*time.Second, opts.TimeLimit)
	require.Equal(t, 2*time.Second, opts.ProgressInterval)
	require.Equal(t, tsp.DefaultEps, opts.Eps)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TOURLAB_METHOD", "nearest-neighbor")
	t.Setenv("TOURLAB_MAX_ITERATIONS", "25")
	t.Setenv("TOURLAB_TIME_LIMIT", "45s")
	t.Setenv("TOURLAB_OUTPUT_DIR", "/tmp/run")

	path := writeFile(t, "solver:\n  method: nn+2opt\n  max_iterations: 10\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "nearest-neighbor", cfg.Solver.Method)
	require.Equal(t, 25, cfg.Solver.MaxIterations)
	require.Equal(t, 45*time.Second, cfg.Solver.TimeLimit.Std())
	require.Equal(t, "/tmp/run", cfg.Output.Dir)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("TOURLAB_START_INDEX", "first")
	_, err := config.Load("")
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := config.Load(writeFile(t, "solver:\n  time_limit: soon\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	cfg.Solver.Method = "simulated-annealing"
	require.ErrorIs(t, cfg.Validate(), tsp.ErrUnknownMethod)

	cfg = config.Default()
	cfg.Solver.MaxIterations = -5
	require.ErrorIs(t, cfg.Validate(), tsp.ErrInvalidBudget)

	cfg = config.Default()
	cfg.Input.Projection = "lambert"
	require.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Input.Delimiter = ";;"
	require.Error(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tourlab.yaml")
	cfg := config.Default()
	cfg.Solver.TimeLimit = config.Duration(3 * time.Minute)
	require.NoError(t, config.Save(path, cfg))

	got, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
