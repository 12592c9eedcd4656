// Package config loads the tourlab run configuration.
//
// Resolution order: built-in defaults, then the YAML file (a missing file is
// not an error), then TOURLAB_* environment variables. Command-line flags are
// applied last by cmd/tourlab.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tourlab/geo"
	"github.com/katalvlaran/tourlab/tsp"
)

// Duration is a time.Duration written as a Go duration string ("30s") in YAML.
type Duration time.Duration

// UnmarshalYAML accepts "1m30s" style strings and bare integers (seconds).
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}
	v, err := parseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(v)

	return nil
}

// MarshalYAML writes the duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the time.Duration value.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}

	return time.ParseDuration(s)
}

// InputConfig describes the point CSV.
type InputConfig struct {
	Path            string   `yaml:"path"`
	Delimiter       string   `yaml:"delimiter"`
	IDColumn        string   `yaml:"id_column"`
	LatColumn       string   `yaml:"lat_column"`
	LonColumn       string   `yaml:"lon_column"`
	RequiredColumns []string `yaml:"required_columns,omitempty"`
	ScaleDegrees    bool     `yaml:"scale_degrees"`
	Projection      string   `yaml:"projection"`
}

// SolverConfig mirrors tsp.Options in serialisable form.
type SolverConfig struct {
	Method           string   `yaml:"method"`
	StartIndex       int      `yaml:"start_index"`
	MaxIterations    int      `yaml:"max_iterations"`
	TimeLimit        Duration `yaml:"time_limit"`
	Metric           string   `yaml:"metric"`
	Eps              float64  `yaml:"eps"`
	ProgressInterval Duration `yaml:"progress_interval"`
}

// OutputConfig selects where and what to export.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	GeoJSON bool   `yaml:"geojson"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// UIConfig selects the interactive terminal UI.
type UIConfig struct {
	TUI bool `yaml:"tui"`
}

// Config is the root configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Solver  SolverConfig  `yaml:"solver"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	UI      UIConfig      `yaml:"ui"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := tsp.DefaultOptions()
	cfg := &Config{
		Input: InputConfig{
			Delimiter:  ";",
			IDColumn:   "id",
			LatColumn:  "latitude_dd",
			LonColumn:  "longitude_dd",
			Projection: geo.ProjectionNone.String(),
		},
		Solver: SolverConfig{
			Method:           string(opts.Method),
			StartIndex:       opts.StartIndex,
			MaxIterations:    opts.MaxIterations,
			TimeLimit:        Duration(opts.TimeLimit),
			Metric:           opts.Metric.String(),
			Eps:              opts.Eps,
			ProgressInterval: Duration(opts.ProgressInterval),
		},
		Output: OutputConfig{Dir: "out", GeoJSON: true},
		Log:    LogConfig{Level: "info", Pretty: true},
	}

	return cfg
}

// Load reads a config from path. If the file does not exist, defaults are used.
// Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err = yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}
	applyDefaults(cfg)
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path, creating directories as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// applyDefaults refills fields a partial YAML document left empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = def.Input.Delimiter
	}
	if cfg.Input.IDColumn == "" {
		cfg.Input.IDColumn = def.Input.IDColumn
	}
	if cfg.Input.LatColumn == "" {
		cfg.Input.LatColumn = def.Input.LatColumn
	}
	if cfg.Input.LonColumn == "" {
		cfg.Input.LonColumn = def.Input.LonColumn
	}
	if cfg.Input.Projection == "" {
		cfg.Input.Projection = def.Input.Projection
	}
	if cfg.Solver.Method == "" {
		cfg.Solver.Method = def.Solver.Method
	}
	if cfg.Solver.Metric == "" {
		cfg.Solver.Metric = def.Solver.Metric
	}
	if cfg.Solver.Eps == 0 {
		cfg.Solver.Eps = def.Solver.Eps
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = def.Output.Dir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// lookupFunc matches os.LookupEnv.
type lookupFunc func(string) (string, bool)

// applyEnv applies TOURLAB_* overrides.
func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		*dst = n

		return nil
	}

	str("TOURLAB_INPUT", &cfg.Input.Path)
	str("TOURLAB_METHOD", &cfg.Solver.Method)
	str("TOURLAB_METRIC", &cfg.Solver.Metric)
	str("TOURLAB_LOG_LEVEL", &cfg.Log.Level)
	str("TOURLAB_OUTPUT_DIR", &cfg.Output.Dir)
	str("TOURLAB_METRICS_ADDR", &cfg.Metrics.Addr)
	if err := num("TOURLAB_START_INDEX", &cfg.Solver.StartIndex); err != nil {
		return err
	}
	if err := num("TOURLAB_MAX_ITERATIONS", &cfg.Solver.MaxIterations); err != nil {
		return err
	}
	if v, ok := lookup("TOURLAB_TIME_LIMIT"); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("config: TOURLAB_TIME_LIMIT: %w", err)
		}
		cfg.Solver.TimeLimit = Duration(d)
	}

	return nil
}

// SolverOptions converts the solver section into tsp.Options.
// Progress, Logger and SnapshotTour are left for the caller.
func (c *Config) SolverOptions() (tsp.Options, error) {
	method, err := tsp.ParseMethod(c.Solver.Method)
	if err != nil {
		return tsp.Options{}, err
	}
	metric, err := tsp.ParseMetric(c.Solver.Metric)
	if err != nil {
		return tsp.Options{}, err
	}
	opts := tsp.Options{
		Method:           method,
		StartIndex:       c.Solver.StartIndex,
		MaxIterations:    c.Solver.MaxIterations,
		TimeLimit:        c.Solver.TimeLimit.Std(),
		Metric:           metric,
		Eps:              c.Solver.Eps,
		ProgressInterval: c.Solver.ProgressInterval.Std(),
	}

	return opts, opts.Validate()
}

// Validate checks every section that can be checked without the input data.
func (c *Config) Validate() error {
	if _, err := c.SolverOptions(); err != nil {
		return fmt.Errorf("config: solver: %w", err)
	}
	if _, err := geo.ParseProjection(c.Input.Projection); err != nil {
		return fmt.Errorf("config: input: %w", err)
	}
	if len([]rune(c.Input.Delimiter)) != 1 {
		return fmt.Errorf("config: input: delimiter %q must be a single character", c.Input.Delimiter)
	}

	return nil
}
