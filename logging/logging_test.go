package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/logging"
)

func TestNew_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Level: "WARN", Out: &buf})
	require.NoError(t, err)

	log.Info().Msg("hidden")
	rl := logging.WithRun(log, "r-1")
	rl.Warn().Int("n", 3).Msg("shown")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "shown", rec["message"])
	require.Equal(t, "warn", rec["level"])
	require.Equal(t, "r-1", rec["run_id"])
	require.EqualValues(t, 3, rec["n"])
	require.Contains(t, rec, "time")
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New(logging.Options{Pretty: true, Out: &buf})
	require.NoError(t, err)

	log.Info().Str("method", "nn").Msg("solve started")
	require.Contains(t, buf.String(), "solve started")
	require.Contains(t, buf.String(), "method=")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	require.Error(t, err)
}
