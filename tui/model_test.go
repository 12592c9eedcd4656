package tui_test

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/tsp"
	"github.com/katalvlaran/tourlab/tui"
)

func key(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newModel(cancels *int) tui.Model {
	return tui.New(tui.Config{
		Method:    tsp.NearestNeighbor2Opt,
		N:         42,
		TimeLimit: 10 * time.Second,
		Cancel:    func() { *cancels++ },
	})
}

func TestModel_ProgressRendered(t *testing.T) {
	var cancels int
	m := newModel(&cancels)

	next, cmd := m.Update(tui.ProgressMsg{Phase: tsp.PhaseImprovement, Iterations: 17, ClosedLength: 123.5, Elapsed: time.Second})
	require.Nil(t, cmd) // no mailbox configured
	view := next.View()
	require.Contains(t, view, "improvement")
	require.Contains(t, view, "17")
	require.Contains(t, view, "123.500000")
	require.Contains(t, view, "42 points")
}

func TestModel_StopCancelsOnce(t *testing.T) {
	var cancels int
	var m tea.Model = newModel(&cancels)

	m, _ = m.Update(key("s"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, 1, cancels)
	require.True(t, m.(tui.Model).Running())
	require.Contains(t, m.View(), "stopping")
}

func TestModel_DoneThenQuit(t *testing.T) {
	var cancels int
	var m tea.Model = newModel(&cancels)

	m, _ = m.Update(tui.DoneMsg{Result: tsp.Result{Iterations: 3, ClosedLength: 9, Stop: tsp.StopTimeLimit}})
	require.False(t, m.(tui.Model).Running())
	res, ok := m.(tui.Model).Result()
	require.True(t, ok)
	require.Equal(t, 3, res.Iterations)
	require.Contains(t, m.View(), "time-limit")

	// Stop after completion is a no-op; quit returns tea.Quit.
	m, _ = m.Update(key("s"))
	require.Zero(t, cancels)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_QuitWhileRunningCancels(t *testing.T) {
	var cancels int
	m := newModel(&cancels)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Equal(t, 1, cancels)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ErrQuits(t *testing.T) {
	var cancels int
	m := newModel(&cancels)

	next, cmd := m.Update(tui.ErrMsg{Err: errors.New("boom")})
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Contains(t, next.View(), "boom")
}

func TestWaitForProgress(t *testing.T) {
	lp := tsp.NewLatestProgress()
	done := make(chan struct{})

	lp.Report(tsp.Progress{Iterations: 1})
	lp.Report(tsp.Progress{Iterations: 2})
	msg := tui.WaitForProgress(lp, done)()
	require.Equal(t, tui.ProgressMsg(tsp.Progress{Iterations: 2}), msg)

	close(done)
	require.Nil(t, tui.WaitForProgress(lp, done)())
}
