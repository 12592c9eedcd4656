// Package tui is a Bubble Tea front end for a running solve.
//
// The solver runs on its own goroutine and reports into a tsp.LatestProgress;
// the model polls that mailbox with WaitForProgress, so rendering never slows
// the search. The Stop action cancels the solve context; the model keeps
// running until the final DoneMsg arrives.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/tourlab/tsp"
)

// ProgressMsg carries the newest solver snapshot.
type ProgressMsg tsp.Progress

// DoneMsg carries the final result.
type DoneMsg struct{ Result tsp.Result }

// ErrMsg reports a solve that failed before producing a result.
type ErrMsg struct{ Err error }

// Config wires the model to a solve.
type Config struct {
	Method    tsp.Method
	N         int
	TimeLimit time.Duration

	// Cancel is the Stop action (usually the solve context's cancel func).
	Cancel context.CancelFunc

	// Progress is the mailbox the solver reports into.
	Progress *tsp.LatestProgress

	// Done is closed when the solve goroutine returns; it releases WaitForProgress.
	Done <-chan struct{}

	// ExitOnDone quits as soon as the result arrives.
	ExitOnDone bool
}

// Model is the Bubble Tea model for a running solve.
type Model struct {
	cfg     Config
	spinner spinner.Model
	bar     progress.Model

	last     tsp.Progress
	have     bool
	result   *tsp.Result
	err      error
	stopping bool
	quitting bool
}

// New creates a model for cfg.
func New(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		cfg:     cfg,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

// WaitForProgress blocks until the mailbox signals, then returns the newest
// snapshot. It returns nil once done is closed.
func WaitForProgress(lp *tsp.LatestProgress, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-lp.Updates():
			p, _ := lp.Latest()
			return ProgressMsg(p)
		case <-done:
			return nil
		}
	}
}

// Init starts the spinner and the progress poll.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.cfg.Progress != nil {
		cmds = append(cmds, WaitForProgress(m.cfg.Progress, m.cfg.Done))
	}

	return tea.Batch(cmds...)
}

// Running reports whether the solve has not finished yet.
func (m Model) Running() bool { return m.result == nil && m.err == nil }

// Result returns the final result once DoneMsg was received.
func (m Model) Result() (tsp.Result, bool) {
	if m.result == nil {
		return tsp.Result{}, false
	}

	return *m.result, true
}

// Update handles keys, solver messages and spinner ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s", "esc":
			m.stop()
			return m, nil
		case "q", "ctrl+c":
			m.stop()
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.bar.Width = min(60, max(10, msg.Width-20))
		return m, nil

	case ProgressMsg:
		m.last = tsp.Progress(msg)
		m.have = true
		if m.Running() && m.cfg.Progress != nil {
			return m, WaitForProgress(m.cfg.Progress, m.cfg.Done)
		}
		return m, nil

	case DoneMsg:
		r := msg.Result
		m.result = &r
		if m.cfg.ExitOnDone {
			return m, tea.Quit
		}
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.Running() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) stop() {
	if m.stopping || !m.Running() {
		return
	}
	m.stopping = true
	if m.cfg.Cancel != nil {
		m.cfg.Cancel()
	}
}

// View renders the status panel.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tourlab"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %d points", m.cfg.Method, m.cfg.N)))
	b.WriteString("\n\n")

	var (
		phase      = "starting"
		open       = m.last.OpenLength
		closed     = m.last.ClosedLength
		iterations = m.last.Iterations
		elapsed    = m.last.Elapsed
	)
	if m.have {
		phase = m.last.Phase.String()
	}
	if m.result != nil {
		phase = "done (" + m.result.Stop.String() + ")"
		open, closed = m.result.OpenLength, m.result.ClosedLength
		iterations, elapsed = m.result.Iterations, m.result.Elapsed
	}

	status := phase
	if m.Running() {
		status = m.spinner.View() + " " + phase
		if m.stopping {
			status += warnStyle.Render("  stopping…")
		}
	}
	rows := [][2]string{
		{"status", status},
		{"elapsed", elapsed.Truncate(time.Millisecond).String()},
		{"iterations", fmt.Sprintf("%d", iterations)},
		{"open length", fmt.Sprintf("%.6f", open)},
		{"closed length", fmt.Sprintf("%.6f", closed)},
	}
	for _, r := range rows {
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(r[1])
		b.WriteString("\n")
	}

	if m.cfg.TimeLimit > 0 {
		frac := float64(elapsed) / float64(m.cfg.TimeLimit)
		b.WriteString("\n")
		b.WriteString(m.bar.ViewAs(min(1, max(0, frac))))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Running() {
		b.WriteString(dimStyle.Render("s/esc stop · q quit"))
	} else {
		b.WriteString(dimStyle.Render("q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(16)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
