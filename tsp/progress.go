// Package tsp - progress reporting.
//
// The solver pushes Progress snapshots into a ProgressSink synchronously from
// its own goroutine. Sinks must not block; LatestProgress is the canonical
// bridge to a consumer running elsewhere (a UI, a console printer): it keeps
// only the newest snapshot, so a slow reader never stalls the search.
package tsp

import "sync"

// ProgressSink receives progress snapshots.
type ProgressSink interface {
	Report(Progress)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(Progress)

// Report calls f(p).
func (f ProgressFunc) Report(p Progress) { f(p) }

// MultiSink fans a snapshot out to every non-nil sink, in order.
func MultiSink(sinks ...ProgressSink) ProgressSink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

type multiSink []ProgressSink

func (m multiSink) Report(p Progress) {
	for _, s := range m {
		s.Report(p)
	}
}

type nopSink struct{}

func (nopSink) Report(Progress) {}

// LatestProgress is a ProgressSink with overwrite-latest semantics.
//
// Report never blocks. Updates delivers at most one pending wake-up; a reader
// that wakes calls Latest to fetch the newest snapshot, skipping any it missed.
// The zero value is not usable; call NewLatestProgress.
type LatestProgress struct {
	mu     sync.Mutex
	latest Progress
	ok     bool
	notify chan struct{}
}

// NewLatestProgress returns an empty LatestProgress.
func NewLatestProgress() *LatestProgress {
	return &LatestProgress{notify: make(chan struct{}, 1)}
}

// Report stores p as the newest snapshot and signals Updates without blocking.
func (l *LatestProgress) Report(p Progress) {
	l.mu.Lock()
	l.latest = p
	l.ok = true
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Latest returns the newest snapshot and whether any has been reported.
func (l *LatestProgress) Latest() (Progress, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.latest, l.ok
}

// Updates returns the wake-up channel. It is never closed.
func (l *LatestProgress) Updates() <-chan struct{} { return l.notify }
