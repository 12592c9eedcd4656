package tsp_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tourlab/tsp"
)

func TestLatestProgress_OverwritesAndNeverBlocks(t *testing.T) {
	lp := tsp.NewLatestProgress()

	_, ok := lp.Latest()
	require.False(t, ok)

	// Nobody reads Updates; Report must still return immediately.
	var i int
	for i = 1; i <= 100; i++ {
		lp.Report(tsp.Progress{Iterations: i})
	}

	p, ok := lp.Latest()
	require.True(t, ok)
	require.Equal(t, 100, p.Iterations)

	select {
	case <-lp.Updates():
	default:
		t.Fatal("expected a pending update")
	}
	select {
	case <-lp.Updates():
		t.Fatal("wake-ups must coalesce")
	default:
	}
}

func TestLatestProgress_ConcurrentReader(t *testing.T) {
	lp := tsp.NewLatestProgress()
	done := make(chan struct{})

	var (
		wg       sync.WaitGroup
		seen     int
		monotone = true
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-lp.Updates():
				p, _ := lp.Latest()
				if p.Iterations < seen {
					monotone = false
				}
				seen = p.Iterations
			case <-done:
				return
			}
		}
	}()

	var i int
	for i = 1; i <= 1000; i++ {
		lp.Report(tsp.Progress{Iterations: i, Elapsed: time.Duration(i)})
	}
	close(done)
	wg.Wait()
	require.True(t, monotone)

	p, ok := lp.Latest()
	require.True(t, ok)
	require.Equal(t, 1000, p.Iterations)
}

func TestMultiSink_SkipsNil(t *testing.T) {
	var a, b []int
	sink := tsp.MultiSink(
		tsp.ProgressFunc(func(p tsp.Progress) { a = append(a, p.Iterations) }),
		nil,
		tsp.ProgressFunc(func(p tsp.Progress) { b = append(b, p.Iterations) }),
	)
	sink.Report(tsp.Progress{Iterations: 1})
	sink.Report(tsp.Progress{Iterations: 2})

	require.Equal(t, []int{1, 2}, a)
	require.Equal(t, []int{1, 2}, b)
}
