package app

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// recordingRenderer remembers every call it receives.
type recordingRenderer struct {
	snapshots []metrics.Snapshot
	fonts     []scale.Result
	palettes  []theme.Palette
	errs      []error
}

func (r *recordingRenderer) DisplaySnapshot(s metrics.Snapshot) { r.snapshots = append(r.snapshots, s) }
func (r *recordingRenderer) ApplyFontSizes(f scale.Result)      { r.fonts = append(r.fonts, f) }
func (r *recordingRenderer) ApplyPalette(p theme.Palette)       { r.palettes = append(r.palettes, p) }
func (r *recordingRenderer) DisplaySampleError(err error)       { r.errs = append(r.errs, err) }

// manualScheduler holds callbacks until the test fires them.
type manualScheduler struct {
	pending []scheduled
}

type scheduled struct {
	d  time.Duration
	fn func()
}

func (s *manualScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, scheduled{d: d, fn: fn})
}

// fire runs the oldest pending callback. Returns false if none is pending.
func (s *manualScheduler) fire() bool {
	if len(s.pending) == 0 {
		return false
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	next.fn()
	return true
}

// scriptedSampler returns queued results in order, then repeats the last.
type scriptedSampler struct {
	mu      sync.Mutex
	results []sampleResult
	calls   int
	delay   time.Duration
}

type sampleResult struct {
	snap metrics.Snapshot
	err  error
}

func (s *scriptedSampler) Sample(ctx context.Context) (metrics.Snapshot, error) {
	s.mu.Lock()
	delay := s.delay
	s.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return metrics.Snapshot{}, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	r := s.results[idx]
	return r.snap, r.err
}

func (s *scriptedSampler) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func snap(cpu float64) metrics.Snapshot {
	return metrics.Snapshot{CPUPercent: cpu, RAMTotalGB: 16}
}
