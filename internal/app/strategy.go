package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// Mode selects where sampling runs.
type Mode string

const (
	ModeAsync Mode = "async"
	ModeSync  Mode = "sync"
)

// ParseMode validates a mode name from config.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAsync, ModeSync:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown sampling mode %q (use async or sync)", s)
	}
}

// Sampler produces one Snapshot per call.
type Sampler interface {
	Sample(ctx context.Context) (metrics.Snapshot, error)
}

// Strategy decides where and when the Sampler runs.
type Strategy interface {
	// Start begins any background work.
	Start(ctx context.Context)
	// Next returns the newest sample. ok is false when there is nothing
	// new to show, which is not a failure.
	Next(ctx context.Context) (snapshot metrics.Snapshot, ok bool, err error)
	// Stop ends background work. Safe to call more than once.
	Stop()
}

// NewStrategy builds the strategy for mode.
func NewStrategy(mode Mode, sampler Sampler, interval, timeout time.Duration, log logger.Logger) Strategy {
	if mode == ModeSync {
		return NewSyncStrategy(sampler, timeout)
	}
	return NewAsyncStrategy(sampler, interval, timeout, log)
}

// SyncStrategy samples on the caller's goroutine, bounded by a timeout.
type SyncStrategy struct {
	sampler Sampler
	timeout time.Duration
}

// NewSyncStrategy creates a SyncStrategy. A zero timeout means no bound.
func NewSyncStrategy(sampler Sampler, timeout time.Duration) *SyncStrategy {
	return &SyncStrategy{sampler: sampler, timeout: timeout}
}

func (s *SyncStrategy) Start(context.Context) {}

func (s *SyncStrategy) Next(ctx context.Context) (metrics.Snapshot, bool, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	snap, err := s.sampler.Sample(ctx)
	if err != nil {
		return metrics.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *SyncStrategy) Stop() {}

// AsyncStrategy samples on a worker goroutine every interval and publishes
// into a Mailbox. Next never blocks.
type AsyncStrategy struct {
	sampler  Sampler
	interval time.Duration
	timeout  time.Duration
	log      logger.Logger

	mailbox Mailbox
	kick    chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAsyncStrategy creates an AsyncStrategy.
func NewAsyncStrategy(sampler Sampler, interval, timeout time.Duration, log logger.Logger) *AsyncStrategy {
	if log == nil {
		log = logger.Noop()
	}
	return &AsyncStrategy{
		sampler:  sampler,
		interval: interval,
		timeout:  timeout,
		log:      log,
		kick:     make(chan struct{}, 1),
	}
}

// Start takes the first sample before returning, so the first Next has
// something to show, then hands off to the worker.
func (s *AsyncStrategy) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.sampleOnce(ctx)

	s.wg.Add(1)
	go s.run(ctx)
}

func (s *AsyncStrategy) Next(context.Context) (metrics.Snapshot, bool, error) {
	return s.mailbox.Take()
}

// Kick asks the worker for an extra sample right away.
func (s *AsyncStrategy) Kick() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

func (s *AsyncStrategy) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
}

func (s *AsyncStrategy) run(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.kick:
			s.sampleOnce(ctx)
		case <-timer.C:
			s.sampleOnce(ctx)
			// Re-arm after the sample so a slow one delays the next
			// instead of stacking up.
			timer.Reset(s.interval)
		}
	}
}

func (s *AsyncStrategy) sampleOnce(ctx context.Context) {
	sampleCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		sampleCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snap, err := s.sampler.Sample(sampleCtx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.log.Debug("background sample failed: %v", err)
	}
	s.mailbox.Put(snap, err)
}
