package app

import (
	"context"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// DefaultInterval is the sampling period when none is configured.
const DefaultInterval = time.Second

// Renderer paints snapshots and applies font sizes and palettes.
type Renderer interface {
	DisplaySnapshot(snapshot metrics.Snapshot)
	ApplyFontSizes(sizes scale.Result)
	ApplyPalette(palette theme.Palette)
}

// SampleErrorRenderer is implemented by renderers that want to mark the
// display stale. They get the error when a sample fails and nil once
// sampling recovers.
type SampleErrorRenderer interface {
	DisplaySampleError(err error)
}

// Config wires a Loop together.
type Config struct {
	Strategy  Strategy
	Renderer  Renderer
	Scheduler Scheduler
	Scale     *scale.Calculator
	Theme     *theme.Controller
	Interval  time.Duration
	Logger    logger.Logger

	// Now is the clock used for NextTick. Defaults to time.Now.
	Now func() time.Time
}

// Loop schedules sampling and dispatches window events.
type Loop struct {
	strategy  Strategy
	renderer  Renderer
	scheduler Scheduler
	scale     *scale.Calculator
	theme     *theme.Controller
	interval  time.Duration
	log       logger.Logger
	now       func() time.Time

	ctx      context.Context
	started  bool
	stopped  bool
	last     metrics.Snapshot
	haveLast bool
	nextTick time.Time
	failures int
	failing  bool
}

// NewLoop creates a Loop. Missing optional pieces get defaults.
func NewLoop(cfg Config) *Loop {
	l := &Loop{
		strategy:  cfg.Strategy,
		renderer:  cfg.Renderer,
		scheduler: cfg.Scheduler,
		scale:     cfg.Scale,
		theme:     cfg.Theme,
		interval:  cfg.Interval,
		log:       cfg.Logger,
		now:       cfg.Now,
		ctx:       context.Background(),
	}
	if l.interval <= 0 {
		l.interval = DefaultInterval
	}
	if l.scale == nil {
		l.scale = scale.NewCalculator(scale.DefaultConfig())
	}
	if l.theme == nil {
		l.theme = theme.NewController(theme.Light)
	}
	if l.log == nil {
		l.log = logger.Noop()
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Start applies the current palette, samples once right away and
// schedules the first tick. Calling it again has no effect.
func (l *Loop) Start(ctx context.Context) {
	if l.started {
		return
	}
	l.started = true
	l.ctx = ctx

	l.renderer.ApplyPalette(l.theme.CurrentPalette())
	l.strategy.Start(ctx)
	l.sample()
	l.schedule()
}

// Stop ends the tick chain and any background sampling.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	l.strategy.Stop()
}

// Refresh samples immediately without moving the next scheduled tick.
func (l *Loop) Refresh() {
	if !l.running() {
		return
	}
	if k, ok := l.strategy.(interface{ Kick() }); ok {
		k.Kick()
	}
	l.sample()
}

// OnResize recomputes font sizes for w and pushes them to the renderer.
// Each call fully replaces the previous result; nothing is queued.
func (l *Loop) OnResize(w scale.WindowSize) scale.Result {
	if l.scale.IsDegenerate(w) {
		l.log.Debug("degenerate window size %.1fx%.1f, clamping scale", w.Width, w.Height)
	}
	sizes := l.scale.Scale(w)
	l.renderer.ApplyFontSizes(sizes)
	return sizes
}

// OnThemeToggle switches to requested and pushes its palette.
// An undefined theme is rejected and the current palette stays.
func (l *Loop) OnThemeToggle(requested theme.Theme) error {
	if _, err := l.theme.Toggle(requested); err != nil {
		l.log.Warn("theme toggle rejected: %s", errors.Summary(err))
		return err
	}
	l.renderer.ApplyPalette(l.theme.CurrentPalette())
	return nil
}

// Snapshot returns the last successfully displayed snapshot.
func (l *Loop) Snapshot() (metrics.Snapshot, bool) {
	return l.last, l.haveLast
}

// NextTick returns when the next scheduled sample is due.
func (l *Loop) NextTick() time.Time {
	return l.nextTick
}

// Theme returns the active theme.
func (l *Loop) Theme() theme.Theme {
	return l.theme.Current()
}

// Failures returns how many samples have failed since Start.
func (l *Loop) Failures() int {
	return l.failures
}

// Interval returns the sampling period.
func (l *Loop) Interval() time.Duration {
	return l.interval
}

func (l *Loop) running() bool {
	return l.started && !l.stopped && l.ctx.Err() == nil
}

func (l *Loop) schedule() {
	l.nextTick = l.now().Add(l.interval)
	l.scheduler.After(l.interval, l.tick)
}

func (l *Loop) tick() {
	if !l.running() {
		return
	}
	l.sample()
	// Rescheduled after the sample completes: a slow tick pushes the next
	// one out rather than overlapping it.
	l.schedule()
}

func (l *Loop) sample() {
	snap, ok, err := l.strategy.Next(l.ctx)
	if err != nil {
		l.failures++
		l.failing = true
		l.log.Warn("sample failed, keeping last values: %s", errors.Summary(err))
		if r, ok := l.renderer.(SampleErrorRenderer); ok {
			r.DisplaySampleError(err)
		}
		return
	}
	if !ok {
		return
	}

	if l.failing {
		l.failing = false
		l.log.Info("sampling recovered")
		if r, ok := l.renderer.(SampleErrorRenderer); ok {
			r.DisplaySampleError(nil)
		}
	}
	l.last = snap
	l.haveLast = true
	l.renderer.DisplaySnapshot(snap)
}
