package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysmon/internal/app"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// Default cell geometry in display units. 80x24 cells is 480x320 units.
const (
	DefaultCellWidth  = 6.0
	DefaultCellHeight = 13.34
)

// Options configures the dashboard.
type Options struct {
	Title      string
	SourceName string // shown in the header, e.g. "local" or an SSH alias

	Strategy app.Strategy
	Scale    *scale.Calculator
	Theme    theme.Theme
	Interval time.Duration
	Logger   logger.Logger

	CellWidth  float64
	CellHeight float64
	MinWidth   float64 // in display units
	MinHeight  float64

	// Now is the clock used for "updated Ns ago". Defaults to time.Now.
	Now func() time.Time
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	loop    *app.Loop
	surface *surface
	sched   *teaScheduler
	scale   *scale.Calculator
	now     func() time.Time

	title      string
	sourceName string
	cellWidth  float64
	cellHeight float64
	minSize    scale.WindowSize

	width    int // terminal columns
	height   int // terminal rows
	darkMode bool
	showHelp bool
	quitting bool

	// Gauge body viewport, scrolls when large body spacing overflows
	body      viewport.Model
	bodyReady bool
}

// NewModel creates a dashboard. Nothing is sampled until Init.
func NewModel(opts Options) *Model {
	if opts.Title == "" {
		opts.Title = "System Monitor"
	}
	if opts.Scale == nil {
		opts.Scale = scale.NewCalculator(scale.DefaultConfig())
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = DefaultCellWidth
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = DefaultCellHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	initial := opts.Theme
	if !initial.Valid() {
		initial = theme.Light
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		ctx:        ctx,
		cancel:     cancel,
		surface:    &surface{now: opts.Now, palette: initial.Palette()},
		sched:      &teaScheduler{},
		scale:      opts.Scale,
		now:        opts.Now,
		title:      opts.Title,
		sourceName: opts.SourceName,
		cellWidth:  opts.CellWidth,
		cellHeight: opts.CellHeight,
		minSize:    scale.WindowSize{Width: opts.MinWidth, Height: opts.MinHeight},
		darkMode:   initial == theme.Dark,
	}

	m.loop = app.NewLoop(app.Config{
		Strategy:  opts.Strategy,
		Renderer:  m.surface,
		Scheduler: m.sched,
		Scale:     opts.Scale,
		Theme:     theme.NewController(initial),
		Interval:  opts.Interval,
		Logger:    opts.Logger,
		Now:       opts.Now,
	})

	return m
}

// Init applies the theme, takes the first sample and starts the tick chain.
func (m *Model) Init() tea.Cmd {
	m.loop.Start(m.ctx)
	return tea.Batch(tea.SetWindowTitle(m.title), m.sched.drain())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case callbackMsg:
		msg.fn()
		return m, m.sched.drain()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.loop.OnResize(m.WindowSize())
		m.resizeBody()
		return m, nil

	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, tea.Batch(cmd, m.sched.drain())
		}
		if m.bodyReady {
			var bodyCmd tea.Cmd
			m.body, bodyCmd = m.body.Update(msg)
			return m, bodyCmd
		}
	}

	return m, nil
}

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// Loop exposes the underlying loop.
func (m *Model) Loop() *app.Loop {
	return m.loop
}

// WindowSize returns the terminal size in display units.
func (m *Model) WindowSize() scale.WindowSize {
	return scale.WindowSize{
		Width:  float64(m.width) * m.cellWidth,
		Height: float64(m.height) * m.cellHeight,
	}
}

// TooSmall reports whether the terminal is below the minimum window size.
func (m *Model) TooSmall() bool {
	w := m.WindowSize()
	return w.Width < m.minSize.Width || w.Height < m.minSize.Height
}

// DarkMode reports the state of the dark mode checkbox.
func (m *Model) DarkMode() bool {
	return m.darkMode
}

// SecondsSinceUpdate returns seconds since the last displayed snapshot.
func (m *Model) SecondsSinceUpdate() int {
	if !m.surface.hasSnapshot {
		return 0
	}
	return int(m.now().Sub(m.surface.updated).Seconds())
}

// shutdown stops sampling. Called on quit.
func (m *Model) shutdown() {
	m.loop.Stop()
	m.cancel()
}

func (m *Model) resizeBody() {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	if !m.bodyReady {
		m.body = viewport.New(m.width, h)
		m.body.YPosition = headerHeight
		m.bodyReady = true
		return
	}
	m.body.Width = m.width
	m.body.Height = h
}
