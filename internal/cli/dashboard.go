package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysmon/internal/app"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/dashboard"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/plain"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// LogFileEnv names a file the dashboard logs to. The alt screen owns the
// terminal, so logs go nowhere unless this or SYSMON_DEBUG is set.
const LogFileEnv = "SYSMON_LOG_FILE"

const debugLogFile = "sysmon-debug.log"

// dashboardCommand runs the TUI, or plain line output when asked for or
// when stdout is not a terminal.
func dashboardCommand(cmd *cobra.Command) error {
	cfg, _, err := loadRuntimeConfig(cmd.Flags())
	if err != nil {
		return err
	}

	usePlain, _ := cmd.Flags().GetBool("plain")
	if usePlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		return plainCommand(cmd.Context(), cfg, cmd.OutOrStdout())
	}

	return runDashboard(cmd.Context(), cfg)
}

// runDashboard starts the Bubble Tea program and blocks until it exits.
func runDashboard(ctx context.Context, cfg *config.Config) error {
	lg, closeLog, err := setupTUILogging()
	if err != nil {
		return err
	}
	defer closeLog()

	initial, err := theme.Parse(cfg.Theme)
	if err != nil {
		return err
	}

	source, closeSource := newSource(cfg.Source, lg)
	defer closeSource()

	strategy, err := newStrategy(cfg, source, lg)
	if err != nil {
		return err
	}

	model := dashboard.NewModel(dashboard.Options{
		Title:      cfg.Window.Title,
		SourceName: sourceName(cfg.Source),
		Strategy:   strategy,
		Scale:      scale.NewCalculator(cfg.Scale.Calculator()),
		Theme:      initial,
		Interval:   cfg.Sampling.Interval,
		Logger:     lg,
		CellWidth:  cfg.Window.CellWidth,
		CellHeight: cfg.Window.CellHeight,
		MinWidth:   cfg.Window.MinWidth,
		MinHeight:  cfg.Window.MinHeight,
	})
	defer model.Loop().Stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// Interrupted from outside; the terminal is already restored.
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Dashboard stopped unexpectedly",
			"Try --plain, or set SYSMON_DEBUG=1 and check "+debugLogFile+".")
	}
	return nil
}

// setupTUILogging points the standard logger at a file while the alt
// screen is up, or discards it.
func setupTUILogging() (logger.Logger, func(), error) {
	path := os.Getenv(LogFileEnv)
	if path == "" && logger.DebugEnabled() {
		path = debugLogFile
	}

	if path == "" {
		log.SetOutput(io.Discard)
		return logger.Noop(), func() { log.SetOutput(os.Stderr) }, nil
	}

	f, err := tea.LogToFile(path, "sysmon")
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open log file "+path,
			"Check the path in "+LogFileEnv+" is writable.")
	}
	l := logger.NewEnvLogger("[dashboard]")
	logger.SetDefault(l)
	return l, func() {
		_ = f.Close()
		log.SetOutput(os.Stderr)
		log.SetPrefix("")
	}, nil
}

// plainCommand prints one line per sample until ctx is cancelled. The
// loop runs on a timer-driven event loop instead of the TUI.
func plainCommand(ctx context.Context, cfg *config.Config, out io.Writer) error {
	lg := logger.NewEnvLogger("[sysmon]")

	source, closeSource := newSource(cfg.Source, lg)
	defer closeSource()

	strategy, err := newStrategy(cfg, source, lg)
	if err != nil {
		return err
	}

	initial, err := theme.Parse(cfg.Theme)
	if err != nil {
		return err
	}

	renderer := plain.NewRenderer(out)
	events := app.NewEventLoop()
	loop := app.NewLoop(app.Config{
		Strategy:  strategy,
		Renderer:  renderer,
		Scheduler: events,
		Scale:     scale.NewCalculator(cfg.Scale.Calculator()),
		Theme:     theme.NewController(initial),
		Interval:  cfg.Sampling.Interval,
		Logger:    lg,
	})

	events.Post(func() { loop.Start(ctx) })
	err = events.Run(ctx)
	loop.Stop()

	if err != nil && !stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return renderer.Err()
}
