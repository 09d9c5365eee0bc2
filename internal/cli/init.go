package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/sysmon/internal/app"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/ui"
	"github.com/rileyhilliard/sysmon/pkg/sshutil"
	"github.com/spf13/cobra"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Path           string // Config file to write; defaults to ./.sysmon.yaml
	Global         bool   // Write ~/.config/sysmon/config.yaml instead
	Host           string // Pre-specified SSH host/alias
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	Out            io.Writer
}

var (
	initForce    bool
	initDefaults bool
	initGlobal   bool
)

// initCmd creates a config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sysmon.yaml config",
	Long: `Create a sysmon config file, asking for the theme, sampling interval
and where metrics come from.

Examples:
  sysmon init
  sysmon init --defaults
  sysmon init --global --host gpu-box`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		host, _ := cmd.Flags().GetString("host")
		return Init(InitOptions{
			Global:         initGlobal,
			Host:           host,
			Overwrite:      initForce,
			NonInteractive: initDefaults,
			Out:            cmd.OutOrStdout(),
		})
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "skip prompts and write defaults")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write the global config instead of ./"+config.ConfigFileName)
	rootCmd.AddCommand(initCmd)
}

// probeHost checks an SSH host is reachable. Replaced in tests.
var probeHost = func(host string, timeout time.Duration) error {
	client, err := sshutil.Dial(host, timeout)
	if err != nil {
		return err
	}
	return client.Close()
}

// Init writes a new config file.
func Init(opts InitOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	configPath := opts.Path
	if configPath == "" {
		configPath = filepath.Join(".", config.ConfigFileName)
		if opts.Global {
			configPath = config.GlobalConfigPath()
		}
	}
	if configPath == "" {
		return errors.New(errors.ErrConfig,
			"Couldn't work out where the global config goes",
			"Set $HOME, or run without --global to write ./"+config.ConfigFileName)
	}

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", configPath)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --defaults")
		}
		if !overwrite {
			ui.Info(out, "Kept existing %s", configPath)
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if opts.Host != "" {
		cfg.Source.Kind = config.SourceSSH
		cfg.Source.Host = opts.Host
	}

	if !opts.NonInteractive {
		if err := promptConfig(cfg); err != nil {
			return err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return err
	}

	if cfg.Source.Kind == config.SourceSSH {
		if err := testConnection(out, cfg, opts.NonInteractive); err != nil {
			return err
		}
	}

	if err := config.Write(configPath, cfg, true); err != nil {
		return err
	}

	ui.Success(out, "Created %s", configPath)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  sysmon            - Open the dashboard")
	fmt.Fprintln(out, "  sysmon snapshot   - Print one sample")
	fmt.Fprintln(out, "  sysmon config     - Show the effective config")

	return nil
}

// promptConfig asks for the main settings and writes them onto cfg.
func promptConfig(cfg *config.Config) error {
	themeName := cfg.Theme
	interval := cfg.Sampling.Interval.String()
	mode := cfg.Sampling.Mode
	kind := cfg.Source.Kind
	host := cfg.Source.Host

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Description("You can still flip it with 't' while sysmon runs").
				Options(huh.NewOptions("light", "dark")...).
				Value(&themeName),
			huh.NewInput().
				Title("Sampling interval").
				Description("How often gauges update, e.g. 500ms, 1s, 5s").
				Placeholder("1s").
				Value(&interval).
				Validate(validateInterval),
			huh.NewSelect[string]().
				Title("Sampling mode").
				Options(
					huh.NewOption("async (background worker, UI never waits)", string(app.ModeAsync)),
					huh.NewOption("sync (sample on the UI loop)", string(app.ModeSync)),
				).
				Value(&mode),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Metrics source").
				Options(
					huh.NewOption("This machine", config.SourceLocal),
					huh.NewOption("Remote machine over SSH", config.SourceSSH),
				).
				Value(&kind),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("SSH host or alias").
				Description("Enter hostname, user@host, or SSH config alias").
				Placeholder("gpu-box or user@192.168.1.100").
				Value(&host).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("SSH host is required")
					}
					return nil
				}),
		).WithHideFunc(func() bool {
			return kind != config.SourceSSH
		}),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --defaults")
	}

	return applyAnswers(cfg, themeName, interval, mode, kind, host)
}

// applyAnswers copies form answers onto cfg.
func applyAnswers(cfg *config.Config, themeName, interval, mode, kind, host string) error {
	d, err := time.ParseDuration(strings.TrimSpace(interval))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval '%s'", interval),
			"Use a duration like 500ms or 2s.")
	}

	cfg.Theme = themeName
	cfg.Sampling.Interval = d
	cfg.Sampling.Mode = mode
	cfg.Source.Kind = kind
	cfg.Source.Host = ""
	if kind == config.SourceSSH {
		cfg.Source.Host = strings.TrimSpace(host)
	}
	return nil
}

func validateInterval(s string) error {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a duration, try 1s or 500ms")
	}
	if d <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	return nil
}

// testConnection probes the SSH host. Interactive runs may save anyway.
func testConnection(out io.Writer, cfg *config.Config, nonInteractive bool) error {
	host := cfg.Source.Host

	fmt.Fprintln(out)
	spinner := ui.NewSpinner("Testing connection to "+host, out)
	spinner.Start()

	err := probeHost(host, cfg.Source.DialTimeout)
	if err == nil {
		spinner.Success()
		fmt.Fprintln(out)
		return nil
	}
	spinner.Fail()

	connErr := errors.WrapWithCode(err, errors.ErrSSH,
		fmt.Sprintf("Connection to '%s' failed", host),
		"Check that the host is reachable: ssh "+host)
	if nonInteractive {
		return connErr
	}

	fmt.Fprintf(out, "\n%s Connection to '%s' failed: %s\n\n", ui.SymbolFail, host, errors.Summary(err))

	var saveAnyway bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save config anyway? (You can fix the connection later)").
				Value(&saveAnyway),
		),
	)
	if formErr := form.Run(); formErr != nil || !saveAnyway {
		return connErr
	}
	return nil
}
