package cli

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/sysmon/internal/app"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/metrics/local"
	"github.com/rileyhilliard/sysmon/internal/metrics/remote"
	"github.com/spf13/pflag"
)

// loadRuntimeConfig loads the config file, applies explicitly set flags
// and validates the result. It also returns where the config came from,
// empty when only defaults were used.
func loadRuntimeConfig(fs *pflag.FlagSet) (*config.Config, string, error) {
	explicit, _ := fs.GetString("config")

	cfg, path, err := config.LoadOrDefault(explicit)
	if err != nil {
		return nil, "", err
	}

	if err := applyFlagOverrides(cfg, fs); err != nil {
		return nil, "", err
	}

	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// applyFlagOverrides copies changed flags onto cfg.
func applyFlagOverrides(cfg *config.Config, fs *pflag.FlagSet) error {
	if changed(fs, "interval") {
		interval, err := fs.GetDuration("interval")
		if err != nil {
			return err
		}
		cfg.Sampling.Interval = interval
	}
	if changed(fs, "theme") {
		cfg.Theme, _ = fs.GetString("theme")
	}
	if changed(fs, "host") {
		host, _ := fs.GetString("host")
		if host == "" {
			return errors.New(errors.ErrConfig,
				"--host needs a value",
				"Pass an SSH alias or user@host, or drop the flag to monitor this machine.")
		}
		cfg.Source.Kind = config.SourceSSH
		cfg.Source.Host = host
	}
	if changed(fs, "sync") {
		if sync, _ := fs.GetBool("sync"); sync {
			cfg.Sampling.Mode = string(app.ModeSync)
		}
	}
	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

// newSource builds the metrics source for the config. The returned func
// releases it. Replaced in tests.
var newSource = func(src config.SourceConfig, log logger.Logger) (metrics.Source, func()) {
	if src.Kind == config.SourceSSH {
		s := remote.NewSource(src.Host, src.DialTimeout,
			remote.WithGPUCommand(src.GPUCommand),
			remote.WithLogger(log),
		)
		return s, func() {
			if err := s.Close(); err != nil {
				log.Debug("closing connection to %s: %v", src.Host, err)
			}
		}
	}

	s := local.NewSource(
		local.WithGPUCommand(src.GPUCommand),
		local.WithLogger(log),
	)
	return s, func() {}
}

// sourceName labels the source in the dashboard header.
func sourceName(src config.SourceConfig) string {
	if src.Kind == config.SourceSSH {
		return src.Host
	}
	return "local"
}

// newStrategy wires the sampler for the configured mode.
func newStrategy(cfg *config.Config, source metrics.Source, log logger.Logger) (app.Strategy, error) {
	mode, err := app.ParseMode(cfg.Sampling.Mode)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Unknown sampling mode '%s'", cfg.Sampling.Mode),
			"Set sampling.mode to 'async' or 'sync'.")
	}

	sampler := metrics.NewSampler(source, log)
	return app.NewStrategy(mode, sampler, cfg.Sampling.Interval, cfg.Sampling.Timeout, log), nil
}

// settleDelay is the gap between the two samples a one-shot read takes so
// CPU load is measured over a real interval.
var settleDelay = 250 * time.Millisecond
