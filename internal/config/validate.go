package config

import (
	"fmt"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sysmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade sysmon or lower the version in your config.")
	}

	if _, err := theme.Parse(cfg.Theme); err != nil {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown theme '%s'", cfg.Theme),
			"Set theme to 'light' or 'dark'.")
	}

	if err := validateSampling(cfg.Sampling); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'sampling' section in your .sysmon.yaml.")
	}
	if err := validateWindow(cfg.Window); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'window' section in your .sysmon.yaml.")
	}
	if err := validateScale(cfg.Scale); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'scale' section in your .sysmon.yaml.")
	}
	if err := validateSource(cfg.Source); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'source' section in your .sysmon.yaml.")
	}

	return nil
}

func validateSampling(s SamplingConfig) error {
	if s.Interval <= 0 {
		return fmt.Errorf("sampling.interval must be positive, got %s", s.Interval)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("sampling.timeout can't be negative, got %s", s.Timeout)
	}
	switch s.Mode {
	case "async", "sync":
	default:
		return fmt.Errorf("sampling.mode must be 'async' or 'sync', got '%s'", s.Mode)
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	if w.CellWidth <= 0 || w.CellHeight <= 0 {
		return fmt.Errorf("window.cell_width and window.cell_height must be positive")
	}
	if w.MinWidth < 0 || w.MinHeight < 0 {
		return fmt.Errorf("window.min_width and window.min_height can't be negative")
	}
	return nil
}

func validateScale(s ScaleConfig) error {
	if s.BaseWidth <= 0 || s.BaseHeight <= 0 {
		return fmt.Errorf("scale.base_width and scale.base_height must be positive")
	}
	if s.TitleSize <= 0 || s.BodySize <= 0 {
		return fmt.Errorf("scale.title_size and scale.body_size must be positive")
	}
	if s.MaxFactor < 0 {
		return fmt.Errorf("scale.max_factor can't be negative (use 0 for no limit)")
	}
	if s.MinRatio <= 0 {
		return fmt.Errorf("scale.min_ratio must be positive")
	}
	if s.MaxFactor > 0 && s.MaxFactor < s.MinRatio {
		return fmt.Errorf("scale.max_factor (%g) can't be below scale.min_ratio (%g)", s.MaxFactor, s.MinRatio)
	}
	if s.MinFontSize < 0 {
		return fmt.Errorf("scale.min_font_size can't be negative, got %d", s.MinFontSize)
	}
	return nil
}

func validateSource(s SourceConfig) error {
	switch s.Kind {
	case SourceLocal:
	case SourceSSH:
		if s.Host == "" {
			return fmt.Errorf("source.host is required when source.kind is 'ssh'")
		}
		if s.DialTimeout <= 0 {
			return fmt.Errorf("source.dial_timeout must be positive")
		}
	default:
		return fmt.Errorf("source.kind must be 'local' or 'ssh', got '%s'", s.Kind)
	}
	return nil
}
