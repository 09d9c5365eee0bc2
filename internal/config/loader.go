package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sysmon.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/sysmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SYSMON_SAMPLING_INTERVAL.
	EnvPrefix = "SYSMON"
)

// Load reads config from the specified path. An empty path loads the
// defaults. Environment overrides apply either way.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Run 'sysmon init' to create a config file, or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+displayPath(path))
	}
	cfg.Source.GPUCommand = ExpandTilde(cfg.Source.GPUCommand)

	return cfg, nil
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sysmon.yaml in current directory
// 3. ~/.config/sysmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}
	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if globalConfig := GlobalConfigPath(); globalConfig != "" {
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault finds and loads the config, falling back to defaults when
// there's no file. The returned path is empty in that case.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// GlobalConfigPath returns ~/.config/sysmon/config.yaml, or "" without a home dir.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}

// newViper creates a viper instance with every key defaulted, so
// environment overrides reach Unmarshal even when the file omits a key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("window.title", def.Window.Title)
	v.SetDefault("window.width", def.Window.Width)
	v.SetDefault("window.height", def.Window.Height)
	v.SetDefault("window.min_width", def.Window.MinWidth)
	v.SetDefault("window.min_height", def.Window.MinHeight)
	v.SetDefault("window.cell_width", def.Window.CellWidth)
	v.SetDefault("window.cell_height", def.Window.CellHeight)
	v.SetDefault("sampling.interval", def.Sampling.Interval)
	v.SetDefault("sampling.timeout", def.Sampling.Timeout)
	v.SetDefault("sampling.mode", def.Sampling.Mode)
	v.SetDefault("scale.base_width", def.Scale.BaseWidth)
	v.SetDefault("scale.base_height", def.Scale.BaseHeight)
	v.SetDefault("scale.title_size", def.Scale.TitleSize)
	v.SetDefault("scale.body_size", def.Scale.BodySize)
	v.SetDefault("scale.max_factor", def.Scale.MaxFactor)
	v.SetDefault("scale.min_ratio", def.Scale.MinRatio)
	v.SetDefault("scale.min_font_size", def.Scale.MinFontSize)
	v.SetDefault("source.kind", def.Source.Kind)
	v.SetDefault("source.host", def.Source.Host)
	v.SetDefault("source.dial_timeout", def.Source.DialTimeout)
	v.SetDefault("source.gpu_command", def.Source.GPUCommand)

	return v
}

func displayPath(path string) string {
	if path == "" {
		return "your environment overrides"
	}
	return path
}
