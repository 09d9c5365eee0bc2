package config

import (
	"time"

	"github.com/rileyhilliard/sysmon/internal/scale"
)

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source kinds.
const (
	SourceLocal = "local"
	SourceSSH   = "ssh"
)

// Config represents the complete .sysmon.yaml configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version"`
	Theme    string         `yaml:"theme" mapstructure:"theme"`
	Window   WindowConfig   `yaml:"window" mapstructure:"window"`
	Sampling SamplingConfig `yaml:"sampling" mapstructure:"sampling"`
	Scale    ScaleConfig    `yaml:"scale" mapstructure:"scale"`
	Source   SourceConfig   `yaml:"source" mapstructure:"source"`
}

// WindowConfig describes the window and how terminal cells map to it.
// Width, height and the minimums are in display units.
type WindowConfig struct {
	Title     string  `yaml:"title" mapstructure:"title"`
	Width     float64 `yaml:"width" mapstructure:"width"`
	Height    float64 `yaml:"height" mapstructure:"height"`
	MinWidth  float64 `yaml:"min_width" mapstructure:"min_width"`
	MinHeight float64 `yaml:"min_height" mapstructure:"min_height"`

	// Display units per terminal cell.
	CellWidth  float64 `yaml:"cell_width" mapstructure:"cell_width"`
	CellHeight float64 `yaml:"cell_height" mapstructure:"cell_height"`
}

// SamplingConfig controls how often and where metrics are sampled.
type SamplingConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// Timeout bounds every metrics source call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Mode is "async" (background worker) or "sync" (on the UI loop).
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// ScaleConfig parameterizes font scaling.
type ScaleConfig struct {
	BaseWidth   float64 `yaml:"base_width" mapstructure:"base_width"`
	BaseHeight  float64 `yaml:"base_height" mapstructure:"base_height"`
	TitleSize   int     `yaml:"title_size" mapstructure:"title_size"`
	BodySize    int     `yaml:"body_size" mapstructure:"body_size"`
	MaxFactor   float64 `yaml:"max_factor" mapstructure:"max_factor"`
	MinRatio    float64 `yaml:"min_ratio" mapstructure:"min_ratio"`
	MinFontSize int     `yaml:"min_font_size" mapstructure:"min_font_size"`
}

// SourceConfig selects where metrics come from.
type SourceConfig struct {
	// Kind is "local" or "ssh".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// Host is an SSH config alias, hostname, or user@host[:port].
	Host        string        `yaml:"host" mapstructure:"host"`
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`

	// GPUCommand is the nvidia-smi binary. Empty disables accelerator queries.
	GPUCommand string `yaml:"gpu_command" mapstructure:"gpu_command"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Theme:   "light",
		Window: WindowConfig{
			Title:      "System Monitor",
			Width:      480,
			Height:     320,
			MinWidth:   480,
			MinHeight:  320,
			CellWidth:  6,
			CellHeight: 13.34,
		},
		Sampling: SamplingConfig{
			Interval: time.Second,
			Timeout:  800 * time.Millisecond,
			Mode:     "async",
		},
		Scale: ScaleConfig{
			BaseWidth:   480,
			BaseHeight:  320,
			TitleSize:   16,
			BodySize:    12,
			MaxFactor:   3,
			MinRatio:    0.01,
			MinFontSize: 1,
		},
		Source: SourceConfig{
			Kind:        SourceLocal,
			DialTimeout: 10 * time.Second,
			GPUCommand:  "nvidia-smi",
		},
	}
}

// Calculator converts the scale section into scale.Config.
func (s ScaleConfig) Calculator() scale.Config {
	return scale.Config{
		BaseWidth:     s.BaseWidth,
		BaseHeight:    s.BaseHeight,
		BaseTitleSize: s.TitleSize,
		BaseBodySize:  s.BodySize,
		MaxFactor:     s.MaxFactor,
		MinRatio:      s.MinRatio,
		MinFontSize:   s.MinFontSize,
	}
}
