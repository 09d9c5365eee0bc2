package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/sysmon/internal/app"
	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics/local"
	"github.com/rileyhilliard/sysmon/internal/metrics/remote"
	metricstesting "github.com/rileyhilliard/sysmon/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeConfig_Defaults(t *testing.T) {
	isolateConfig(t)

	cfg, path, err := loadRuntimeConfig(newFlagSet(t))
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadRuntimeConfig_FlagOverrides(t *testing.T) {
	isolateConfig(t)

	cfg, _, err := loadRuntimeConfig(newFlagSet(t,
		"--interval", "250ms",
		"--theme", "dark",
		"--host", "gpu-box",
		"--sync",
	))
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Sampling.Interval)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, config.SourceSSH, cfg.Source.Kind)
	assert.Equal(t, "gpu-box", cfg.Source.Host)
	assert.Equal(t, string(app.ModeSync), cfg.Sampling.Mode)
}

func TestLoadRuntimeConfig_UnsetFlagsKeepFileValues(t *testing.T) {
	isolateConfig(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nsampling:\n  interval: 2s\n"), 0644))

	cfg, loadedFrom, err := loadRuntimeConfig(newFlagSet(t, "--config", path))
	require.NoError(t, err)

	assert.Equal(t, path, loadedFrom)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 2*time.Second, cfg.Sampling.Interval)
	assert.Equal(t, config.SourceLocal, cfg.Source.Kind)
}

func TestLoadRuntimeConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown theme", args: []string{"--theme", "sepia"}},
		{name: "zero interval", args: []string{"--interval", "0s"}},
		{name: "empty host", args: []string{"--host", ""}},
		{name: "missing config file", args: []string{"--config", "/nonexistent/sysmon.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			_, _, err := loadRuntimeConfig(newFlagSet(t, tt.args...))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig), "got %v", err)
		})
	}
}

func TestSourceName(t *testing.T) {
	assert.Equal(t, "local", sourceName(config.SourceConfig{Kind: config.SourceLocal}))
	assert.Equal(t, "gpu-box", sourceName(config.SourceConfig{Kind: config.SourceSSH, Host: "gpu-box"}))
}

func TestNewSource_PicksImplementation(t *testing.T) {
	src, release := newSource(config.SourceConfig{Kind: config.SourceLocal, GPUCommand: ""}, logger.Noop())
	assert.IsType(t, &local.Source{}, src)
	release()

	// Remote sources dial lazily, so nothing touches the network here
	src, release = newSource(config.SourceConfig{
		Kind:        config.SourceSSH,
		Host:        "gpu-box",
		DialTimeout: time.Second,
	}, logger.Noop())
	require.IsType(t, &remote.Source{}, src)
	assert.Equal(t, "gpu-box", src.(*remote.Source).Host())
	release()
}

func TestNewStrategy(t *testing.T) {
	cfg := config.DefaultConfig()
	src := metricstesting.NewFakeSource()

	s, err := newStrategy(cfg, src, logger.Noop())
	require.NoError(t, err)
	assert.IsType(t, &app.AsyncStrategy{}, s)

	cfg.Sampling.Mode = "sync"
	s, err = newStrategy(cfg, src, logger.Noop())
	require.NoError(t, err)
	assert.IsType(t, &app.SyncStrategy{}, s)

	cfg.Sampling.Mode = "eventually"
	_, err = newStrategy(cfg, src, logger.Noop())
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}
