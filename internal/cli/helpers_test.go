package cli

import (
	"testing"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// isolateConfig makes sure no real config file or SYSMON_* variable leaks
// into a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"SYSMON_THEME", "SYSMON_SAMPLING_INTERVAL", "SYSMON_SAMPLING_MODE", "SYSMON_SOURCE_KIND", "SYSMON_SOURCE_HOST", "SYSMON_DEBUG"} {
		t.Setenv(key, "")
	}
}

// useSource replaces the source factory for the rest of the test.
func useSource(t *testing.T, src metrics.Source) {
	t.Helper()
	orig := newSource
	newSource = func(config.SourceConfig, logger.Logger) (metrics.Source, func()) {
		return src, func() {}
	}
	t.Cleanup(func() { newSource = orig })
}

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerRuntimeFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

// newCommand returns a bare command carrying the runtime flags.
func newCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerRuntimeFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}
