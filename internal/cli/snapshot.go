package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/plain"
	"github.com/spf13/cobra"
)

var snapshotJSON bool

// snapshotCmd prints one sample and exits.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print one sample and exit",
	Long: `Sample CPU, memory and accelerator usage once and print it.

CPU load is measured across a short settle period so the first reading
isn't an average since boot.

Examples:
  sysmon snapshot
  sysmon snapshot --json
  sysmon snapshot --host gpu-box --json | jq .data.gpu_percent`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		err := snapshotCommand(cmd.Context(), cmd, out)
		if err != nil && snapshotJSON {
			// The envelope carries the error; still exit non-zero.
			_ = WriteJSONFromError(out, err)
			return errSilent{err}
		}
		return err
	},
}

func init() {
	snapshotCmd.Flags().BoolVar(&snapshotJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(snapshotCmd)
}

func snapshotCommand(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	cfg, _, err := loadRuntimeConfig(cmd.Flags())
	if err != nil {
		return err
	}

	snap, err := takeSnapshot(ctx, cfg, logger.NewEnvLogger("[snapshot]"))
	if err != nil {
		return err
	}

	if snapshotJSON {
		return WriteJSONSuccess(out, snap)
	}
	_, err = fmt.Fprintln(out, plain.FormatLine(snap))
	return err
}

// takeSnapshot samples twice, settleDelay apart, and returns the second.
func takeSnapshot(ctx context.Context, cfg *config.Config, log logger.Logger) (metrics.Snapshot, error) {
	source, closeSource := newSource(cfg.Source, log)
	defer closeSource()

	sampler := metrics.NewSampler(source, log)

	if _, err := sampleWithTimeout(ctx, sampler, cfg.Sampling.Timeout); err != nil {
		return metrics.Snapshot{}, err
	}

	select {
	case <-ctx.Done():
		return metrics.Snapshot{}, ctx.Err()
	case <-time.After(settleDelay):
	}

	return sampleWithTimeout(ctx, sampler, cfg.Sampling.Timeout)
}

func sampleWithTimeout(ctx context.Context, sampler *metrics.Sampler, timeout time.Duration) (metrics.Snapshot, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return sampler.Sample(ctx)
}
