// Package local reads metrics from the machine sysmon runs on.
package local

import (
	"context"
	stderrors "errors"
	"fmt"
	"os/exec"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/metrics/parsers"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultGPUCommand is the accelerator query tool.
const DefaultGPUCommand = "nvidia-smi"

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Source implements metrics.Source using gopsutil for CPU/RAM and
// nvidia-smi for accelerators.
type Source struct {
	gpuCommand string
	run        CommandRunner
	cpuPercent func(ctx context.Context) (float64, error)
	virtualMem func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	log        logger.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithGPUCommand overrides the nvidia-smi path. An empty command disables
// accelerator queries.
func WithGPUCommand(cmd string) Option {
	return func(s *Source) {
		s.gpuCommand = cmd
	}
}

// WithCommandRunner replaces the exec-based runner (used in tests).
func WithCommandRunner(run CommandRunner) Option {
	return func(s *Source) {
		s.run = run
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Source) {
		s.log = log
	}
}

// NewSource creates a local metrics source.
func NewSource(opts ...Option) *Source {
	s := &Source{
		gpuCommand: DefaultGPUCommand,
		run:        execRunner,
		cpuPercent: systemCPUPercent,
		virtualMem: mem.VirtualMemoryWithContext,
		log:        logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReadCPU returns system-wide CPU load since the previous call.
// gopsutil keeps the previous counters, so the first call reports load
// since boot.
func (s *Source) ReadCPU(ctx context.Context) (float64, error) {
	return s.cpuPercent(ctx)
}

// ReadMemory returns physical memory usage.
func (s *Source) ReadMemory(ctx context.Context) (metrics.MemoryReading, error) {
	vm, err := s.virtualMem(ctx)
	if err != nil {
		return metrics.MemoryReading{}, err
	}
	return metrics.MemoryReading{
		UsedBytes:  vm.Used,
		TotalBytes: vm.Total,
		Percent:    vm.UsedPercent,
	}, nil
}

// ReadAccelerators queries nvidia-smi. A missing binary reports
// metrics.ErrSensorUnavailable.
func (s *Source) ReadAccelerators(ctx context.Context) ([]metrics.AcceleratorReading, error) {
	if s.gpuCommand == "" {
		return nil, metrics.ErrSensorUnavailable
	}

	out, err := s.run(ctx, s.gpuCommand, parsers.NvidiaSMIArgs...)
	if err != nil {
		if stderrors.Is(err, exec.ErrNotFound) {
			s.log.Debug("%s not installed, disabling accelerator queries", s.gpuCommand)
			s.gpuCommand = ""
			return nil, metrics.ErrSensorUnavailable
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// nvidia-smi exits non-zero with "No devices were found" on hosts
		// with the driver but no card
		if readings, perr := parsers.ParseNvidiaSMI(string(out)); perr == nil && len(readings) == 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", s.gpuCommand, err)
	}

	return parsers.ParseNvidiaSMI(string(out))
}

func systemCPUPercent(ctx context.Context) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, fmt.Errorf("no CPU counters reported")
	}
	return pcts[0], nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
