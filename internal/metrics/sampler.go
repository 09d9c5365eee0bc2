package metrics

import (
	"context"
	stderrors "errors"
	"math"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
)

const (
	bytesPerGiB = 1 << 30
	mbPerGB     = 1024
)

// Sampler converts Source readings into Snapshots.
type Sampler struct {
	source Source
	log    logger.Logger
	now    func() time.Time
}

// NewSampler creates a sampler over the given source.
func NewSampler(source Source, log logger.Logger) *Sampler {
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		source: source,
		log:    log,
		now:    time.Now,
	}
}

// Sample queries the source once and returns a normalized Snapshot.
// A missing accelerator yields zero GPU fields, not an error. Any other
// read failure is returned as an ErrSensor error and no Snapshot.
func (s *Sampler) Sample(ctx context.Context) (Snapshot, error) {
	cpu, err := s.source.ReadCPU(ctx)
	if err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrSensor,
			"Couldn't read CPU load",
			"The previous reading stays on screen until the next tick succeeds.")
	}

	mem, err := s.source.ReadMemory(ctx)
	if err != nil {
		return Snapshot{}, errors.WrapWithCode(err, errors.ErrSensor,
			"Couldn't read memory usage",
			"The previous reading stays on screen until the next tick succeeds.")
	}

	accels, err := s.source.ReadAccelerators(ctx)
	if err != nil {
		if !stderrors.Is(err, ErrSensorUnavailable) {
			return Snapshot{}, errors.WrapWithCode(err, errors.ErrSensor,
				"Couldn't read accelerator usage",
				"Check that the GPU driver tools (nvidia-smi) respond.")
		}
		s.log.Debug("no accelerator: %v", err)
		accels = nil
	}

	snap := Snapshot{
		Timestamp:  s.now(),
		CPUPercent: ClampPercent(cpu),
		RAMUsedGB:  float64(mem.UsedBytes) / bytesPerGiB,
		RAMTotalGB: float64(mem.TotalBytes) / bytesPerGiB,
		RAMPercent: ClampPercent(mem.Percent),
	}

	// Only the first accelerator is displayed
	if len(accels) > 0 {
		gpu := accels[0]
		snap.HasGPU = true
		snap.GPUName = gpu.Name
		snap.GPUPercent = ClampPercent(gpu.LoadFraction * 100)
		snap.VRAMUsedGB = nonNegative(gpu.MemUsedMB / mbPerGB)
		snap.VRAMTotalGB = nonNegative(gpu.MemTotalMB / mbPerGB)
		snap.VRAMPercent = ClampPercent(ratioPercent(snap.VRAMUsedGB, snap.VRAMTotalGB))
	}

	return snap, nil
}

// ClampPercent limits a percentage to [0, 100]. NaN and infinities map to 0
// so a gauge never receives a value outside its range.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), math.IsInf(v, 0):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// ratioPercent returns used/total*100, defined as 0 when total is 0.
func ratioPercent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
