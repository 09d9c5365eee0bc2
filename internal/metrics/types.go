package metrics

import (
	"context"
	stderrors "errors"
)

// ErrSensorUnavailable reports that a sensor does not exist on this host,
// e.g. no accelerator or no nvidia-smi. The Sampler treats it as "zero",
// never as a failure.
var ErrSensorUnavailable = stderrors.New("sensor unavailable")

// Source is the capability the Sampler reads from. Calls are synchronous
// and should honor ctx so the caller can bound them.
type Source interface {
	// ReadCPU returns system-wide CPU load as a percentage (nominally 0-100).
	ReadCPU(ctx context.Context) (float64, error)
	// ReadMemory returns physical memory usage.
	ReadMemory(ctx context.Context) (MemoryReading, error)
	// ReadAccelerators returns one entry per discrete accelerator.
	// An empty list means none are present.
	ReadAccelerators(ctx context.Context) ([]AcceleratorReading, error)
}

// MemoryReading contains raw memory usage.
type MemoryReading struct {
	UsedBytes  uint64
	TotalBytes uint64
	Percent    float64
}

// AcceleratorReading contains raw usage for one accelerator.
type AcceleratorReading struct {
	Name         string
	LoadFraction float64 // 0..1
	MemUsedMB    float64
	MemTotalMB   float64
}
