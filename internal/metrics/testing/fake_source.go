// Package testing provides test doubles for the metrics package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// FakeSource is a scriptable metrics.Source.
// Readings and errors can be changed between ticks; it is safe for use
// from the async sampling worker.
type FakeSource struct {
	mu sync.Mutex

	CPU          float64
	Memory       metrics.MemoryReading
	Accelerators []metrics.AcceleratorReading

	CPUErr   error
	MemErr   error
	AccelErr error

	calls int
}

// NewFakeSource returns a source reporting a quiet host with no accelerator.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		CPU: 10,
		Memory: metrics.MemoryReading{
			UsedBytes:  4 << 30,
			TotalBytes: 16 << 30,
			Percent:    25,
		},
	}
}

// ReadCPU implements metrics.Source.
func (f *FakeSource) ReadCPU(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return f.CPU, f.CPUErr
}

// ReadMemory implements metrics.Source.
func (f *FakeSource) ReadMemory(ctx context.Context) (metrics.MemoryReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Memory, f.MemErr
}

// ReadAccelerators implements metrics.Source.
func (f *FakeSource) ReadAccelerators(ctx context.Context) ([]metrics.AcceleratorReading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]metrics.AcceleratorReading, len(f.Accelerators))
	copy(out, f.Accelerators)
	return out, f.AccelErr
}

// SetCPU changes the CPU reading.
func (f *FakeSource) SetCPU(percent float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CPU = percent
}

// SetCPUError makes ReadCPU fail with err (nil to recover).
func (f *FakeSource) SetCPUError(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CPUErr = err
}

// Calls returns how many samples were attempted.
func (f *FakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
