package metrics

import (
	"fmt"
	"time"
)

// Snapshot is one immutable set of readings produced by a single tick.
// It is passed by value and superseded, never merged, by the next one.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	CPUPercent float64 `json:"cpu_percent"`

	RAMUsedGB  float64 `json:"ram_used_gb"`
	RAMTotalGB float64 `json:"ram_total_gb"`
	RAMPercent float64 `json:"ram_percent"`

	HasGPU      bool    `json:"has_gpu"`
	GPUName     string  `json:"gpu_name,omitempty"`
	GPUPercent  float64 `json:"gpu_percent"`
	VRAMUsedGB  float64 `json:"vram_used_gb"`
	VRAMTotalGB float64 `json:"vram_total_gb"`
	VRAMPercent float64 `json:"vram_percent"`
}

// CPULabel formats the CPU gauge label, e.g. "CPU: 12.5%".
func (s Snapshot) CPULabel() string {
	return fmt.Sprintf("CPU: %.1f%%", s.CPUPercent)
}

// RAMLabel formats the memory gauge label, e.g. "RAM: 5.2GB / 16.0GB".
func (s Snapshot) RAMLabel() string {
	return fmt.Sprintf("RAM: %.1fGB / %.1fGB", s.RAMUsedGB, s.RAMTotalGB)
}

// GPULabel formats the accelerator load label, e.g. "GPU: 40.0%".
func (s Snapshot) GPULabel() string {
	return fmt.Sprintf("GPU: %.1f%%", s.GPUPercent)
}

// VRAMLabel formats the accelerator memory label, e.g. "VRAM: 2.0GB / 8.0GB".
func (s Snapshot) VRAMLabel() string {
	return fmt.Sprintf("VRAM: %.1fGB / %.1fGB", s.VRAMUsedGB, s.VRAMTotalGB)
}
