package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProcStat = `cpu  100 0 50 800 50 0 0 0 0 0
cpu0 50 0 25 400 25 0 0 0 0 0
cpu1 50 0 25 400 25 0 0 0 0 0
intr 12345
ctxt 67890`

func TestParseProcStat(t *testing.T) {
	times, err := ParseProcStat(sampleProcStat)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), times.Total)
	assert.Equal(t, int64(850), times.Idle)
}

func TestParseProcStat_Errors(t *testing.T) {
	_, err := ParseProcStat("cpu 1 2")
	assert.Error(t, err, "too few fields")

	_, err = ParseProcStat("cpu  1 x 3 4 5")
	assert.Error(t, err, "non-numeric field")

	_, err = ParseProcStat("intr 1\nctxt 2")
	assert.Error(t, err, "no aggregate line")
}

func TestCPUTimes_UsageSince(t *testing.T) {
	prev := CPUTimes{Total: 1000, Idle: 850}

	tests := []struct {
		name string
		curr CPUTimes
		want float64
	}{
		{"half busy", CPUTimes{Total: 1200, Idle: 950}, 50},
		{"fully idle", CPUTimes{Total: 1100, Idle: 950}, 0},
		{"fully busy", CPUTimes{Total: 1100, Idle: 850}, 100},
		{"no elapsed time", prev, 0},
		{"counter reset", CPUTimes{Total: 10, Idle: 5}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.curr.UsageSince(prev), 1e-9)
		})
	}
}

func TestParseMeminfo(t *testing.T) {
	input := `MemTotal:       16384000 kB
MemFree:         4096000 kB
MemAvailable:    8192000 kB
Buffers:         1024000 kB
Cached:          2048000 kB
SwapTotal:       2097152 kB`

	reading, err := ParseMeminfo(input)
	require.NoError(t, err)

	assert.Equal(t, uint64(16384000*1024), reading.TotalBytes)
	assert.Equal(t, uint64((16384000-4096000-1024000-2048000)*1024), reading.UsedBytes)
	assert.InDelta(t, 50.0, reading.Percent, 1e-9)
}

func TestParseMeminfo_WithoutMemAvailable(t *testing.T) {
	input := `MemTotal:       1000 kB
MemFree:         250 kB
Buffers:         0 kB
Cached:          250 kB`

	reading, err := ParseMeminfo(input)
	require.NoError(t, err)

	assert.Equal(t, uint64(500*1024), reading.UsedBytes)
	assert.InDelta(t, 50.0, reading.Percent, 1e-9)
}

func TestParseMeminfo_Insufficient(t *testing.T) {
	_, err := ParseMeminfo("SwapTotal: 10 kB")
	assert.Error(t, err)

	_, err = ParseMeminfo("")
	assert.Error(t, err)
}
