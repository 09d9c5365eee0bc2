package plain

import (
	"bytes"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/scale"
	"github.com/rileyhilliard/sysmon/internal/theme"
	"github.com/stretchr/testify/assert"
)

var at = time.Date(2024, 3, 1, 9, 30, 5, 0, time.Local)

func TestFormatLine(t *testing.T) {
	s := metrics.Snapshot{Timestamp: at, CPUPercent: 12.5, RAMUsedGB: 4, RAMTotalGB: 16}

	assert.Equal(t, "09:30:05  CPU: 12.5%  RAM: 4.0GB / 16.0GB", FormatLine(s))
}

func TestFormatLine_WithGPU(t *testing.T) {
	s := metrics.Snapshot{
		Timestamp:   at,
		CPUPercent:  1,
		RAMTotalGB:  8,
		HasGPU:      true,
		GPUPercent:  40,
		VRAMUsedGB:  2,
		VRAMTotalGB: 8,
	}

	assert.Equal(t, "09:30:05  CPU: 1.0%  RAM: 0.0GB / 8.0GB  GPU: 40.0%  VRAM: 2.0GB / 8.0GB", FormatLine(s))
}

func TestRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.ApplyPalette(theme.Dark.Palette())
	r.ApplyFontSizes(scale.Result{TitleFontSize: 16, BodyFontSize: 12})
	assert.Empty(t, buf.String())

	r.DisplaySnapshot(metrics.Snapshot{Timestamp: at, CPUPercent: 50})
	r.DisplaySampleError(errors.New(errors.ErrSensor, "Couldn't read CPU load", ""))
	r.DisplaySampleError(nil)

	out := buf.String()
	assert.Contains(t, out, "CPU: 50.0%")
	assert.Contains(t, out, "sample failed: Couldn't read CPU load")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.NoError(t, r.Err())
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.calls++
	return 0, stderrors.New("broken pipe")
}

func TestRenderer_StopsAfterWriteError(t *testing.T) {
	w := &failingWriter{}
	r := NewRenderer(w)

	r.DisplaySnapshot(metrics.Snapshot{})
	r.DisplaySnapshot(metrics.Snapshot{})

	assert.EqualError(t, r.Err(), "broken pipe")
	assert.Equal(t, 1, w.calls)
}
