package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	metricstesting "github.com/rileyhilliard/sysmon/internal/metrics/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSettle(t *testing.T) {
	t.Helper()
	orig := settleDelay
	settleDelay = 0
	t.Cleanup(func() { settleDelay = orig })
}

func useSnapshotJSON(t *testing.T, on bool) {
	t.Helper()
	orig := snapshotJSON
	snapshotJSON = on
	t.Cleanup(func() { snapshotJSON = orig })
}

func gpuSource() *metricstesting.FakeSource {
	src := metricstesting.NewFakeSource()
	src.CPU = 42
	src.Accelerators = []metrics.AcceleratorReading{{
		Name:         "NVIDIA A100",
		LoadFraction: 0.5,
		MemUsedMB:    20000,
		MemTotalMB:   40000,
	}}
	return src
}

func TestSnapshotCommand_Text(t *testing.T) {
	isolateConfig(t)
	noSettle(t)
	useSnapshotJSON(t, false)
	useSource(t, gpuSource())

	var out bytes.Buffer
	require.NoError(t, snapshotCommand(context.Background(), newCommand(t), &out))

	line := out.String()
	assert.Contains(t, line, "CPU: 42.0%")
	assert.Contains(t, line, "RAM: 4.0GB / 16.0GB")
	assert.Contains(t, line, "GPU: 50.0%")
}

func TestSnapshotCommand_JSON(t *testing.T) {
	isolateConfig(t)
	noSettle(t)
	useSnapshotJSON(t, true)
	useSource(t, gpuSource())

	var out bytes.Buffer
	require.NoError(t, snapshotCommand(context.Background(), newCommand(t), &out))

	var env struct {
		Success bool             `json:"success"`
		Data    metrics.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 42.0, env.Data.CPUPercent)
	assert.True(t, env.Data.HasGPU)
	assert.Equal(t, "NVIDIA A100", env.Data.GPUName)
	assert.InDelta(t, 50.0, env.Data.GPUPercent, 0.001)
}

func TestSnapshotCommand_SampleFailure(t *testing.T) {
	isolateConfig(t)
	noSettle(t)
	useSnapshotJSON(t, false)

	src := metricstesting.NewFakeSource()
	src.CPUErr = fmt.Errorf("/proc/stat unreadable")
	useSource(t, src)

	var out bytes.Buffer
	err := snapshotCommand(context.Background(), newCommand(t), &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSensor))
	assert.Empty(t, out.String())
}

func TestTakeSnapshot_SamplesTwice(t *testing.T) {
	noSettle(t)
	src := metricstesting.NewFakeSource()
	useSource(t, src)

	_, err := takeSnapshot(context.Background(), config.DefaultConfig(), logger.Noop())
	require.NoError(t, err)
	assert.Equal(t, 2, src.Calls())
}

func TestTakeSnapshot_CancelledDuringSettle(t *testing.T) {
	orig := settleDelay
	settleDelay = time.Hour
	t.Cleanup(func() { settleDelay = orig })
	useSource(t, metricstesting.NewFakeSource())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := takeSnapshot(ctx, config.DefaultConfig(), logger.Noop())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
