package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONSuccess(&buf, map[string]float64{"cpu_percent": 12.5}))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
	assert.Equal(t, map[string]interface{}{"cpu_percent": 12.5}, env.Data)
}

func TestWriteJSONFromError(t *testing.T) {
	var buf bytes.Buffer
	err := errors.New(errors.ErrSSH, "Connection to 'gpu-box' failed", "ssh gpu-box")
	require.NoError(t, WriteJSONFromError(&buf, err))

	var env JSONEnvelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeSSHConnectionFail, env.Error.Code)
	assert.Equal(t, "Connection to 'gpu-box' failed", env.Error.Message)
	assert.Equal(t, "ssh gpu-box", env.Error.Suggestion)
}

func TestErrorToJSON(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{name: "config", err: errors.New(errors.ErrConfig, "bad", ""), code: ErrCodeConfigInvalid},
		{name: "ssh", err: errors.New(errors.ErrSSH, "bad", ""), code: ErrCodeSSHConnectionFail},
		{name: "sensor", err: errors.New(errors.ErrSensor, "bad", ""), code: ErrCodeSensorFailed},
		{name: "theme", err: errors.New(errors.ErrTheme, "bad", ""), code: ErrCodeThemeInvalid},
		{name: "wrapped structured", err: fmt.Errorf("outer: %w", errors.New(errors.ErrSensor, "bad", "")), code: ErrCodeSensorFailed},
		{name: "plain", err: fmt.Errorf("boom"), code: ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorToJSON(tt.err).Code)
		})
	}

	assert.Nil(t, ErrorToJSON(nil))
}
