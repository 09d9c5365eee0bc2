package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrSSH,
		ErrSensor,
		ErrTheme,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .sysmon.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "sensor error",
			code:       ErrSensor,
			message:    "Couldn't read CPU load",
			suggestion: "",
		},
		{
			name:       "theme error",
			code:       ErrTheme,
			message:    "Unknown theme 'sepia'",
			suggestion: "Use light or dark",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check .sysmon.yaml syntax"),
			expectedParts: []string{"✗", "Invalid configuration", "Check .sysmon.yaml syntax"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrSensor, "Sensor failed", ""),
			expectedParts: []string{"Sensor failed"},
			notExpected:   []string{"\n\n  \n"},
		},
		{
			name:          "error with cause",
			err:           WrapWithCode(errors.New("exit status 9"), ErrSensor, "nvidia-smi failed", "Check the driver"),
			expectedParts: []string{"nvidia-smi failed", "exit status 9", "Check the driver"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()

			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, output, part)
			}
		})
	}
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("read /proc/stat: permission denied")
	wrapped := WrapWithCode(cause, ErrSensor, "Couldn't read CPU load", "")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrSensor, wrapped.Code)
	assert.Equal(t, cause, wrapped.Cause)
}

func TestErrorsIsAndAs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := WrapWithCode(cause, ErrSSH, "SSH error", "")

	assert.True(t, errors.Is(wrapped, cause))

	var smErr *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", wrapped), &smErr))
	assert.Equal(t, ErrSSH, smErr.Code)
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrSSH))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("connection timed out after 2s"),
		ErrSSH,
		"Can't reach 'gpu-box'",
		"Check the host is up",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Can't reach 'gpu-box'")
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", Summary(nil))
	assert.Equal(t, "Couldn't read memory", Summary(WrapWithCode(errors.New("boom"), ErrSensor, "Couldn't read memory", "")))
	assert.Equal(t, "first line", Summary(errors.New("first line\nsecond line")))
}
