package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/sysmon/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommand_Defaults(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	require.NoError(t, configCommand(newCommand(t, "--theme", "dark"), &out))

	assert.Contains(t, out.String(), "# source: built-in defaults\n")
	assert.Contains(t, out.String(), "theme: dark")
	assert.Contains(t, out.String(), "kind: local")
}

func TestConfigCommand_FromFile(t *testing.T) {
	isolateConfig(t)
	require.NoError(t, os.WriteFile(config.ConfigFileName, []byte("sampling:\n  mode: sync\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, configCommand(newCommand(t), &out))

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "# source: "+filepath.Join(wd, config.ConfigFileName))
	assert.Contains(t, out.String(), "mode: sync")
}
