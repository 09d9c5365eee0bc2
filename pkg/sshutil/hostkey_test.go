package sshutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	smerrors "github.com/rileyhilliard/sysmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
)

// fakeHome points HOME at a temp dir holding one unencrypted ed25519 key.
func fakeHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SSH_AUTH_SOCK", "")

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	block, err := ssh.MarshalPrivateKey(priv, "")
	require.NoError(t, err)

	sshDir := filepath.Join(home, ".ssh")
	require.NoError(t, os.MkdirAll(sshDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(sshDir, "id_ed25519"), pem.EncodeToMemory(block), 0o600))
	return home
}

func TestBuildClientConfig_RequiresKnownHosts(t *testing.T) {
	fakeHome(t)

	_, err := buildClientConfig(&settings{hostname: "gpu-box", port: "22", user: "me"}, time.Second)
	require.Error(t, err)
	assert.True(t, smerrors.IsCode(err, smerrors.ErrSSH))
}

func TestBuildClientConfig_RejectsUnknownHostKey(t *testing.T) {
	home := fakeHome(t)
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ssh", "known_hosts"), nil, 0o600))

	cfg, err := buildClientConfig(&settings{hostname: "gpu-box", port: "22", user: "me"}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "me", cfg.User)
	assert.Len(t, cfg.Auth, 1)

	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	hostKey, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	addr := &net.TCPAddr{IP: net.ParseIP("192.0.2.10"), Port: 22}
	assert.Error(t, cfg.HostKeyCallback("gpu-box:22", addr, hostKey))
}
