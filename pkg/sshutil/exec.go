package sshutil

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rileyhilliard/sysmon/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Output runs cmd in a new session and returns its stdout.
// The session is closed if ctx ends first. A non-zero exit is returned as
// an error along with whatever stdout was produced.
func (c *Client) Output(ctx context.Context, cmd string) ([]byte, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. It will be re-dialed on the next sample.")
	}
	defer session.Close()

	var stdout bytes.Buffer
	session.Stdout = &stdout

	type result struct {
		err error
	}
	done := make(chan result, 1)
	go func() {
		done <- result{session.Run(cmd)}
	}()

	select {
	case <-ctx.Done():
		_ = session.Close()
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			if exitErr, ok := r.err.(*ssh.ExitError); ok {
				return stdout.Bytes(), fmt.Errorf("remote command exited %d: %w", exitErr.ExitStatus(), r.err)
			}
			return nil, r.err
		}
		return stdout.Bytes(), nil
	}
}
