// Package remote reads metrics from a Linux host over SSH.
package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/sysmon/internal/logger"
	"github.com/rileyhilliard/sysmon/internal/metrics"
	"github.com/rileyhilliard/sysmon/internal/metrics/parsers"
	"github.com/rileyhilliard/sysmon/pkg/sshutil"
)

// missingMarker is echoed when the GPU command isn't installed on the host.
const missingMarker = "sysmon:gpu-command-missing"

// Conn is the part of an SSH connection the source uses.
type Conn interface {
	Output(ctx context.Context, cmd string) ([]byte, error)
	Close() error
}

// Dialer opens a connection to host.
type Dialer func(host string, timeout time.Duration) (Conn, error)

// Source implements metrics.Source by reading /proc and running nvidia-smi
// on a remote host. The connection is dialed on first use and re-dialed
// after any failure.
type Source struct {
	host        string
	dialTimeout time.Duration
	gpuCommand  string
	dial        Dialer
	log         logger.Logger

	mu       sync.Mutex
	conn     Conn
	prevCPU  parsers.CPUTimes
	havePrev bool
}

// Option configures a Source.
type Option func(*Source)

// WithDialer replaces the SSH dialer (used in tests).
func WithDialer(d Dialer) Option {
	return func(s *Source) { s.dial = d }
}

// WithGPUCommand overrides the remote nvidia-smi path. Empty disables it.
func WithGPUCommand(cmd string) Option {
	return func(s *Source) { s.gpuCommand = cmd }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Source) { s.log = log }
}

// NewSource creates a source for host. host may be an SSH config alias.
func NewSource(host string, dialTimeout time.Duration, opts ...Option) *Source {
	s := &Source{
		host:        host,
		dialTimeout: dialTimeout,
		gpuCommand:  "nvidia-smi",
		dial:        dialSSH,
		log:         logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func dialSSH(host string, timeout time.Duration) (Conn, error) {
	client, err := sshutil.Dial(host, timeout)
	if err != nil {
		return nil, err
	}
	return client, nil
}

var _ metrics.Source = (*Source)(nil)

// Host returns the configured host.
func (s *Source) Host() string {
	return s.host
}

// ReadCPU returns the CPU load since the previous call. The first call
// has no baseline and reports load since boot.
func (s *Source) ReadCPU(ctx context.Context) (float64, error) {
	out, err := s.output(ctx, "cat /proc/stat")
	if err != nil {
		return 0, err
	}
	times, err := parsers.ParseProcStat(string(out))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.prevCPU
	if !s.havePrev {
		prev = parsers.CPUTimes{}
	}
	s.prevCPU = times
	s.havePrev = true
	return times.UsageSince(prev), nil
}

// ReadMemory returns physical memory usage from /proc/meminfo.
func (s *Source) ReadMemory(ctx context.Context) (metrics.MemoryReading, error) {
	out, err := s.output(ctx, "cat /proc/meminfo")
	if err != nil {
		return metrics.MemoryReading{}, err
	}
	return parsers.ParseMeminfo(string(out))
}

// ReadAccelerators runs nvidia-smi on the host.
func (s *Source) ReadAccelerators(ctx context.Context) ([]metrics.AcceleratorReading, error) {
	s.mu.Lock()
	gpuCommand := s.gpuCommand
	s.mu.Unlock()
	if gpuCommand == "" {
		return nil, metrics.ErrSensorUnavailable
	}

	query := gpuCommand + " " + strings.Join(quoteArgs(parsers.NvidiaSMIArgs), " ")
	cmd := fmt.Sprintf("if command -v %s >/dev/null 2>&1; then %s; else echo %s; fi",
		gpuCommand, query, missingMarker)

	out, err := s.output(ctx, cmd)
	if strings.TrimSpace(string(out)) == missingMarker {
		s.log.Debug("%s not installed on %s, disabling accelerator queries", gpuCommand, s.host)
		s.mu.Lock()
		s.gpuCommand = ""
		s.mu.Unlock()
		return nil, metrics.ErrSensorUnavailable
	}
	if err != nil {
		if readings, perr := parsers.ParseNvidiaSMI(string(out)); out != nil && perr == nil && len(readings) == 0 {
			return nil, nil
		}
		return nil, err
	}
	return parsers.ParseNvidiaSMI(string(out))
}

// Close drops the SSH connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *Source) output(ctx context.Context, cmd string) ([]byte, error) {
	conn, err := s.connect()
	if err != nil {
		return nil, err
	}

	out, err := conn.Output(ctx, cmd)
	if err != nil && out == nil {
		// Session-level failure; the connection is probably gone
		s.log.Debug("dropping connection to %s: %v", s.host, err)
		s.mu.Lock()
		if s.conn == conn {
			_ = s.conn.Close()
			s.conn = nil
		}
		s.mu.Unlock()
	}
	return out, err
}

func (s *Source) connect() (Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := s.dial(s.host, s.dialTimeout)
	if err != nil {
		return nil, err
	}
	s.log.Debug("connected to %s", s.host)
	s.conn = conn
	return conn, nil
}

func quoteArgs(args []string) []string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
	}
	return quoted
}
