package app

import (
	"sync"

	"github.com/rileyhilliard/sysmon/internal/metrics"
)

// Mailbox is a single-slot handoff between the sampling worker and the
// loop. Put overwrites whatever hasn't been taken yet.
type Mailbox struct {
	mu       sync.Mutex
	snapshot metrics.Snapshot
	err      error
	full     bool
}

// Put stores the outcome of one sample, replacing any unread one.
func (m *Mailbox) Put(snapshot metrics.Snapshot, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = snapshot
	m.err = err
	m.full = true
}

// Take returns the latest outcome and empties the slot.
// ok is false when nothing new arrived since the last Take.
func (m *Mailbox) Take() (snapshot metrics.Snapshot, ok bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		return metrics.Snapshot{}, false, nil
	}
	snapshot, err = m.snapshot, m.err
	m.snapshot, m.err, m.full = metrics.Snapshot{}, nil, false
	return snapshot, err == nil, err
}
