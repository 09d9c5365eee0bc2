package app

import (
	stderrors "errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_EmptyTake(t *testing.T) {
	var m Mailbox

	_, ok, err := m.Take()

	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestMailbox_LatestWins(t *testing.T) {
	var m Mailbox
	m.Put(snap(1), nil)
	m.Put(snap(2), nil)
	m.Put(snap(3), nil)

	got, ok, err := m.Take()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3.0, got.CPUPercent)

	_, ok, _ = m.Take()
	assert.False(t, ok, "slot is emptied by Take")
}

func TestMailbox_ErrorReplacedBySuccess(t *testing.T) {
	var m Mailbox
	m.Put(snap(0), stderrors.New("boom"))
	m.Put(snap(5), nil)

	got, ok, err := m.Take()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5.0, got.CPUPercent)
}

func TestMailbox_Concurrent(t *testing.T) {
	var m Mailbox
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Put(snap(v), nil)
				_, _, _ = m.Take()
			}
		}(float64(i))
	}
	wg.Wait()
}
