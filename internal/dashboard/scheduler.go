package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// callbackMsg carries a scheduled callback back into Update.
type callbackMsg struct {
	fn func()
}

// teaScheduler implements app.Scheduler on top of tea.Tick. After only
// records the command; the model returns it from Update so bubbletea
// starts the timer.
type teaScheduler struct {
	pending []tea.Cmd
}

func (s *teaScheduler) After(d time.Duration, fn func()) {
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return callbackMsg{fn: fn}
	}))
}

// drain returns the commands queued since the last drain.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
