package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"invdash/dashboard"
)

// applyMsg carries a finished task's continuation back into Update, the
// only place dashboard state is touched.
type applyMsg struct {
	apply func()
}

// cmdRunner turns dashboard tasks into bubbletea commands. Tasks queued while
// one message is handled leave Update together as a single batch.
type cmdRunner struct {
	timeout time.Duration
	pending []tea.Cmd
}

func (r *cmdRunner) Go(task dashboard.Task) {
	timeout := r.timeout
	r.pending = append(r.pending, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return applyMsg{apply: task(ctx)}
	})
}

// flush hands over the queued commands.
func (r *cmdRunner) flush() tea.Cmd {
	if len(r.pending) == 0 {
		return nil
	}
	cmds := r.pending
	r.pending = nil
	return tea.Batch(cmds...)
}
