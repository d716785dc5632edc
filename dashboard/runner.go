package dashboard

import "context"

// Task performs network work off the UI thread and returns the continuation
// to run back on it. A nil continuation means there is nothing to apply.
type Task func(ctx context.Context) func()

// Runner schedules Tasks. Implementations must run each continuation on the
// thread that owns the session's State.
type Runner interface {
	Go(task Task)
}

// InlineRunner runs the task and its continuation immediately on the calling
// goroutine. The web surface uses it under a per-session lock.
type InlineRunner struct {
	Ctx context.Context
}

func (r InlineRunner) Go(task Task) {
	ctx := r.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if apply := task(ctx); apply != nil {
		apply()
	}
}
