package dashboard

import (
	"context"
	"sync/atomic"

	"github.com/rohanthewiz/logger"
)

// LoaderSpec wires a Loader to one resource. Query runs on the UI thread and
// captures the filter state; Fetch runs on the Runner; Apply runs back on the
// UI thread with a successful result.
type LoaderSpec[Q, R any] struct {
	Name  string
	Query func(page int) Q
	Fetch func(ctx context.Context, q Q) (R, error)
	Apply func(q Q, result R)

	// Spinner decides per call whether the loading indicator is shown.
	// Nil shows it for every call.
	Spinner func() bool

	// Failure builds the error notification. Nil uses "Error loading <Name>".
	Failure func(q Q) string
}

// Loader fetches one resource and renders it. Every Load is tagged with a
// sequence number; a response is applied only if no newer Load was issued
// since, so a slow response can never overwrite a faster, later one.
type Loader[Q, R any] struct {
	spec     LoaderSpec[Q, R]
	runner   Runner
	activity *activity
	latest   atomic.Uint64
}

func newLoader[Q, R any](spec LoaderSpec[Q, R], runner Runner, act *activity) *Loader[Q, R] {
	return &Loader[Q, R]{spec: spec, runner: runner, activity: act}
}

// Load requests page (clamped to at least 1) with the current filters.
func (l *Loader[Q, R]) Load(page int) {
	if page < 1 {
		page = 1
	}
	q := l.spec.Query(page)
	seq := l.latest.Add(1)

	spin := l.spec.Spinner == nil || l.spec.Spinner()
	if spin {
		l.activity.begin()
	}

	l.runner.Go(func(ctx context.Context) func() {
		result, err := l.spec.Fetch(ctx, q)
		return func() {
			if spin {
				l.activity.end()
			}
			if !l.current(seq) {
				logger.Debug("Discarding stale response", "loader", l.spec.Name)
				return
			}
			if err != nil {
				logger.LogErr(err, "load failed", "loader", l.spec.Name)
				l.activity.notify(NotifyError, l.failure(q))
				return
			}
			l.spec.Apply(q, result)
		}
	})
}

// claim takes a sequence number for a fetch issued outside Load, such as
// the startup batch, so that later Loads supersede it.
func (l *Loader[Q, R]) claim() uint64 {
	return l.latest.Add(1)
}

// current reports whether seq is still the newest request.
func (l *Loader[Q, R]) current(seq uint64) bool {
	return seq == l.latest.Load()
}

func (l *Loader[Q, R]) failure(q Q) string {
	if l.spec.Failure != nil {
		return l.spec.Failure(q)
	}
	return "Error loading " + l.spec.Name
}

// Refresh reloads the first page.
func (l *Loader[Q, R]) Refresh() {
	l.Load(1)
}

// activity tracks outstanding spinner requests and routes notifications.
type activity struct {
	surface Surface
	pending int
}

func (a *activity) begin() {
	a.pending++
	if a.pending == 1 {
		a.surface.SetLoading(true)
	}
}

func (a *activity) end() {
	if a.pending == 0 {
		return
	}
	a.pending--
	if a.pending == 0 {
		a.surface.SetLoading(false)
	}
}

func (a *activity) notify(kind NotifyKind, msg string) {
	a.surface.Notify(Notification{Kind: kind, Message: msg})
}
