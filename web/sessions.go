package web

import (
	"context"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"

	"invdash/dashboard"
)

// requestRunner runs dashboard tasks inline, each under its own timeout.
// The session lock held by the caller makes the continuation safe.
type requestRunner struct {
	timeout time.Duration
}

func (r requestRunner) Go(task dashboard.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if apply := task(ctx); apply != nil {
		apply()
	}
}

// session is one browser's dashboard. mu serializes its actions so the
// App's state is only touched by one request at a time.
type session struct {
	mu       sync.Mutex
	app      *dashboard.App
	surface  *Surface
	newApp   func(surface *Surface) *dashboard.App
	lastSeen time.Time
}

// do runs one action and returns the rendered fragments and client events.
func (s *session) do(confirmed bool, action func(app *dashboard.App)) (body, trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.surface.reset(confirmed)
	action(s.app)
	return s.surface.Body(), s.surface.Trigger()
}

// restart replaces the App with a fresh one and starts it. A page load
// begins from default filters and page 1 everywhere.
func (s *session) restart() (body, trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.surface.reset(false)
	s.app = s.newApp(s.surface)
	s.app.Start()
	return s.surface.Body(), s.surface.Trigger()
}

// SessionStore keeps one App per browser session and forgets sessions idle
// for longer than ttl.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	api      dashboard.API
	ttl      time.Duration
	timeout  time.Duration
	now      func() time.Time
}

func NewSessionStore(api dashboard.API, ttl, requestTimeout time.Duration) *SessionStore {
	return &SessionStore{
		sessions: map[string]*session{},
		api:      api,
		ttl:      ttl,
		timeout:  requestTimeout,
		now:      time.Now,
	}
}

// get returns the session for id, creating it on first use.
func (st *SessionStore) get(id string) *session {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		surface := NewSurface()
		sess = &session{surface: surface, newApp: st.newApp}
		sess.app = st.newApp(surface)
		st.sessions[id] = sess
		logger.Info("Dashboard session created", "session_id", id)
	}
	sess.lastSeen = st.now()
	return sess
}

func (st *SessionStore) newApp(surface *Surface) *dashboard.App {
	return dashboard.New(st.api, requestRunner{timeout: st.timeout}, surface, nil)
}

// Len reports the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops sessions idle longer than the ttl and returns how many.
func (st *SessionStore) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := st.now().Add(-st.ttl)
	swept := 0
	for id, sess := range st.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(st.sessions, id)
			swept++
		}
	}
	if swept > 0 {
		logger.Info("Swept idle dashboard sessions", "count", swept, "remaining", len(st.sessions))
	}
	return swept
}

// RunSweeper sweeps every interval until ctx is done.
func (st *SessionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
