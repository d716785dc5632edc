package dashboard

import (
	"sync"
	"time"
)

// DefaultDebounce is the search input quiet period.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces bursts of input into one call with the last value.
// A new Trigger cancels the pending call and restarts the wait.
type Debouncer struct {
	mu    sync.Mutex
	wait  time.Duration
	fn    func(value string)
	timer *time.Timer
	gen   uint64 // bumped on every Trigger and Stop; a timer only fires for its own generation
}

// NewDebouncer calls fn with the latest value once wait has passed without
// another Trigger. fn runs on the timer's goroutine.
func NewDebouncer(wait time.Duration, fn func(value string)) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() {
		d.mu.Lock()
		current := gen == d.gen
		d.mu.Unlock()
		if current {
			d.fn(value)
		}
	})
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
