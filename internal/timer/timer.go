// Package timer provides the solve timer.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// Timer measures a solve. It only runs while enabled; disabling it stops
// it. A stopped timer resumes from its elapsed time on the next Start.
type Timer struct {
	mu      sync.Mutex
	now     func() time.Time
	start   time.Time
	elapsed time.Duration
	running bool
	enabled bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces time.Now. Tests use it to step time by hand.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		if now != nil {
			t.now = now
		}
	}
}

// WithEnabled sets the initial enabled state.
func WithEnabled(enabled bool) Option {
	return func(t *Timer) {
		t.enabled = enabled
	}
}

// New creates a disabled, stopped timer.
func New(opts ...Option) *Timer {
	t := &Timer{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Toggle flips the enabled state and returns the new value.
func (t *Timer) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = !t.enabled
	if !t.enabled {
		t.stopLocked()
	}
	return t.enabled
}

// Start starts the timer. It does nothing when disabled or already running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.enabled || t.running {
		return
	}
	t.start = t.now().Add(-t.elapsed)
	t.running = true
}

// Stop freezes the elapsed time.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Timer) stopLocked() {
	if !t.running {
		return
	}
	t.elapsed = t.now().Sub(t.start)
	t.running = false
}

// Reset stops the timer and clears the elapsed time.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.elapsed = 0
	t.start = time.Time{}
}

// Elapsed returns the measured time, live while running.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.now().Sub(t.start)
	}
	return t.elapsed
}

// Enabled reports whether the timer is enabled.
func (t *Timer) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Running reports whether the timer is running.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// String formats the elapsed time.
func (t *Timer) String() string {
	return Format(t.Elapsed())
}

// Format renders d as mm:ss.cc. Minutes are not capped at 59.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
