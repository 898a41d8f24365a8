// Package idle watches for user inactivity. The hosting layer forwards
// qualifying input events (pointer movement, key press, click, scroll) as
// Poke calls; after a quiet period the monitor fires its callback exactly
// once and locks until restarted.
//
// The monitor is a single owned timer with an explicit start/stop lifecycle.
// The caller ties that lifecycle to "session present" so no timer outlives
// the authenticated session.
package idle

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// State is the monitor's lifecycle position.
type State int

const (
	StateStopped State = iota
	StateActive
	StateLocked
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateActive:
		return "active"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Monitor owns one timer. Every Poke cancels and reschedules it; there is
// never an accumulating set of timers.
type Monitor struct {
	mu     sync.Mutex
	window time.Duration
	onIdle func()
	timer  *time.Timer
	state  State
	log    zerolog.Logger
}

// Option modifies a Monitor during construction.
type Option func(*Monitor)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Monitor) {
		m.log = log
	}
}

// New creates a stopped Monitor. onIdle runs on the timer's goroutine when
// the quiet window elapses with no pokes.
func New(window time.Duration, onIdle func(), options ...Option) (*Monitor, error) {
	if window <= 0 {
		return nil, errors.New("[idle.New] window must be positive")
	}
	if onIdle == nil {
		return nil, errors.New("[idle.New] onIdle callback is required")
	}

	m := &Monitor{
		window: window,
		onIdle: onIdle,
		state:  StateStopped,
		log:    zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// Start arms the timer. Calling Start while active restarts the window;
// calling it after a lock re-arms the monitor for the next quiet period.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
	}
	m.state = StateActive
	m.timer = time.AfterFunc(m.window, m.fire)
	m.log.Debug().Dur("window", m.window).Msg("idle monitor started")
}

// Poke registers a qualifying input event, restarting the window from zero.
// Pokes while stopped or locked are ignored.
func (m *Monitor) Poke() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive || m.timer == nil {
		return
	}
	m.timer.Stop()
	m.timer.Reset(m.window)
}

// Stop tears the monitor down: the timer is released and no callback will
// fire. Idempotent; safe to call on an already-stopped monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	if m.state != StateStopped {
		m.state = StateStopped
		m.log.Debug().Msg("idle monitor stopped")
	}
}

// State returns the monitor's current lifecycle position.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Monitor) fire() {
	m.mu.Lock()
	if m.state != StateActive {
		// Raced with Stop; the quiet period no longer counts.
		m.mu.Unlock()
		return
	}
	m.state = StateLocked
	m.timer = nil
	m.log.Info().Msg("idle window elapsed, locking")
	m.mu.Unlock()

	// The callback runs outside the lock so it may call Start or Stop.
	m.onIdle()
}
