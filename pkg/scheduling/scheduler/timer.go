package scheduler

import (
	"time"

	"github.com/rs/zerolog"
)

// Timer is the public entry point. It picks its strategy once, in New, and
// routes every call to it for its whole life.
type Timer struct {
	strategy Scheduler
	local    *SignalScheduler
	log      zerolog.Logger
}

var (
	_ Scheduler = (*SignalScheduler)(nil)
	_ Scheduler = (*Delegating)(nil)
	_ Scheduler = (*Timer)(nil)
)

// New creates a timer. With cfg.EventLoop set every call is delegated to
// the loop; otherwise timers run on the self-contained one-second alarm and
// Start must be called for them to fire.
func New(cfg Config) *Timer {
	cfg = cfg.withDefaults()
	t := &Timer{log: cfg.logger()}

	if cfg.EventLoop != nil {
		t.strategy = NewDelegating(cfg.EventLoop, cfg)
		t.log.Debug().Str("mode", "delegated").Msg("timer initialized")
		return t
	}

	t.local = NewSignalScheduler(cfg)
	t.strategy = t.local
	t.log.Debug().Str("mode", "local").Msg("timer initialized")
	return t
}

// Register schedules fn(ctx, args...) after interval, repeating every
// interval when persistent is true. The returned id is NoTimerID in
// self-contained mode.
func (t *Timer) Register(interval time.Duration, fn Func, args []any, persistent bool) (TimerID, error) {
	return t.strategy.Register(interval, fn, args, persistent)
}

// Every registers a persistent timer.
func (t *Timer) Every(interval time.Duration, fn Func, args ...any) (TimerID, error) {
	return t.strategy.Register(interval, fn, args, true)
}

// After registers a timer that fires once.
func (t *Timer) After(interval time.Duration, fn Func, args ...any) (TimerID, error) {
	return t.strategy.Register(interval, fn, args, false)
}

// Remove cancels a delegated timer. It always returns false in
// self-contained mode.
func (t *Timer) Remove(id TimerID) bool {
	return t.strategy.Remove(id)
}

// ClearAll cancels every timer.
func (t *Timer) ClearAll() {
	t.strategy.ClearAll()
}

// Tick polls the task table once. It does nothing in delegated mode.
func (t *Timer) Tick() {
	if t.local != nil {
		t.local.Tick()
	}
}

func (t *Timer) Start() error {
	return t.strategy.Start()
}

func (t *Timer) Stop() <-chan struct{} {
	return t.strategy.Stop()
}

// Delegated reports whether an event loop owns the timers.
func (t *Timer) Delegated() bool {
	return t.local == nil
}

// Pending returns the number of queued tasks, or -1 in delegated mode.
func (t *Timer) Pending() int {
	if t.local == nil {
		return -1
	}
	return t.local.Pending()
}
