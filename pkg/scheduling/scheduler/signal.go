package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
	"github.com/vnykmshr/tickflow/pkg/metrics"
	"github.com/vnykmshr/tickflow/pkg/scheduling/tasktable"
)

// SignalScheduler is the self-contained strategy. It keeps tasks in a
// tasktable keyed by whole Unix seconds and polls it on every alarm tick.
//
// Intervals are truncated to whole seconds when computing the fire time, so
// 1.5s behaves as 1s and anything below one second fires on the next tick.
// Persistent tasks are re-armed from the tick that fired them rather than
// from their previous fire time, so a late tick shifts every later firing.
type SignalScheduler struct {
	clock   clockwork.Clock
	alarm   Alarm
	exec    *executor
	log     zerolog.Logger
	metrics *metrics.Scheduler

	mu    sync.Mutex
	table *tasktable.Table[*task]
	// gen is bumped by ClearAll so a tick in progress drops what it detached.
	gen uint64

	runMu   sync.Mutex
	running bool
	done    chan struct{}
	stopped chan struct{}
}

// NewSignalScheduler creates a self-contained scheduler. cfg.EventLoop is ignored.
func NewSignalScheduler(cfg Config) *SignalScheduler {
	cfg = cfg.withDefaults()
	return newSignalScheduler(cfg, NewAlarm(cfg.Clock, AlarmPeriod))
}

func newSignalScheduler(cfg Config, alarm Alarm) *SignalScheduler {
	log := cfg.logger().With().Str("mode", "local").Logger()
	m := cfg.Metrics.Scheduler(cfg.Name)
	return &SignalScheduler{
		clock:   cfg.Clock,
		alarm:   alarm,
		exec:    newExecutor(cfg, log, m),
		log:     log,
		metrics: m,
		table:   tasktable.New[*task](),
	}
}

// Register queues fn to run interval from now. It never returns an
// identifier: self-contained timers can only be cancelled with ClearAll.
func (s *SignalScheduler) Register(interval time.Duration, fn Func, args []any, persistent bool) (TimerID, error) {
	if err := validateRegistration(interval, fn); err != nil {
		s.metrics.Rejected()
		s.log.Warn().Err(err).Msg("timer registration rejected")
		return NoTimerID, err
	}

	t := newTask(interval, fn, args, persistent)

	s.mu.Lock()
	at := s.insert(t, s.clock.Now().Unix())
	pending := s.table.Len()
	s.mu.Unlock()

	s.metrics.Registered(ModeFor(persistent).String())
	s.metrics.Pending(pending)
	s.log.Debug().
		Dur("interval", interval).
		Bool("persistent", persistent).
		Int64("run_at", at).
		Msg("timer registered")
	return NoTimerID, nil
}

// insert must be called with s.mu held.
func (s *SignalScheduler) insert(t *task, now int64) int64 {
	if s.table.Empty() {
		s.alarm.Arm()
		s.metrics.Armed(true)
	}
	at := now + int64(t.interval/time.Second)
	s.table.Add(at, t)
	return at
}

// Tick runs every task due at the current second. It is called for each
// alarm message and is safe to call at any time.
//
// An empty table disarms the alarm. Callbacks run outside the table lock,
// in ascending fire time and registration order, and may register or clear
// timers themselves.
func (s *SignalScheduler) Tick() {
	s.mu.Lock()
	if s.table.Empty() {
		s.alarm.Disarm()
		s.mu.Unlock()
		s.metrics.Armed(false)
		return
	}
	now := s.clock.Now().Unix()
	gen := s.gen
	due := s.table.PopDue(now)
	s.mu.Unlock()

	s.metrics.Tick()

	for _, bucket := range due {
		for _, t := range bucket {
			if !s.current(gen) {
				s.log.Debug().Msg("timers cleared during tick")
				s.updatePending()
				return
			}

			_ = s.exec.run(context.Background(), t.fn, t.args, t.interval, t.persistent)

			if t.persistent {
				s.mu.Lock()
				if s.gen == gen {
					s.insert(t, now)
				}
				s.mu.Unlock()
			}
		}
	}
	s.updatePending()
}

func (s *SignalScheduler) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}

func (s *SignalScheduler) updatePending() {
	s.metrics.Pending(s.Pending())
}

// Remove always fails: queued tasks carry no identifier in this mode.
func (s *SignalScheduler) Remove(id TimerID) bool {
	s.log.Debug().Int64("timer_id", int64(id)).Msg("remove by id is not supported without an event loop")
	return false
}

// ClearAll drops every queued task and disarms the alarm.
func (s *SignalScheduler) ClearAll() {
	s.mu.Lock()
	s.table.Clear()
	s.gen++
	s.alarm.Disarm()
	s.mu.Unlock()

	s.metrics.Pending(0)
	s.metrics.Armed(false)
	s.log.Debug().Msg("all timers cleared")
}

// Pending returns the number of queued tasks.
func (s *SignalScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Len()
}

// Armed reports whether the interval alarm is running.
func (s *SignalScheduler) Armed() bool {
	return s.alarm.Armed()
}

// NextRun returns the earliest fire time in the table.
func (s *SignalScheduler) NextRun() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at, ok := s.table.Next()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(at, 0), true
}

// Start launches the goroutine that consumes alarm messages and runs Tick.
func (s *SignalScheduler) Start() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running, call Stop() first: %w", tferrors.ErrAlreadyRunning)
	}

	s.mu.Lock()
	if !s.table.Empty() {
		s.alarm.Arm()
		s.metrics.Armed(true)
	}
	s.mu.Unlock()

	s.running = true
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})
	go s.run(s.done, s.stopped)

	s.log.Info().Msg("timer started")
	return nil
}

// Stop halts the consumer goroutine and disarms the alarm. Queued tasks are
// kept and resume on the next Start. The returned channel closes once the
// consumer has exited; a Tick in progress finishes first.
func (s *SignalScheduler) Stop() <-chan struct{} {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	s.running = false
	close(s.done)

	s.mu.Lock()
	s.alarm.Disarm()
	s.mu.Unlock()
	s.metrics.Armed(false)

	s.log.Info().Msg("timer stopped")
	return s.stopped
}

func (s *SignalScheduler) run(done <-chan struct{}, stopped chan<- struct{}) {
	defer close(stopped)

	for {
		select {
		case <-done:
			return
		case <-s.alarm.C():
			s.Tick()
		}
	}
}
