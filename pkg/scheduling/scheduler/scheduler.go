package scheduler

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/tickflow/pkg/common/logging"
	"github.com/vnykmshr/tickflow/pkg/common/validation"
	"github.com/vnykmshr/tickflow/pkg/metrics"
)

// Func is a timer callback. It receives the arguments captured when the
// timer was registered, in the same order.
type Func func(ctx context.Context, args ...any) error

// Mode tells an event loop whether a timer repeats or fires once.
type Mode int

const (
	ModeRepeating Mode = iota
	ModeOnce
)

// ModeFor maps the persistent flag of a registration to a Mode.
func ModeFor(persistent bool) Mode {
	if persistent {
		return ModeRepeating
	}
	return ModeOnce
}

func (m Mode) String() string {
	switch m {
	case ModeRepeating:
		return "repeating"
	case ModeOnce:
		return "once"
	default:
		return "unknown"
	}
}

// TimerID identifies a timer owned by an EventLoop.
type TimerID int64

// NoTimerID is returned where no identifier exists, including every
// successful registration in self-contained mode.
const NoTimerID TimerID = 0

// EventLoop is the timer capability of an externally owned event loop.
type EventLoop interface {
	// AddTimer arms a timer calling fn(ctx, args...) every interval, or once
	// after interval when mode is ModeOnce.
	AddTimer(interval time.Duration, mode Mode, fn Func, args []any) (TimerID, error)

	// DelTimer cancels a timer and reports whether it existed.
	DelTimer(id TimerID, mode Mode) bool

	// ClearAllTimers cancels every timer of the loop.
	ClearAllTimers()
}

// Scheduler is the contract shared by both execution strategies.
type Scheduler interface {
	// Register schedules fn to run after interval, and again every interval
	// after that when persistent is true.
	Register(interval time.Duration, fn Func, args []any, persistent bool) (TimerID, error)

	// Remove cancels a timer by identifier.
	Remove(id TimerID) bool

	// ClearAll cancels every timer.
	ClearAll()

	// Lifecycle
	Start() error
	Stop() <-chan struct{}
}

// Config holds timer configuration.
type Config struct {
	// Name labels log lines and metrics (default: "default").
	Name string

	// EventLoop selects delegated mode when set. Nil selects the
	// self-contained mode driven by a one-second alarm.
	EventLoop EventLoop

	// Clock is the time source of the self-contained mode (default: real clock).
	Clock clockwork.Clock

	// Logger receives callback failures and lifecycle events
	// (default: JSON lines on stderr at info level).
	Logger *zerolog.Logger

	// Metrics enables Prometheus collection when set.
	Metrics *metrics.Registry

	// TaskTimeout bounds every callback through its context. Zero means no
	// budget. Callbacks that ignore their context are not interrupted.
	TaskTimeout time.Duration

	// OnError is called with every callback failure after it is logged.
	OnError func(err error)
}

func (cfg Config) withDefaults() Config {
	if cfg.Name == "" {
		cfg.Name = "default"
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		l := logging.New(logging.Config{})
		cfg.Logger = &l
	}
	return cfg
}

func (cfg Config) logger() zerolog.Logger {
	return logging.Component(*cfg.Logger, "scheduler").
		With().Str("scheduler", cfg.Name).Logger()
}

// task is one registered unit of work.
type task struct {
	fn         Func
	args       []any
	persistent bool
	interval   time.Duration
}

func newTask(interval time.Duration, fn Func, args []any, persistent bool) *task {
	return &task{
		fn:         fn,
		args:       append([]any(nil), args...),
		persistent: persistent,
		interval:   interval,
	}
}

func validateRegistration(interval time.Duration, fn Func) error {
	if err := validation.ValidatePositiveDuration("scheduler", "interval", interval); err != nil {
		return err
	}
	return validation.ValidateCallable("scheduler", "callback", fn)
}
