package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
	"github.com/vnykmshr/tickflow/pkg/metrics"
)

// Delegating forwards every timer operation to an EventLoop. It keeps no
// task state and never ticks: the loop owns scheduling and firing.
type Delegating struct {
	loop    EventLoop
	exec    *executor
	log     zerolog.Logger
	metrics *metrics.Scheduler
}

// NewDelegating creates a delegated scheduler on loop.
func NewDelegating(loop EventLoop, cfg Config) *Delegating {
	cfg = cfg.withDefaults()
	log := cfg.logger().With().Str("mode", "delegated").Logger()
	m := cfg.Metrics.Scheduler(cfg.Name)
	return &Delegating{
		loop:    loop,
		exec:    newExecutor(cfg, log, m),
		log:     log,
		metrics: m,
	}
}

// Register validates like the self-contained mode, then hands the timer to
// the loop and returns the loop's identifier unchanged.
func (d *Delegating) Register(interval time.Duration, fn Func, args []any, persistent bool) (TimerID, error) {
	if err := validateRegistration(interval, fn); err != nil {
		d.metrics.Rejected()
		d.log.Warn().Err(err).Msg("timer registration rejected")
		return NoTimerID, err
	}

	mode := ModeFor(persistent)
	guarded := func(ctx context.Context, args ...any) error {
		return d.exec.run(ctx, fn, args, interval, persistent)
	}

	id, err := d.loop.AddTimer(interval, mode, guarded, append([]any(nil), args...))
	if err != nil {
		d.metrics.Rejected()
		opErr := tferrors.NewOperationError("scheduler", "AddTimer", fmt.Errorf("%w: %w", tferrors.ErrDelegation, err)).
			WithContext(fmt.Sprintf("interval=%s mode=%s", interval, mode))
		d.log.Warn().Err(opErr).Msg("event loop rejected timer")
		return NoTimerID, opErr
	}

	d.metrics.Registered(mode.String())
	d.log.Debug().
		Int64("timer_id", int64(id)).
		Dur("interval", interval).
		Stringer("timer_mode", mode).
		Msg("timer registered")
	return id, nil
}

// Remove cancels a timer on the loop. The loop's answer is returned as is.
func (d *Delegating) Remove(id TimerID) bool {
	ok := d.loop.DelTimer(id, ModeRepeating)
	d.log.Debug().Int64("timer_id", int64(id)).Bool("removed", ok).Msg("timer remove")
	return ok
}

// ClearAll cancels every timer on the loop.
func (d *Delegating) ClearAll() {
	d.loop.ClearAllTimers()
	d.log.Debug().Msg("all timers cleared")
}

// Start does nothing; the loop drives execution.
func (d *Delegating) Start() error {
	return nil
}

// Stop does nothing and returns a closed channel.
func (d *Delegating) Stop() <-chan struct{} {
	closed := make(chan struct{})
	close(closed)
	return closed
}
