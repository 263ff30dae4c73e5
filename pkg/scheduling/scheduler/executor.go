package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
	"github.com/vnykmshr/tickflow/pkg/metrics"
)

// executor runs callbacks with failure isolation. A failing callback is
// logged, counted and reported to onError; it never escapes to the caller.
type executor struct {
	log     zerolog.Logger
	metrics *metrics.Scheduler
	timeout time.Duration
	onError func(error)
}

func newExecutor(cfg Config, log zerolog.Logger, m *metrics.Scheduler) *executor {
	return &executor{
		log:     log,
		metrics: m,
		timeout: cfg.TaskTimeout,
		onError: cfg.OnError,
	}
}

// run executes fn(ctx, args...) and returns the reported failure, if any.
func (e *executor) run(ctx context.Context, fn Func, args []any, interval time.Duration, persistent bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	err := call(ctx, fn, args)
	e.metrics.Executed(time.Since(start), err)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("%w: %w", tferrors.ErrTimeout, err)
	}
	opErr := tferrors.NewOperationError("scheduler", "Callback", err).
		WithContext(fmt.Sprintf("interval=%s persistent=%t", interval, persistent))

	e.log.Error().
		Err(opErr).
		Dur("interval", interval).
		Bool("persistent", persistent).
		Msg("timer callback failed")
	if e.onError != nil {
		e.onError(opErr)
	}
	return opErr
}

func call(ctx context.Context, fn Func, args []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\nStack trace:\n%s", tferrors.ErrCallbackPanicked, r, debug.Stack())
		}
	}()
	return fn(ctx, args...)
}
