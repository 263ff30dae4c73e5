package loop

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/tickflow/pkg/common/logging"
	"github.com/vnykmshr/tickflow/pkg/scheduling/scheduler"
)

// CronConfig configures a CronLoop.
type CronConfig struct {
	// Logger receives cron lifecycle events and job failures
	Logger *zerolog.Logger

	// Location for schedule evaluation. Defaults to time.Local
	Location *time.Location
}

// CronLoop is an EventLoop on top of robfig/cron. Timer identifiers are
// cron entry IDs.
type CronLoop struct {
	cron *cron.Cron
	log  zerolog.Logger

	mu     sync.Mutex
	timers map[scheduler.TimerID]*cronTimer
}

var _ scheduler.EventLoop = (*CronLoop)(nil)

type cronTimer struct {
	loop *CronLoop
	id   scheduler.TimerID
	mode scheduler.Mode
	fn   scheduler.Func
	args []any
}

// NewCronLoop creates a stopped loop. Call Start for timers to fire.
func NewCronLoop(cfg CronConfig) *CronLoop {
	var log zerolog.Logger
	if cfg.Logger != nil {
		log = *cfg.Logger
	} else {
		log = logging.New(logging.Config{})
	}
	log = logging.Component(log, "cronloop")

	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	adapter := cronLogger{log: log}
	return &CronLoop{
		cron: cron.New(
			cron.WithLocation(cfg.Location),
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter)),
		),
		log:    log,
		timers: make(map[scheduler.TimerID]*cronTimer),
	}
}

// AddTimer schedules fn every interval. A ModeOnce timer removes itself
// before its first run.
func (l *CronLoop) AddTimer(interval time.Duration, mode scheduler.Mode, fn scheduler.Func, args []any) (scheduler.TimerID, error) {
	t := &cronTimer{loop: l, mode: mode, fn: fn, args: args}

	// Held across Schedule so a job never runs before its id is recorded.
	l.mu.Lock()
	defer l.mu.Unlock()

	t.id = scheduler.TimerID(l.cron.Schedule(cron.Every(interval), t))
	l.timers[t.id] = t
	return t.id, nil
}

// DelTimer removes a timer. Both modes are stored alike, so mode is unused.
func (l *CronLoop) DelTimer(id scheduler.TimerID, _ scheduler.Mode) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.timers[id]; !ok {
		return false
	}
	delete(l.timers, id)
	l.cron.Remove(cron.EntryID(id))
	return true
}

func (l *CronLoop) ClearAllTimers() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for id := range l.timers {
		l.cron.Remove(cron.EntryID(id))
	}
	l.timers = make(map[scheduler.TimerID]*cronTimer)
}

// Len returns the number of live timers.
func (l *CronLoop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Next returns the next activation of a timer.
func (l *CronLoop) Next(id scheduler.TimerID) (time.Time, bool) {
	e := l.cron.Entry(cron.EntryID(id))
	if !e.Valid() {
		return time.Time{}, false
	}
	return e.Next, true
}

func (l *CronLoop) Start() {
	l.cron.Start()
	l.log.Info().Msg("cron loop started")
}

// Stop stops scheduling. The returned channel closes once running jobs
// have finished.
func (l *CronLoop) Stop() <-chan struct{} {
	ctx := l.cron.Stop()
	l.log.Info().Msg("cron loop stopped")
	return ctx.Done()
}

// Run implements cron.Job.
func (t *cronTimer) Run() {
	if t.mode == scheduler.ModeOnce && !t.loop.DelTimer(t.id, t.mode) {
		return
	}
	if err := t.fn(context.Background(), t.args...); err != nil {
		t.loop.log.Debug().Err(err).Int64("timer_id", int64(t.id)).Msg("timer callback returned error")
	}
}
