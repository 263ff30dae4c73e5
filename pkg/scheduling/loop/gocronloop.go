package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/vnykmshr/tickflow/pkg/common/logging"
	"github.com/vnykmshr/tickflow/pkg/scheduling/scheduler"
)

// timerTag marks every job created by a GocronLoop.
const timerTag = "tickflow"

// GocronConfig configures a GocronLoop.
type GocronConfig struct {
	// Logger receives gocron events and job failures
	Logger *zerolog.Logger

	// Clock drives the gocron scheduler. Defaults to the real clock
	Clock clockwork.Clock
}

// GocronLoop is an EventLoop on top of gocron v2. Timer identifiers are
// assigned locally and mapped to gocron job UUIDs.
type GocronLoop struct {
	sched gocron.Scheduler
	log   zerolog.Logger

	mu     sync.Mutex
	nextID scheduler.TimerID
	jobs   map[scheduler.TimerID]uuid.UUID
}

var _ scheduler.EventLoop = (*GocronLoop)(nil)

// NewGocronLoop creates a stopped loop. Call Start for timers to fire.
func NewGocronLoop(cfg GocronConfig) (*GocronLoop, error) {
	var log zerolog.Logger
	if cfg.Logger != nil {
		log = *cfg.Logger
	} else {
		log = logging.New(logging.Config{})
	}
	log = logging.Component(log, "gocronloop")

	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}

	s, err := gocron.NewScheduler(
		gocron.WithClock(cfg.Clock),
		gocron.WithLogger(gocronLogger{log: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &GocronLoop{
		sched:  s,
		log:    log,
		nextID: 1,
		jobs:   make(map[scheduler.TimerID]uuid.UUID),
	}, nil
}

// AddTimer creates a duration job. ModeOnce jobs are limited to one run and
// forgotten once it completes.
func (l *GocronLoop) AddTimer(interval time.Duration, mode scheduler.Mode, fn scheduler.Func, args []any) (scheduler.TimerID, error) {
	if interval < time.Second {
		interval = time.Second
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	task := func() {
		if mode == scheduler.ModeOnce {
			l.forget(id)
		}
		if err := fn(context.Background(), args...); err != nil {
			l.log.Debug().Err(err).Int64("timer_id", int64(id)).Msg("timer callback returned error")
		}
	}

	opts := []gocron.JobOption{
		gocron.WithName(fmt.Sprintf("timer-%d", id)),
		gocron.WithTags(timerTag),
	}
	if mode == scheduler.ModeOnce {
		opts = append(opts, gocron.WithLimitedRuns(1))
	}

	job, err := l.sched.NewJob(gocron.DurationJob(interval), gocron.NewTask(task), opts...)
	if err != nil {
		return scheduler.NoTimerID, fmt.Errorf("failed to schedule timer: %w", err)
	}

	l.nextID++
	l.jobs[id] = job.ID()
	return id, nil
}

func (l *GocronLoop) forget(id scheduler.TimerID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.jobs, id)
}

// DelTimer removes a job. Both modes are stored alike, so mode is unused.
func (l *GocronLoop) DelTimer(id scheduler.TimerID, _ scheduler.Mode) bool {
	l.mu.Lock()
	jobID, ok := l.jobs[id]
	delete(l.jobs, id)
	l.mu.Unlock()

	if !ok {
		return false
	}
	if err := l.sched.RemoveJob(jobID); err != nil {
		if !errors.Is(err, gocron.ErrJobNotFound) {
			l.log.Warn().Err(err).Int64("timer_id", int64(id)).Msg("failed to remove job")
		}
		return false
	}
	return true
}

func (l *GocronLoop) ClearAllTimers() {
	l.mu.Lock()
	l.jobs = make(map[scheduler.TimerID]uuid.UUID)
	l.mu.Unlock()

	l.sched.RemoveByTags(timerTag)
}

// Len returns the number of live timers.
func (l *GocronLoop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.jobs)
}

func (l *GocronLoop) Start() {
	l.sched.Start()
	l.log.Info().Msg("gocron loop started")
}

// Shutdown stops the scheduler and waits for running jobs.
func (l *GocronLoop) Shutdown() error {
	if err := l.sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down gocron scheduler: %w", err)
	}
	l.log.Info().Msg("gocron loop stopped")
	return nil
}
