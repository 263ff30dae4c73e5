package scheduler

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// AlarmPeriod is the interval of the self-contained mode's alarm.
const AlarmPeriod = time.Second

// Alarm is a repeating interval signal delivered as channel messages.
type Alarm interface {
	// Arm starts the alarm. Arming an armed alarm does nothing.
	Arm()

	// Disarm stops the alarm. A message already queued on C may still be
	// received once.
	Disarm()

	Armed() bool

	// C delivers one message per period while armed. It never changes and
	// is never closed. Slow receivers miss ticks rather than queue them.
	C() <-chan time.Time
}

type intervalAlarm struct {
	clock  clockwork.Clock
	period time.Duration
	ch     chan time.Time

	mu     sync.Mutex
	ticker clockwork.Ticker
	stop   chan struct{}
}

// NewAlarm creates a disarmed alarm ticking every period on clock.
func NewAlarm(clock clockwork.Clock, period time.Duration) Alarm {
	return &intervalAlarm{
		clock:  clock,
		period: period,
		ch:     make(chan time.Time, 1),
	}
}

func (a *intervalAlarm) Arm() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker != nil {
		return
	}
	a.ticker = a.clock.NewTicker(a.period)
	a.stop = make(chan struct{})
	go a.forward(a.ticker, a.stop)
}

func (a *intervalAlarm) Disarm() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ticker == nil {
		return
	}
	a.ticker.Stop()
	close(a.stop)
	a.ticker = nil
	a.stop = nil
}

func (a *intervalAlarm) Armed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticker != nil
}

func (a *intervalAlarm) C() <-chan time.Time {
	return a.ch
}

func (a *intervalAlarm) forward(ticker clockwork.Ticker, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case t := <-ticker.Chan():
			select {
			case a.ch <- t:
			default:
			}
		}
	}
}
