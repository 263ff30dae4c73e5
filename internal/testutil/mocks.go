package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/vnykmshr/tickflow/pkg/scheduling/scheduler"
)

// AddTimerCall is one recorded MockEventLoop.AddTimer call.
type AddTimerCall struct {
	ID       scheduler.TimerID
	Interval time.Duration
	Mode     scheduler.Mode
	Fn       scheduler.Func
	Args     []any
}

// DelTimerCall is one recorded MockEventLoop.DelTimer call.
type DelTimerCall struct {
	ID   scheduler.TimerID
	Mode scheduler.Mode
}

var _ scheduler.EventLoop = (*MockEventLoop)(nil)

// MockEventLoop implements scheduler.EventLoop by recording calls. Timers
// never fire on their own; use Fire to run one.
type MockEventLoop struct {
	mu         sync.Mutex
	nextID     scheduler.TimerID
	timers     map[scheduler.TimerID]AddTimerCall
	adds       []AddTimerCall
	dels       []DelTimerCall
	clearCalls int
	addErr     error
}

// NewMockEventLoop creates a loop whose first identifier is 1.
func NewMockEventLoop() *MockEventLoop {
	return &MockEventLoop{
		nextID: 1,
		timers: make(map[scheduler.TimerID]AddTimerCall),
	}
}

// SetAddError makes every later AddTimer fail with err.
func (m *MockEventLoop) SetAddError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addErr = err
}

func (m *MockEventLoop) AddTimer(interval time.Duration, mode scheduler.Mode, fn scheduler.Func, args []any) (scheduler.TimerID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.addErr != nil {
		return scheduler.NoTimerID, m.addErr
	}
	call := AddTimerCall{ID: m.nextID, Interval: interval, Mode: mode, Fn: fn, Args: args}
	m.nextID++
	m.timers[call.ID] = call
	m.adds = append(m.adds, call)
	return call.ID, nil
}

func (m *MockEventLoop) DelTimer(id scheduler.TimerID, mode scheduler.Mode) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dels = append(m.dels, DelTimerCall{ID: id, Mode: mode})
	if _, ok := m.timers[id]; !ok {
		return false
	}
	delete(m.timers, id)
	return true
}

func (m *MockEventLoop) ClearAllTimers() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clearCalls++
	m.timers = make(map[scheduler.TimerID]AddTimerCall)
}

// Fire runs the callback of a live timer the way a loop would, dropping
// one-shot timers afterwards. It reports false for unknown ids.
func (m *MockEventLoop) Fire(id scheduler.TimerID) (bool, error) {
	m.mu.Lock()
	call, ok := m.timers[id]
	if ok && call.Mode == scheduler.ModeOnce {
		delete(m.timers, id)
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, call.Fn(context.Background(), call.Args...)
}

// Adds returns the recorded AddTimer calls.
func (m *MockEventLoop) Adds() []AddTimerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]AddTimerCall(nil), m.adds...)
}

// Dels returns the recorded DelTimer calls.
func (m *MockEventLoop) Dels() []DelTimerCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]DelTimerCall(nil), m.dels...)
}

// ClearCalls returns how many times ClearAllTimers ran.
func (m *MockEventLoop) ClearCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearCalls
}

// Live returns the number of timers not yet removed.
func (m *MockEventLoop) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
