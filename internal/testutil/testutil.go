// Package testutil holds helpers shared by tickflow tests.
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// TestTimeout is the default timeout for tests
const TestTimeout = 5 * time.Second

// Epoch is the start time of clocks created by NewFakeClock. It falls on a
// whole second so that fire times are easy to reason about.
var Epoch = time.Unix(1_700_000_000, 0)

// NewFakeClock returns a fake clock set to Epoch.
func NewFakeClock() *clockwork.FakeClock {
	return clockwork.NewFakeClockAt(Epoch)
}

// WithTimeout creates a context with the default test timeout
func WithTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), TestTimeout)
}

// Eventually polls condition every tick until it returns true, failing the
// test if that does not happen within timeout.
func Eventually(t *testing.T, condition func() bool, timeout, tick time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if condition() {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", timeout)
		}
		time.Sleep(tick)
	}
}

// AssertEventually is Eventually with TestTimeout and a 10ms tick.
func AssertEventually(t *testing.T, condition func() bool) {
	t.Helper()
	Eventually(t, condition, TestTimeout, 10*time.Millisecond)
}

// WaitForInt32 waits until *addr equals want.
func WaitForInt32(t *testing.T, addr *int32, want int32, timeout time.Duration) {
	t.Helper()
	Eventually(t, func() bool {
		return atomic.LoadInt32(addr) == want
	}, timeout, 5*time.Millisecond)
}

// AssertNoError fails the test if err is not nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertEqual fails the test if got != want
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// CallbackTracker records how often a callback ran and the last value it saw.
type CallbackTracker struct {
	mu    sync.Mutex
	count int
	value interface{}
}

// NewCallbackTracker creates an empty tracker.
func NewCallbackTracker() *CallbackTracker {
	return &CallbackTracker{}
}

// Mark records a call, keeping the first value if one is given.
func (c *CallbackTracker) Mark(value ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if len(value) > 0 {
		c.value = value[0]
	}
}

func (c *CallbackTracker) Called() bool {
	return c.CallCount() > 0
}

func (c *CallbackTracker) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *CallbackTracker) Value() interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *CallbackTracker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	c.value = nil
}

func (c *CallbackTracker) AssertCalled(t *testing.T) {
	t.Helper()
	if !c.Called() {
		t.Fatal("expected callback to be called")
	}
}

func (c *CallbackTracker) AssertNotCalled(t *testing.T) {
	t.Helper()
	if n := c.CallCount(); n != 0 {
		t.Fatalf("expected callback not to be called, called %d times", n)
	}
}

func (c *CallbackTracker) AssertCallCount(t *testing.T, want int) {
	t.Helper()
	if got := c.CallCount(); got != want {
		t.Fatalf("call count = %d, want %d", got, want)
	}
}
