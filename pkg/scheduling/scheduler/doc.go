/*
Package scheduler provides deferred and periodic callbacks for applications that do not own
an event loop, and a thin adapter for those that do.

A Timer runs in one of two modes, chosen once in New:

  - Self-contained: tasks live in a table keyed by whole Unix seconds. A one-second alarm
    sends a message on a channel; a single goroutine started by Start consumes it and runs
    Tick, which executes every due task.
  - Delegated: Config.EventLoop is set. Registration, removal and clearing are forwarded to
    the loop, which fires the callbacks itself.

Basic Usage:

	t := scheduler.New(scheduler.Config{Name: "jobs"})
	if err := t.Start(); err != nil {
		log.Fatal(err)
	}
	defer func() { <-t.Stop() }()

	report := func(ctx context.Context, args ...any) error {
		fmt.Println("report for", args[0])
		return nil
	}

	// Every 30 seconds, forever
	t.Every(30*time.Second, report, "eu-west")

	// Once, in five seconds
	t.After(5*time.Second, report, "us-east")

Delegated Mode:

Any type implementing EventLoop can own the timers. The loop package ships adapters for
robfig/cron and gocron:

	cl := loop.NewCronLoop(loop.CronConfig{})
	cl.Start()
	defer cl.Stop()

	t := scheduler.New(scheduler.Config{EventLoop: cl})
	id, err := t.Every(time.Minute, report, "ap-south")
	...
	t.Remove(id)

Only delegated timers have identifiers. In self-contained mode Register returns NoTimerID,
Remove always returns false and ClearAll is the only way to cancel.

Timing:

Self-contained timers have one-second resolution. The fire time is now plus the interval
truncated to whole seconds, so sub-second intervals fire on the next tick. A tick that
arrives late still runs every overdue task. Persistent tasks are re-armed from the tick
that ran them, so delays accumulate instead of being caught up.

Error Handling:

Registration with a non-positive interval or a nil callback fails with a
*errors.ValidationError and queues nothing. A callback that returns an error or panics is
logged, counted, passed to Config.OnError, and does not affect other tasks. Event loop
failures are returned as *errors.OperationError wrapping errors.ErrDelegation.

Callbacks run synchronously on the tick goroutine, so a slow callback delays the tasks
after it. Config.TaskTimeout gives each callback a deadline through its context; a
callback that ignores the context still blocks the tick.

Thread Safety:

All Timer methods are safe for concurrent use. Callbacks may register or clear timers.
*/
package scheduler
