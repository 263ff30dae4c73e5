/*
Package scheduling groups the timer packages.

  - scheduler: register deferred and periodic callbacks
  - tasktable: table of tasks keyed by fire second
  - loop: event loops that can own delegated timers

Self-contained:

	t := scheduler.New(scheduler.Config{})
	_ = t.Start()
	t.After(5*time.Second, notify, "user-42")

Delegated to robfig/cron:

	cl := loop.NewCronLoop(loop.CronConfig{})
	cl.Start()
	t := scheduler.New(scheduler.Config{EventLoop: cl})
	id, _ := t.Every(time.Minute, sweep)
	t.Remove(id)
*/
package scheduling
