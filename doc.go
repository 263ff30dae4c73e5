/*
Package tickflow provides process-wide software timers for Go programs.

Timers (pkg/scheduling):
  - scheduler: the Timer facade, self-contained and delegated strategies
  - tasktable: fire-time buckets used by the self-contained strategy
  - loop: EventLoop adapters for robfig/cron and gocron

Supporting packages:
  - config: YAML configuration
  - metrics: Prometheus collectors
  - common/logging, common/errors, common/validation

Example usage:

	import "github.com/vnykmshr/tickflow/pkg/scheduling/scheduler"

	t := scheduler.New(scheduler.Config{Name: "jobs"})
	_ = t.Start()
	defer func() { <-t.Stop() }()

	t.Every(10*time.Second, func(ctx context.Context, args ...any) error {
		return flush(ctx)
	})

See the examples directory for complete programs.
*/
package tickflow
