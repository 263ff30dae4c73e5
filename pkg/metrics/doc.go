// Package metrics provides Prometheus instrumentation for tickflow timers.
//
// # Quick Start
//
// Create a Registry on a dedicated Prometheus registry and hand it to the
// timer through its Config:
//
//	reg := prometheus.NewRegistry()
//	t := scheduler.New(scheduler.Config{
//		Name:    "jobs",
//		Metrics: metrics.NewRegistry(reg),
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Available Metrics
//
//   - tickflow_timer_registered_total: Timers registered, by mode ("repeating" or "once")
//   - tickflow_timer_registrations_rejected_total: Registrations rejected by validation or the event loop
//   - tickflow_timer_callbacks_executed_total: Callbacks executed
//   - tickflow_timer_callbacks_failed_total: Callbacks that returned an error or panicked
//   - tickflow_timer_callback_duration_seconds: Time spent executing callbacks
//   - tickflow_timer_ticks_total: Alarm ticks processed (self-contained mode only)
//   - tickflow_timer_pending_tasks: Tasks waiting in the task table
//   - tickflow_timer_alarm_armed: 1 while the interval alarm is armed
//
// Every metric carries a scheduler_name label. Use Config.Namespace to
// replace the "tickflow" prefix and Config.Labels for constant labels.
//
// A nil *Registry disables collection: Registry.Scheduler returns nil and the
// methods of a nil *Scheduler do nothing.
package metrics
