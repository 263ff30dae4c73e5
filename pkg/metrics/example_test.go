package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Example_configuration demonstrates different metrics configurations.
func Example_configuration() {
	// Default configuration
	defaultConfig := DefaultConfig()
	fmt.Printf("Default enabled: %v\n", defaultConfig.Enabled)
	fmt.Printf("Default namespace: %s\n", defaultConfig.Namespace)

	// Disabled configuration yields no registry
	disabled := NewRegistryWithConfig(Config{Enabled: false})
	fmt.Printf("Disabled registry is nil: %v\n", disabled == nil)

	// Output:
	// Default enabled: true
	// Default namespace: tickflow
	// Disabled registry is nil: true
}

// Example_customRegistry demonstrates using a custom Prometheus registry.
func Example_customRegistry() {
	customRegistry := prometheus.NewRegistry()

	registry := NewRegistryWithConfig(Config{
		Enabled:   true,
		Registry:  customRegistry,
		Namespace: "myapp",
	})

	sched := registry.Scheduler("jobs")
	sched.Registered("repeating")
	sched.Tick()

	families, _ := customRegistry.Gather()
	for _, mf := range families {
		fmt.Println(mf.GetName())
	}

	// Output:
	// myapp_timer_alarm_armed
	// myapp_timer_callback_duration_seconds
	// myapp_timer_callbacks_executed_total
	// myapp_timer_callbacks_failed_total
	// myapp_timer_pending_tasks
	// myapp_timer_registered_total
	// myapp_timer_registrations_rejected_total
	// myapp_timer_ticks_total
}
