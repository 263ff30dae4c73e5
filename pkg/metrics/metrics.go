package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for tickflow timers.
type Registry struct {
	TimersRegistered      *prometheus.CounterVec
	RegistrationsRejected *prometheus.CounterVec
	CallbacksExecuted     *prometheus.CounterVec
	CallbacksFailed       *prometheus.CounterVec
	CallbackDuration      *prometheus.HistogramVec
	Ticks                 *prometheus.CounterVec
	PendingTasks          *prometheus.GaugeVec
	AlarmArmed            *prometheus.GaugeVec
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Enabled: true, Registry: reg})
}

// NewRegistryWithConfig creates a registry honoring the namespace and constant
// labels of cfg. It returns nil when cfg.Enabled is false.
func NewRegistryWithConfig(cfg Config) *Registry {
	if !cfg.Enabled {
		return nil
	}
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := cfg.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	factory := promauto.With(reg)
	labels := []string{"scheduler_name"}

	return &Registry{
		TimersRegistered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "registered_total",
				Help:        "Total number of timers registered",
				ConstLabels: cfg.Labels,
			},
			[]string{"scheduler_name", "mode"},
		),

		RegistrationsRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "registrations_rejected_total",
				Help:        "Total number of timer registrations rejected by validation or the event loop",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		CallbacksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "callbacks_executed_total",
				Help:        "Total number of timer callbacks executed",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		CallbacksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "callbacks_failed_total",
				Help:        "Total number of timer callbacks that returned an error or panicked",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		CallbackDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "callback_duration_seconds",
				Help:        "Time spent executing timer callbacks",
				Buckets:     prometheus.DefBuckets,
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		Ticks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "ticks_total",
				Help:        "Total number of alarm ticks processed",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		PendingTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "pending_tasks",
				Help:        "Number of tasks waiting in the task table",
				ConstLabels: cfg.Labels,
			},
			labels,
		),

		AlarmArmed: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "timer",
				Name:        "alarm_armed",
				Help:        "1 while the interval alarm is armed, 0 otherwise",
				ConstLabels: cfg.Labels,
			},
			labels,
		),
	}
}

// Scheduler returns the metric handles for one named scheduler. A nil
// Registry yields a nil *Scheduler, whose methods are no-ops.
func (r *Registry) Scheduler(name string) *Scheduler {
	if r == nil {
		return nil
	}
	return &Scheduler{
		registry: r,
		name:     name,
		rejected: r.RegistrationsRejected.WithLabelValues(name),
		executed: r.CallbacksExecuted.WithLabelValues(name),
		failed:   r.CallbacksFailed.WithLabelValues(name),
		duration: r.CallbackDuration.WithLabelValues(name),
		ticks:    r.Ticks.WithLabelValues(name),
		pending:  r.PendingTasks.WithLabelValues(name),
		alarm:    r.AlarmArmed.WithLabelValues(name),
	}
}

// Scheduler holds pre-resolved label values for a single scheduler instance.
type Scheduler struct {
	registry *Registry
	name     string
	rejected prometheus.Counter
	executed prometheus.Counter
	failed   prometheus.Counter
	duration prometheus.Observer
	ticks    prometheus.Counter
	pending  prometheus.Gauge
	alarm    prometheus.Gauge
}

// Registered counts a successful registration in the given mode.
func (s *Scheduler) Registered(mode string) {
	if s == nil {
		return
	}
	s.registry.TimersRegistered.WithLabelValues(s.name, mode).Inc()
}

func (s *Scheduler) Rejected() {
	if s == nil {
		return
	}
	s.rejected.Inc()
}

// Executed records one callback run and its outcome.
func (s *Scheduler) Executed(d time.Duration, err error) {
	if s == nil {
		return
	}
	s.executed.Inc()
	s.duration.Observe(d.Seconds())
	if err != nil {
		s.failed.Inc()
	}
}

func (s *Scheduler) Tick() {
	if s == nil {
		return
	}
	s.ticks.Inc()
}

func (s *Scheduler) Pending(n int) {
	if s == nil {
		return
	}
	s.pending.Set(float64(n))
}

func (s *Scheduler) Armed(armed bool) {
	if s == nil {
		return
	}
	if armed {
		s.alarm.Set(1)
		return
	}
	s.alarm.Set(0)
}
