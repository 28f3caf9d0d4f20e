package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors groups the counters the service exports. A nil *Collectors is
// valid and records nothing.
type Collectors struct {
	remindersFired   prometheus.Counter
	schedulerTicks   prometheus.Counter
	reminderMutation *prometheus.CounterVec
	storageErrors    *prometheus.CounterVec
	analyses         *prometheus.CounterVec
	doctorSearches   *prometheus.CounterVec
}

// New registers the collectors with reg, or the default registerer when nil.
func New(reg prometheus.Registerer) *Collectors {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collectors{
		remindersFired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "reminders",
			Name:      "fired_total",
			Help:      "Reminder notifications emitted by the scheduler",
		}),
		schedulerTicks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "reminders",
			Name:      "ticks_total",
			Help:      "Scheduler checks performed",
		}),
		reminderMutation: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "reminders",
			Name:      "mutations_total",
			Help:      "Reminder add/delete/edit operations by outcome",
		}, []string{"op", "outcome"}),
		storageErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "reminders",
			Name:      "storage_errors_total",
			Help:      "Persisted reminder list failures by operation",
		}, []string{"op"}),
		analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "symptoms",
			Name:      "analyses_total",
			Help:      "Symptom analyses by severity or failure",
		}, []string{"result"}),
		doctorSearches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthai",
			Subsystem: "doctors",
			Name:      "searches_total",
			Help:      "Doctor searches by cache result",
		}, []string{"cache"}),
	}
}

func (c *Collectors) ReminderFired() {
	if c == nil {
		return
	}
	c.remindersFired.Inc()
}

func (c *Collectors) SchedulerTick() {
	if c == nil {
		return
	}
	c.schedulerTicks.Inc()
}

func (c *Collectors) ReminderMutation(op, outcome string) {
	if c == nil {
		return
	}
	c.reminderMutation.WithLabelValues(op, outcome).Inc()
}

func (c *Collectors) StorageError(op string) {
	if c == nil {
		return
	}
	c.storageErrors.WithLabelValues(op).Inc()
}

func (c *Collectors) Analysis(result string) {
	if c == nil {
		return
	}
	c.analyses.WithLabelValues(result).Inc()
}

func (c *Collectors) DoctorSearch(cacheHit bool) {
	if c == nil {
		return
	}
	label := "miss"
	if cacheHit {
		label = "hit"
	}
	c.doctorSearches.WithLabelValues(label).Inc()
}
