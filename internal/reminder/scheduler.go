package reminder

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pathakanu/healthAI/internal/metrics"
	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/robfig/cron/v3"
)

// matchWindow is how far, in minutes, the current time may be from a
// reminder's time and still fire it.
const matchWindow = 1

// Lister is the read side of Store the scheduler needs.
type Lister interface {
	List() []model.Reminder
}

// Notifier receives fired reminders. notify.Dispatcher satisfies it.
type Notifier interface {
	Dispatch(ctx context.Context, n notify.Notification)
}

// Scheduler checks the reminder list on a fixed cron spec and notifies for
// every reminder whose time is within matchWindow of the current minute.
// It keeps no record of what already fired, so a reminder fires again on
// every tick inside the window.
type Scheduler struct {
	reminders Lister
	notifier  Notifier
	cron      *cron.Cron
	spec      string
	loc       *time.Location
	now       func() time.Time
	metrics   *metrics.Collectors
	logger    *log.Logger
}

// NewScheduler builds a scheduler evaluating times in loc. spec is a
// robfig/cron spec such as "@every 1m".
func NewScheduler(reminders Lister, notifier Notifier, spec string, loc *time.Location, m *metrics.Collectors, logger *log.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		reminders: reminders,
		notifier:  notifier,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		spec:    spec,
		loc:     loc,
		now:     time.Now,
		metrics: m,
		logger:  logger,
	}
}

// Start runs one check immediately, then registers the periodic check and
// starts the cron loop.
func (s *Scheduler) Start() error {
	s.Check(s.now())
	if _, err := s.cron.AddFunc(s.spec, func() {
		s.Check(s.now())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler: started", "spec", s.spec, "timezone", s.loc.String())
	return nil
}

// Stop stops the cron loop and waits for a running check to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Check is one tick: it fires every reminder due at now and returns them.
// Minute-of-day values are compared without wrapping past midnight.
func (s *Scheduler) Check(now time.Time) []model.Reminder {
	s.metrics.SchedulerTick()
	local := now.In(s.loc)
	current := local.Hour()*60 + local.Minute()

	var fired []model.Reminder
	for _, r := range s.reminders.List() {
		target, err := MinuteOfDay(r.Time)
		if err != nil {
			s.logger.Warn("scheduler: skipping reminder with bad time", "id", r.ID, "time", r.Time, "err", err)
			continue
		}
		if Due(target, current) {
			fired = append(fired, r)
			s.metrics.ReminderFired()
			s.logger.Debug("scheduler: firing", "id", r.ID, "medicine", r.MedicineName, "time", r.Time)
			s.notifier.Dispatch(context.Background(), NotificationFor(r))
		}
	}
	return fired
}

// Due reports whether a reminder at target minute fires at current minute.
func Due(target, current int) bool {
	diff := target - current
	if diff < 0 {
		diff = -diff
	}
	return diff <= matchWindow
}
