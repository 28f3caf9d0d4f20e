package reminder

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pathakanu/healthAI/internal/kvstore"
	"github.com/pathakanu/healthAI/internal/logger"
	"github.com/pathakanu/healthAI/internal/metrics"
	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/notify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticList []model.Reminder

func (l staticList) List() []model.Reminder { return l }

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (r *recordingNotifier) Dispatch(_ context.Context, n notify.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func at(hour, minute, second int) time.Time {
	return time.Date(2024, 3, 10, hour, minute, second, 0, time.UTC)
}

func newTestScheduler(reminders Lister, n Notifier) *Scheduler {
	return NewScheduler(reminders, n, "@every 1m", time.UTC, metrics.New(prometheus.NewRegistry()), logger.Discard())
}

func TestCheckWindow(t *testing.T) {
	t.Parallel()

	reminders := staticList{{ID: 1, MedicineName: "Aspirin", Dosage: "1 tablet", Time: "09:00"}}
	cases := []struct {
		now  time.Time
		want bool
	}{
		{at(8, 58, 0), false},
		{at(8, 59, 0), true},
		{at(9, 0, 0), true},
		{at(9, 1, 0), true},
		{at(9, 1, 59), true},
		{at(9, 2, 0), false},
		{at(21, 0, 0), false},
	}

	for _, tc := range cases {
		n := &recordingNotifier{}
		fired := newTestScheduler(reminders, n).Check(tc.now)
		assert.Equal(t, tc.want, len(fired) == 1, "check at %s", tc.now.Format("15:04:05"))
		assert.Equal(t, len(fired), n.count())
	}
}

func TestCheckDoesNotWrapMidnight(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	s := newTestScheduler(staticList{
		{ID: 1, MedicineName: "Melatonin", Dosage: "3mg", Time: "00:00"},
		{ID: 2, MedicineName: "Late", Dosage: "1", Time: "23:59"},
	}, n)

	fired := s.Check(at(23, 59, 0))
	require.Len(t, fired, 1)
	assert.Equal(t, 2, fired[0].ID)

	fired = s.Check(at(0, 1, 0))
	require.Len(t, fired, 1)
	assert.Equal(t, 1, fired[0].ID)
}

func TestConsecutiveTicksFireAgain(t *testing.T) {
	t.Parallel()

	// No fired flag is kept: every tick inside the window notifies again.
	n := &recordingNotifier{}
	s := newTestScheduler(staticList{{ID: 1, MedicineName: "Aspirin", Dosage: "1 tablet", Time: "09:00"}}, n)

	s.Check(at(8, 59, 30))
	s.Check(at(9, 0, 30))
	s.Check(at(9, 1, 30))
	s.Check(at(9, 2, 30))

	assert.Equal(t, 3, n.count())
}

func TestCheckIgnoresFrequencyAndBadTimes(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	s := newTestScheduler(staticList{
		{ID: 1, MedicineName: "Weekly", Dosage: "1", Time: "09:00", Frequency: model.FrequencyWeekly},
		{ID: 2, MedicineName: "Once", Dosage: "1", Time: "09:00", Frequency: model.FrequencyOnce},
		{ID: 3, MedicineName: "Broken", Dosage: "1", Time: "nine"},
	}, n)

	fired := s.Check(at(9, 0, 0))
	assert.Len(t, fired, 2)
}

func TestCheckNotificationContent(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	newTestScheduler(staticList{{ID: 1, MedicineName: "Aspirin", Dosage: "1 tablet", Time: "09:00"}}, n).Check(at(9, 0, 0))

	require.Len(t, n.sent, 1)
	assert.Equal(t, notify.Notification{
		Title:  "Time for Aspirin",
		Body:   "Take 1 tablet now",
		Banner: "⏰ Time to take Aspirin: 1 tablet",
		Sound:  true,
	}, n.sent[0])
}

func TestCheckUsesSchedulerTimezone(t *testing.T) {
	t.Parallel()

	kolkata := time.FixedZone("IST", 5*60*60+30*60)
	n := &recordingNotifier{}
	s := NewScheduler(staticList{{ID: 1, MedicineName: "A", Dosage: "1", Time: "09:00"}}, n, "@every 1m", kolkata, nil, logger.Discard())

	// 03:30 UTC is 09:00 IST.
	assert.Len(t, s.Check(at(3, 30, 0)), 1)
}

func TestStartRunsImmediateCheck(t *testing.T) {
	t.Parallel()

	n := &recordingNotifier{}
	s := newTestScheduler(staticList{{ID: 1, MedicineName: "A", Dosage: "1", Time: "09:00"}}, n)
	s.now = func() time.Time { return at(9, 0, 0) }

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, n.count())
}

func TestStartRejectsBadSpec(t *testing.T) {
	t.Parallel()

	s := NewScheduler(staticList{}, &recordingNotifier{}, "every minute please", time.UTC, nil, logger.Discard())
	assert.Error(t, s.Start())
}

func TestStoreFeedsScheduler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newTestStore(t, kvstore.NewMemoryStore())
	_, err := store.Add(ctx, Input{MedicineName: "Aspirin", Dosage: "1 tablet", Time: "09:00"})
	require.NoError(t, err)

	n := &recordingNotifier{}
	assert.Len(t, newTestScheduler(store, n).Check(at(9, 1, 0)), 1)
}
