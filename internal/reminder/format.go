package reminder

import (
	"fmt"
	"time"

	"github.com/pathakanu/healthAI/internal/model"
	"github.com/pathakanu/healthAI/internal/notify"
)

// TimeLayout is the wire and storage layout of a reminder time.
const TimeLayout = "15:04"

// MinuteOfDay converts "HH:MM" into minutes after midnight.
func MinuteOfDay(clock string) (int, error) {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTime renders "14:05" as "2:05 PM". Unparseable input is returned as is.
func FormatTime(clock string) string {
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return clock
	}
	return t.Format("3:04 PM")
}

var frequencyLabels = map[model.Frequency]string{
	model.FrequencyOnce:   "One time only",
	model.FrequencyDaily:  "Every day",
	model.FrequencyTwice:  "Twice daily",
	model.FrequencyThree:  "Three times daily",
	model.FrequencyWeekly: "Once a week",
}

// FormatFrequency returns the human label for f, or f itself when unknown.
func FormatFrequency(f model.Frequency) string {
	if label, ok := frequencyLabels[f]; ok {
		return label
	}
	return string(f)
}

// NotificationFor builds what the user sees when r fires.
func NotificationFor(r model.Reminder) notify.Notification {
	return notify.Notification{
		Title:  fmt.Sprintf("Time for %s", r.MedicineName),
		Body:   fmt.Sprintf("Take %s now", r.Dosage),
		Banner: fmt.Sprintf("⏰ Time to take %s: %s", r.MedicineName, r.Dosage),
		Sound:  true,
	}
}
