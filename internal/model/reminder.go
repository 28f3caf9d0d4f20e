package model

import "time"

// Frequency is the descriptive schedule label chosen for a reminder.
// It is stored and displayed but never consulted when deciding to fire.
type Frequency string

const (
	FrequencyOnce   Frequency = "once"
	FrequencyDaily  Frequency = "daily"
	FrequencyTwice  Frequency = "twice"
	FrequencyThree  Frequency = "three"
	FrequencyWeekly Frequency = "weekly"
)

// Frequencies lists every accepted label in display order.
var Frequencies = []Frequency{FrequencyOnce, FrequencyDaily, FrequencyTwice, FrequencyThree, FrequencyWeekly}

// Valid reports whether f is one of the known labels.
func (f Frequency) Valid() bool {
	for _, known := range Frequencies {
		if f == known {
			return true
		}
	}
	return false
}

// Reminder represents a medicine reminder that recurs daily at Time.
type Reminder struct {
	ID           int       `json:"id"`
	MedicineName string    `json:"medicineName"`
	Dosage       string    `json:"dosage"`
	Time         string    `json:"time"` // HH:MM, 24-hour
	Frequency    Frequency `json:"frequency"`
	CreatedAt    time.Time `json:"createdAt"`
}
