package model

import (
	"time"

	"github.com/lib/pq"
)

// PrayerReminder is the per-prayer reminder configuration. Exactly one per
// prayer name per user; five are seeded on first use.
type PrayerReminder struct {
	ID           string        `db:"id" json:"id"`
	UserID       int           `db:"user_id" json:"user_id"`
	PrayerName   string        `db:"prayer_name" json:"prayer_name"`
	ReminderTime string        `db:"reminder_time" json:"reminder_time"` // "HH:MM" 24h local
	IsEnabled    bool          `db:"is_enabled" json:"is_enabled"`
	DaysOfWeek   pq.Int64Array `db:"days_of_week" json:"days_of_week"` // Monday=1 .. Sunday=7
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// DefaultReminderTimes are the seed times used when a user has no reminders yet.
var DefaultReminderTimes = map[string]string{
	PrayerFajr:    "05:30",
	PrayerDhuhr:   "12:30",
	PrayerAsr:     "15:45",
	PrayerMaghrib: "18:15",
	PrayerIsha:    "20:00",
}

// AllDays is the seed days_of_week value: every day of the week.
func AllDays() pq.Int64Array {
	return pq.Int64Array{1, 2, 3, 4, 5, 6, 7}
}
