package model

import "time"

// The five daily prayers, in order.
const (
	PrayerFajr    = "Fajr"
	PrayerDhuhr   = "Dhuhr"
	PrayerAsr     = "Asr"
	PrayerMaghrib = "Maghrib"
	PrayerIsha    = "Isha"
)

// PrayerNames lists the five canonical prayer names in daily order.
var PrayerNames = []string{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

// ValidPrayerName reports whether name is one of the five daily prayers.
func ValidPrayerName(name string) bool {
	for _, n := range PrayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// PrayerLog is one completed prayer. Immutable after creation except for
// duration back-fill keyed by ID.
type PrayerLog struct {
	ID              string     `db:"id" json:"id"`
	UserID          int        `db:"user_id" json:"user_id"`
	PrayerName      string     `db:"prayer_name" json:"prayer_name"`
	LoggedAt        time.Time  `db:"logged_at" json:"logged_at"`
	StartTime       *time.Time `db:"start_time" json:"start_time,omitempty"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	DurationMinutes *int       `db:"duration_minutes" json:"duration_minutes,omitempty"`
	Notes           *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
