package model

import "time"

// PrayerStreak is the one-per-user streak record. LongestStreak >= CurrentStreak
// always; LastPrayerDate is date-only (midnight local).
type PrayerStreak struct {
	UserID         int        `db:"user_id" json:"user_id"`
	CurrentStreak  int        `db:"current_streak" json:"current_streak"`
	LongestStreak  int        `db:"longest_streak" json:"longest_streak"`
	LastPrayerDate *time.Time `db:"last_prayer_date" json:"last_prayer_date,omitempty"`
	TotalPrayers   int        `db:"total_prayers" json:"total_prayers"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
