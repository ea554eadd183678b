// Package streak derives the consecutive-day prayer streak from the day's
// logs and the previous streak record.
package streak

import (
	"time"

	"github.com/sajda-app/sajda/internal/model"
)

// StartOfDay truncates t to midnight in t's location. Streak bookkeeping uses
// calendar-date equality, not a rolling 24h window, so Fajr at 00:05 and Isha
// at 23:50 land on the same day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DistinctPrayers counts the distinct prayer names present in logs.
func DistinctPrayers(logs []model.PrayerLog) int {
	seen := make(map[string]bool, len(model.PrayerNames))
	for _, l := range logs {
		seen[l.PrayerName] = true
	}
	return len(seen)
}

// Advance decides the new streak record given the previous one, the number of
// distinct prayers logged today, and the all-time log count.
//
// A day only counts once all five prayers are logged; partial progress never
// mutates streak state. Completing today when yesterday completed extends the
// streak, re-completing today is a no-op on the counter, and any gap of two
// days or more resets it to 1.
func Advance(prev model.PrayerStreak, now time.Time, distinctToday, totalLogs int) model.PrayerStreak {
	if distinctToday < len(model.PrayerNames) {
		return prev
	}

	next := prev
	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	switch {
	case prev.LastPrayerDate == nil:
		next.CurrentStreak = 1
	case SameDay(*prev.LastPrayerDate, today):
		// already advanced today; a sixth duplicate log cannot double-count
	case SameDay(*prev.LastPrayerDate, yesterday):
		next.CurrentStreak = prev.CurrentStreak + 1
	default:
		next.CurrentStreak = 1
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastPrayerDate = &today
	next.TotalPrayers = totalLogs
	return next
}
