// Package reminder evaluates prayer reminders against the wall clock and
// dispatches due notifications, once per reminder per day.
package reminder

import (
	"time"

	"github.com/sajda-app/sajda/internal/model"
)

// DayOfWeek maps time.Weekday to the stored convention, Monday=1 .. Sunday=7.
func DayOfWeek(t time.Time) int {
	wd := int(t.Weekday()) // Sunday=0
	if wd == 0 {
		return 7
	}
	return wd
}

// Clock returns t as "HH:MM", the granularity reminders match at.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// ValidClock reports whether s is a well-formed "HH:MM" 24h time.
func ValidClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// Due reports whether the reminder fires at now: it must be enabled, today
// must be in its day set, and its time must equal the minute-truncated clock.
func Due(r model.PrayerReminder, now time.Time) bool {
	if !r.IsEnabled {
		return false
	}
	today := int64(DayOfWeek(now))
	inSet := false
	for _, d := range r.DaysOfWeek {
		if d == today {
			inSet = true
			break
		}
	}
	if !inSet {
		return false
	}
	return r.ReminderTime == Clock(now)
}
