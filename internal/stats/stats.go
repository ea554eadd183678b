// Package stats builds the read models behind the dashboard: today's
// progress, weekly and monthly rollups, the 30-day completion rate and the
// calendar grid. Everything here is a pure fold over prayer logs.
package stats

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
	"github.com/sajda-app/sajda/internal/streak"
)

// Weeks are Monday-anchored everywhere in this package.

type DayProgress struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

type TodayProgress struct {
	Date            time.Time `json:"date"`
	PrayersLogged   int       `json:"prayers_logged"`
	ProgressPercent float64   `json:"progress_percent"`
	Logged          []string  `json:"logged"`
}

type WeeklyStats struct {
	WeekStart time.Time     `json:"week_start"`
	Days      []DayProgress `json:"days"`
}

type MonthlyStats struct {
	TotalPrayers   int     `json:"total_prayers"`
	AveragePerDay  float64 `json:"average_per_day"`
	MostPrayedTime string  `json:"most_prayed_time"`
	TotalDuration  int     `json:"total_duration_minutes"`
	CompletionRate float64 `json:"completion_rate_percent"`
}

type CalendarDay struct {
	Date      time.Time `json:"date"`
	Completed int       `json:"completed"`
	Full      bool      `json:"full"`
}

// WeekStart returns the Monday of the week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	day := streak.StartOfDay(t)
	wd := int(day.Weekday()) // Sunday=0
	if wd == 0 {
		wd = 7
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// Today computes today's progress from logs spanning at least today.
func Today(logs []model.PrayerLog, now time.Time) TodayProgress {
	seen := map[string]bool{}
	for _, l := range logs {
		if streak.SameDay(l.LoggedAt, now) {
			seen[l.PrayerName] = true
		}
	}
	logged := make([]string, 0, len(seen))
	for _, name := range model.PrayerNames {
		if seen[name] {
			logged = append(logged, name)
		}
	}
	return TodayProgress{
		Date:            streak.StartOfDay(now),
		PrayersLogged:   len(seen),
		ProgressPercent: float64(len(seen)) / float64(len(model.PrayerNames)) * 100,
		Logged:          logged,
	}
}

// Weekly rolls the current week up into seven per-day progress entries.
func Weekly(logs []model.PrayerLog, now time.Time) WeeklyStats {
	start := WeekStart(now)
	days := make([]DayProgress, 7)
	perDay := make([]map[string]bool, 7)
	for i := range days {
		days[i] = DayProgress{Date: start.AddDate(0, 0, i), Total: len(model.PrayerNames)}
		perDay[i] = map[string]bool{}
	}
	for _, l := range logs {
		for i := range days {
			if streak.SameDay(l.LoggedAt, days[i].Date) {
				perDay[i][l.PrayerName] = true
				break
			}
		}
	}
	for i := range days {
		days[i].Completed = len(perDay[i])
	}
	return WeeklyStats{WeekStart: start, Days: days}
}

// Monthly aggregates the trailing 30 days. The completion rate keeps the
// historical arithmetic: a 30-day query window with a 7-day denominator
// counting only the trailing week's fully-completed days.
func Monthly(logs []model.PrayerLog, now time.Time) MonthlyStats {
	counts := map[string]int{}
	totalDuration := 0
	for _, l := range logs {
		counts[l.PrayerName]++
		if l.DurationMinutes != nil {
			totalDuration += *l.DurationMinutes
		}
	}

	// ties broken by first-encountered in canonical prayer order
	most := ""
	best := 0
	for _, name := range model.PrayerNames {
		if counts[name] > best {
			best = counts[name]
			most = name
		}
	}

	fullDays := 0
	for i := 0; i < 7; i++ {
		day := streak.StartOfDay(now).AddDate(0, 0, -i)
		seen := map[string]bool{}
		for _, l := range logs {
			if streak.SameDay(l.LoggedAt, day) {
				seen[l.PrayerName] = true
			}
		}
		if len(seen) == len(model.PrayerNames) {
			fullDays++
		}
	}

	return MonthlyStats{
		TotalPrayers:   len(logs),
		AveragePerDay:  float64(len(logs)) / 30,
		MostPrayedTime: most,
		TotalDuration:  totalDuration,
		CompletionRate: float64(fullDays) / 7 * 100,
	}
}

// Calendar builds the per-day grid for one month.
func Calendar(logs []model.PrayerLog, year int, month time.Month, loc *time.Location) []CalendarDay {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	perDay := make([]map[string]bool, daysInMonth)
	for i := range perDay {
		perDay[i] = map[string]bool{}
	}
	for _, l := range logs {
		lt := l.LoggedAt.In(loc)
		if lt.Year() != year || lt.Month() != month {
			continue
		}
		perDay[lt.Day()-1][l.PrayerName] = true
	}

	out := make([]CalendarDay, daysInMonth)
	for i := range out {
		out[i] = CalendarDay{
			Date:      first.AddDate(0, 0, i),
			Completed: len(perDay[i]),
			Full:      len(perDay[i]) == len(model.PrayerNames),
		}
	}
	return out
}

// Safe runs fn and replaces a panic with the zero-valued result so the
// dashboard never crashes on bad or missing data.
func Safe[T any](name string, fn func() T) (out T) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("stat", name).Msg("stats computation failed, returning defaults")
			var zero T
			out = zero
		}
	}()
	return fn()
}
