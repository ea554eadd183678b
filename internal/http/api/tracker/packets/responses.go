package packets

import (
	"time"

	"github.com/sajda-app/sajda/internal/model"
)

type PrayerLogResponse struct {
	ID              string  `json:"id"`
	PrayerName      string  `json:"prayer_name"`
	LoggedAt        string  `json:"logged_at"`
	StartTime       *string `json:"start_time,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

func ToPrayerLogResponse(l model.PrayerLog) PrayerLogResponse {
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format(time.RFC3339)
		return &s
	}
	return PrayerLogResponse{
		ID:              l.ID,
		PrayerName:      l.PrayerName,
		LoggedAt:        l.LoggedAt.Format(time.RFC3339),
		StartTime:       fmtTime(l.StartTime),
		EndTime:         fmtTime(l.EndTime),
		DurationMinutes: l.DurationMinutes,
		Notes:           l.Notes,
	}
}

type StreakResponse struct {
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	LastPrayerDate *string `json:"last_prayer_date,omitempty"`
	TotalPrayers   int     `json:"total_prayers"`
}

func ToStreakResponse(s model.PrayerStreak) StreakResponse {
	var last *string
	if s.LastPrayerDate != nil {
		d := s.LastPrayerDate.Format("2006-01-02")
		last = &d
	}
	return StreakResponse{
		CurrentStreak:  s.CurrentStreak,
		LongestStreak:  s.LongestStreak,
		LastPrayerDate: last,
		TotalPrayers:   s.TotalPrayers,
	}
}

type LogPrayerResponse struct {
	Log    PrayerLogResponse `json:"log"`
	Streak StreakResponse    `json:"streak"`
}

type ReminderResponse struct {
	ID           string  `json:"id"`
	PrayerName   string  `json:"prayer_name"`
	ReminderTime string  `json:"reminder_time"`
	IsEnabled    bool    `json:"is_enabled"`
	DaysOfWeek   []int64 `json:"days_of_week"`
}

func ToReminderResponse(r model.PrayerReminder) ReminderResponse {
	return ReminderResponse{
		ID:           r.ID,
		PrayerName:   r.PrayerName,
		ReminderTime: r.ReminderTime,
		IsEnabled:    r.IsEnabled,
		DaysOfWeek:   r.DaysOfWeek,
	}
}

// RemindersResponse carries the permission state alongside the reminders so
// the client can render its status badge from one call.
type RemindersResponse struct {
	NotificationPermission string             `json:"notification_permission"`
	Reminders              []ReminderResponse `json:"reminders"`
}

type CountResponse struct {
	Count int `json:"count"`
}
