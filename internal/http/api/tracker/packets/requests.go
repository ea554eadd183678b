package packets

type LogPrayerRequest struct {
	PrayerName string  `json:"prayer_name" binding:"required"`
	Notes      *string `json:"notes"`
}

type BackfillDurationRequest struct {
	DurationMinutes int `json:"duration_minutes" binding:"min=0"`
}

type StartTimerRequest struct {
	PrayerName string `json:"prayer_name" binding:"required"`
}

type UpdateReminderRequest struct {
	ReminderTime *string `json:"reminder_time"`
	IsEnabled    *bool   `json:"is_enabled"`
	DaysOfWeek   []int64 `json:"days_of_week"`
}

type UpdatePermissionRequest struct {
	State string `json:"state" binding:"required"`
}

type TestNotificationRequest struct {
	ReminderID string `json:"reminder_id" binding:"required"`
}
