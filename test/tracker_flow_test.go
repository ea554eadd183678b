package test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajda-app/sajda/internal/model"
)

type streakBody struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalPrayers  int `json:"total_prayers"`
}

type logResponse struct {
	Log struct {
		ID         string `json:"id"`
		PrayerName string `json:"prayer_name"`
	} `json:"log"`
	Streak streakBody `json:"streak"`
}

func TestFullDayScenario(t *testing.T) {
	token := signupUser(t)

	// log all five prayers today
	var last logResponse
	for _, name := range model.PrayerNames {
		code := doJSON(t, http.MethodPost, "/api/prayers", token,
			map[string]any{"prayer_name": name}, &last)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, name, last.Log.PrayerName)
		assert.NotEmpty(t, last.Log.ID)
	}

	assert.Equal(t, 1, last.Streak.CurrentStreak)
	assert.Equal(t, 1, last.Streak.LongestStreak)
	assert.Equal(t, 5, last.Streak.TotalPrayers)

	// today's progress reads 100%
	var today struct {
		PrayersLogged   int     `json:"prayers_logged"`
		ProgressPercent float64 `json:"progress_percent"`
	}
	code := doJSON(t, http.MethodGet, "/api/dashboard/today", token, nil, &today)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, today.PrayersLogged)
	assert.InDelta(t, 100.0, today.ProgressPercent, 0.001)

	// a duplicate sixth log bumps the count but not the streak
	code = doJSON(t, http.MethodPost, "/api/prayers", token,
		map[string]any{"prayer_name": model.PrayerIsha}, &last)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, last.Streak.CurrentStreak)
	assert.Equal(t, 6, last.Streak.TotalPrayers)

	var count struct {
		Count int `json:"count"`
	}
	code = doJSON(t, http.MethodGet, "/api/prayers/count", token, nil, &count)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 6, count.Count)
}

func TestLogPrayerValidation(t *testing.T) {
	token := signupUser(t)

	code := doJSON(t, http.MethodPost, "/api/prayers", token,
		map[string]any{"prayer_name": "Brunch"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPost, "/api/prayers", "",
		map[string]any{"prayer_name": model.PrayerFajr}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestReminderLifecycle(t *testing.T) {
	token := signupUser(t)

	var reminders struct {
		NotificationPermission string `json:"notification_permission"`
		Reminders              []struct {
			ID           string  `json:"id"`
			PrayerName   string  `json:"prayer_name"`
			ReminderTime string  `json:"reminder_time"`
			IsEnabled    bool    `json:"is_enabled"`
			DaysOfWeek   []int64 `json:"days_of_week"`
		} `json:"reminders"`
	}
	code := doJSON(t, http.MethodGet, "/api/reminders", token, nil, &reminders)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PermissionDefault, reminders.NotificationPermission)
	require.Len(t, reminders.Reminders, 5, "five reminders are seeded on first use")

	target := reminders.Reminders[0]

	// edit time and days
	var updated struct {
		ReminderTime string  `json:"reminder_time"`
		IsEnabled    bool    `json:"is_enabled"`
		DaysOfWeek   []int64 `json:"days_of_week"`
	}
	code = doJSON(t, http.MethodPut, "/api/reminders/"+target.ID, token,
		map[string]any{"reminder_time": "06:00", "days_of_week": []int{1, 2, 3, 4, 5}}, &updated)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "06:00", updated.ReminderTime)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, updated.DaysOfWeek)
	assert.True(t, updated.IsEnabled)

	// unknown id is a user-visible not-found
	code = doJSON(t, http.MethodPut, "/api/reminders/does-not-exist", token,
		map[string]any{"reminder_time": "06:00"}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// malformed time is rejected
	code = doJSON(t, http.MethodPut, "/api/reminders/"+target.ID, token,
		map[string]any{"reminder_time": "6 o'clock"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestNotificationPermissionAndTest(t *testing.T) {
	token := signupUser(t)

	code := doJSON(t, http.MethodPut, "/api/notifications/permission", token,
		map[string]any{"state": model.PermissionGranted}, nil)
	require.Equal(t, http.StatusOK, code)

	code = doJSON(t, http.MethodPut, "/api/notifications/permission", token,
		map[string]any{"state": "maybe"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var reminders struct {
		NotificationPermission string `json:"notification_permission"`
		Reminders              []struct {
			ID string `json:"id"`
		} `json:"reminders"`
	}
	code = doJSON(t, http.MethodGet, "/api/reminders", token, nil, &reminders)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PermissionGranted, reminders.NotificationPermission)

	// manual test dispatch reaches the system channel
	before := systemChannel.sent
	code = doJSON(t, http.MethodPost, "/api/notifications/test", token,
		map[string]any{"reminder_id": reminders.Reminders[0].ID}, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, before+1, systemChannel.sent)
}

func TestTimerFlow(t *testing.T) {
	token := signupUser(t)

	var session struct {
		PrayerName string `json:"prayer_name"`
		State      string `json:"state"`
	}
	code := doJSON(t, http.MethodPost, "/api/prayers/timer/start", token,
		map[string]any{"prayer_name": model.PrayerAsr}, &session)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", session.State)

	// second start conflicts
	code = doJSON(t, http.MethodPost, "/api/prayers/timer/start", token,
		map[string]any{"prayer_name": model.PrayerAsr}, nil)
	assert.Equal(t, http.StatusConflict, code)

	code = doJSON(t, http.MethodPost, "/api/prayers/timer/pause", token, nil, &session)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "paused", session.State)

	code = doJSON(t, http.MethodPost, "/api/prayers/timer/resume", token, nil, &session)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "running", session.State)

	var completed logResponse
	code = doJSON(t, http.MethodPost, "/api/prayers/timer/complete", token, nil, &completed)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.PrayerAsr, completed.Log.PrayerName)

	// cancelled timers write nothing
	code = doJSON(t, http.MethodPost, "/api/prayers/timer/start", token,
		map[string]any{"prayer_name": model.PrayerIsha}, nil)
	require.Equal(t, http.StatusOK, code)
	code = doJSON(t, http.MethodPost, "/api/prayers/timer/cancel", token, nil, nil)
	require.Equal(t, http.StatusOK, code)

	var count struct {
		Count int `json:"count"`
	}
	code = doJSON(t, http.MethodGet, "/api/prayers/count", token, nil, &count)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, count.Count, "only the completed timer logged a prayer")
}

func TestDurationBackfill(t *testing.T) {
	token := signupUser(t)

	var logged logResponse
	code := doJSON(t, http.MethodPost, "/api/prayers", token,
		map[string]any{"prayer_name": model.PrayerDhuhr}, &logged)
	require.Equal(t, http.StatusOK, code)

	code = doJSON(t, http.MethodPatch, "/api/prayers/"+logged.Log.ID+"/duration", token,
		map[string]any{"duration_minutes": 9}, nil)
	assert.Equal(t, http.StatusOK, code)

	code = doJSON(t, http.MethodPatch, "/api/prayers/missing/duration", token,
		map[string]any{"duration_minutes": 9}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
