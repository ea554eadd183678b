package test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/model"
)

// TestStoreIntegration exercises the Postgres backing directly. It needs a
// reachable database and is skipped otherwise.
func TestStoreIntegration(t *testing.T) {
	if err := db.InitTestDB("../migrations"); err != nil {
		t.Skipf("postgres unavailable: %v", err)
	}
	store := db.TestStore
	stamp := time.Now().UnixNano()

	t.Run("User Management", func(t *testing.T) {
		email := fmt.Sprintf("pg%d@example.com", stamp)
		userID, err := store.CreateUser(email, "hashedpassword", nil)
		assert.NoError(t, err)
		assert.Greater(t, userID, 0)

		user, err := store.GetUserByEmail(email)
		assert.NoError(t, err)
		assert.Equal(t, email, user.Email)
		assert.Equal(t, model.PermissionDefault, user.NotificationPermission)

		name := "Updated Name"
		err = store.UpdateUserProfile(userID, fmt.Sprintf("pg%d-new@example.com", stamp), &name)
		assert.NoError(t, err)

		err = store.UpdateNotificationPermission(userID, model.PermissionGranted)
		assert.NoError(t, err)
		user, _ = store.GetUserByID(userID)
		assert.Equal(t, model.PermissionGranted, user.NotificationPermission)
	})

	t.Run("Prayer Logs", func(t *testing.T) {
		userID, _ := store.CreateUser(fmt.Sprintf("pglog%d@example.com", stamp), "password", nil)

		created, err := store.CreatePrayerLog(model.PrayerLog{
			UserID:     userID,
			PrayerName: model.PrayerFajr,
			LoggedAt:   time.Now(),
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		logs, err := store.ListPrayerLogs(userID, nil, nil)
		assert.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, model.PrayerFajr, logs[0].PrayerName)

		count, err := store.CountPrayerLogs(userID)
		assert.NoError(t, err)
		assert.Equal(t, 1, count)

		err = store.BackfillDuration(created.ID, userID, 12)
		assert.NoError(t, err)
		logs, _ = store.ListPrayerLogs(userID, nil, nil)
		require.NotNil(t, logs[0].DurationMinutes)
		assert.Equal(t, 12, *logs[0].DurationMinutes)

		err = store.BackfillDuration(created.ID, userID+1, 5)
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("Reminders", func(t *testing.T) {
		userID, _ := store.CreateUser(fmt.Sprintf("pgrem%d@example.com", stamp), "password", nil)

		assert.NoError(t, store.SeedReminders(userID))
		// seeding twice must not duplicate
		assert.NoError(t, store.SeedReminders(userID))

		reminders, err := store.ListReminders(userID)
		assert.NoError(t, err)
		require.Len(t, reminders, len(model.PrayerNames))

		target := reminders[0]
		newTime := "04:45"
		disabled := false
		err = store.UpdateReminder(target.ID, userID, &newTime, &disabled, []int64{6, 7})
		assert.NoError(t, err)

		updated, err := store.GetReminder(target.ID, userID)
		assert.NoError(t, err)
		assert.Equal(t, newTime, updated.ReminderTime)
		assert.False(t, updated.IsEnabled)
		assert.Equal(t, []int64{6, 7}, []int64(updated.DaysOfWeek))

		err = store.UpdateReminder(target.ID, userID+1, &newTime, nil, nil)
		assert.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("Streaks", func(t *testing.T) {
		userID, _ := store.CreateUser(fmt.Sprintf("pgstk%d@example.com", stamp), "password", nil)

		streak, err := store.GetStreak(userID)
		assert.NoError(t, err)
		assert.Equal(t, 0, streak.CurrentStreak)

		today := time.Now()
		streak.CurrentStreak = 3
		streak.LongestStreak = 5
		streak.TotalPrayers = 40
		streak.LastPrayerDate = &today
		assert.NoError(t, store.SaveStreak(streak))

		// upsert path: save again with new values
		streak.CurrentStreak = 4
		streak.TotalPrayers = 45
		assert.NoError(t, store.SaveStreak(streak))

		stored, err := store.GetStreak(userID)
		assert.NoError(t, err)
		assert.Equal(t, 4, stored.CurrentStreak)
		assert.Equal(t, 5, stored.LongestStreak)
		assert.Equal(t, 45, stored.TotalPrayers)
		require.NotNil(t, stored.LastPrayerDate)
	})
}
