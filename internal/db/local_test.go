package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sajda-app/sajda/internal/model"
)

func newLocalWithUser(t *testing.T) (Store, int) {
	t.Helper()
	store := NewLocalStore("")
	id, err := store.CreateUser("local@example.com", "hashed", nil)
	require.NoError(t, err)
	return store, id
}

func TestLocalStore_PrayerLogRoundTrip(t *testing.T) {
	store, userID := newLocalWithUser(t)

	notes := "at the masjid"
	minutes := 7
	start := time.Now().Add(-7 * time.Minute)
	end := time.Now()
	entry := model.PrayerLog{
		UserID:          userID,
		PrayerName:      model.PrayerMaghrib,
		LoggedAt:        end,
		StartTime:       &start,
		EndTime:         &end,
		DurationMinutes: &minutes,
		Notes:           &notes,
	}

	stored, err := store.CreatePrayerLog(entry)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)

	listed, err := store.ListPrayerLogs(userID, nil, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// every field comes back as appended, modulo the assigned id
	got := listed[0]
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, model.PrayerMaghrib, got.PrayerName)
	assert.WithinDuration(t, entry.LoggedAt, got.LoggedAt, time.Second)
	require.NotNil(t, got.DurationMinutes)
	assert.Equal(t, minutes, *got.DurationMinutes)
	require.NotNil(t, got.Notes)
	assert.Equal(t, notes, *got.Notes)
}

func TestLocalStore_ListNewestFirstAndRanges(t *testing.T) {
	store, userID := newLocalWithUser(t)

	base := time.Date(2026, 4, 1, 6, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		_, err := store.CreatePrayerLog(model.PrayerLog{
			UserID:     userID,
			PrayerName: model.PrayerFajr,
			LoggedAt:   base.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	all, err := store.ListPrayerLogs(userID, nil, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].LoggedAt.After(all[1].LoggedAt))
	assert.True(t, all[1].LoggedAt.After(all[2].LoggedAt))

	since := base.AddDate(0, 0, 1)
	until := base.AddDate(0, 0, 2)
	ranged, err := store.ListPrayerLogs(userID, &since, &until)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.True(t, ranged[0].LoggedAt.Equal(since))

	n, err := store.CountPrayerLogs(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLocalStore_BackfillDuration(t *testing.T) {
	store, userID := newLocalWithUser(t)

	stored, err := store.CreatePrayerLog(model.PrayerLog{UserID: userID, PrayerName: model.PrayerAsr, LoggedAt: time.Now()})
	require.NoError(t, err)

	require.NoError(t, store.BackfillDuration(stored.ID, userID, 12))
	listed, err := store.ListPrayerLogs(userID, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, listed[0].DurationMinutes)
	assert.Equal(t, 12, *listed[0].DurationMinutes)

	assert.ErrorIs(t, store.BackfillDuration("no-such-id", userID, 5), ErrNotFound)
}

func TestLocalStore_SeedAndUpdateReminders(t *testing.T) {
	store, userID := newLocalWithUser(t)

	require.NoError(t, store.SeedReminders(userID))
	// seeding twice must not duplicate
	require.NoError(t, store.SeedReminders(userID))

	reminders, err := store.ListReminders(userID)
	require.NoError(t, err)
	require.Len(t, reminders, 5)
	for _, r := range reminders {
		assert.True(t, r.IsEnabled)
		assert.Len(t, []int64(r.DaysOfWeek), 7)
	}

	target := reminders[0]
	newTime := "04:45"
	disabled := false
	require.NoError(t, store.UpdateReminder(target.ID, userID, &newTime, &disabled, []int64{1, 2, 3}))

	updated, err := store.GetReminder(target.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, "04:45", updated.ReminderTime)
	assert.False(t, updated.IsEnabled)
	assert.Equal(t, []int64{1, 2, 3}, []int64(updated.DaysOfWeek))

	// disabled reminders drop out of the poller's working set
	enabled, err := store.ListEnabledReminders()
	require.NoError(t, err)
	assert.Len(t, enabled, 4)

	assert.ErrorIs(t, store.UpdateReminder("missing", userID, &newTime, nil, nil), ErrNotFound)
}

func TestLocalStore_StreakLazyCreateAndSave(t *testing.T) {
	store, userID := newLocalWithUser(t)

	st, err := store.GetStreak(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 0, st.LongestStreak)
	assert.Nil(t, st.LastPrayerDate)

	today := time.Date(2026, 4, 2, 0, 0, 0, 0, time.Local)
	st.CurrentStreak = 3
	st.LongestStreak = 5
	st.LastPrayerDate = &today
	st.TotalPrayers = 42
	require.NoError(t, store.SaveStreak(st))

	got, err := store.GetStreak(userID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 5, got.LongestStreak)
	assert.Equal(t, 42, got.TotalPrayers)
}

func TestLocalStore_SnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store := NewLocalStore(path)
	userID, err := store.CreateUser("persist@example.com", "hashed", nil)
	require.NoError(t, err)
	_, err = store.CreatePrayerLog(model.PrayerLog{UserID: userID, PrayerName: model.PrayerDhuhr, LoggedAt: time.Now()})
	require.NoError(t, err)

	reopened := NewLocalStore(path)
	n, err := reopened.CountPrayerLogs(userID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := reopened.GetUserByEmail("persist@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
}

func TestLocalStore_UserProfileAndPermission(t *testing.T) {
	store, userID := newLocalWithUser(t)

	u, err := store.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionDefault, u.NotificationPermission)

	require.NoError(t, store.UpdateNotificationPermission(userID, model.PermissionGranted))
	u, err = store.GetUserByID(userID)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionGranted, u.NotificationPermission)

	name := "Imran"
	require.NoError(t, store.UpdateUserProfile(userID, "new@example.com", &name))
	u, err = store.GetUserByEmail("new@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)

	_, err = store.GetUserByEmail("local@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
