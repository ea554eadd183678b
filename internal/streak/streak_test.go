package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sajda-app/sajda/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestAdvance_FirstCompletedDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 22, 15, 0, 0, time.Local)
	next := Advance(model.PrayerStreak{UserID: 1}, now, 5, 5)

	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 1, next.LongestStreak)
	assert.Equal(t, 5, next.TotalPrayers)
	if assert.NotNil(t, next.LastPrayerDate) {
		assert.True(t, SameDay(*next.LastPrayerDate, now))
	}
}

func TestAdvance_PartialDayNeverMutates(t *testing.T) {
	last := date(2026, 3, 9)
	prev := model.PrayerStreak{UserID: 1, CurrentStreak: 3, LongestStreak: 6, LastPrayerDate: &last, TotalPrayers: 40}

	for distinct := 0; distinct < 5; distinct++ {
		next := Advance(prev, date(2026, 3, 10), distinct, 41)
		assert.Equal(t, prev, next, "distinct=%d", distinct)
	}
}

func TestAdvance_Continuity(t *testing.T) {
	last := date(2026, 3, 9)
	prev := model.PrayerStreak{UserID: 1, CurrentStreak: 3, LongestStreak: 6, LastPrayerDate: &last}

	next := Advance(prev, date(2026, 3, 10).Add(8*time.Hour), 5, 50)
	assert.Equal(t, 4, next.CurrentStreak)
	assert.Equal(t, 6, next.LongestStreak)
}

func TestAdvance_NewLongest(t *testing.T) {
	last := date(2026, 3, 9)
	prev := model.PrayerStreak{UserID: 1, CurrentStreak: 6, LongestStreak: 6, LastPrayerDate: &last}

	next := Advance(prev, date(2026, 3, 10), 5, 70)
	assert.Equal(t, 7, next.CurrentStreak)
	assert.Equal(t, 7, next.LongestStreak)
}

func TestAdvance_SameDayIdempotent(t *testing.T) {
	today := date(2026, 3, 10)
	prev := model.PrayerStreak{UserID: 1, CurrentStreak: 4, LongestStreak: 6, LastPrayerDate: &today, TotalPrayers: 20}

	// a sixth duplicate log on a completed day
	next := Advance(prev, today.Add(23*time.Hour), 5, 21)
	assert.Equal(t, 4, next.CurrentStreak)
	assert.Equal(t, 6, next.LongestStreak)
	assert.Equal(t, 21, next.TotalPrayers)
}

func TestAdvance_GapResets(t *testing.T) {
	last := date(2026, 3, 7)
	prev := model.PrayerStreak{UserID: 1, CurrentStreak: 9, LongestStreak: 9, LastPrayerDate: &last}

	next := Advance(prev, date(2026, 3, 10), 5, 100)
	assert.Equal(t, 1, next.CurrentStreak)
	assert.Equal(t, 9, next.LongestStreak)
}

func TestSameDay_CalendarNotRollingWindow(t *testing.T) {
	fajr := time.Date(2026, 3, 10, 0, 5, 0, 0, time.Local)
	isha := time.Date(2026, 3, 10, 23, 50, 0, 0, time.Local)
	assert.True(t, SameDay(fajr, isha))
	assert.False(t, SameDay(isha, isha.Add(time.Hour)))
}

func TestDistinctPrayers(t *testing.T) {
	logs := []model.PrayerLog{
		{PrayerName: model.PrayerFajr},
		{PrayerName: model.PrayerFajr},
		{PrayerName: model.PrayerIsha},
	}
	assert.Equal(t, 2, DistinctPrayers(logs))
	assert.Equal(t, 0, DistinctPrayers(nil))
}
