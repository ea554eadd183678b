package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDeduper_OncePerDay(t *testing.T) {
	d := NewMemoryDeduper()
	now := time.Date(2026, 3, 10, 5, 30, 10, 0, time.Local)

	assert.True(t, d.FirstToday(1, "Fajr", "05:30", now))
	// the poll re-running inside the same minute must not fire again
	assert.False(t, d.FirstToday(1, "Fajr", "05:30", now.Add(30*time.Second)))
	// nor later the same day
	assert.False(t, d.FirstToday(1, "Fajr", "05:30", now.Add(10*time.Hour)))
}

func TestMemoryDeduper_KeysAreScoped(t *testing.T) {
	d := NewMemoryDeduper()
	now := time.Date(2026, 3, 10, 5, 30, 0, 0, time.Local)

	assert.True(t, d.FirstToday(1, "Fajr", "05:30", now))
	assert.True(t, d.FirstToday(2, "Fajr", "05:30", now), "other user")
	assert.True(t, d.FirstToday(1, "Dhuhr", "05:30", now), "other prayer")
	assert.True(t, d.FirstToday(1, "Fajr", "05:31", now), "other minute")
}

func TestMemoryDeduper_ClearsAtMidnight(t *testing.T) {
	d := NewMemoryDeduper()
	today := time.Date(2026, 3, 10, 5, 30, 0, 0, time.Local)

	assert.True(t, d.FirstToday(1, "Fajr", "05:30", today))
	assert.True(t, d.FirstToday(1, "Fajr", "05:30", today.AddDate(0, 0, 1)))
}
