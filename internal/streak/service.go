package streak

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/db"
	"github.com/sajda-app/sajda/internal/model"
)

// Tracker records prayer logs and keeps the streak record in step. All reads
// and writes go through one store backing.
type Tracker struct {
	store db.Store
}

func NewTracker(store db.Store) *Tracker {
	return &Tracker{store: store}
}

// Record persists the log entry, then recomputes the streak from the store so
// the decision sees its own just-written log.
func (t *Tracker) Record(entry model.PrayerLog) (model.PrayerLog, model.PrayerStreak, error) {
	stored, err := t.store.CreatePrayerLog(entry)
	if err != nil {
		return model.PrayerLog{}, model.PrayerStreak{}, err
	}

	updated, err := t.refresh(entry.UserID, entry.LoggedAt)
	if err != nil {
		// the log itself is safely stored; report the streak as-is
		log.Error().Err(err).Int("user_id", entry.UserID).Msg("failed to refresh streak after log")
		current, _ := t.store.GetStreak(entry.UserID)
		return stored, current, nil
	}
	return stored, updated, nil
}

func (t *Tracker) refresh(userID int, now time.Time) (model.PrayerStreak, error) {
	prev, err := t.store.GetStreak(userID)
	if err != nil {
		return model.PrayerStreak{}, err
	}

	dayStart := StartOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)
	todays, err := t.store.ListPrayerLogs(userID, &dayStart, &dayEnd)
	if err != nil {
		return model.PrayerStreak{}, err
	}

	total, err := t.store.CountPrayerLogs(userID)
	if err != nil {
		return model.PrayerStreak{}, err
	}

	next := Advance(prev, now, DistinctPrayers(todays), total)
	if next == prev {
		return prev, nil
	}
	if err := t.store.SaveStreak(next); err != nil {
		return model.PrayerStreak{}, err
	}
	return next, nil
}
