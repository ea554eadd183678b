package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
)

// GetStreak returns the user's streak record, creating the zero-valued record
// lazily on first read.
func (s *pgStore) GetStreak(userID int) (model.PrayerStreak, error) {
	var st model.PrayerStreak
	q := `
	SELECT user_id, current_streak, longest_streak, last_prayer_date, total_prayers, updated_at
	  FROM prayer_streaks
	 WHERE user_id = $1;`
	err := s.db.Get(&st, q, userID)
	if errors.Is(err, sql.ErrNoRows) {
		st = model.PrayerStreak{UserID: userID}
		if err := s.SaveStreak(st); err != nil {
			return model.PrayerStreak{}, err
		}
		return st, nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to get streak")
		return model.PrayerStreak{}, err
	}
	return st, nil
}

// SaveStreak upserts the one-per-user streak record.
func (s *pgStore) SaveStreak(streak model.PrayerStreak) error {
	q := `
	INSERT INTO prayer_streaks (user_id, current_streak, longest_streak, last_prayer_date, total_prayers, updated_at)
	VALUES ($1, $2, $3, $4, $5, now())
	ON CONFLICT (user_id) DO UPDATE
	SET current_streak = EXCLUDED.current_streak,
	longest_streak = EXCLUDED.longest_streak,
	last_prayer_date = EXCLUDED.last_prayer_date,
	total_prayers = EXCLUDED.total_prayers,
	updated_at = now();`
	if _, err := s.db.Exec(q, streak.UserID, streak.CurrentStreak, streak.LongestStreak, streak.LastPrayerDate, streak.TotalPrayers); err != nil {
		log.Error().Err(err).Int("user_id", streak.UserID).Msg("failed to save streak")
		return err
	}
	return nil
}
