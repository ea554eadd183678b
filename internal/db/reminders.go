package db

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
)

// SeedReminders inserts the five default reminders for a user. Existing rows
// are left alone, so calling it on every login is safe.
func (s *pgStore) SeedReminders(userID int) error {
	q := `
	INSERT INTO prayer_reminders (id, user_id, prayer_name, reminder_time, is_enabled, days_of_week, created_at, updated_at)
	VALUES ($1, $2, $3, $4, true, $5, now(), now())
	ON CONFLICT (user_id, prayer_name) DO NOTHING;`
	for _, name := range model.PrayerNames {
		if _, err := s.db.Exec(q, uuid.NewString(), userID, name, model.DefaultReminderTimes[name], model.AllDays()); err != nil {
			log.Error().Err(err).Str("prayer", name).Msg("failed to seed reminder")
			return err
		}
	}
	return nil
}

func (s *pgStore) ListReminders(userID int) ([]model.PrayerReminder, error) {
	out := []model.PrayerReminder{}
	q := `
	SELECT id, user_id, prayer_name, reminder_time, is_enabled, days_of_week, created_at, updated_at
	  FROM prayer_reminders
	 WHERE user_id = $1
	 ORDER BY prayer_name;`
	if err := s.db.Select(&out, q, userID); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list reminders")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) GetReminder(id string, userID int) (*model.PrayerReminder, error) {
	var r model.PrayerReminder
	q := `
	SELECT id, user_id, prayer_name, reminder_time, is_enabled, days_of_week, created_at, updated_at
	  FROM prayer_reminders
	 WHERE id = $1 AND user_id = $2;`
	if err := s.db.Get(&r, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Str("reminder_id", id).Msg("failed to get reminder")
		return nil, err
	}
	return &r, nil
}

// UpdateReminder applies user edits: time, enabled flag, days of week. Nil
// fields keep their current value.
func (s *pgStore) UpdateReminder(id string, userID int, reminderTime *string, enabled *bool, days []int64) error {
	q := `
	UPDATE prayer_reminders
	SET reminder_time = COALESCE($3, reminder_time),
	is_enabled = COALESCE($4, is_enabled),
	days_of_week = COALESCE($5, days_of_week),
	updated_at = now()
	WHERE id = $1 AND user_id = $2;`
	var dayArr interface{}
	if days != nil {
		dayArr = pq.Int64Array(days)
	}
	res, err := s.db.Exec(q, id, userID, reminderTime, enabled, dayArr)
	if err != nil {
		log.Error().Err(err).Str("reminder_id", id).Msg("failed to update reminder")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// ListEnabledReminders returns every enabled reminder across users; the
// reminder poller evaluates due-checks over this set each minute.
func (s *pgStore) ListEnabledReminders() ([]model.PrayerReminder, error) {
	out := []model.PrayerReminder{}
	q := `
	SELECT id, user_id, prayer_name, reminder_time, is_enabled, days_of_week, created_at, updated_at
	  FROM prayer_reminders
	 WHERE is_enabled = true;`
	if err := s.db.Select(&out, q); err != nil {
		log.Error().Err(err).Msg("failed to list enabled reminders")
		return nil, err
	}
	return out, nil
}
