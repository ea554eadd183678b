package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
)

// inserts a prayer log and echoes back the stored row. IDs are assigned here
// so both store backings produce the same shape.
func (s *pgStore) CreatePrayerLog(entry model.PrayerLog) (model.PrayerLog, error) {
	entry.ID = uuid.NewString()
	var stored model.PrayerLog
	q := `
	INSERT INTO prayer_logs (id, user_id, prayer_name, logged_at, start_time, end_time, duration_minutes, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	RETURNING id, user_id, prayer_name, logged_at, start_time, end_time, duration_minutes, notes, created_at;`
	if err := s.db.Get(&stored, q,
		entry.ID, entry.UserID, entry.PrayerName, entry.LoggedAt,
		entry.StartTime, entry.EndTime, entry.DurationMinutes, entry.Notes); err != nil {
		log.Error().Err(err).Str("prayer", entry.PrayerName).Msg("failed to create prayer log")
		return model.PrayerLog{}, err
	}
	return stored, nil
}

// lists a user's prayer logs newest first, optionally bounded by [since, until).
func (s *pgStore) ListPrayerLogs(userID int, since, until *time.Time) ([]model.PrayerLog, error) {
	out := []model.PrayerLog{}
	q := `
	SELECT id, user_id, prayer_name, logged_at, start_time, end_time, duration_minutes, notes, created_at
	  FROM prayer_logs
	 WHERE user_id = $1
	   AND ($2::timestamptz IS NULL OR logged_at >= $2)
	   AND ($3::timestamptz IS NULL OR logged_at < $3)
	 ORDER BY logged_at DESC;`
	if err := s.db.Select(&out, q, userID, since, until); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list prayer logs")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) CountPrayerLogs(userID int) (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM prayer_logs WHERE user_id = $1;`, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to count prayer logs")
		return 0, err
	}
	return n, nil
}

// BackfillDuration is the only permitted update-in-place on a prayer log.
func (s *pgStore) BackfillDuration(id string, userID int, minutes int) error {
	res, err := s.db.Exec(`
		UPDATE prayer_logs
		SET duration_minutes = $3
		WHERE id = $1 AND user_id = $2;
		`, id, userID, minutes)
	if err != nil {
		log.Error().Err(err).Str("log_id", id).Msg("failed to backfill duration")
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
