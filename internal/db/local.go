package db

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sajda-app/sajda/internal/model"
)

// localStore is the fallback backing: a string-keyed, string-valued map with
// keys namespaced by entity kind and user ID, mirroring the browser's local
// storage layout. It is the store of record for the whole session whenever the
// database is unreachable at startup. An optional snapshot file makes it
// survive restarts.
type localStore struct {
	mu   sync.RWMutex
	kv   map[string]string
	path string
}

var _ Store = (*localStore)(nil)

// NewLocalStore builds a fallback store. If snapshotPath is non-empty, the
// map is loaded from that file and re-written after every mutation.
func NewLocalStore(snapshotPath string) Store {
	s := &localStore{kv: make(map[string]string), path: snapshotPath}
	if snapshotPath != "" {
		data, err := os.ReadFile(snapshotPath)
		if err == nil {
			if err := json.Unmarshal(data, &s.kv); err != nil {
				log.Warn().Err(err).Str("path", snapshotPath).Msg("ignoring unreadable local store snapshot")
				s.kv = make(map[string]string)
			}
		}
	}
	return s
}

// serialized forms kept compatible with the legacy client-side layout, where
// is_enabled was stored as "0"/"1". Normalized to real booleans at this
// boundary, per the Store contract.
type localReminder struct {
	ID           string  `json:"id"`
	UserID       int     `json:"user_id"`
	PrayerName   string  `json:"prayer_name"`
	ReminderTime string  `json:"reminder_time"`
	IsEnabled    string  `json:"is_enabled"` // "0" or "1"
	DaysOfWeek   []int64 `json:"days_of_week"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toLocalReminder(r model.PrayerReminder) localReminder {
	enabled := "0"
	if r.IsEnabled {
		enabled = "1"
	}
	return localReminder{
		ID:           r.ID,
		UserID:       r.UserID,
		PrayerName:   r.PrayerName,
		ReminderTime: r.ReminderTime,
		IsEnabled:    enabled,
		DaysOfWeek:   r.DaysOfWeek,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func fromLocalReminder(lr localReminder) model.PrayerReminder {
	created, _ := time.Parse(time.RFC3339Nano, lr.CreatedAt)
	updated, _ := time.Parse(time.RFC3339Nano, lr.UpdatedAt)
	return model.PrayerReminder{
		ID:           lr.ID,
		UserID:       lr.UserID,
		PrayerName:   lr.PrayerName,
		ReminderTime: lr.ReminderTime,
		IsEnabled:    lr.IsEnabled == "1",
		DaysOfWeek:   lr.DaysOfWeek,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}
}

func logsKey(userID int) string      { return fmt.Sprintf("prayer_logs:%d", userID) }
func remindersKey(userID int) string { return fmt.Sprintf("prayer_reminders:%d", userID) }
func streakKey(userID int) string    { return fmt.Sprintf("prayer_streaks:%d", userID) }
func userKey(userID int) string      { return fmt.Sprintf("users:%d", userID) }
func emailKey(email string) string   { return "user_emails:" + strings.ToLower(email) }

// snapshot writes the whole map to disk. Callers hold the write lock.
func (s *localStore) snapshot() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.kv)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal local store snapshot")
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("failed to write local store snapshot")
	}
}

func (s *localStore) getJSON(key string, v interface{}) bool {
	raw, ok := s.kv[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Error().Err(err).Str("key", key).Msg("corrupt local store entry")
		return false
	}
	return true
}

func (s *localStore) putJSON(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode local store entry")
		return
	}
	s.kv[key] = string(data)
	s.snapshot()
}

// user functions

func (s *localStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.kv[emailKey(email)]; exists {
		return 0, fmt.Errorf("email already registered")
	}

	var nextID int
	s.getJSON("next_user_id", &nextID)
	nextID++
	s.putJSON("next_user_id", nextID)

	now := time.Now()
	u := model.User{
		ID:                     nextID,
		Email:                  email,
		HashedPassword:         hashedPassword,
		Name:                   name,
		NotificationPermission: model.PermissionDefault,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	s.putJSON(userKey(nextID), u)
	s.putJSON(emailKey(email), nextID)
	return nextID, nil
}

func (s *localStore) GetUserByEmail(email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id int
	if !s.getJSON(emailKey(email), &id) {
		return nil, ErrNotFound
	}
	var u model.User
	if !s.getJSON(userKey(id), &u) {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *localStore) GetUserByID(id int) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u model.User
	if !s.getJSON(userKey(id), &u) {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *localStore) UpdateUserProfile(id int, email string, name *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u model.User
	if !s.getJSON(userKey(id), &u) {
		return ErrNotFound
	}
	if u.Email != email {
		delete(s.kv, emailKey(u.Email))
		s.putJSON(emailKey(email), id)
	}
	u.Email = email
	u.Name = name
	u.UpdatedAt = time.Now()
	s.putJSON(userKey(id), u)
	return nil
}

func (s *localStore) UpdateNotificationPermission(id int, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var u model.User
	if !s.getJSON(userKey(id), &u) {
		return ErrNotFound
	}
	u.NotificationPermission = state
	u.UpdatedAt = time.Now()
	s.putJSON(userKey(id), u)
	return nil
}

// prayer log functions

func (s *localStore) CreatePrayerLog(entry model.PrayerLog) (model.PrayerLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	var logs []model.PrayerLog
	s.getJSON(logsKey(entry.UserID), &logs)
	logs = append(logs, entry)
	s.putJSON(logsKey(entry.UserID), logs)
	return entry, nil
}

func (s *localStore) ListPrayerLogs(userID int, since, until *time.Time) ([]model.PrayerLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var logs []model.PrayerLog
	s.getJSON(logsKey(userID), &logs)

	out := make([]model.PrayerLog, 0, len(logs))
	for _, l := range logs {
		if since != nil && l.LoggedAt.Before(*since) {
			continue
		}
		if until != nil && !l.LoggedAt.Before(*until) {
			continue
		}
		out = append(out, l)
	}
	// newest first, matching the Postgres backing
	sort.Slice(out, func(i, j int) bool { return out[i].LoggedAt.After(out[j].LoggedAt) })
	return out, nil
}

func (s *localStore) CountPrayerLogs(userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var logs []model.PrayerLog
	s.getJSON(logsKey(userID), &logs)
	return len(logs), nil
}

func (s *localStore) BackfillDuration(id string, userID int, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []model.PrayerLog
	s.getJSON(logsKey(userID), &logs)
	for i := range logs {
		if logs[i].ID == id {
			logs[i].DurationMinutes = &minutes
			s.putJSON(logsKey(userID), logs)
			return nil
		}
	}
	return ErrNotFound
}

// reminder functions

func (s *localStore) SeedReminders(userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var existing []localReminder
	s.getJSON(remindersKey(userID), &existing)
	have := make(map[string]bool, len(existing))
	for _, r := range existing {
		have[r.PrayerName] = true
	}

	now := time.Now()
	changed := false
	for _, name := range model.PrayerNames {
		if have[name] {
			continue
		}
		existing = append(existing, toLocalReminder(model.PrayerReminder{
			ID:           uuid.NewString(),
			UserID:       userID,
			PrayerName:   name,
			ReminderTime: model.DefaultReminderTimes[name],
			IsEnabled:    true,
			DaysOfWeek:   model.AllDays(),
			CreatedAt:    now,
			UpdatedAt:    now,
		}))
		changed = true
	}
	if changed {
		s.putJSON(remindersKey(userID), existing)
	}
	return nil
}

func (s *localStore) ListReminders(userID int) ([]model.PrayerReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw []localReminder
	s.getJSON(remindersKey(userID), &raw)
	out := make([]model.PrayerReminder, 0, len(raw))
	for _, lr := range raw {
		out = append(out, fromLocalReminder(lr))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PrayerName < out[j].PrayerName })
	return out, nil
}

func (s *localStore) GetReminder(id string, userID int) (*model.PrayerReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw []localReminder
	s.getJSON(remindersKey(userID), &raw)
	for _, lr := range raw {
		if lr.ID == id {
			r := fromLocalReminder(lr)
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *localStore) UpdateReminder(id string, userID int, reminderTime *string, enabled *bool, days []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []localReminder
	s.getJSON(remindersKey(userID), &raw)
	for i, lr := range raw {
		if lr.ID != id {
			continue
		}
		r := fromLocalReminder(lr)
		if reminderTime != nil {
			r.ReminderTime = *reminderTime
		}
		if enabled != nil {
			r.IsEnabled = *enabled
		}
		if days != nil {
			r.DaysOfWeek = days
		}
		r.UpdatedAt = time.Now()
		raw[i] = toLocalReminder(r)
		s.putJSON(remindersKey(userID), raw)
		return nil
	}
	return ErrNotFound
}

func (s *localStore) ListEnabledReminders() ([]model.PrayerReminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.PrayerReminder{}
	for key := range s.kv {
		if !strings.HasPrefix(key, "prayer_reminders:") {
			continue
		}
		var raw []localReminder
		s.getJSON(key, &raw)
		for _, lr := range raw {
			if lr.IsEnabled == "1" {
				out = append(out, fromLocalReminder(lr))
			}
		}
	}
	return out, nil
}

// streak functions

func (s *localStore) GetStreak(userID int) (model.PrayerStreak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st model.PrayerStreak
	if !s.getJSON(streakKey(userID), &st) {
		st = model.PrayerStreak{UserID: userID}
		s.putJSON(streakKey(userID), st)
	}
	return st, nil
}

func (s *localStore) SaveStreak(streak model.PrayerStreak) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	streak.UpdatedAt = time.Now()
	s.putJSON(streakKey(streak.UserID), streak)
	return nil
}
