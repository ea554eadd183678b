// exposes a Store interface that is passed to API calls w/ param requirements
package db

import (
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sajda-app/sajda/internal/model"
)

// ErrNotFound is returned when a lookup or keyed update matches no record.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract shared by the Postgres backing and the
// local fallback backing. One backing is selected at startup and used for the
// whole session; the two are never mixed per call.
type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error
	UpdateNotificationPermission(id int, state string) error

	// prayer log functions
	CreatePrayerLog(entry model.PrayerLog) (model.PrayerLog, error)
	ListPrayerLogs(userID int, since, until *time.Time) ([]model.PrayerLog, error)
	CountPrayerLogs(userID int) (int, error)
	BackfillDuration(id string, userID int, minutes int) error

	// reminder functions
	SeedReminders(userID int) error
	ListReminders(userID int) ([]model.PrayerReminder, error)
	GetReminder(id string, userID int) (*model.PrayerReminder, error)
	UpdateReminder(id string, userID int, reminderTime *string, enabled *bool, days []int64) error
	ListEnabledReminders() ([]model.PrayerReminder, error)

	// streak functions
	GetStreak(userID int) (model.PrayerStreak, error)
	SaveStreak(streak model.PrayerStreak) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
// required so linter doesn't complain
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}
