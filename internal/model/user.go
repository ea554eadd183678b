package model

import "time"

// Notification permission states mirrored from the browser capability.
// The only transitions are unsupported -> default -> granted | denied.
const (
	PermissionUnsupported = "unsupported"
	PermissionDefault     = "default"
	PermissionGranted     = "granted"
	PermissionDenied      = "denied"
)

// ValidPermission reports whether s is a known notification permission state.
func ValidPermission(s string) bool {
	switch s {
	case PermissionUnsupported, PermissionDefault, PermissionGranted, PermissionDenied:
		return true
	}
	return false
}

type User struct {
	ID                     int       `db:"id"`
	Email                  string    `db:"email"`
	HashedPassword         string    `db:"hashed_password"`
	Name                   *string   `db:"name"`
	NotificationPermission string    `db:"notification_permission"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}
