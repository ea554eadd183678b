// Package notify carries reminder notifications to the user over two
// independent channels: a system-level push (MQTT) and an in-app toast
// (websocket). A failure on one channel never suppresses the other.
package notify

// Message is one user-visible notification.
type Message struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	PrayerName string `json:"prayer_name"`
	Time       string `json:"time"` // "HH:MM"
}

// Channel delivers a message to one user, best effort.
type Channel interface {
	Name() string
	Send(userID int, msg Message) error
}
