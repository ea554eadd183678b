package packets

type ProfileResponse struct {
	ID                     int     `json:"id"`
	Email                  string  `json:"email"`
	Name                   *string `json:"name"`
	NotificationPermission string  `json:"notification_permission"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}
