package models

import "time"

// User is a local profile. Records are keyed by its ID.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRecord is everything persisted for one user.
type UserRecord struct {
	Stats         UserStats            `json:"stats"`
	Badges        []Badge              `json:"badges"`
	Notifications NotificationSettings `json:"notificationSettings"`
}
