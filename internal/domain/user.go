package domain

import "time"

// User represents a registered account. PasswordHash never leaves the
// service layer; handlers receive sanitized copies with it blanked.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
