package domain

import "time"

// User represents a registered identity. PasswordHash never leaves the
// credential store; values returned to callers have it cleared.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	AvatarURL    string
	CreatedAt    time.Time
}
