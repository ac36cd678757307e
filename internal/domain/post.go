package domain

import "time"

// Post is a short message authored by a user. Posts are owned by their author
// and removed when the account is deleted.
type Post struct {
	ID           string
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	Text         string
	CreatedAt    time.Time
}
