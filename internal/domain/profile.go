package domain

import "time"

// Social holds the recognized social links of a profile.
type Social struct {
	YouTube   string
	LinkedIn  string
	Instagram string
}

// Profile is the mutable public record owned by exactly one user.
type Profile struct {
	UserID         string
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         []string
	Social         Social
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileUpdate is a partial update: nil fields are left untouched on an
// existing profile and omitted on creation. Skills is the raw comma-separated
// input; parsing happens in the profile service.
type ProfileUpdate struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *string
	YouTube        *string
	LinkedIn       *string
	Instagram      *string
}

// ProfileWithOwner is the denormalized read view composed by the directory
// service. It is never persisted.
type ProfileWithOwner struct {
	Profile     Profile
	OwnerName   string
	OwnerAvatar string
}
