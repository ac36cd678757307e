package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

const createProfilesTable = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	company TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	github_username TEXT NOT NULL DEFAULT '',
	skills TEXT NOT NULL,
	youtube TEXT NOT NULL DEFAULT '',
	linkedin TEXT NOT NULL DEFAULT '',
	instagram TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createProfilesTable); err != nil {
		return fmt.Errorf("create profiles table: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	skills, err := encodeSkills(profile.Skills)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO profiles (user_id, company, website, location, bio, status, github_username, skills, youtube, linkedin, instagram, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.UserID,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		skills,
		profile.Social.YouTube,
		profile.Social.LinkedIn,
		profile.Social.Instagram,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	profile.UpdatedAt = time.Now().UTC()

	skills, err := encodeSkills(profile.Skills)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE profiles
SET company = ?, website = ?, location = ?, bio = ?, status = ?, github_username = ?, skills = ?, youtube = ?, linkedin = ?, instagram = ?, updated_at = ?
WHERE user_id = ?`,
		profile.Company,
		profile.Website,
		profile.Location,
		profile.Bio,
		profile.Status,
		profile.GithubUsername,
		skills,
		profile.Social.YouTube,
		profile.Social.LinkedIn,
		profile.Social.Instagram,
		profile.UpdatedAt,
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", profile.UserID, repository.ErrNotFound)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, selectProfile+` WHERE user_id = ?`, userID)
	return scanProfile(row)
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.QueryContext(ctx, selectProfile)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile %s: %w", userID, repository.ErrNotFound)
	}
	return nil
}

const selectProfile = `
SELECT user_id, company, website, location, bio, status, github_username, skills, youtube, linkedin, instagram, created_at, updated_at
FROM profiles`

func scanProfile(row interface {
	Scan(dest ...any) error
}) (*domain.Profile, error) {
	var (
		profile domain.Profile
		skills  string
	)
	if err := row.Scan(
		&profile.UserID,
		&profile.Company,
		&profile.Website,
		&profile.Location,
		&profile.Bio,
		&profile.Status,
		&profile.GithubUsername,
		&skills,
		&profile.Social.YouTube,
		&profile.Social.LinkedIn,
		&profile.Social.Instagram,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	if err := json.Unmarshal([]byte(skills), &profile.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return &profile, nil
}

// skills are an ordered list, stored as a JSON array in a text column
func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", fmt.Errorf("encode skills: %w", err)
	}
	return string(raw), nil
}
