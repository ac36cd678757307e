package service

import (
	"context"
	"errors"
	"strings"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

// DefaultSearchFields is the field subset matched by Search when none is configured.
var DefaultSearchFields = []string{"skills", "location", "company", "bio"}

// ProfileService is the profile store: create-or-update records keyed 1:1 by
// user id, lookups and substring search.
type ProfileService interface {
	Upsert(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Search(ctx context.Context, term string) ([]domain.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type profileService struct {
	profiles     repository.ProfileRepository
	searchFields map[string]bool
}

func NewProfileService(profiles repository.ProfileRepository, searchFields []string) ProfileService {
	if len(searchFields) == 0 {
		searchFields = DefaultSearchFields
	}
	fields := make(map[string]bool, len(searchFields))
	for _, f := range searchFields {
		fields[strings.ToLower(strings.TrimSpace(f))] = true
	}
	return &profileService{
		profiles:     profiles,
		searchFields: fields,
	}
}

// Upsert creates the profile if absent, otherwise applies the partial update.
// Only fields present in the update are touched; repeated identical calls are
// idempotent. Concurrent upserts for the same user race last-write-wins.
func (s *profileService) Upsert(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		ApplyUpdate(existing, update)
		if err := s.profiles.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	profile := &domain.Profile{UserID: userID}
	ApplyUpdate(profile, update)

	var fields []domain.FieldError
	if profile.Status == "" {
		fields = append(fields, domain.FieldError{Field: "status", Message: "status is required"})
	}
	if len(profile.Skills) == 0 {
		fields = append(fields, domain.FieldError{Field: "skills", Message: "skills is required"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *profileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.profiles.List(ctx)
}

// Search filters all profiles by case-insensitive substring match against the
// configured field subset. An empty term matches everything.
func (s *profileService) Search(ctx context.Context, term string) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return profiles, nil
	}

	var matched []domain.Profile
	for _, p := range profiles {
		if s.matches(p, term) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *profileService) DeleteByUserID(ctx context.Context, userID string) error {
	return s.profiles.Delete(ctx, userID)
}

func (s *profileService) matches(p domain.Profile, term string) bool {
	var haystack []string
	if s.searchFields["skills"] {
		haystack = append(haystack, p.Skills...)
	}
	if s.searchFields["location"] {
		haystack = append(haystack, p.Location)
	}
	if s.searchFields["company"] {
		haystack = append(haystack, p.Company)
	}
	if s.searchFields["bio"] {
		haystack = append(haystack, p.Bio)
	}
	for _, field := range haystack {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// ApplyUpdate merges a partial update into a profile: nil fields are left
// untouched, set fields overwrite. The skills string is parsed here so the
// merge rule stays independent of any input-parsing layer.
func ApplyUpdate(profile *domain.Profile, update domain.ProfileUpdate) {
	if update.Company != nil {
		profile.Company = *update.Company
	}
	if update.Website != nil {
		profile.Website = *update.Website
	}
	if update.Location != nil {
		profile.Location = *update.Location
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	if update.Status != nil {
		profile.Status = *update.Status
	}
	if update.GithubUsername != nil {
		profile.GithubUsername = *update.GithubUsername
	}
	if update.Skills != nil {
		profile.Skills = ParseSkills(*update.Skills)
	}
	if update.YouTube != nil {
		profile.Social.YouTube = *update.YouTube
	}
	if update.LinkedIn != nil {
		profile.Social.LinkedIn = *update.LinkedIn
	}
	if update.Instagram != nil {
		profile.Social.Instagram = *update.Instagram
	}
}

// ParseSkills splits a comma-separated list into trimmed entries, dropping
// empty tokens and preserving order.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}
