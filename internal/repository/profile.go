package repository

import (
	"context"

	"devconnect/internal/domain"
)

// ProfileRepository defines persistence operations for Profile entities,
// keyed by the owning user id.
type ProfileRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Delete(ctx context.Context, userID string) error
}
