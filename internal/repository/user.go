package repository

import (
	"context"

	"devconnect/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
