package repository

import (
	"context"

	"devconnect/internal/domain"
)

// PostRepository defines persistence operations for Post entities.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) error
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	DeleteByAuthor(ctx context.Context, authorID string) error
}
