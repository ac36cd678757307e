package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

// PostService owns the posts that hang off a user account. It is the
// collaborator the deletion cascade signals.
type PostService interface {
	Create(ctx context.Context, author *domain.User, text string) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	DeleteByAuthor(ctx context.Context, authorID string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, author *domain.User, text string) (*domain.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.NewValidationError(domain.FieldError{Field: "text", Message: "text is required"})
	}

	post := &domain.Post{
		ID:           uuid.NewString(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.AvatarURL,
		Text:         text,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error) {
	return s.posts.ListByAuthor(ctx, authorID)
}

func (s *postService) DeleteByAuthor(ctx context.Context, authorID string) error {
	return s.posts.DeleteByAuthor(ctx, authorID)
}
