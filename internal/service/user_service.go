package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"devconnect/internal/domain"
	"devconnect/internal/gravatar"
	"devconnect/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// Unknown email and wrong password collapse into it so callers cannot tell
	// which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail is returned when registering with an email that is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserService is the credential store: it owns identity records and is the
// only component that ever sees password material.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	DeleteByID(ctx context.Context, id string) error
}

type userService struct {
	users  repository.UserRepository
	avatar gravatar.Options
}

func NewUserService(users repository.UserRepository, avatar gravatar.Options) UserService {
	return &userService{
		users:  users,
		avatar: avatar,
	}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	var fields []domain.FieldError
	if name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "name is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, domain.FieldError{Field: "email", Message: "a valid email is required"})
	}
	if len(password) < 8 {
		fields = append(fields, domain.FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	// best-effort pre-check; the unique index on email backstops the race
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    gravatar.URL(email, s.avatar),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// bcrypt compares in constant time using the salt embedded in the hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) DeleteByID(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}
