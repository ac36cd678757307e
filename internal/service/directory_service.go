package service

import (
	"context"
	"errors"
	"fmt"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

// ErrOwnerMissing indicates a profile whose owning identity no longer exists,
// a data-integrity violation that listings must report rather than drop.
var ErrOwnerMissing = errors.New("profile owner missing")

// PostRemover is the dependent-posts collaborator signalled by the account
// deletion cascade.
type PostRemover interface {
	DeleteByAuthor(ctx context.Context, authorID string) error
}

// DirectoryService composes the credential and profile stores into joined
// read views and performs the account deletion cascade.
type DirectoryService interface {
	GetProfileWithOwner(ctx context.Context, userID string) (*domain.ProfileWithOwner, error)
	ListAllWithOwners(ctx context.Context) ([]domain.ProfileWithOwner, error)
	SearchWithOwners(ctx context.Context, term string) ([]domain.ProfileWithOwner, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type directoryService struct {
	users    UserService
	profiles ProfileService
	posts    PostRemover
}

func NewDirectoryService(users UserService, profiles ProfileService, posts PostRemover) DirectoryService {
	return &directoryService{
		users:    users,
		profiles: profiles,
		posts:    posts,
	}
}

// GetProfileWithOwner fetches the profile, then the owner's name and avatar,
// and composes the two. All or nothing: either half missing fails the call.
func (s *directoryService) GetProfileWithOwner(ctx context.Context, userID string) (*domain.ProfileWithOwner, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	view, err := s.compose(ctx, *profile)
	if err != nil {
		if errors.Is(err, ErrOwnerMissing) {
			return nil, fmt.Errorf("owner of profile %s: %w", userID, repository.ErrNotFound)
		}
		return nil, err
	}
	return view, nil
}

// ListAllWithOwners joins every profile with its owner. A profile whose owner
// cannot be resolved fails the whole call with ErrOwnerMissing.
func (s *directoryService) ListAllWithOwners(ctx context.Context) ([]domain.ProfileWithOwner, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.composeAll(ctx, profiles)
}

func (s *directoryService) SearchWithOwners(ctx context.Context, term string) ([]domain.ProfileWithOwner, error) {
	profiles, err := s.profiles.Search(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.composeAll(ctx, profiles)
}

// DeleteAccount removes the profile (absence tolerated), then the identity,
// then the author's posts. The ordering guarantees the only reachable partial
// state is "profile deleted, identity kept", never an orphaned profile.
func (s *directoryService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err := s.users.DeleteByID(ctx, userID); err != nil {
		return err
	}
	if err := s.posts.DeleteByAuthor(ctx, userID); err != nil {
		return fmt.Errorf("remove posts for %s: %w", userID, err)
	}
	return nil
}

func (s *directoryService) composeAll(ctx context.Context, profiles []domain.Profile) ([]domain.ProfileWithOwner, error) {
	joined := make([]domain.ProfileWithOwner, 0, len(profiles))
	for _, profile := range profiles {
		view, err := s.compose(ctx, profile)
		if err != nil {
			return nil, err
		}
		joined = append(joined, *view)
	}
	return joined, nil
}

func (s *directoryService) compose(ctx context.Context, profile domain.Profile) (*domain.ProfileWithOwner, error) {
	owner, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("profile %s: %w", profile.UserID, ErrOwnerMissing)
		}
		return nil, err
	}
	return &domain.ProfileWithOwner{
		Profile:     profile,
		OwnerName:   owner.Name,
		OwnerAvatar: owner.AvatarURL,
	}, nil
}
