package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/domain"
	"devconnect/internal/gravatar"
	"devconnect/internal/repository"
)

type directoryFixture struct {
	users     UserService
	profiles  ProfileService
	posts     PostService
	directory DirectoryService
	repos     testRepos
}

func newDirectoryFixture(t *testing.T) directoryFixture {
	repos := newTestRepos(t)
	users := NewUserService(repos.users, gravatar.Options{})
	profiles := NewProfileService(repos.profiles, nil)
	posts := NewPostService(repos.posts)
	return directoryFixture{
		users:     users,
		profiles:  profiles,
		posts:     posts,
		directory: NewDirectoryService(users, profiles, posts),
		repos:     repos,
	}
}

func (f directoryFixture) registerWithProfile(t *testing.T, name, email string) *domain.User {
	t.Helper()
	ctx := context.Background()
	user, err := f.users.Register(ctx, name, email, "correct-horse")
	require.NoError(t, err)
	_, err = f.profiles.Upsert(ctx, user.ID, domain.ProfileUpdate{
		Status: strPtr("Dev"),
		Skills: strPtr("go"),
	})
	require.NoError(t, err)
	return user
}

func TestGetProfileWithOwner(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	user := f.registerWithProfile(t, "Jane", "jane@example.com")

	view, err := f.directory.GetProfileWithOwner(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, view.Profile.UserID)
	assert.Equal(t, "Jane", view.OwnerName)
	assert.Equal(t, user.AvatarURL, view.OwnerAvatar)
}

func TestGetProfileWithOwnerMissingProfile(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, "Jane", "jane@example.com", "correct-horse")
	require.NoError(t, err)

	_, err = f.directory.GetProfileWithOwner(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetProfileWithOwnerMissingOwner(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()

	// orphan: profile row without a matching user
	require.NoError(t, f.repos.profiles.Create(ctx, &domain.Profile{
		UserID: "ghost", Status: "Dev", Skills: []string{"go"},
	}))

	_, err := f.directory.GetProfileWithOwner(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListAllWithOwners(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	f.registerWithProfile(t, "Jane", "jane@example.com")
	f.registerWithProfile(t, "John", "john@example.com")

	views, err := f.directory.ListAllWithOwners(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)

	names := []string{views[0].OwnerName, views[1].OwnerName}
	assert.ElementsMatch(t, []string{"Jane", "John"}, names)
}

func TestListAllWithOwnersReportsOrphans(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	f.registerWithProfile(t, "Jane", "jane@example.com")

	require.NoError(t, f.repos.profiles.Create(ctx, &domain.Profile{
		UserID: "ghost", Status: "Dev", Skills: []string{"go"},
	}))

	_, err := f.directory.ListAllWithOwners(ctx)
	assert.ErrorIs(t, err, ErrOwnerMissing)
}

func TestSearchWithOwners(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	user := f.registerWithProfile(t, "Jane", "jane@example.com")

	views, err := f.directory.SearchWithOwners(ctx, "GO")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, user.ID, views[0].Profile.UserID)

	views, err = f.directory.SearchWithOwners(ctx, "rust")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestDeleteAccountCascade(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	user := f.registerWithProfile(t, "Jane", "jane@example.com")

	full, err := f.repos.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, full, "hello world")
	require.NoError(t, err)

	require.NoError(t, f.directory.DeleteAccount(ctx, user.ID))

	_, err = f.profiles.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = f.users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	posts, err := f.posts.ListByAuthor(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDeleteAccountTwice(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()
	user := f.registerWithProfile(t, "Jane", "jane@example.com")

	require.NoError(t, f.directory.DeleteAccount(ctx, user.ID))
	err := f.directory.DeleteAccount(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteAccountWithoutProfile(t *testing.T) {
	f := newDirectoryFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, "Jane", "jane@example.com", "correct-horse")
	require.NoError(t, err)

	// missing profile is tolerated; missing identity is not
	require.NoError(t, f.directory.DeleteAccount(ctx, user.ID))
}
