package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"devconnect/internal/repository"
	"devconnect/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		profiles: sqlite.NewProfileRepository(db),
		posts:    sqlite.NewPostRepository(db),
	}
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.profiles.Init(ctx))
	require.NoError(t, repos.posts.Init(ctx))
	return repos
}

func strPtr(s string) *string {
	return &s
}
