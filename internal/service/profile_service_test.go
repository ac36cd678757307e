package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/internal/domain"
	"devconnect/internal/repository"
)

func newProfileService(t *testing.T) ProfileService {
	repos := newTestRepos(t)
	return NewProfileService(repos.profiles, nil)
}

func TestUpsertCreate(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Status: strPtr("Dev"),
		Skills: strPtr("js, go , rust"),
	})
	require.NoError(t, err)

	stored, err := svc.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, stored.UserID)
	assert.Equal(t, "Dev", stored.Status)
	assert.Equal(t, []string{"js", "go", "rust"}, stored.Skills)
}

func TestUpsertCreateRequiresStatusAndSkills(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{Company: strPtr("ACME")})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)

	// empty skills tokens are dropped, so a comma soup is still empty
	_, err = svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Status: strPtr("Dev"),
		Skills: strPtr(" , ,"),
	})
	require.ErrorAs(t, err, &vErr)
}

func TestUpsertPartialUpdate(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Status:   strPtr("Dev"),
		Skills:   strPtr("go"),
		Company:  strPtr("ACME"),
		Location: strPtr("Berlin"),
	})
	require.NoError(t, err)

	// second call touches only the keys it names
	updated, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Location: strPtr("Lisbon"),
		YouTube:  strPtr("https://youtube.com/@user1"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dev", updated.Status)
	assert.Equal(t, "ACME", updated.Company)
	assert.Equal(t, "Lisbon", updated.Location)
	assert.Equal(t, []string{"go"}, updated.Skills)
	assert.Equal(t, "https://youtube.com/@user1", updated.Social.YouTube)

	stored, err := svc.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, updated.Location, stored.Location)
	assert.Equal(t, updated.Social.YouTube, stored.Social.YouTube)
}

func TestUpsertIdempotent(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	update := domain.ProfileUpdate{Status: strPtr("Dev"), Skills: strPtr("go,js")}
	first, err := svc.Upsert(ctx, "user-1", update)
	require.NoError(t, err)
	second, err := svc.Upsert(ctx, "user-1", update)
	require.NoError(t, err)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Skills, second.Skills)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSearch(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Status: strPtr("Dev"), Skills: strPtr("Go, SQL"), Location: strPtr("Berlin"),
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "user-2", domain.ProfileUpdate{
		Status: strPtr("Designer"), Skills: strPtr("figma"), Company: strPtr("GoCorp"),
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, "user-3", domain.ProfileUpdate{
		Status: strPtr("Manager"), Skills: strPtr("jira"),
	})
	require.NoError(t, err)

	matched, err := svc.Search(ctx, "go")
	require.NoError(t, err)
	ids := make([]string, len(matched))
	for i, p := range matched {
		ids[i] = p.UserID
	}
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)

	all, err := svc.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := svc.Search(ctx, "cobol")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchFieldSubset(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewProfileService(repos.profiles, []string{"location"})
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{
		Status: strPtr("Dev"), Skills: strPtr("go"), Location: strPtr("Berlin"),
	})
	require.NoError(t, err)

	matched, err := svc.Search(ctx, "berlin")
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	// skills are outside the configured subset
	matched, err = svc.Search(ctx, "go")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestDeleteByUserID(t *testing.T) {
	svc := newProfileService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, "user-1", domain.ProfileUpdate{Status: strPtr("Dev"), Skills: strPtr("go")})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByUserID(ctx, "user-1"))
	_, err = svc.GetByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.DeleteByUserID(ctx, "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{"js", "go", "rust"}, ParseSkills("js, go , rust"))
	assert.Equal(t, []string{"go"}, ParseSkills("go"))
	assert.Empty(t, ParseSkills(" , ,"))
	assert.Empty(t, ParseSkills(""))
}
