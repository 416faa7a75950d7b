package repository

import (
	"context"
	"testing"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Follow_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")

	first, err := repo.Follow(ctx, reader.ID, author.ID)
	require.NoError(t, err)

	// Following again returns the same edge, no duplicate row.
	second, err := repo.Follow(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowRepository_DirectionMatters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")

	_, err := repo.Follow(ctx, reader.ID, author.ID)
	require.NoError(t, err)

	following, err := repo.IsFollowing(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The reverse edge does not exist.
	reverse, err := repo.IsFollowing(ctx, author.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	// Both directions can coexist.
	_, err = repo.Follow(ctx, author.ID, reader.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestFollowRepository_Unfollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	author := createTestUser(t, db, "author")

	_, err := repo.Follow(ctx, reader.ID, author.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Unfollow(ctx, reader.ID, author.ID))

	following, err := repo.IsFollowing(ctx, reader.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing a missing edge is a no-op.
	require.NoError(t, repo.Unfollow(ctx, reader.ID, author.ID))
}

func TestFollowRepository_ListFollowedAuthorIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	reader := createTestUser(t, db, "reader")
	a := createTestUser(t, db, "a")
	b := createTestUser(t, db, "b")
	createTestUser(t, db, "c")

	_, err := repo.Follow(ctx, reader.ID, a.ID)
	require.NoError(t, err)
	_, err = repo.Follow(ctx, reader.ID, b.ID)
	require.NoError(t, err)

	ids, err := repo.ListFollowedAuthorIDs(ctx, reader.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, ids)

	// A user with no subscriptions gets an empty set.
	none, err := repo.ListFollowedAuthorIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
