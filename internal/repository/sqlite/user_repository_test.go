package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

func TestUserCreateAndGet(t *testing.T) {
	users, _, _ := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, &domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "digest",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)
	assert.Equal(t, "alice@example.com", byName.Email)
	assert.Equal(t, "digest", byName.PasswordHash)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
}

func TestUserCreateDuplicate(t *testing.T) {
	users, _, _ := newRepos(t)
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Username: "alice", Email: "other@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = users.Create(ctx, &domain.User{Username: "bob", Email: "alice@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserEmailOptional(t *testing.T) {
	users, _, _ := newRepos(t)
	ctx := context.Background()

	// multiple users without email must not collide on the unique index
	_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	bob, err := users.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bob.Email)
}

func TestUserGetMissing(t *testing.T) {
	users, _, _ := newRepos(t)
	ctx := context.Background()

	_, err := users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = users.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDeleteCascading(t *testing.T) {
	users, playlists, watchLater := newRepos(t)
	ctx := context.Background()

	id, err := users.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	playlist, err := playlists.FindOrCreate(ctx, "alice", "Channel A")
	require.NoError(t, err)
	require.NoError(t, playlists.AddVideo(ctx, playlist.ID, domain.Video{VideoID: "v1", Title: "T1"}))

	_, err = watchLater.Create(ctx, &domain.WatchLaterEntry{Username: "alice", VideoID: "v2", Title: "T2"})
	require.NoError(t, err)

	require.NoError(t, users.DeleteCascading(ctx, id))

	_, err = users.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	remaining, err := playlists.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, remaining)

	queued, err := watchLater.ListByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, queued)
}

func TestUserDeleteCascadingMissing(t *testing.T) {
	users, _, _ := newRepos(t)

	err := users.DeleteCascading(context.Background(), 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserDeleteCascadingKeepsOtherUsers(t *testing.T) {
	users, playlists, _ := newRepos(t)
	ctx := context.Background()

	aliceID, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = users.Create(ctx, &domain.User{Username: "bob", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = playlists.FindOrCreate(ctx, "bob", "Channel B")
	require.NoError(t, err)

	require.NoError(t, users.DeleteCascading(ctx, aliceID))

	bobLists, err := playlists.ListByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobLists, 1)
}
