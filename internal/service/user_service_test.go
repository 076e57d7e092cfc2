package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
	"tubeshelf/internal/service"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, "alice", "alice@example.com", "secret-password")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash, "hash must not leave the service layer")

	authed, err := f.users.Authenticate(ctx, "alice", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
	assert.Empty(t, authed.PasswordHash)

	_, err = f.users.Authenticate(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "nobody", "secret-password")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "empty username", username: "", password: "secret-password"},
		{name: "empty password", username: "alice", password: ""},
		{name: "short password", username: "alice", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Register(ctx, tt.username, "", tt.password)
			require.Error(t, err)

			// rejected input is typed so handlers can tell it apart
			// from storage failures
			var validationErr *service.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "alice", "alice@example.com", "secret-password")
	require.NoError(t, err)

	_, err = f.users.Register(ctx, "alice", "other@example.com", "secret-password")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)

	_, err = f.users.Register(ctx, "bob", "alice@example.com", "secret-password")
	assert.ErrorIs(t, err, service.ErrUserAlreadyExists)
}

func TestDeleteAccountCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, "alice", "alice@example.com", "secret-password")
	require.NoError(t, err)

	_, err = f.playlists.AddVideo(ctx, "alice", "Channel A", domain.Video{VideoID: "v1", Title: "T1"})
	require.NoError(t, err)
	_, err = f.watchLater.Add(ctx, domain.WatchLaterEntry{Username: "alice", VideoID: "v2"})
	require.NoError(t, err)

	require.NoError(t, f.users.DeleteAccount(ctx, user.ID))

	_, err = f.users.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	playlists, err := f.playlists.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, playlists)

	queued, err := f.watchLater.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, queued)
}
