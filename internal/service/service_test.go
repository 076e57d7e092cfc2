package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"tubeshelf/internal/auth"
	"tubeshelf/internal/repository"
	"tubeshelf/internal/repository/sqlite"
	"tubeshelf/internal/service"
)

type fixture struct {
	users      service.UserService
	playlists  service.PlaylistService
	watchLater service.WatchLaterService
	userRepo   repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	playlistRepo := sqlite.NewPlaylistRepository(db)
	watchLaterRepo := sqlite.NewWatchLaterRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, playlistRepo.Init(ctx))
	require.NoError(t, watchLaterRepo.Init(ctx))

	return &fixture{
		users:      service.NewUserService(userRepo, auth.NewHasher(4)),
		playlists:  service.NewPlaylistService(playlistRepo),
		watchLater: service.NewWatchLaterService(watchLaterRepo),
		userRepo:   userRepo,
	}
}
