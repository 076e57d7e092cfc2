package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"tubeshelf/internal/repository"
)

// newTestDB opens an in-memory database with every table created, so
// cross-table behavior (cascading deletes) is exercisable everywhere.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewPlaylistRepository(db).Init(ctx))
	require.NoError(t, NewWatchLaterRepository(db).Init(ctx))
	return db
}

func newRepos(t *testing.T) (repository.UserRepository, repository.PlaylistRepository, repository.WatchLaterRepository) {
	t.Helper()
	db := newTestDB(t)
	return NewUserRepository(db), NewPlaylistRepository(db), NewWatchLaterRepository(db)
}
