package repository

import (
	"context"

	"tubeshelf/internal/domain"
)

// WatchLaterRepository manages the per-user watch-later queue.
type WatchLaterRepository interface {
	Init(ctx context.Context) error
	// Create inserts a new entry. Returns ErrConflict when the user
	// already queued the same video id.
	Create(ctx context.Context, entry *domain.WatchLaterEntry) (int64, error)
	Get(ctx context.Context, id int64) (*domain.WatchLaterEntry, error)
	ListByUsername(ctx context.Context, username string) ([]domain.WatchLaterEntry, error)
	MarkWatched(ctx context.Context, id int64) (*domain.WatchLaterEntry, error)
	Delete(ctx context.Context, id int64) error
}
