package service

import (
	"context"
	"errors"
	"strings"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

// ErrAlreadyInWatchLater is returned when the user already queued the
// video id being added.
var ErrAlreadyInWatchLater = errors.New("video already in watch later")

// WatchLaterService manages the flat watch-later queue.
type WatchLaterService interface {
	Add(ctx context.Context, entry domain.WatchLaterEntry) (*domain.WatchLaterEntry, error)
	List(ctx context.Context, username string) ([]domain.WatchLaterEntry, error)
	Get(ctx context.Context, id int64) (*domain.WatchLaterEntry, error)
	MarkWatched(ctx context.Context, id int64) (*domain.WatchLaterEntry, error)
	// Remove is idempotent; deleting an absent entry is not an error.
	Remove(ctx context.Context, id int64) error
}

type watchLaterService struct {
	entries repository.WatchLaterRepository
}

func NewWatchLaterService(entries repository.WatchLaterRepository) WatchLaterService {
	return &watchLaterService{entries: entries}
}

func (s *watchLaterService) Add(ctx context.Context, entry domain.WatchLaterEntry) (*domain.WatchLaterEntry, error) {
	if strings.TrimSpace(entry.Username) == "" {
		return nil, validationErr("username is required")
	}
	if strings.TrimSpace(entry.VideoID) == "" {
		return nil, validationErr("video id is required")
	}
	entry.Watched = false

	if _, err := s.entries.Create(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyInWatchLater
		}
		return nil, err
	}
	return &entry, nil
}

func (s *watchLaterService) List(ctx context.Context, username string) ([]domain.WatchLaterEntry, error) {
	return s.entries.ListByUsername(ctx, username)
}

func (s *watchLaterService) Get(ctx context.Context, id int64) (*domain.WatchLaterEntry, error) {
	return s.entries.Get(ctx, id)
}

func (s *watchLaterService) MarkWatched(ctx context.Context, id int64) (*domain.WatchLaterEntry, error) {
	return s.entries.MarkWatched(ctx, id)
}

func (s *watchLaterService) Remove(ctx context.Context, id int64) error {
	return s.entries.Delete(ctx, id)
}
