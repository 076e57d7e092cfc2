package repository

import (
	"context"

	"tubeshelf/internal/domain"
)

// PlaylistRepository exposes persistence operations for Playlist
// aggregates and their embedded videos.
type PlaylistRepository interface {
	Init(ctx context.Context) error
	// FindOrCreate returns the playlist for (username, channelTitle),
	// creating it when absent. Safe under concurrent callers: creation
	// is a single conditional insert, not a check-then-write.
	FindOrCreate(ctx context.Context, username, channelTitle string) (*domain.Playlist, error)
	Get(ctx context.Context, id int64) (*domain.Playlist, error)
	ListByUsername(ctx context.Context, username string) ([]domain.Playlist, error)
	Delete(ctx context.Context, id int64) error

	// AddVideo appends a video to the playlist. Returns ErrConflict
	// when the playlist already holds the same video id.
	AddVideo(ctx context.Context, playlistID int64, video domain.Video) error
	RemoveVideo(ctx context.Context, playlistID int64, videoID string) error
	MarkVideoWatched(ctx context.Context, playlistID int64, videoID string) error
	// VideoIDsByTitle resolves the ids of all videos in the playlist
	// carrying the given title. Kept for the legacy title-keyed API.
	VideoIDsByTitle(ctx context.Context, playlistID int64, title string) ([]string, error)
}
