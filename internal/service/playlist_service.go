package service

import (
	"context"
	"errors"
	"strings"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

// ErrVideoAlreadyInPlaylist is returned when the playlist already
// holds the video id being added.
var ErrVideoAlreadyInPlaylist = errors.New("video already added to the playlist")

// PlaylistService coordinates per-channel playlist mutations. All
// operations are scoped to an authenticated username by the caller.
type PlaylistService interface {
	// AddVideo finds or creates the playlist for (username,
	// channelTitle) and appends the video, rejecting duplicates by
	// video id. Returns the playlist with the video included.
	AddVideo(ctx context.Context, username, channelTitle string, video domain.Video) (*domain.Playlist, error)
	Get(ctx context.Context, id int64) (*domain.Playlist, error)
	List(ctx context.Context, username string) ([]domain.Playlist, error)
	// Delete is idempotent; removing an absent playlist is not an error.
	Delete(ctx context.Context, id int64) error
	// RemoveVideo drops the video from the playlist; no-op when absent.
	RemoveVideo(ctx context.Context, playlistID int64, videoID string) (*domain.Playlist, error)
	// MarkWatched flags the video watched; idempotent, no-op when absent.
	MarkWatched(ctx context.Context, playlistID int64, videoID string) (*domain.Playlist, error)
	// ResolveVideoIDs maps a video title to the ids carrying it, for
	// callers still keyed by title.
	ResolveVideoIDs(ctx context.Context, playlistID int64, title string) ([]string, error)
}

type playlistService struct {
	playlists repository.PlaylistRepository
}

func NewPlaylistService(playlists repository.PlaylistRepository) PlaylistService {
	return &playlistService{playlists: playlists}
}

func (s *playlistService) AddVideo(ctx context.Context, username, channelTitle string, video domain.Video) (*domain.Playlist, error) {
	username = strings.TrimSpace(username)
	channelTitle = strings.TrimSpace(channelTitle)
	if username == "" {
		return nil, validationErr("username is required")
	}
	if channelTitle == "" {
		return nil, validationErr("channel title is required")
	}
	if strings.TrimSpace(video.VideoID) == "" {
		return nil, validationErr("video id is required")
	}

	playlist, err := s.playlists.FindOrCreate(ctx, username, channelTitle)
	if err != nil {
		return nil, err
	}

	if err := s.playlists.AddVideo(ctx, playlist.ID, video); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrVideoAlreadyInPlaylist
		}
		return nil, err
	}

	return s.playlists.Get(ctx, playlist.ID)
}

func (s *playlistService) Get(ctx context.Context, id int64) (*domain.Playlist, error) {
	return s.playlists.Get(ctx, id)
}

func (s *playlistService) List(ctx context.Context, username string) ([]domain.Playlist, error) {
	return s.playlists.ListByUsername(ctx, username)
}

func (s *playlistService) Delete(ctx context.Context, id int64) error {
	return s.playlists.Delete(ctx, id)
}

func (s *playlistService) RemoveVideo(ctx context.Context, playlistID int64, videoID string) (*domain.Playlist, error) {
	if err := s.playlists.RemoveVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlists.Get(ctx, playlistID)
}

func (s *playlistService) MarkWatched(ctx context.Context, playlistID int64, videoID string) (*domain.Playlist, error) {
	if err := s.playlists.MarkVideoWatched(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	return s.playlists.Get(ctx, playlistID)
}

func (s *playlistService) ResolveVideoIDs(ctx context.Context, playlistID int64, title string) ([]string, error) {
	return s.playlists.VideoIDsByTitle(ctx, playlistID, title)
}
