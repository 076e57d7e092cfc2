package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tubeshelf/internal/domain"
	"tubeshelf/internal/repository"
)

const (
	createPlaylistsTable = `
CREATE TABLE IF NOT EXISTS playlists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	channel_title TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (username, channel_title)
);
`
	createPlaylistVideosTable = `
CREATE TABLE IF NOT EXISTS playlist_videos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	playlist_id INTEGER NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	video_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	thumbnail TEXT NOT NULL DEFAULT '',
	watched INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	UNIQUE (playlist_id, video_id)
);
`
)

type PlaylistRepository struct {
	db *sql.DB
}

func NewPlaylistRepository(db *sql.DB) repository.PlaylistRepository {
	return &PlaylistRepository{db: db}
}

func (r *PlaylistRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPlaylistsTable); err != nil {
		return fmt.Errorf("create playlists table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createPlaylistVideosTable); err != nil {
		return fmt.Errorf("create playlist videos table: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) FindOrCreate(ctx context.Context, username, channelTitle string) (*domain.Playlist, error) {
	now := time.Now().UTC()

	// conditional insert; the unique constraint makes this safe when
	// two requests race on the same (username, channel) pair
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO playlists (username, channel_title, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (username, channel_title) DO NOTHING`,
		username, channelTitle, now, now,
	); err != nil {
		return nil, fmt.Errorf("insert playlist: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
SELECT id, username, channel_title, created_at, updated_at
FROM playlists
WHERE username = ? AND channel_title = ?`,
		username, channelTitle,
	)
	playlist, err := scanPlaylist(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadVideos(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) Get(ctx context.Context, id int64) (*domain.Playlist, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, channel_title, created_at, updated_at
FROM playlists
WHERE id = ?`,
		id,
	)
	playlist, err := scanPlaylist(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadVideos(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) ListByUsername(ctx context.Context, username string) ([]domain.Playlist, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, channel_title, created_at, updated_at
FROM playlists
WHERE username = ?
ORDER BY created_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []domain.Playlist
	for rows.Next() {
		var p domain.Playlist
		if err := rows.Scan(&p.ID, &p.Username, &p.ChannelTitle, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}

	for i := range playlists {
		if err := r.loadVideos(ctx, &playlists[i]); err != nil {
			return nil, err
		}
	}
	return playlists, nil
}

func (r *PlaylistRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID int64, video domain.Video) error {
	now := time.Now().UTC()
	if _, err := r.db.ExecContext(ctx, `
INSERT INTO playlist_videos (playlist_id, video_id, title, thumbnail, watched, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		playlistID,
		video.VideoID,
		video.Title,
		video.Thumbnail,
		boolToInt(video.Watched),
		now,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert playlist video: %w", repository.ErrConflict)
		}
		return fmt.Errorf("insert playlist video: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `UPDATE playlists SET updated_at = ? WHERE id = ?`, now, playlistID); err != nil {
		return fmt.Errorf("touch playlist: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID int64, videoID string) error {
	if _, err := r.db.ExecContext(ctx, `
DELETE FROM playlist_videos WHERE playlist_id = ? AND video_id = ?`,
		playlistID, videoID,
	); err != nil {
		return fmt.Errorf("remove playlist video: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) MarkVideoWatched(ctx context.Context, playlistID int64, videoID string) error {
	if _, err := r.db.ExecContext(ctx, `
UPDATE playlist_videos SET watched = 1 WHERE playlist_id = ? AND video_id = ?`,
		playlistID, videoID,
	); err != nil {
		return fmt.Errorf("mark playlist video watched: %w", err)
	}
	return nil
}

func (r *PlaylistRepository) VideoIDsByTitle(ctx context.Context, playlistID int64, title string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT video_id FROM playlist_videos WHERE playlist_id = ? AND title = ?`,
		playlistID, title,
	)
	if err != nil {
		return nil, fmt.Errorf("lookup videos by title: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan video id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video ids: %w", err)
	}
	return ids, nil
}

func (r *PlaylistRepository) loadVideos(ctx context.Context, playlist *domain.Playlist) error {
	rows, err := r.db.QueryContext(ctx, `
SELECT video_id, title, thumbnail, watched
FROM playlist_videos
WHERE playlist_id = ?
ORDER BY id ASC`,
		playlist.ID,
	)
	if err != nil {
		return fmt.Errorf("load playlist videos: %w", err)
	}
	defer rows.Close()

	videos := []domain.Video{}
	for rows.Next() {
		var (
			v       domain.Video
			watched int
		)
		if err := rows.Scan(&v.VideoID, &v.Title, &v.Thumbnail, &watched); err != nil {
			return fmt.Errorf("scan playlist video: %w", err)
		}
		v.Watched = watched != 0
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate playlist videos: %w", err)
	}
	playlist.Videos = videos
	return nil
}

func scanPlaylist(row interface {
	Scan(dest ...any) error
}) (*domain.Playlist, error) {
	var p domain.Playlist
	if err := row.Scan(&p.ID, &p.Username, &p.ChannelTitle, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("playlist: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan playlist: %w", err)
	}
	return &p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
