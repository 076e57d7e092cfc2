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

const createWatchLaterTable = `
CREATE TABLE IF NOT EXISTS watch_later (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	video_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	thumbnail TEXT NOT NULL DEFAULT '',
	channel_title TEXT NOT NULL DEFAULT '',
	watched INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (username, video_id)
);
`

type WatchLaterRepository struct {
	db *sql.DB
}

func NewWatchLaterRepository(db *sql.DB) repository.WatchLaterRepository {
	return &WatchLaterRepository{db: db}
}

func (r *WatchLaterRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createWatchLaterTable); err != nil {
		return fmt.Errorf("create watch later table: %w", err)
	}
	return nil
}

func (r *WatchLaterRepository) Create(ctx context.Context, entry *domain.WatchLaterEntry) (int64, error) {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO watch_later (username, video_id, title, thumbnail, channel_title, watched, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Username,
		entry.VideoID,
		entry.Title,
		entry.Thumbnail,
		entry.ChannelTitle,
		boolToInt(entry.Watched),
		entry.CreatedAt,
		entry.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert watch later entry: %w", repository.ErrConflict)
		}
		return 0, fmt.Errorf("insert watch later entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("watch later last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *WatchLaterRepository) Get(ctx context.Context, id int64) (*domain.WatchLaterEntry, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, username, video_id, title, thumbnail, channel_title, watched, created_at, updated_at
FROM watch_later
WHERE id = ?`,
		id,
	)
	return scanWatchLater(row)
}

func (r *WatchLaterRepository) ListByUsername(ctx context.Context, username string) ([]domain.WatchLaterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, video_id, title, thumbnail, channel_title, watched, created_at, updated_at
FROM watch_later
WHERE username = ?
ORDER BY created_at DESC, id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("list watch later: %w", err)
	}
	defer rows.Close()

	var entries []domain.WatchLaterEntry
	for rows.Next() {
		entry, err := scanWatchLaterRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch later: %w", err)
	}
	return entries, nil
}

func (r *WatchLaterRepository) MarkWatched(ctx context.Context, id int64) (*domain.WatchLaterEntry, error) {
	if _, err := r.db.ExecContext(ctx, `
UPDATE watch_later SET watched = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("mark watch later watched: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *WatchLaterRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM watch_later WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete watch later entry: %w", err)
	}
	return nil
}

func scanWatchLater(row *sql.Row) (*domain.WatchLaterEntry, error) {
	var (
		entry   domain.WatchLaterEntry
		watched int
	)
	if err := row.Scan(
		&entry.ID,
		&entry.Username,
		&entry.VideoID,
		&entry.Title,
		&entry.Thumbnail,
		&entry.ChannelTitle,
		&watched,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("watch later entry: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan watch later entry: %w", err)
	}
	entry.Watched = watched != 0
	return &entry, nil
}

func scanWatchLaterRows(rows *sql.Rows) (*domain.WatchLaterEntry, error) {
	var (
		entry   domain.WatchLaterEntry
		watched int
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.Username,
		&entry.VideoID,
		&entry.Title,
		&entry.Thumbnail,
		&entry.ChannelTitle,
		&watched,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan watch later entry: %w", err)
	}
	entry.Watched = watched != 0
	return &entry, nil
}
