package domain

import "time"

// WatchLaterEntry is a flat queue item. A user can hold each video at
// most once; duplicates are rejected at the storage layer.
type WatchLaterEntry struct {
	ID           int64
	Username     string
	VideoID      string
	Title        string
	Thumbnail    string
	ChannelTitle string
	Watched      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
