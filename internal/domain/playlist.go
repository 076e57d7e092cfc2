package domain

import "time"

// Playlist groups saved videos by the channel they came from. There is
// at most one playlist per (username, channel title) pair.
type Playlist struct {
	ID           int64
	Username     string
	ChannelTitle string
	Videos       []Video
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Video is a single entry inside a playlist. VideoID is the external
// catalog identifier and is unique within its playlist.
type Video struct {
	VideoID   string
	Title     string
	Thumbnail string
	Watched   bool
}
