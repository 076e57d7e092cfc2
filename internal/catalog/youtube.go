// Package catalog proxies video metadata lookups to the YouTube Data
// API v3. It is thin I/O glue: no invariants live here, only mapping
// from the upstream response shape to ours.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrVideoNotFound is returned when the catalog has no video for the
// requested id.
var ErrVideoNotFound = errors.New("video not found")

// Thumbnail is a single thumbnail rendition.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// VideoDetails is the metadata surfaced for a single video.
type VideoDetails struct {
	ID            string               `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Thumbnails    map[string]Thumbnail `json:"thumbnails"`
	ChannelTitle  string               `json:"channelTitle"`
	PublishedAt   string               `json:"publishedAt"`
	Views         uint64               `json:"views"`
	Likes         uint64               `json:"likes"`
	CommentsCount uint64               `json:"commentsCount"`
}

// VideoStats is the bulk-lookup subset keyed by video id.
type VideoStats struct {
	Description   string `json:"description"`
	Views         uint64 `json:"views"`
	Likes         uint64 `json:"likes"`
	CommentsCount uint64 `json:"commentsCount"`
}

// Service supplies video metadata given external video identifiers.
type Service interface {
	GetVideo(ctx context.Context, id string) (*VideoDetails, error)
	GetStats(ctx context.Context, ids []string) (map[string]VideoStats, error)
}

type client struct {
	yt *youtube.Service
}

// NewClient builds a catalog service backed by the YouTube Data API.
func NewClient(ctx context.Context, apiKey string) (Service, error) {
	yt, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &client{yt: yt}, nil
}

func (c *client) GetVideo(ctx context.Context, id string) (*VideoDetails, error) {
	resp, err := c.yt.Videos.List([]string{"snippet", "statistics"}).Id(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video %s: %w", id, err)
	}
	if len(resp.Items) == 0 {
		return nil, ErrVideoNotFound
	}
	return videoToDetails(resp.Items[0]), nil
}

func (c *client) GetStats(ctx context.Context, ids []string) (map[string]VideoStats, error) {
	resp, err := c.yt.Videos.List([]string{"snippet", "statistics"}).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetch video stats: %w", err)
	}

	stats := make(map[string]VideoStats, len(resp.Items))
	for _, item := range resp.Items {
		vs := VideoStats{}
		if item.Snippet != nil {
			vs.Description = item.Snippet.Description
		}
		if item.Statistics != nil {
			vs.Views = item.Statistics.ViewCount
			vs.Likes = item.Statistics.LikeCount
			vs.CommentsCount = item.Statistics.CommentCount
		}
		stats[item.Id] = vs
	}
	return stats, nil
}

func videoToDetails(item *youtube.Video) *VideoDetails {
	details := &VideoDetails{ID: item.Id}

	if item.Snippet != nil {
		details.Title = item.Snippet.Title
		details.Description = item.Snippet.Description
		details.ChannelTitle = item.Snippet.ChannelTitle
		details.PublishedAt = item.Snippet.PublishedAt
		details.Thumbnails = thumbnailsToMap(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		details.Views = item.Statistics.ViewCount
		details.Likes = item.Statistics.LikeCount
		details.CommentsCount = item.Statistics.CommentCount
	}
	return details
}

func thumbnailsToMap(t *youtube.ThumbnailDetails) map[string]Thumbnail {
	if t == nil {
		return nil
	}
	out := make(map[string]Thumbnail)
	add := func(name string, thumb *youtube.Thumbnail) {
		if thumb == nil {
			return
		}
		out[name] = Thumbnail{URL: thumb.Url, Width: thumb.Width, Height: thumb.Height}
	}
	add("default", t.Default)
	add("medium", t.Medium)
	add("high", t.High)
	add("standard", t.Standard)
	add("maxres", t.Maxres)
	return out
}
