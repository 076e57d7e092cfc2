package catalog

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCatalog struct {
	videos map[string]*VideoDetails
	calls  int
}

func (c *countingCatalog) GetVideo(_ context.Context, id string) (*VideoDetails, error) {
	c.calls++
	if v, ok := c.videos[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, ErrVideoNotFound
}

func (c *countingCatalog) GetStats(_ context.Context, ids []string) (map[string]VideoStats, error) {
	c.calls++
	stats := make(map[string]VideoStats)
	for _, id := range ids {
		if v, ok := c.videos[id]; ok {
			stats[id] = VideoStats{Views: v.Views}
		}
	}
	return stats, nil
}

func newCacheFixture(t *testing.T) (*CachedService, *countingCatalog, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	upstream := &countingCatalog{videos: map[string]*VideoDetails{
		"abc": {ID: "abc", Title: "First", ChannelTitle: "C", Views: 42},
	}}
	return NewCachedService(upstream, client, time.Minute, logger), upstream, mr
}

func TestGetVideoCachesUpstreamResult(t *testing.T) {
	cached, upstream, mr := newCacheFixture(t)
	ctx := context.Background()

	details, err := cached.GetVideo(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "First", details.Title)
	assert.Equal(t, 1, upstream.calls)
	assert.True(t, mr.Exists("video:abc"))

	// second read is served from redis
	details, err = cached.GetVideo(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "First", details.Title)
	assert.Equal(t, 1, upstream.calls)
}

func TestGetVideoMissesAreNotCached(t *testing.T) {
	cached, upstream, mr := newCacheFixture(t)
	ctx := context.Background()

	_, err := cached.GetVideo(ctx, "nope")
	require.ErrorIs(t, err, ErrVideoNotFound)
	assert.False(t, mr.Exists("video:nope"))

	_, err = cached.GetVideo(ctx, "nope")
	require.ErrorIs(t, err, ErrVideoNotFound)
	assert.Equal(t, 2, upstream.calls)
}

func TestGetVideoRecoversFromCorruptEntry(t *testing.T) {
	cached, upstream, mr := newCacheFixture(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("video:abc", "{not json"))

	details, err := cached.GetVideo(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "First", details.Title)
	assert.Equal(t, 1, upstream.calls)

	// the corrupt entry was overwritten with a good one
	raw, err := mr.Get("video:abc")
	require.NoError(t, err)
	assert.Contains(t, raw, `"title":"First"`)
}

func TestGetVideoExpiryRefetches(t *testing.T) {
	cached, upstream, mr := newCacheFixture(t)
	ctx := context.Background()

	_, err := cached.GetVideo(ctx, "abc")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = cached.GetVideo(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, upstream.calls)
}

func TestGetVideoSurvivesRedisOutage(t *testing.T) {
	cached, upstream, mr := newCacheFixture(t)
	ctx := context.Background()

	mr.Close()

	details, err := cached.GetVideo(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "First", details.Title)
	assert.Equal(t, 1, upstream.calls)
}

func TestGetStatsBypassesCache(t *testing.T) {
	cached, upstream, _ := newCacheFixture(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		stats, err := cached.GetStats(ctx, []string{"abc"})
		require.NoError(t, err)
		assert.Equal(t, uint64(42), stats["abc"].Views)
	}
	assert.Equal(t, 2, upstream.calls)
}
