package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CachedService wraps a catalog Service with a redis TTL cache. Video
// metadata changes slowly, so cached reads save upstream API quota.
// Cache failures degrade to upstream lookups, never to request errors.
type CachedService struct {
	next   Service
	client *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedService(next Service, client *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedService {
	return &CachedService{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedService) GetVideo(ctx context.Context, id string) (*VideoDetails, error) {
	key := videoKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var details VideoDetails
		if err := json.Unmarshal(data, &details); err == nil {
			return &details, nil
		}
		// corrupt entry, fall through and overwrite
	} else if err != redis.Nil {
		c.logger.WithError(err).Warn("catalog cache read failed")
	}

	details, err := c.next.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(details); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.WithError(err).Warn("catalog cache write failed")
		}
	}
	return details, nil
}

// GetStats is uncached: bulk stat reads are cheap upstream (one call
// regardless of id count) and go stale faster than snippets.
func (c *CachedService) GetStats(ctx context.Context, ids []string) (map[string]VideoStats, error) {
	return c.next.GetStats(ctx, ids)
}

func videoKey(id string) string {
	return fmt.Sprintf("video:%s", id)
}
