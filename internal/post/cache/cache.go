// Package cache keeps rendered feed pages in redis so the hot feed endpoints
// skip storage. The cache is strictly optional: a nil *Cache disables it and
// every redis failure degrades to a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/harsach/newsportal/internal/post/model"
)

const (
	keyPrefix  = "feed:"
	defaultTTL = 2 * time.Minute
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log zerolog.Logger
}

func New(ctx context.Context, addr string, log zerolog.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping redis: %w", err)
	}
	return &Cache{rdb: rdb, ttl: defaultTTL, log: log}, nil
}

// Key builds the cache key for one feed page.
func Key(f model.Filter, page, limit int) string {
	return fmt.Sprintf("%s%s:%s:%d:%d", keyPrefix, f.Type, f.SubCategory, page, limit)
}

func (c *Cache) GetFeed(ctx context.Context, key string) (model.FeedPage, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return model.FeedPage{}, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("feed cache read failed")
		return model.FeedPage{}, false
	}

	var page model.FeedPage
	if err := json.Unmarshal(raw, &page); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("feed cache entry corrupt")
		return model.FeedPage{}, false
	}
	return page, true
}

func (c *Cache) SetFeed(ctx context.Context, key string, page model.FeedPage) {
	raw, err := json.Marshal(page)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("feed cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("feed cache write failed")
	}
}

// Invalidate drops every cached feed page. Called whenever the set of
// approved posts changes.
func (c *Cache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.log.Warn().Err(err).Msg("feed cache scan failed")
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("feed cache invalidation failed")
	}
}
