package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/georgemunganga/printa-storefront/internal/core/errx"
	"github.com/redis/go-redis/v9"
)

// PageCache stores rendered list pages. A miss is reported as an error that
// satisfies errx.IsCacheMiss.
type PageCache interface {
	Get(ctx context.Context, key string) (*Page, error)
	Set(ctx context.Context, key string, page *Page) error
}

const pageCachePrefix = "storefront:page:"

type redisPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPageCache caches pages in Redis for ttl.
func NewRedisPageCache(client *redis.Client, ttl time.Duration) PageCache {
	return &redisPageCache{client: client, ttl: ttl}
}

func (c *redisPageCache) Get(ctx context.Context, key string) (*Page, error) {
	data, err := c.client.Get(ctx, pageCachePrefix+key).Bytes()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *redisPageCache) Set(ctx context.Context, key string, page *Page) error {
	data, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return errx.WrapRedis(c.client.Set(ctx, pageCachePrefix+key, data, c.ttl).Err())
}
