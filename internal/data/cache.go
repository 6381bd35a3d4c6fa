package data

import (
	"context"
	"fmt"
	"time"

	"cinestats/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

const defaultCacheTTL = 15 * time.Minute

type messageCache struct {
	data *Data
	log  *log.Helper
}

// NewMessageCache creates a Redis backed cache for rendered query messages.
// Without a Redis connection every lookup is a miss and writes are dropped.
func NewMessageCache(data *Data, logger log.Logger) biz.MessageCache {
	return &messageCache{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// Keys are scoped by snapshot id so a process started on new data never
// reads messages rendered from the previous dataset.
func (c *messageCache) key(op, param string) string {
	return fmt.Sprintf("query:%s:%s:%s", c.data.dataset.ID, op, param)
}

func (c *messageCache) expiry() time.Duration {
	if c.data.ttl <= 0 {
		return defaultCacheTTL
	}
	return c.data.ttl
}

func (c *messageCache) Get(ctx context.Context, op, param string) (string, bool) {
	if c.data.rdb == nil || c.data.dataset == nil {
		return "", false
	}
	cached, err := c.data.rdb.Get(ctx, c.key(op, param)).Result()
	if err != nil {
		return "", false
	}
	c.log.Debugf("cache hit for %s: %s", op, param)
	return cached, true
}

func (c *messageCache) Set(ctx context.Context, op, param, message string) {
	if c.data.rdb == nil || c.data.dataset == nil {
		return
	}
	if err := c.data.rdb.Set(ctx, c.key(op, param), message, c.expiry()).Err(); err != nil {
		c.log.Warnf("failed to cache %s result: %v", op, err)
	}
}
