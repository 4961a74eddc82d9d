package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ocx/compliance/internal/marketpack"
)

// RedisPackCache is the distributed read-through PackStore used when
// multiple engine instances need to share a warm pack cache across
// restarts and processes. It degrades to a cache miss (never an error) on
// any Redis failure so pack resolution always has a path to the in-code
// defaults.
type RedisPackCache struct {
	Client *redis.Client
	TTL    time.Duration
	Prefix string
}

// NewRedisPackCache constructs a RedisPackCache with a default 15-minute
// TTL and "compliance:marketpack:" key prefix.
func NewRedisPackCache(client *redis.Client) *RedisPackCache {
	return &RedisPackCache{Client: client, TTL: 15 * time.Minute, Prefix: "compliance:marketpack:"}
}

func (c *RedisPackCache) key(marketID string) string {
	return c.Prefix + marketID
}

func (c *RedisPackCache) Get(ctx context.Context, marketID string) (marketpack.MarketPack, bool) {
	raw, err := c.Client.Get(ctx, c.key(marketID)).Bytes()
	if err != nil {
		return marketpack.MarketPack{}, false
	}
	var pack marketpack.MarketPack
	if err := json.Unmarshal(raw, &pack); err != nil {
		return marketpack.MarketPack{}, false
	}
	return pack, true
}

func (c *RedisPackCache) Set(ctx context.Context, marketID string, pack marketpack.MarketPack) {
	raw, err := json.Marshal(pack)
	if err != nil {
		return
	}
	c.Client.Set(ctx, c.key(marketID), raw, c.TTL)
}

func (c *RedisPackCache) Invalidate(ctx context.Context, marketID string) {
	c.Client.Del(ctx, c.key(marketID))
}
