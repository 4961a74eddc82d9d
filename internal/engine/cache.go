package engine

import (
	"context"
	"sync"

	"github.com/ocx/compliance/internal/marketpack"
)

// PackStore is the read-through cache interface the engine consults before
// falling back to marketpack.GetMarketPack. A distributed implementation
// (RedisPackCache) lets multiple engine instances share one warm cache.
type PackStore interface {
	Get(ctx context.Context, marketID string) (marketpack.MarketPack, bool)
	Set(ctx context.Context, marketID string, pack marketpack.MarketPack)
	Invalidate(ctx context.Context, marketID string)
}

// InProcessPackCache is a sync.RWMutex-guarded map keyed by normalized
// market id: a read-mostly cache where misses populate under the write
// lock and reads dominate under the read lock.
type InProcessPackCache struct {
	mu    sync.RWMutex
	store map[string]marketpack.MarketPack
}

// NewInProcessPackCache constructs an empty cache.
func NewInProcessPackCache() *InProcessPackCache {
	return &InProcessPackCache{store: make(map[string]marketpack.MarketPack)}
}

func (c *InProcessPackCache) Get(_ context.Context, marketID string) (marketpack.MarketPack, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pack, ok := c.store[marketID]
	return pack, ok
}

func (c *InProcessPackCache) Set(_ context.Context, marketID string, pack marketpack.MarketPack) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[marketID] = pack
}

func (c *InProcessPackCache) Invalidate(_ context.Context, marketID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, marketID)
}

// Clear empties the cache entirely. It is not part of PackStore and the
// engine does not call it; the engine itself exposes only the per-market
// InvalidatePack.
func (c *InProcessPackCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]marketpack.MarketPack)
}

// NoopPackCache disables caching entirely: every Get misses, so every
// GetEffectiveMarketPack call reloads and re-merges. Used when the
// pack-cache config knob is off.
type NoopPackCache struct{}

func (NoopPackCache) Get(context.Context, string) (marketpack.MarketPack, bool) {
	return marketpack.MarketPack{}, false
}

func (NoopPackCache) Set(context.Context, string, marketpack.MarketPack) {}

func (NoopPackCache) Invalidate(context.Context, string) {}
