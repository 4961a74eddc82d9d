package gate

import (
	"context"

	"github.com/ocx/compliance/internal/marketpack"
)

// PackSource supplies the effective pack for a market id. The engine's
// GetEffectiveMarketPack satisfies this, giving gates database-merged
// packs; the default source serves the in-code registry packs.
type PackSource func(ctx context.Context, marketID string) (marketpack.MarketPack, error)

// Runner binds the gates to a pack source. Engine-backed callers construct
// one over Engine.GetEffectiveMarketPack so every gate sees per-tenant
// overlays; the package-level gate functions use a registry-default Runner.
type Runner struct {
	packs PackSource
}

// NewRunner constructs a Runner over packs. A nil packs uses the in-code
// registry defaults.
func NewRunner(packs PackSource) *Runner {
	if packs == nil {
		packs = defaultPackSource
	}
	return &Runner{packs: packs}
}

// defaultRunner serves the package-level gate functions.
var defaultRunner = NewRunner(nil)

// defaultPackSource implements step 1 of the gate template: normalize
// marketID to a pack id and load the registry-default pack.
func defaultPackSource(_ context.Context, marketID string) (marketpack.MarketPack, error) {
	id := marketpack.MarketPackIDFromMarket(marketID)
	return marketpack.GetMarketPack(id)
}
