package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// BrokerFeeChangeInput is the typed input to the BrokerFeeChange gate.
type BrokerFeeChangeInput struct {
	MarketID    string
	ListingID   string
	PreviousFee float64
	BrokerFee   rules.BrokerFeeInput
}

// BrokerFeeChange validates a proposed broker-fee change in isolation -
// used by callers that only touch the fee, not the whole listing.
func BrokerFeeChange(in BrokerFeeChangeInput) (core.GateResult, error) {
	return defaultRunner.BrokerFeeChange(context.Background(), in)
}

// BrokerFeeChange runs the broker-fee-change gate against the Runner's
// effective packs.
func (r *Runner) BrokerFeeChange(ctx context.Context, in BrokerFeeChangeInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("broker_fee", rules.EvaluateBrokerFee(in.BrokerFee, pack)).
		WithMetadata(map[string]interface{}{
			"listingId":   in.ListingID,
			"previousFee": in.PreviousFee,
		})

	return tpl.GateResult(), nil
}
