package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/cpi"
	"github.com/ocx/compliance/internal/rules"
)

// RentIncreaseInput is the typed input to the RentIncrease gate.
type RentIncreaseInput struct {
	MarketID          string
	LeaseID           string
	GoodCause         rules.GoodCauseInput
	RentStabilization rules.RentStabilizationInput
}

// RentIncrease validates a proposed rent increase against the good-cause
// CPI-linked cap and, for rent-stabilized units, the preferential-rent
// ceiling. The CPI lookup is the one suspension point in the gate layer
// in the gate layer; callers propagate ctx for cancellation/timeout.
func RentIncrease(ctx context.Context, in RentIncreaseInput, provider cpi.Provider) (core.GateResult, error) {
	return defaultRunner.RentIncrease(ctx, in, provider)
}

// RentIncrease runs the rent-increase gate against the Runner's effective
// packs.
func (r *Runner) RentIncrease(ctx context.Context, in RentIncreaseInput, provider cpi.Provider) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	goodCauseResult, err := rules.EvaluateGoodCause(ctx, in.GoodCause, pack, provider)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("good_cause", goodCauseResult).
		Run("rent_stabilization", rules.EvaluateRentStabilization(in.RentStabilization, pack)).
		WithMetadata(map[string]interface{}{
			"leaseId":      in.LeaseID,
			"currentRent":  in.GoodCause.CurrentRent,
			"proposedRent": in.GoodCause.ProposedRent,
		})

	return tpl.GateResult(), nil
}
