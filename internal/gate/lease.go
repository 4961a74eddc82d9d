package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// LeaseCreationInput is the typed input to the LeaseCreation gate - the
// broadest gate, run once at lease signing, composing every evaluator that
// has not already been satisfied earlier in the application lifecycle.
type LeaseCreationInput struct {
	MarketID          string
	LeaseID           string
	FARE              rules.FAREActInput
	BrokerFee         rules.BrokerFeeInput
	SecurityDeposit   rules.SecurityDepositInput
	Disclosures       rules.DisclosuresInput
	RentStabilization rules.RentStabilizationInput
}

// LeaseCreation validates a lease at signing time.
func LeaseCreation(in LeaseCreationInput) (core.GateResult, error) {
	return defaultRunner.LeaseCreation(context.Background(), in)
}

// LeaseCreation runs the lease-creation gate against the Runner's
// effective packs.
func (r *Runner) LeaseCreation(ctx context.Context, in LeaseCreationInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("fare_act", rules.EvaluateFAREAct(in.FARE, pack)).
		Run("broker_fee", rules.EvaluateBrokerFee(in.BrokerFee, pack)).
		Run("security_deposit", rules.EvaluateSecurityDeposit(in.SecurityDeposit, pack)).
		Run("disclosures", rules.EvaluateDisclosures(in.Disclosures, pack)).
		Run("rent_stabilization", rules.EvaluateRentStabilization(in.RentStabilization, pack)).
		WithMetadata(map[string]interface{}{"leaseId": in.LeaseID})

	return tpl.GateResult(), nil
}
