package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// SecurityDepositChangeInput is the typed input to the
// SecurityDepositChange gate.
type SecurityDepositChangeInput struct {
	MarketID        string
	LeaseID         string
	PreviousAmount  float64
	SecurityDeposit rules.SecurityDepositInput
}

// SecurityDepositChange validates a proposed security-deposit change.
func SecurityDepositChange(in SecurityDepositChangeInput) (core.GateResult, error) {
	return defaultRunner.SecurityDepositChange(context.Background(), in)
}

// SecurityDepositChange runs the security-deposit-change gate against the
// Runner's effective packs.
func (r *Runner) SecurityDepositChange(ctx context.Context, in SecurityDepositChangeInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("security_deposit", rules.EvaluateSecurityDeposit(in.SecurityDeposit, pack)).
		WithMetadata(map[string]interface{}{
			"leaseId":        in.LeaseID,
			"previousAmount": in.PreviousAmount,
		})

	return tpl.GateResult(), nil
}
