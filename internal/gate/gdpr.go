package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// GDPRDataOperationInput is the typed input to the GDPRDataOperation gate.
type GDPRDataOperationInput struct {
	MarketID string
	EntityID string
	GDPR     rules.GDPRInput
}

// GDPRDataOperation validates a data-handling action (collection, storage,
// disclosure) against the pack's GDPR sub-rules. A no-op outside
// GDPR-enabled markets.
func GDPRDataOperation(in GDPRDataOperationInput) (core.GateResult, error) {
	return defaultRunner.GDPRDataOperation(context.Background(), in)
}

// GDPRDataOperation runs the GDPR gate against the Runner's effective
// packs.
func (r *Runner) GDPRDataOperation(ctx context.Context, in GDPRDataOperationInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("gdpr_data_operation", rules.EvaluateGDPR(in.GDPR, pack)).
		WithMetadata(map[string]interface{}{"entityId": in.EntityID})

	return tpl.GateResult(), nil
}
