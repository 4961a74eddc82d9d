package gate

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/rules"
)

// DisclosureRequirementInput is the typed input to the
// DisclosureRequirement gate.
type DisclosureRequirementInput struct {
	MarketID    string
	EntityID    string
	Entity      core.EntityKind
	Disclosures rules.DisclosuresInput
}

// DisclosureRequirement validates the disclosures delivered/acknowledged
// for a single lifecycle phase, independent of the broader listing/lease
// gates.
func DisclosureRequirement(in DisclosureRequirementInput) (core.GateResult, error) {
	return defaultRunner.DisclosureRequirement(context.Background(), in)
}

// DisclosureRequirement runs the disclosure gate against the Runner's
// effective packs.
func (r *Runner) DisclosureRequirement(ctx context.Context, in DisclosureRequirementInput) (core.GateResult, error) {
	pack, err := r.packs(ctx, in.MarketID)
	if err != nil {
		return core.GateResult{}, err
	}

	tpl := NewTemplate(pack).
		Run("disclosures", rules.EvaluateDisclosures(in.Disclosures, pack)).
		WithMetadata(map[string]interface{}{
			"entityId":   in.EntityID,
			"entityKind": in.Entity,
		})

	return tpl.GateResult(), nil
}
