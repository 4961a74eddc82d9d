package rules

import (
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// DisclosuresInput is the typed input to the disclosures evaluator.
type DisclosuresInput struct {
	Phase                   core.DisclosurePhase
	DeliveredDisclosures    []string
	AcknowledgedDisclosures []string
}

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// EvaluateDisclosures checks every requirement scoped to in.Phase against
// the delivered/acknowledged lists. Requirements are walked in pack
// declaration order, and violations are emitted in that same order.
func EvaluateDisclosures(in DisclosuresInput, pack marketpack.MarketPack) Result {
	var res Result

	for _, req := range pack.Rules.Disclosures {
		if core.DisclosurePhase(req.RequiredBefore) != in.Phase {
			continue
		}

		if !contains(in.DeliveredDisclosures, req.Type) {
			res.addViolation(core.Violation{
				Code:     core.CodeDisclosureNotDelivered,
				Severity: core.SeverityViolation,
				Message:  fmt.Sprintf("required disclosure %q was not delivered before %s", req.Type, in.Phase),
				Evidence: map[string]interface{}{"disclosureType": req.Type, "phase": in.Phase},
			})
			res.addFix(core.RecommendedFix{
				Action:      core.FixDeliverDisclosure,
				Description: fmt.Sprintf("Deliver the %q disclosure before %s", req.Type, in.Phase),
				Priority:    core.FixPriorityHigh,
			})
			continue
		}

		if req.SignatureRequired && !contains(in.AcknowledgedDisclosures, req.Type) {
			res.addViolation(core.Violation{
				Code:     core.CodeDisclosureNotAcknowledg,
				Severity: core.SeverityViolation,
				Message:  fmt.Sprintf("disclosure %q requires a tenant signature but none was recorded", req.Type),
				Evidence: map[string]interface{}{"disclosureType": req.Type},
			})
			res.addFix(core.RecommendedFix{
				Action:      core.FixCollectAcknowledge,
				Description: fmt.Sprintf("Collect a signed acknowledgement for the %q disclosure", req.Type),
				Priority:    core.FixPriorityMedium,
			})
		}
	}

	return res
}
