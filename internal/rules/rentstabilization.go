package rules

import (
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// RentStabilizationInput is the typed input to the rent-stabilization
// evaluator.
type RentStabilizationInput struct {
	PreferentialRent  float64
	LegalRent         float64
	RegisteredWithRGB bool
}

// EvaluateRentStabilization checks a rent-stabilized unit's preferential
// rent against its legal rent, and confirms RGB registration.
func EvaluateRentStabilization(in RentStabilizationInput, pack marketpack.MarketPack) Result {
	var res Result

	rule := pack.Rules.RentStabilization
	if rule == nil || !rule.Enabled {
		return res
	}

	if in.PreferentialRent > 0 && in.LegalRent > 0 && in.PreferentialRent > in.LegalRent {
		res.addViolation(core.Violation{
			Code:     core.CodeRentStabPreferentialExceedsLegal,
			Severity: core.SeverityCritical,
			Message:  fmt.Sprintf("preferential rent %.2f exceeds the legal regulated rent %.2f", in.PreferentialRent, in.LegalRent),
			Evidence: map[string]interface{}{"preferentialRent": in.PreferentialRent, "legalRent": in.LegalRent},
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixCapPreferentialRent,
			Description:      fmt.Sprintf("Cap the preferential rent at the legal regulated rent of %.2f", in.LegalRent),
			AutoFixAvailable: true,
			AutoFixAction:    core.FixCapPreferentialRent,
			Priority:         core.FixPriorityCritical,
		})
	}

	if rule.RegistrationRequired && !in.RegisteredWithRGB {
		res.addViolation(core.Violation{
			Code:     core.CodeRentStabRegistrationMissing,
			Severity: core.SeverityViolation,
			Message:  "unit is not registered with the Rent Guidelines Board",
		})
		res.addFix(core.RecommendedFix{
			Action:      core.FixRegisterWithRGB,
			Description: "Register the unit with the Rent Guidelines Board",
			Priority:    core.FixPriorityHigh,
		})
	}

	return res
}
