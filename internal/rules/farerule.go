package rules

import (
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// FAREActInput is the typed input to the FARE Act evaluator.
type FAREActInput struct {
	HasBrokerFee                 bool
	BrokerFeePaidBy              marketpack.PaidBy
	MonthlyRent                  float64
	RequiredIncomeMultiplier     float64 // applicant's required annual-income-to-rent multiplier, 0 if not imposed
	RequiredCreditScoreThreshold int     // minimum credit score the landlord requires, 0 if not imposed
	FeeDisclosed                 bool    // whether the tenant-paid fee was disclosed up front
}

// EvaluateFAREAct checks the NYC FARE Act: the party that engaged the
// broker (the landlord, by default) must pay the broker fee, and income /
// credit-score screening thresholds and fee disclosures are capped.
func EvaluateFAREAct(in FAREActInput, pack marketpack.MarketPack) Result {
	var res Result

	rule := pack.Rules.FAREAct
	if rule == nil || !rule.Enabled {
		return res
	}

	if in.HasBrokerFee && in.BrokerFeePaidBy == marketpack.PaidByTenant {
		res.addViolation(core.Violation{
			Code:     core.CodeFareBrokerFeeProhibited,
			Severity: core.SeverityCritical,
			Message:  "FARE Act: the broker fee must be paid by the party that hired the broker (the landlord), not the tenant",
			RuleRef:  "NYC Local Law 52/2024 (FARE Act)",
			Evidence: map[string]interface{}{"brokerFeePaidBy": in.BrokerFeePaidBy},
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixRemoveBrokerFee,
			Description:      "Remove the tenant-paid broker fee or have the landlord pay it directly",
			AutoFixAvailable: true,
			AutoFixAction:    core.FixRemoveBrokerFee,
			Priority:         core.FixPriorityCritical,
		})

		if rule.FeeDisclosureRequired && !in.FeeDisclosed {
			res.addViolation(core.Violation{
				Code:     core.CodeFareFeeDisclosureMissing,
				Severity: core.SeverityViolation,
				Message:  "FARE Act: a tenant-paid fee must be disclosed to the tenant before they are obligated to pay it",
				RuleRef:  "NYC Local Law 52/2024 (FARE Act)",
			})
			res.addFix(core.RecommendedFix{
				Action:           core.FixDeliverDisclosure,
				Description:      "Disclose the broker fee amount and payer to the tenant before collecting it",
				AutoFixAvailable: false,
				Priority:         core.FixPriorityHigh,
			})
		}
	}

	if rule.MaxIncomeMultiplier > 0 && in.RequiredIncomeMultiplier > rule.MaxIncomeMultiplier {
		res.addViolation(core.Violation{
			Code:     core.CodeFareIncomeRequirementExcessive,
			Severity: core.SeverityViolation,
			Message:  fmt.Sprintf("required income multiplier %.1fx exceeds the market maximum of %.1fx", in.RequiredIncomeMultiplier, rule.MaxIncomeMultiplier),
			Evidence: map[string]interface{}{"required": in.RequiredIncomeMultiplier, "max": rule.MaxIncomeMultiplier},
		})
	}

	if rule.MaxCreditScoreThreshold > 0 && in.RequiredCreditScoreThreshold > rule.MaxCreditScoreThreshold {
		res.addViolation(core.Violation{
			Code:     core.CodeFareCreditScoreThresholdExceed,
			Severity: core.SeverityViolation,
			Message:  fmt.Sprintf("required credit score %d exceeds the market maximum of %d", in.RequiredCreditScoreThreshold, rule.MaxCreditScoreThreshold),
			Evidence: map[string]interface{}{"required": in.RequiredCreditScoreThreshold, "max": rule.MaxCreditScoreThreshold},
		})
	}

	return res
}
