package rules

import (
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// BrokerFeeInput is the typed input to the generic broker-fee evaluator.
// Unlike FAREActInput, this evaluator applies in every market that declares
// brokerFee rules, not only NYC.
type BrokerFeeInput struct {
	HasBrokerFee    bool
	BrokerFeePaidBy marketpack.PaidBy
	FeeAmount       float64
	MonthlyRent     float64
}

// EvaluateBrokerFee checks a broker fee against the market's paidBy policy
// and multiplier cap.
func EvaluateBrokerFee(in BrokerFeeInput, pack marketpack.MarketPack) Result {
	var res Result

	rule := pack.Rules.BrokerFee
	if !rule.Enabled || !in.HasBrokerFee {
		return res
	}

	if rule.PaidBy == marketpack.PaidByLandlord && in.BrokerFeePaidBy == marketpack.PaidByTenant {
		res.addViolation(core.Violation{
			Code:     core.CodeBrokerFeeProhibited,
			Severity: core.SeverityCritical,
			Message:  "broker fee must be paid by the landlord in this market",
			Evidence: map[string]interface{}{"brokerFeePaidBy": in.BrokerFeePaidBy},
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixRemoveBrokerFee,
			Description:      "Remove the tenant-paid broker fee",
			AutoFixAvailable: true,
			AutoFixAction:    core.FixRemoveBrokerFee,
			Priority:         core.FixPriorityCritical,
		})
	}

	if rule.PaidBy == marketpack.PaidByProhibited && in.FeeAmount > 0 {
		res.addViolation(core.Violation{
			Code:     core.CodeBrokerFeeProhibited,
			Severity: core.SeverityCritical,
			Message:  "broker fees are prohibited in this market",
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixRemoveBrokerFee,
			Description:      "Remove the broker fee entirely",
			AutoFixAvailable: true,
			AutoFixAction:    core.FixRemoveBrokerFee,
			Priority:         core.FixPriorityCritical,
		})
	}

	if rule.MaxMultiplier > 0 && in.MonthlyRent > 0 {
		max := rule.MaxMultiplier * in.MonthlyRent
		if in.FeeAmount > max {
			res.addViolation(core.Violation{
				Code:     core.CodeBrokerFeeExcessive,
				Severity: core.SeverityViolation,
				Message:  fmt.Sprintf("broker fee %.2f exceeds the cap of %.2f (%.1fx monthly rent)", in.FeeAmount, max, rule.MaxMultiplier),
				Evidence: map[string]interface{}{"feeAmount": in.FeeAmount, "cap": max},
			})
			res.addFix(core.RecommendedFix{
				Action:           core.FixCapBrokerFee,
				Description:      fmt.Sprintf("Reduce the broker fee to at most %.2f", max),
				AutoFixAvailable: true,
				AutoFixAction:    core.FixCapBrokerFee,
				Priority:         core.FixPriorityHigh,
			})
		}
	}

	return res
}
