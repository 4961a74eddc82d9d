package rules

import (
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// SecurityDepositInput is the typed input to the security-deposit evaluator.
type SecurityDepositInput struct {
	Amount      float64
	MonthlyRent float64
}

// EvaluateSecurityDeposit checks a deposit amount against the market's
// months-of-rent cap. Exceeding the cap is critical and auto-fixable to
// the cap.
func EvaluateSecurityDeposit(in SecurityDepositInput, pack marketpack.MarketPack) Result {
	var res Result

	rule := pack.Rules.SecurityDeposit
	if !rule.Enabled || in.MonthlyRent <= 0 {
		return res
	}

	max := rule.MaxMonths * in.MonthlyRent
	if in.Amount > max {
		res.addViolation(core.Violation{
			Code:     core.CodeSecurityDepositExcessive,
			Severity: core.SeverityCritical,
			Message:  fmt.Sprintf("security deposit %.2f exceeds the cap of %.2f (%.1f months' rent)", in.Amount, max, rule.MaxMonths),
			Evidence: map[string]interface{}{"amount": in.Amount, "cap": max, "maxMonths": rule.MaxMonths},
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixCapSecurityDeposit,
			Description:      fmt.Sprintf("Reduce the security deposit to at most %.2f", max),
			AutoFixAvailable: true,
			AutoFixAction:    core.FixCapSecurityDeposit,
			Priority:         core.FixPriorityCritical,
		})
	}

	return res
}
