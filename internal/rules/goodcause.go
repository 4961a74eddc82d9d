package rules

import (
	"context"
	"fmt"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/cpi"
	"github.com/ocx/compliance/internal/marketpack"
)

// GoodCauseInput is the typed input to the good-cause rent-increase
// evaluator.
type GoodCauseInput struct {
	Region         string
	CurrentRent    float64
	ProposedRent   float64
	NoticeDays     int
	EvictionReason string // empty when the action is not an eviction
}

// EvaluateGoodCause is the one evaluator permitted to perform I/O:
// it consults the injected cpi.Provider for the annual
// change, then applies the pack's good-cause thresholds.
func EvaluateGoodCause(ctx context.Context, in GoodCauseInput, pack marketpack.MarketPack, provider cpi.Provider) (Result, error) {
	var res Result

	rule := pack.Rules.GoodCause
	if rule == nil || !rule.Enabled || provider == nil {
		return res, nil
	}

	reading, err := provider.GetAnnualCPIChange(ctx, in.Region)
	if err != nil {
		return res, err
	}

	if reading.IsFallback {
		res.addViolation(core.Violation{
			Code:     core.CodeGoodCauseCPIFallbackUsed,
			Severity: core.SeverityInfo,
			Message:  "CPI provider unavailable; a conservative fallback value was used",
			Evidence: map[string]interface{}{"region": in.Region, "cpiPercentage": reading.Percentage},
		})
	}

	if in.CurrentRent > 0 {
		maxPercent := reading.Percentage + rule.MaxRentIncreaseOverCPI
		actual := (in.ProposedRent - in.CurrentRent) / in.CurrentRent * 100
		if actual > maxPercent {
			res.addViolation(core.Violation{
				Code:     core.CodeGoodCauseRentIncreaseExcessive,
				Severity: core.SeverityCritical,
				Message:  fmt.Sprintf("rent increase of %.2f%% exceeds the good-cause cap of %.2f%% (CPI %.2f%% + %.2f%%)", actual, maxPercent, reading.Percentage, rule.MaxRentIncreaseOverCPI),
				Evidence: map[string]interface{}{"actualPercentage": actual, "maxPercentage": maxPercent, "cpiPercentage": reading.Percentage},
			})
			res.addFix(core.RecommendedFix{
				Action:           core.FixCapRentIncrease,
				Description:      fmt.Sprintf("Cap the rent increase at %.2f%%", maxPercent),
				AutoFixAvailable: true,
				AutoFixAction:    core.FixCapRentIncrease,
				Priority:         core.FixPriorityCritical,
			})
		}
	}

	if pack.Rules.RentIncrease.NoticeRequired && in.NoticeDays < pack.Rules.RentIncrease.NoticeDays {
		res.addViolation(core.Violation{
			Code:     core.CodeGoodCauseNoticePeriodInsufficent,
			Severity: core.SeverityViolation,
			Message:  fmt.Sprintf("notice period of %d days is below the required %d days", in.NoticeDays, pack.Rules.RentIncrease.NoticeDays),
			Evidence: map[string]interface{}{"noticeDays": in.NoticeDays, "requiredDays": pack.Rules.RentIncrease.NoticeDays},
		})
		res.addFix(core.RecommendedFix{
			Action:      core.FixExtendNoticePeriod,
			Description: fmt.Sprintf("Extend the notice period to at least %d days", pack.Rules.RentIncrease.NoticeDays),
			Priority:    core.FixPriorityHigh,
		})
	}

	if in.EvictionReason != "" && !contains(rule.ValidEvictionReasons, in.EvictionReason) {
		res.addViolation(core.Violation{
			Code:     core.CodeGoodCauseEvictionInvalidReason,
			Severity: core.SeverityCritical,
			Message:  fmt.Sprintf("eviction reason %q is not a valid good-cause reason in this market", in.EvictionReason),
			Evidence: map[string]interface{}{"evictionReason": in.EvictionReason, "validReasons": rule.ValidEvictionReasons},
		})
		res.addFix(core.RecommendedFix{
			Action:      core.FixUseValidEvictionRsn,
			Description: "Select a valid good-cause eviction reason",
			Priority:    core.FixPriorityCritical,
		})
	}

	return res, nil
}
