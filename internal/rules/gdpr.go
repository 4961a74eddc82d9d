package rules

import (
	"fmt"
	"time"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// GDPRInput is the typed input to the GDPR data-protection evaluator.
type GDPRInput struct {
	ConsentObtained        bool
	LawfulBasisRecorded    bool
	DataCollectedAt        time.Time
	DataSubjectRequestedAt time.Time // zero value when no request is pending
	DataSubjectResolved    bool
	PresentFields          []string
	RedactedFields         []string
	Now                    time.Time
}

// EvaluateGDPR checks a data operation against the pack's GDPR sub-rules.
// The evaluator is a no-op outside GDPR-enabled markets.
func EvaluateGDPR(in GDPRInput, pack marketpack.MarketPack) Result {
	var res Result

	rule := pack.Rules.GDPR
	if rule == nil || !rule.Enabled {
		return res
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	if rule.ConsentRequired && !in.ConsentObtained {
		res.addViolation(core.Violation{
			Code:     core.CodeGDPRConsentMissing,
			Severity: core.SeverityCritical,
			Message:  "GDPR: processing this data requires recorded tenant consent",
		})
		res.addFix(core.RecommendedFix{
			Action:           core.FixCollectConsent,
			Description:      "Collect and record GDPR consent before processing",
			AutoFixAvailable: false,
			Priority:         core.FixPriorityCritical,
		})
	}

	if rule.LawfulBasisRequired && !in.LawfulBasisRecorded {
		res.addViolation(core.Violation{
			Code:     core.CodeGDPRLawfulBasisMissing,
			Severity: core.SeverityCritical,
			Message:  "GDPR: processing this data requires a recorded lawful basis",
		})
		res.addFix(core.RecommendedFix{
			Action:      core.FixRecordLawfulBasis,
			Description: "Record the lawful basis relied upon for this processing",
			Priority:    core.FixPriorityCritical,
		})
	}

	if rule.RetentionDays > 0 && !in.DataCollectedAt.IsZero() {
		age := now.Sub(in.DataCollectedAt)
		if age > time.Duration(rule.RetentionDays)*24*time.Hour {
			res.addViolation(core.Violation{
				Code:     core.CodeGDPRDataRetentionExceeded,
				Severity: core.SeverityViolation,
				Message:  fmt.Sprintf("data has been retained for %d days, exceeding the %d-day retention limit", int(age.Hours()/24), rule.RetentionDays),
				Evidence: map[string]interface{}{"ageDays": int(age.Hours() / 24), "retentionDays": rule.RetentionDays},
			})
			res.addFix(core.RecommendedFix{
				Action:      core.FixPurgeExpiredData,
				Description: "Purge data that has exceeded the configured retention period",
				Priority:    core.FixPriorityHigh,
			})
		}
	}

	if rule.DataSubjectRequestDays > 0 && !in.DataSubjectRequestedAt.IsZero() && !in.DataSubjectResolved {
		age := now.Sub(in.DataSubjectRequestedAt)
		if age > time.Duration(rule.DataSubjectRequestDays)*24*time.Hour {
			res.addViolation(core.Violation{
				Code:     core.CodeGDPRDataSubjectRequestOverdu,
				Severity: core.SeverityCritical,
				Message:  fmt.Sprintf("a data-subject request has been unresolved for %d days, exceeding the %d-day response window", int(age.Hours()/24), rule.DataSubjectRequestDays),
				Evidence: map[string]interface{}{"ageDays": int(age.Hours() / 24), "responseWindowDays": rule.DataSubjectRequestDays},
			})
			res.addFix(core.RecommendedFix{
				Action:      core.FixResolveDSR,
				Description: "Resolve the outstanding data-subject request",
				Priority:    core.FixPriorityCritical,
			})
		}
	}

	for _, field := range rule.SensitiveFields {
		if contains(in.PresentFields, field) && !contains(in.RedactedFields, field) {
			res.addViolation(core.Violation{
				Code:     core.CodeGDPRRedactionRequired,
				Severity: core.SeverityViolation,
				Message:  fmt.Sprintf("sensitive field %q is present unredacted", field),
				Evidence: map[string]interface{}{"field": field},
			})
			res.addFix(core.RecommendedFix{
				Action:           core.FixRedactSensitiveField,
				Description:      fmt.Sprintf("Redact the %q field before storing or transmitting this record", field),
				AutoFixAvailable: true,
				AutoFixAction:    core.FixRedactSensitiveField,
				Priority:         core.FixPriorityMedium,
			})
		}
	}

	return res
}
