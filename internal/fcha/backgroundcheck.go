package fcha

import (
	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// BackgroundCheckRequest is the typed input to ValidateBackgroundCheck.
type BackgroundCheckRequest struct {
	CurrentState State
	CheckType    CheckType
}

// BackgroundCheckOutcome is the result of validating a background-check
// request against the Fair Chance Housing workflow state.
type BackgroundCheckOutcome struct {
	Allowed    bool
	Violations []core.Violation
}

// checkAllowedStates is the closed set of states from which a criminal
// background inquiry may be requested.
var checkAllowedStates = map[State]bool{
	StateBackgroundCheckAllowed:   true,
	StateIndividualizedAssessment: true,
}

// ValidateBackgroundCheck enforces that no criminal background inquiry
// occurs before a written conditional offer. Requests
// for prequalification checks are always permitted; unknown check types
// pass through with a warning rather than blocking.
func ValidateBackgroundCheck(req BackgroundCheckRequest, pack marketpack.MarketPack) BackgroundCheckOutcome {
	rule := pack.Rules.FCHA
	if rule == nil || !rule.Enabled {
		return BackgroundCheckOutcome{Allowed: true}
	}

	if IsPrequalificationCheck(req.CheckType) {
		return BackgroundCheckOutcome{Allowed: true}
	}

	if IsCriminalCheck(req.CheckType) {
		if checkAllowedStates[req.CurrentState] {
			return BackgroundCheckOutcome{Allowed: true}
		}

		violations := []core.Violation{
			{
				Code:     core.CodeFCHABackgroundCheckNotAllowed,
				Severity: core.SeverityCritical,
				Message:  "a criminal background check may not be requested before a conditional offer has been extended",
				Evidence: map[string]interface{}{"currentState": req.CurrentState, "checkType": req.CheckType},
			},
			{
				Code:     core.CodeFCHAConditionalOfferRequired,
				Severity: core.SeverityCritical,
				Message:  "issue a written conditional offer and advance to BACKGROUND_CHECK_ALLOWED before requesting this check",
				Evidence: map[string]interface{}{
					"remediationSteps": []string{
						"complete prequalification screening",
						"issue a conditional offer letter",
						"obtain a signed background-check authorization",
						"advance the application to BACKGROUND_CHECK_ALLOWED",
					},
				},
			},
		}
		return BackgroundCheckOutcome{Allowed: false, Violations: violations}
	}

	return BackgroundCheckOutcome{
		Allowed: true,
		Violations: []core.Violation{
			{
				Code:     core.CodeFCHABackgroundCheckNotAllowed,
				Severity: core.SeverityWarning,
				Message:  "unrecognized check type; allowing with a warning",
				Evidence: map[string]interface{}{"checkType": req.CheckType},
			},
		},
	}
}
