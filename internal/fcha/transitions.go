package fcha

import (
	"fmt"
	"time"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

const defaultMitigatingFactorsResponseDays = 10

// TransitionRequest is the typed input to ValidateTransition.
type TransitionRequest struct {
	ApplicationID string
	FromState     State
	ToState       State
	ActorID       string
	ActorKind     core.ActorKind
	Now           time.Time

	PrequalificationResults         *PrequalificationResults
	ConditionalOfferLetter          *ConditionalOfferLetter
	BackgroundCheckAuth             *BackgroundCheckAuthorization
	AdverseInfoNotice               *AdverseInfoNotice
	IndividualizedAssessmentFactors []string
	FinalDecisionRationale          string
}

// TransitionOutcome is the result of validating (and, if allowed, applying)
// a requested state transition.
type TransitionOutcome struct {
	Allowed    bool
	Violations []core.Violation
	Evidence   *TransitionEvidence
	Record     *Record
}

// ValidateTransition checks a requested Fair Chance Housing state
// transition against the closed adjacency table and the per-target
// preconditions, then - if allowed - produces the transition's evidence
// and the workflow record reflecting the new state.
func ValidateTransition(req TransitionRequest, pack marketpack.MarketPack) TransitionOutcome {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	rule := pack.Rules.FCHA
	if rule == nil || !rule.Enabled {
		return TransitionOutcome{Allowed: true, Record: advancedRecord(req, now, nil)}
	}

	var violations []core.Violation

	if !IsValidTransition(req.FromState, req.ToState) {
		violations = append(violations, core.Violation{
			Code:     core.CodeFCHAInvalidStateTransition,
			Severity: core.SeverityCritical,
			Message:  fmt.Sprintf("transition from %s to %s is not permitted", req.FromState, req.ToState),
			Evidence: map[string]interface{}{"validNextStates": ValidSuccessors(req.FromState)},
		})
		return TransitionOutcome{Allowed: false, Violations: violations}
	}

	switch req.ToState {
	case StateConditionalOffer:
		if req.PrequalificationResults == nil || !req.PrequalificationResults.Satisfied() {
			violations = append(violations, core.Violation{
				Code:     core.CodeFCHAPrequalificationIncomplete,
				Severity: core.SeverityCritical,
				Message:  "all four prequalification checks (income, credit, rental history, employment) must pass before a conditional offer",
			})
		}
		if req.ConditionalOfferLetter == nil || !req.ConditionalOfferLetter.Delivered {
			violations = append(violations, core.Violation{
				Code:     core.CodeFCHANoticeNotIssued,
				Severity: core.SeverityCritical,
				Message:  "the conditional offer letter must be marked delivered",
			})
		}

	case StateBackgroundCheckAllowed:
		if req.BackgroundCheckAuth == nil || !req.BackgroundCheckAuth.AuthorizationSigned {
			violations = append(violations, core.Violation{
				Code:     core.CodeFCHANoticeNotIssued,
				Severity: core.SeverityCritical,
				Message:  "a signed background-check authorization is required",
			})
		}

	case StateIndividualizedAssessment:
		if req.AdverseInfoNotice != nil && req.AdverseInfoNotice.AdverseInfoFound && !req.AdverseInfoNotice.NoticeDelivered {
			violations = append(violations, core.Violation{
				Code:     core.CodeFCHANoticeNotIssued,
				Severity: core.SeverityCritical,
				Message:  "adverse background-check information was found but the pre-adverse-action notice was not delivered",
			})
		}
	}

	if req.ToState == StateDenied && req.FromState == StateIndividualizedAssessment && len(req.IndividualizedAssessmentFactors) == 0 {
		violations = append(violations, core.Violation{
			Code:     core.CodeFCHAIndividualizedAssessmentRequire,
			Severity: core.SeverityCritical,
			Message:  "denial following an individualized assessment requires documented Article 23-A-style factors",
		})
	}

	if req.ToState == StateApproved || req.ToState == StateDenied {
		if req.FinalDecisionRationale == "" {
			violations = append(violations, core.Violation{
				Code:     core.CodeFCHANoticeNotIssued,
				Severity: core.SeverityCritical,
				Message:  "a final decision requires a recorded rationale",
			})
		}
	}

	if hasCritical(violations) {
		return TransitionOutcome{Allowed: false, Violations: violations}
	}

	evidence := buildEvidence(req, now, rule)
	return TransitionOutcome{
		Allowed:    true,
		Violations: violations,
		Evidence:   evidence,
		Record:     advancedRecord(req, now, evidence),
	}
}

func hasCritical(violations []core.Violation) bool {
	for _, v := range violations {
		if v.Severity == core.SeverityCritical {
			return true
		}
	}
	return false
}

// transitionID produces the deterministic evidence id:
// fcha_<applicationId>_<timestamp>.
func transitionID(applicationID string, now time.Time) string {
	return fmt.Sprintf("fcha_%s_%d", applicationID, now.Unix())
}

func buildEvidence(req TransitionRequest, now time.Time, rule *marketpack.FCHARules) *TransitionEvidence {
	evidence := &TransitionEvidence{
		ApplicationID: req.ApplicationID,
		TransitionID:  transitionID(req.ApplicationID, now),
		FromState:     req.FromState,
		ToState:       req.ToState,
		Timestamp:     now,
		ActorID:       req.ActorID,
		ActorKind:     req.ActorKind,
	}

	if req.ToState == StateConditionalOffer && req.ConditionalOfferLetter != nil && req.ConditionalOfferLetter.Delivered {
		evidence.NoticesIssued = append(evidence.NoticesIssued, NoticeRecord{
			Type:           "conditional_offer_letter",
			IssuedAt:       now,
			DeliveryMethod: req.ConditionalOfferLetter.DeliveryMethod,
			RecipientID:    req.ApplicationID,
		})
		evidence.PrequalificationResults = req.PrequalificationResults
	}

	if req.ToState == StateIndividualizedAssessment {
		days := defaultMitigatingFactorsResponseDays
		if rule != nil && rule.Workflow.MitigatingFactorsResponseDays > 0 {
			days = rule.Workflow.MitigatingFactorsResponseDays
		}
		evidence.ResponseWindow = &ResponseWindow{
			OpensAt:     now,
			ClosesAt:    now.AddDate(0, 0, days),
			DaysAllowed: days,
			Purpose:     "mitigating_factors_response",
		}
		evidence.IndividualizedAssessment = &IndividualizedAssessmentRecord{StartedAt: now}
	}

	if req.ToState == StateDenied && len(req.IndividualizedAssessmentFactors) > 0 {
		evidence.IndividualizedAssessment = &IndividualizedAssessmentRecord{
			FactorsConsidered: req.IndividualizedAssessmentFactors,
			CompletedAt:       now,
		}
	}

	return evidence
}

func advancedRecord(req TransitionRequest, now time.Time, evidence *TransitionEvidence) *Record {
	transitionID := ""
	if evidence != nil {
		transitionID = evidence.TransitionID
	}

	rec := &Record{
		ApplicationID: req.ApplicationID,
		CurrentState:  req.ToState,
		StateHistory: []StateHistoryEntry{
			{State: req.FromState, ExitedAt: now, TransitionID: transitionID},
			{State: req.ToState, EnteredAt: now},
		},
	}

	switch req.ToState {
	case StateConditionalOffer:
		rec.ConditionalOfferIssuedAt = now
		if req.ConditionalOfferLetter != nil {
			rec.ConditionalOfferUnitID = req.ConditionalOfferLetter.UnitID
		}
	case StateBackgroundCheckAllowed:
		rec.BackgroundCheckAllowedAt = now
	case StateIndividualizedAssessment:
		rec.IndividualizedAssessmentStartedAt = now
		if evidence != nil {
			rec.ActiveResponseWindow = evidence.ResponseWindow
		}
	case StateApproved, StateDenied:
		rec.FinalDecisionAt = now
		rec.FinalDecisionResult = string(req.ToState)
	}

	return rec
}
