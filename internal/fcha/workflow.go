package fcha

import (
	"time"

	"github.com/ocx/compliance/internal/core"
)

// StateHistoryEntry records one occupied interval of the workflow record's
// history.
type StateHistoryEntry struct {
	State        State     `json:"state"`
	EnteredAt    time.Time `json:"enteredAt"`
	ExitedAt     time.Time `json:"exitedAt,omitempty"`
	TransitionID string    `json:"transitionId,omitempty"`
}

// ResponseWindow names an open window during which a party must respond
// (e.g. to dispute adverse background-check information).
type ResponseWindow struct {
	OpensAt     time.Time `json:"opensAt"`
	ClosesAt    time.Time `json:"closesAt"`
	DaysAllowed int       `json:"daysAllowed"`
	Purpose     string    `json:"purpose"`
}

// PrequalificationResults captures the outcome of the four prequalification
// sub-checks. All four must be true before a conditional offer may issue.
type PrequalificationResults struct {
	IncomeVerified       bool `json:"incomeVerified"`
	CreditChecked        bool `json:"creditChecked"`
	RentalHistoryChecked bool `json:"rentalHistoryChecked"`
	EmploymentVerified   bool `json:"employmentVerified"`
}

// Satisfied reports whether every required prequalification sub-check
// passed.
func (p PrequalificationResults) Satisfied() bool {
	return p.IncomeVerified && p.CreditChecked && p.RentalHistoryChecked && p.EmploymentVerified
}

// ConditionalOfferLetter records delivery of the written conditional offer
// required before a background-check authorization may be requested.
type ConditionalOfferLetter struct {
	Delivered      bool                `json:"delivered"`
	DeliveredAt    time.Time           `json:"deliveredAt,omitempty"`
	DeliveryMethod core.DeliveryMethod `json:"deliveryMethod,omitempty"`
	UnitID         string              `json:"unitId,omitempty"`
}

// BackgroundCheckAuthorization records the tenant's signed authorization to
// run a background check.
type BackgroundCheckAuthorization struct {
	AuthorizationSigned bool      `json:"authorizationSigned"`
	SignedAt            time.Time `json:"signedAt,omitempty"`
}

// AdverseInfoNotice records delivery of the pre-adverse-action notice
// required when a background check surfaces adverse information.
type AdverseInfoNotice struct {
	AdverseInfoFound bool      `json:"adverseInfoFound"`
	NoticeDelivered  bool      `json:"noticeDelivered"`
	DeliveredAt      time.Time `json:"deliveredAt,omitempty"`
}

// FinalDecision records the terminal outcome and its rationale.
type FinalDecision struct {
	Result    string `json:"result,omitempty"` // "APPROVED" | "DENIED"
	Rationale string `json:"rationale,omitempty"`
}

// Record is the per-application Fair Chance Housing workflow state. It is
// owned by the caller; the state machine only validates and advances it.
type Record struct {
	ApplicationID string `json:"applicationId"`

	CurrentState State               `json:"currentState"`
	StateHistory []StateHistoryEntry `json:"stateHistory"`

	ConditionalOfferIssuedAt          time.Time `json:"conditionalOfferIssuedAt,omitempty"`
	ConditionalOfferUnitID            string    `json:"conditionalOfferUnitId,omitempty"`
	BackgroundCheckAllowedAt          time.Time `json:"backgroundCheckAllowedAt,omitempty"`
	IndividualizedAssessmentStartedAt time.Time `json:"individualizedAssessmentStartedAt,omitempty"`
	FinalDecisionAt                   time.Time `json:"finalDecisionAt,omitempty"`
	FinalDecisionResult               string    `json:"finalDecisionResult,omitempty"`

	ActiveResponseWindow *ResponseWindow `json:"activeResponseWindow,omitempty"`
}

// NoticeRecord is one notice issued as part of a transition.
type NoticeRecord struct {
	Type           string              `json:"type"`
	IssuedAt       time.Time           `json:"issuedAt"`
	DeliveryMethod core.DeliveryMethod `json:"deliveryMethod"`
	RecipientID    string              `json:"recipientId"`
}

// IndividualizedAssessmentRecord captures the Article 23-A-style factors
// considered before a denial following a background check.
type IndividualizedAssessmentRecord struct {
	FactorsConsidered []string  `json:"factorsConsidered"`
	StartedAt         time.Time `json:"startedAt,omitempty"`
	CompletedAt       time.Time `json:"completedAt,omitempty"`
}

// BackgroundCheckRecord captures a single background-check request's
// classification and the authorization it relied on.
type BackgroundCheckRecord struct {
	CheckType     CheckType                    `json:"checkType"`
	Authorization BackgroundCheckAuthorization `json:"authorization"`
}

// TransitionEvidence is the audit record produced by a successful
// transition. It is a flat, append-only record keyed by a deterministic
// transitionId rather than a hash-chained ledger entry.
type TransitionEvidence struct {
	ApplicationID string         `json:"applicationId"`
	TransitionID  string         `json:"transitionId"`
	FromState     State          `json:"fromState"`
	ToState       State          `json:"toState"`
	Timestamp     time.Time      `json:"timestamp"`
	ActorID       string         `json:"actorId"`
	ActorKind     core.ActorKind `json:"actorKind"`

	NoticesIssued            []NoticeRecord                  `json:"noticesIssued,omitempty"`
	ResponseWindow           *ResponseWindow                 `json:"responseWindow,omitempty"`
	BackgroundCheck          *BackgroundCheckRecord          `json:"backgroundCheck,omitempty"`
	IndividualizedAssessment *IndividualizedAssessmentRecord `json:"individualizedAssessment,omitempty"`
	PrequalificationResults  *PrequalificationResults        `json:"prequalificationResults,omitempty"`
}
