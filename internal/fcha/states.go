// Package fcha implements the Fair Chance Housing workflow state machine:
// a closed set of application states, a constant adjacency table of valid
// transitions, and the per-target preconditions that gate each transition.
// The transition table is a process-wide constant rather than if ladders
// scattered across call sites.
package fcha

// State is a closed enumeration of Fair Chance Housing application stages.
type State string

const (
	StatePrequalification         State = "PREQUALIFICATION"
	StateConditionalOffer         State = "CONDITIONAL_OFFER"
	StateBackgroundCheckAllowed   State = "BACKGROUND_CHECK_ALLOWED"
	StateIndividualizedAssessment State = "INDIVIDUALIZED_ASSESSMENT"
	StateFinalDecision            State = "FINAL_DECISION"
	StateApproved                 State = "APPROVED"
	StateDenied                   State = "DENIED"
)

// validTransitions is the closed adjacency table: every state maps to its
// finite (possibly empty) set of permitted successors. Terminal states map
// to an empty slice. This table is process-wide and never mutated.
var validTransitions = map[State][]State{
	StatePrequalification:         {StateConditionalOffer, StateDenied},
	StateConditionalOffer:         {StateBackgroundCheckAllowed, StateDenied},
	StateBackgroundCheckAllowed:   {StateIndividualizedAssessment, StateApproved, StateDenied},
	StateIndividualizedAssessment: {StateApproved, StateDenied},
	StateFinalDecision:            {},
	StateApproved:                 {},
	StateDenied:                   {},
}

// ValidSuccessors returns the permitted next states for from, in table
// declaration order. A state absent from the table has no successors.
func ValidSuccessors(from State) []State {
	next, ok := validTransitions[from]
	if !ok {
		return nil
	}
	out := make([]State, len(next))
	copy(out, next)
	return out
}

// IsValidTransition reports whether to is a permitted successor of from.
func IsValidTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a state has no permitted successors.
func IsTerminal(s State) bool {
	return len(validTransitions[s]) == 0
}

// CheckType names a background-check request category.
type CheckType string

const (
	CheckCriminalBackground CheckType = "criminal_background_check"
	CheckCriminalHistory    CheckType = "criminal_history"
	CheckArrestRecord       CheckType = "arrest_record"
	CheckConvictionRecord   CheckType = "conviction_record"

	CheckIncomeVerification     CheckType = "income_verification"
	CheckEmploymentVerification CheckType = "employment_verification"
	CheckCreditCheck            CheckType = "credit_check"
	CheckRentalHistory          CheckType = "rental_history"
	CheckEvictionHistory        CheckType = "eviction_history"
	CheckIdentityVerification   CheckType = "identity_verification"
)

// criminalChecks is the closed set of check types that count as criminal
// background inquiries - the set the workflow forbids before a conditional
// offer.
var criminalChecks = map[CheckType]bool{
	CheckCriminalBackground: true,
	CheckCriminalHistory:    true,
	CheckArrestRecord:       true,
	CheckConvictionRecord:   true,
}

// prequalificationChecks is the closed set of check types permitted during
// prequalification, before any criminal inquiry may occur.
var prequalificationChecks = map[CheckType]bool{
	CheckIncomeVerification:     true,
	CheckEmploymentVerification: true,
	CheckCreditCheck:            true,
	CheckRentalHistory:          true,
	CheckEvictionHistory:        true,
	CheckIdentityVerification:   true,
}

// IsCriminalCheck reports whether a check type counts as a criminal
// background inquiry.
func IsCriminalCheck(t CheckType) bool {
	return criminalChecks[t]
}

// IsPrequalificationCheck reports whether a check type is permitted during
// prequalification.
func IsPrequalificationCheck(t CheckType) bool {
	return prequalificationChecks[t]
}
