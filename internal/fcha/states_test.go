package fcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTransition_TableMatchesSpec(t *testing.T) {
	cases := []struct {
		from  State
		to    State
		valid bool
	}{
		{StatePrequalification, StateConditionalOffer, true},
		{StatePrequalification, StateDenied, true},
		{StatePrequalification, StateBackgroundCheckAllowed, false},
		{StateConditionalOffer, StateBackgroundCheckAllowed, true},
		{StateBackgroundCheckAllowed, StateIndividualizedAssessment, true},
		{StateBackgroundCheckAllowed, StateApproved, true},
		{StateIndividualizedAssessment, StateApproved, true},
		{StateIndividualizedAssessment, StateDenied, true},
		{StateApproved, StateDenied, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.valid, IsValidTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StateApproved))
	assert.True(t, IsTerminal(StateDenied))
	assert.True(t, IsTerminal(StateFinalDecision))
	assert.False(t, IsTerminal(StatePrequalification))
}

func TestCheckTypeClassification(t *testing.T) {
	assert.True(t, IsCriminalCheck(CheckCriminalBackground))
	assert.True(t, IsCriminalCheck(CheckArrestRecord))
	assert.False(t, IsCriminalCheck(CheckIncomeVerification))

	assert.True(t, IsPrequalificationCheck(CheckCreditCheck))
	assert.False(t, IsPrequalificationCheck(CheckCriminalHistory))
}

func TestValidSuccessors_UnknownStateHasNone(t *testing.T) {
	assert.Nil(t, ValidSuccessors(State("NOT_A_STATE")))
}
