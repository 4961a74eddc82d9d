package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/fcha"
)

func TestFCHAWorkflowTransition_InvalidJumpBlocked(t *testing.T) {
	result, record, err := FCHAWorkflowTransition(FCHAWorkflowTransitionInput{
		MarketID: "nyc",
		Request: fcha.TransitionRequest{
			ApplicationID: "app-1",
			FromState:     fcha.StatePrequalification,
			ToState:       fcha.StateBackgroundCheckAllowed,
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Nil(t, record)

	var found bool
	var validNext interface{}
	for _, v := range result.Decision.Violations {
		if v.Code == core.CodeFCHAInvalidStateTransition {
			found = true
			validNext = v.Evidence["validNextStates"]
		}
	}
	require.True(t, found)
	assert.ElementsMatch(t, []fcha.State{fcha.StateConditionalOffer, fcha.StateDenied}, validNext)
}

func TestFCHAWorkflowTransition_ValidConditionalOfferAllowed(t *testing.T) {
	result, record, err := FCHAWorkflowTransition(FCHAWorkflowTransitionInput{
		MarketID: "nyc",
		Request: fcha.TransitionRequest{
			ApplicationID: "app-2",
			FromState:     fcha.StatePrequalification,
			ToState:       fcha.StateConditionalOffer,
			PrequalificationResults: &fcha.PrequalificationResults{
				IncomeVerified:       true,
				CreditChecked:        true,
				RentalHistoryChecked: true,
				EmploymentVerified:   true,
			},
			ConditionalOfferLetter: &fcha.ConditionalOfferLetter{
				Delivered:      true,
				DeliveryMethod: core.DeliveryEmail,
			},
		},
	})
	require.NoError(t, err)

	assert.True(t, result.Allowed)
	require.NotNil(t, record)
	assert.Equal(t, fcha.StateConditionalOffer, record.CurrentState)
	assert.False(t, record.ConditionalOfferIssuedAt.IsZero())
}

func TestFCHACriminalCheck_InPrequalificationBlocked(t *testing.T) {
	result, err := FCHACriminalCheck(FCHACriminalCheckInput{
		MarketID:     "nyc",
		CurrentState: fcha.StatePrequalification,
		CheckType:    fcha.CheckCriminalBackground,
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	codes := make([]core.Code, len(result.Decision.Violations))
	for i, v := range result.Decision.Violations {
		codes[i] = v.Code
	}
	assert.Contains(t, codes, core.CodeFCHABackgroundCheckNotAllowed)
	assert.Contains(t, codes, core.CodeFCHAConditionalOfferRequired)
}

func TestFCHACriminalCheck_RejectsNonCriminalType(t *testing.T) {
	_, err := FCHACriminalCheck(FCHACriminalCheckInput{
		MarketID:     "nyc",
		CurrentState: fcha.StatePrequalification,
		CheckType:    fcha.CheckIncomeVerification,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFCHAStageTransition_CoarseCheckFlagsInvalidJump(t *testing.T) {
	result, err := FCHAStageTransition(FCHAStageTransitionInput{
		MarketID:  "nyc",
		FromState: fcha.StatePrequalification,
		ToState:   fcha.StateBackgroundCheckAllowed,
	})
	require.NoError(t, err)
	assert.False(t, result.Allowed)
}

func TestFCHAStageTransition_CoarseCheckAllowsValidJump(t *testing.T) {
	result, err := FCHAStageTransition(FCHAStageTransitionInput{
		MarketID:  "nyc",
		FromState: fcha.StatePrequalification,
		ToState:   fcha.StateConditionalOffer,
	})
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}
