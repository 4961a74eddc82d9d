package fcha

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

var fixedNow = time.Date(2026, time.July, 31, 12, 0, 0, 0, time.UTC)

func TestValidateTransition_InvalidJumpIsBlocked(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateTransition(TransitionRequest{
		ApplicationID: "app-1",
		FromState:     StatePrequalification,
		ToState:       StateBackgroundCheckAllowed,
		Now:           fixedNow,
	}, pack)

	require.False(t, outcome.Allowed)
	require.Len(t, outcome.Violations, 1)
	assert.Equal(t, core.CodeFCHAInvalidStateTransition, outcome.Violations[0].Code)
	assert.ElementsMatch(t, []State{StateConditionalOffer, StateDenied}, outcome.Violations[0].Evidence["validNextStates"])
}

func TestValidateTransition_ConditionalOfferAllowed(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateTransition(TransitionRequest{
		ApplicationID: "app-2",
		FromState:     StatePrequalification,
		ToState:       StateConditionalOffer,
		Now:           fixedNow,
		PrequalificationResults: &PrequalificationResults{
			IncomeVerified:       true,
			CreditChecked:        true,
			RentalHistoryChecked: true,
			EmploymentVerified:   true,
		},
		ConditionalOfferLetter: &ConditionalOfferLetter{
			Delivered:      true,
			DeliveryMethod: core.DeliveryEmail,
		},
	}, pack)

	require.True(t, outcome.Allowed)
	require.NotNil(t, outcome.Evidence)
	require.Len(t, outcome.Evidence.NoticesIssued, 1)
	assert.Equal(t, "conditional_offer_letter", outcome.Evidence.NoticesIssued[0].Type)
	require.NotNil(t, outcome.Record)
	assert.Equal(t, StateConditionalOffer, outcome.Record.CurrentState)
	assert.Equal(t, fixedNow, outcome.Record.ConditionalOfferIssuedAt)
}

func TestValidateTransition_ConditionalOfferMissingPrequalification(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateTransition(TransitionRequest{
		ApplicationID: "app-3",
		FromState:     StatePrequalification,
		ToState:       StateConditionalOffer,
		Now:           fixedNow,
	}, pack)

	require.False(t, outcome.Allowed)
	codes := make([]core.Code, len(outcome.Violations))
	for i, v := range outcome.Violations {
		codes[i] = v.Code
	}
	assert.Contains(t, codes, core.CodeFCHAPrequalificationIncomplete)
	assert.Contains(t, codes, core.CodeFCHANoticeNotIssued)
}

func TestValidateTransition_DeniedFromIndividualizedAssessmentRequiresFactors(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateTransition(TransitionRequest{
		ApplicationID:          "app-4",
		FromState:              StateIndividualizedAssessment,
		ToState:                StateDenied,
		Now:                    fixedNow,
		FinalDecisionRationale: "adverse criminal history within lookback period",
	}, pack)

	require.False(t, outcome.Allowed)
	var found bool
	for _, v := range outcome.Violations {
		if v.Code == core.CodeFCHAIndividualizedAssessmentRequire {
			found = true
		}
	}
	assert.True(t, found)
}

func TestValidateTransition_DisabledFCHAAlwaysAllows(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.TXStandard)
	require.NoError(t, err)
	pack.Rules.FCHA = nil

	outcome := ValidateTransition(TransitionRequest{
		ApplicationID: "app-5",
		FromState:     StatePrequalification,
		ToState:       StateBackgroundCheckAllowed,
		Now:           fixedNow,
	}, pack)

	assert.True(t, outcome.Allowed)
}
