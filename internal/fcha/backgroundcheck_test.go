package fcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestValidateBackgroundCheck_CriminalCheckBeforeOfferBlocked(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateBackgroundCheck(BackgroundCheckRequest{
		CurrentState: StatePrequalification,
		CheckType:    CheckCriminalBackground,
	}, pack)

	require.False(t, outcome.Allowed)
	codes := make([]core.Code, len(outcome.Violations))
	for i, v := range outcome.Violations {
		codes[i] = v.Code
	}
	assert.Contains(t, codes, core.CodeFCHABackgroundCheckNotAllowed)
	assert.Contains(t, codes, core.CodeFCHAConditionalOfferRequired)
}

func TestValidateBackgroundCheck_CriminalCheckAfterOfferAllowed(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateBackgroundCheck(BackgroundCheckRequest{
		CurrentState: StateBackgroundCheckAllowed,
		CheckType:    CheckCriminalBackground,
	}, pack)

	assert.True(t, outcome.Allowed)
	assert.Empty(t, outcome.Violations)
}

func TestValidateBackgroundCheck_PrequalificationAlwaysAllowed(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateBackgroundCheck(BackgroundCheckRequest{
		CurrentState: StatePrequalification,
		CheckType:    CheckIncomeVerification,
	}, pack)

	assert.True(t, outcome.Allowed)
}

func TestValidateBackgroundCheck_UnknownTypePassesWithWarning(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	outcome := ValidateBackgroundCheck(BackgroundCheckRequest{
		CurrentState: StatePrequalification,
		CheckType:    CheckType("social_media_scan"),
	}, pack)

	assert.True(t, outcome.Allowed)
	require.Len(t, outcome.Violations, 1)
	assert.Equal(t, core.SeverityWarning, outcome.Violations[0].Severity)
}
