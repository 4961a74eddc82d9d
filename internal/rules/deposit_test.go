package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestEvaluateSecurityDeposit_ExceedsCap(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateSecurityDeposit(SecurityDepositInput{Amount: 3000, MonthlyRent: 2000}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeSecurityDepositExcessive, res.Violations[0].Code)
	assert.Equal(t, core.SeverityCritical, res.Violations[0].Severity)
	require.Len(t, res.Fixes, 1)
	assert.True(t, res.Fixes[0].AutoFixAvailable)
	assert.Equal(t, core.FixCapSecurityDeposit, res.Fixes[0].AutoFixAction)
}

func TestEvaluateSecurityDeposit_WithinCap(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateSecurityDeposit(SecurityDepositInput{Amount: 2000, MonthlyRent: 2000}, pack)

	assert.Empty(t, res.Violations)
	assert.Empty(t, res.Fixes)
}
