package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestEvaluateFAREAct_TenantPaidFeeUndisclosed(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateFAREAct(FAREActInput{
		HasBrokerFee:    true,
		BrokerFeePaidBy: marketpack.PaidByTenant,
		MonthlyRent:     2000,
	}, pack)

	codes := violationCodes(res)
	assert.Contains(t, codes, core.CodeFareBrokerFeeProhibited)
	assert.Contains(t, codes, core.CodeFareFeeDisclosureMissing)
}

func TestEvaluateFAREAct_TenantPaidFeeDisclosed(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateFAREAct(FAREActInput{
		HasBrokerFee:    true,
		BrokerFeePaidBy: marketpack.PaidByTenant,
		MonthlyRent:     2000,
		FeeDisclosed:    true,
	}, pack)

	codes := violationCodes(res)
	assert.Contains(t, codes, core.CodeFareBrokerFeeProhibited)
	assert.NotContains(t, codes, core.CodeFareFeeDisclosureMissing)
}

func TestEvaluateFAREAct_IncomeAndCreditThresholdsExceeded(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateFAREAct(FAREActInput{
		RequiredIncomeMultiplier:     45,
		RequiredCreditScoreThreshold: 750,
	}, pack)

	codes := violationCodes(res)
	assert.Contains(t, codes, core.CodeFareIncomeRequirementExcessive)
	assert.Contains(t, codes, core.CodeFareCreditScoreThresholdExceed)
}

func TestEvaluateFAREAct_CompliantBrokerFee(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateFAREAct(FAREActInput{
		HasBrokerFee:    true,
		BrokerFeePaidBy: marketpack.PaidByLandlord,
		MonthlyRent:     2000,
	}, pack)

	assert.Empty(t, res.Violations)
}
