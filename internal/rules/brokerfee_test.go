package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestEvaluateBrokerFee_TenantPaidWhereLandlordRequired(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateBrokerFee(BrokerFeeInput{
		HasBrokerFee:    true,
		BrokerFeePaidBy: marketpack.PaidByTenant,
		FeeAmount:       2000,
		MonthlyRent:     2000,
	}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeBrokerFeeProhibited, res.Violations[0].Code)
	assert.Equal(t, core.SeverityCritical, res.Violations[0].Severity)
}

func TestEvaluateBrokerFee_ProhibitedMarket(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.UKGDPR)
	require.NoError(t, err)

	res := EvaluateBrokerFee(BrokerFeeInput{
		HasBrokerFee: true,
		FeeAmount:    300,
	}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeBrokerFeeProhibited, res.Violations[0].Code)
}

func TestEvaluateBrokerFee_ExcessiveAmount(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateBrokerFee(BrokerFeeInput{
		HasBrokerFee:    true,
		BrokerFeePaidBy: marketpack.PaidByLandlord,
		FeeAmount:       2500,
		MonthlyRent:     2000,
	}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeBrokerFeeExcessive, res.Violations[0].Code)
	assert.Equal(t, core.SeverityViolation, res.Violations[0].Severity)
}

func TestEvaluateBrokerFee_NoFeeIsNoop(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateBrokerFee(BrokerFeeInput{HasBrokerFee: false}, pack)

	assert.Empty(t, res.Violations)
}
