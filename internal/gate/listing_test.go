package gate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
	"github.com/ocx/compliance/internal/rules"
)

func TestListingPublish_NYCTenantPaidBrokerFeeBlocked(t *testing.T) {
	result, err := ListingPublish(ListingPublishInput{
		MarketID: "nyc",
		FARE: rules.FAREActInput{
			HasBrokerFee:    true,
			BrokerFeePaidBy: marketpack.PaidByTenant,
			MonthlyRent:     3000,
		},
		BrokerFee: rules.BrokerFeeInput{
			HasBrokerFee:    true,
			BrokerFeePaidBy: marketpack.PaidByTenant,
			FeeAmount:       3000,
			MonthlyRent:     3000,
		},
		DeliveredDisclosures: []string{"fare_act_disclosure"},
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	assert.Equal(t, "NYC_STRICT", result.Decision.MarketPack)
	assert.True(t, result.Decision.HasCritical())
	assert.Contains(t, result.BlockedReason, "FARE Act")

	var hasFareCode bool
	for _, v := range result.Decision.Violations {
		if v.Code == core.CodeFareBrokerFeeProhibited {
			hasFareCode = true
		}
	}
	assert.True(t, hasFareCode)
}

func TestListingPublish_TexasIdenticalFeeAllowed(t *testing.T) {
	result, err := ListingPublish(ListingPublishInput{
		MarketID: "texas",
		FARE: rules.FAREActInput{
			HasBrokerFee:    true,
			BrokerFeePaidBy: marketpack.PaidByTenant,
			MonthlyRent:     3000,
		},
		BrokerFee: rules.BrokerFeeInput{
			HasBrokerFee:    true,
			BrokerFeePaidBy: marketpack.PaidByTenant,
			FeeAmount:       3000,
			MonthlyRent:     3000,
		},
		DeliveredDisclosures: []string{"fare_act_disclosure"},
	})
	require.NoError(t, err)

	assert.True(t, result.Allowed)
	assert.Equal(t, "TX_STANDARD", result.Decision.MarketPack)
}

func TestListingPublish_BlockedReasonJoinsCriticalMessages(t *testing.T) {
	result, err := ListingPublish(ListingPublishInput{
		MarketID: "nyc",
		FARE: rules.FAREActInput{
			HasBrokerFee:    true,
			BrokerFeePaidBy: marketpack.PaidByTenant,
			MonthlyRent:     3000,
		},
	})
	require.NoError(t, err)
	require.False(t, result.Allowed)
	assert.True(t, strings.Contains(result.BlockedReason, "FARE Act"))
}
