package gate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/cpi"
	"github.com/ocx/compliance/internal/rules"
)

func TestRentIncrease_NYC25PercentBlocked(t *testing.T) {
	result, err := RentIncrease(context.Background(), RentIncreaseInput{
		MarketID: "nyc",
		GoodCause: rules.GoodCauseInput{
			Region:       "nyc",
			CurrentRent:  2000,
			ProposedRent: 2500,
			NoticeDays:   30,
		},
	}, &cpi.FallbackProvider{})
	require.NoError(t, err)

	assert.False(t, result.Allowed)

	var codes []core.Code
	for _, v := range result.Decision.Violations {
		codes = append(codes, v.Code)
	}
	assert.Contains(t, codes, core.CodeGoodCauseRentIncreaseExcessive)
	assert.Contains(t, codes, core.CodeGoodCauseCPIFallbackUsed)
}

func TestRentIncrease_WithinCapAllowed(t *testing.T) {
	result, err := RentIncrease(context.Background(), RentIncreaseInput{
		MarketID: "nyc",
		GoodCause: rules.GoodCauseInput{
			Region:       "nyc",
			CurrentRent:  2000,
			ProposedRent: 2050,
			NoticeDays:   90,
		},
	}, &cpi.FallbackProvider{})
	require.NoError(t, err)

	assert.True(t, result.Allowed)
}
