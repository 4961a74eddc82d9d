package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestEvaluateRentStabilization_PreferentialExceedsLegal(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateRentStabilization(RentStabilizationInput{
		PreferentialRent:  2200,
		LegalRent:         2000,
		RegisteredWithRGB: true,
	}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeRentStabPreferentialExceedsLegal, res.Violations[0].Code)
}

func TestEvaluateRentStabilization_RegistrationMissing(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateRentStabilization(RentStabilizationInput{
		PreferentialRent:  1800,
		LegalRent:         2000,
		RegisteredWithRGB: false,
	}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeRentStabRegistrationMissing, res.Violations[0].Code)
}

func TestEvaluateRentStabilization_Compliant(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateRentStabilization(RentStabilizationInput{
		PreferentialRent:  1800,
		LegalRent:         2000,
		RegisteredWithRGB: true,
	}, pack)

	assert.Empty(t, res.Violations)
}
