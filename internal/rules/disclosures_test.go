package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

func TestEvaluateDisclosures_MissingDelivery(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateDisclosures(DisclosuresInput{Phase: core.PhaseListingPublish}, pack)

	require.Len(t, res.Violations, 1)
	assert.Equal(t, core.CodeDisclosureNotDelivered, res.Violations[0].Code)
}

func TestEvaluateDisclosures_DeliveredButUnacknowledged(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateDisclosures(DisclosuresInput{
		Phase:                core.PhaseLeaseSigning,
		DeliveredDisclosures: []string{"lead_paint_disclosure", "bedbug_history_disclosure"},
	}, pack)

	require.Len(t, res.Violations, 2)
	for _, v := range res.Violations {
		assert.Equal(t, core.CodeDisclosureNotAcknowledg, v.Code)
		assert.Equal(t, core.SeverityViolation, v.Severity)
	}
}

func TestEvaluateDisclosures_AllSatisfied(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateDisclosures(DisclosuresInput{
		Phase:                   core.PhaseLeaseSigning,
		DeliveredDisclosures:    []string{"lead_paint_disclosure", "bedbug_history_disclosure"},
		AcknowledgedDisclosures: []string{"lead_paint_disclosure", "bedbug_history_disclosure"},
	}, pack)

	assert.Empty(t, res.Violations)
}

func TestEvaluateDisclosures_IgnoresOtherPhases(t *testing.T) {
	pack, err := marketpack.GetMarketPack(marketpack.NYCStrict)
	require.NoError(t, err)

	res := EvaluateDisclosures(DisclosuresInput{Phase: core.PhaseApplication}, pack)

	assert.Empty(t, res.Violations)
}
