package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ocx/compliance/internal/audit"
	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/gate"
	"github.com/ocx/compliance/internal/marketpack"
	"github.com/ocx/compliance/internal/rules"
)

func TestGetEffectiveMarketPack_UnknownMarketFallsBackToUSStandard(t *testing.T) {
	e := New()
	pack, err := e.GetEffectiveMarketPack(context.Background(), "atlantis")
	require.NoError(t, err)
	assert.Equal(t, marketpack.USStandard, pack.ID)
}

func TestGetEffectiveMarketPack_CachesAcrossCalls(t *testing.T) {
	e := New()
	ctx := context.Background()

	first, err := e.GetEffectiveMarketPack(ctx, "nyc")
	require.NoError(t, err)

	second, err := e.GetEffectiveMarketPack(ctx, "NYC")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

type fakeConfigFetcher struct {
	cfg *marketpack.DBConfig
}

func (f fakeConfigFetcher) FetchConfig(_ context.Context, _ string) (*marketpack.DBConfig, error) {
	return f.cfg, nil
}

func TestGetEffectiveMarketPack_MergesConfigFetcherOverlay(t *testing.T) {
	overlay := &marketpack.DBConfig{
		SecurityDeposit: &marketpack.SecurityDepositRules{Enabled: true, MaxMonths: 2.0},
	}
	e := New(WithMarketConfigFetcher(fakeConfigFetcher{cfg: overlay}))

	pack, err := e.GetEffectiveMarketPack(context.Background(), "nyc")
	require.NoError(t, err)

	assert.True(t, pack.MergedFromDB)
	assert.Equal(t, 2.0, pack.Rules.SecurityDeposit.MaxMonths)
}

func TestGates_RunnerSeesMergedOverlay(t *testing.T) {
	overlay := &marketpack.DBConfig{
		SecurityDeposit: &marketpack.SecurityDepositRules{Enabled: true, MaxMonths: 0.5},
	}
	e := New(WithMarketConfigFetcher(fakeConfigFetcher{cfg: overlay}))

	result, err := e.Gates().SecurityDepositChange(context.Background(), gate.SecurityDepositChangeInput{
		MarketID: "texas",
		SecurityDeposit: rules.SecurityDepositInput{
			Amount:      3000,
			MonthlyRent: 3000,
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Allowed)
	var codes []core.Code
	for _, v := range result.Decision.Violations {
		codes = append(codes, v.Code)
	}
	assert.Contains(t, codes, core.CodeSecurityDepositExcessive)
}

func TestInvalidatePack_ForcesReload(t *testing.T) {
	e := New()
	ctx := context.Background()

	_, err := e.GetEffectiveMarketPack(ctx, "nyc")
	require.NoError(t, err)

	e.InvalidatePack(ctx, "nyc")

	pack, err := e.GetEffectiveMarketPack(ctx, "nyc")
	require.NoError(t, err)
	assert.Equal(t, marketpack.NYCStrict, pack.ID)
}

type fakeFlagResolver struct {
	enabled bool
}

func (f fakeFlagResolver) IsEnabled(_ context.Context, _ string, _ string) (bool, error) {
	return f.enabled, nil
}

func TestIsComplianceFeatureEnabled_FlagResolverShortCircuits(t *testing.T) {
	e := New(WithFeatureFlagResolver(fakeFlagResolver{enabled: false}))

	enabled, err := e.IsComplianceFeatureEnabled(context.Background(), "fare_act_enforcement", "nyc")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestIsComplianceFeatureEnabled_FallsBackToPackField(t *testing.T) {
	e := New()

	enabled, err := e.IsComplianceFeatureEnabled(context.Background(), "fare_act_enforcement", "nyc")
	require.NoError(t, err)
	assert.True(t, enabled)

	enabled, err = e.IsComplianceFeatureEnabled(context.Background(), "fare_act_enforcement", "texas")
	require.NoError(t, err)
	assert.False(t, enabled)
}

type fakeAuditSink struct {
	entries chan AuditEntry
}

func (f *fakeAuditSink) RecordAudit(_ context.Context, entry AuditEntry) (string, error) {
	f.entries <- entry
	return "audit-1", nil
}

func TestRecordGateResultSync_WritesAuditEntry(t *testing.T) {
	sink := &fakeAuditSink{entries: make(chan AuditEntry, 1)}
	e := New(WithAuditSink(sink))

	id := e.RecordGateResultSync(context.Background(), "listingPublish", "nyc", core.GateResult{
		Allowed: false,
		Decision: core.ComplianceDecision{
			Passed:     false,
			Violations: []core.Violation{{Code: core.CodeFareBrokerFeeProhibited, Severity: core.SeverityCritical}},
		},
	})

	assert.Equal(t, "audit-1", id)
	entry := <-sink.entries
	assert.Equal(t, "compliance_gate_blocked", entry.Action)
	assert.Equal(t, "CC7.3", entry.ControlID)
	assert.Contains(t, entry.ViolationCodes, core.CodeFareBrokerFeeProhibited)
}

func TestRecordGateResultSync_AppendsToLedgerAndPublishes(t *testing.T) {
	ledger := audit.NewDecisionLedger()
	published := make(chan audit.Event, 1)
	e := New(WithDecisionLedger(ledger), WithDecisionPublisher(chanPublisher{ch: published}))

	e.RecordGateResultSync(context.Background(), "rentIncrease", "nyc", core.GateResult{
		Allowed:  true,
		Decision: core.ComplianceDecision{Passed: true},
	})

	entries := ledger.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "compliance_gate_passed", entries[0].EventType)
	assert.True(t, ledger.Verify())

	event := <-published
	assert.Equal(t, "rentIncrease", event.GateName)
}

type chanPublisher struct {
	ch chan audit.Event
}

func (p chanPublisher) Publish(event audit.Event) {
	p.ch <- event
}

func TestRecordGateResult_DetachedDispatchReachesSink(t *testing.T) {
	sink := &fakeAuditSink{entries: make(chan AuditEntry, 1)}
	e := New(WithAuditSink(sink))

	e.RecordGateResult(context.Background(), "leaseCreation", "nyc", core.GateResult{
		Allowed:  true,
		Decision: core.ComplianceDecision{Passed: true},
	})

	entry := <-sink.entries
	assert.Equal(t, "compliance_gate_passed", entry.Action)
}

func TestRecordGateResultSync_AuditDisabledWritesNothing(t *testing.T) {
	sink := &fakeAuditSink{entries: make(chan AuditEntry, 1)}
	e := New(WithAuditSink(sink), WithAuditDisabled())

	id := e.RecordGateResultSync(context.Background(), "listingPublish", "nyc", core.GateResult{Allowed: true})
	assert.Empty(t, id)
	assert.Empty(t, sink.entries)
}
