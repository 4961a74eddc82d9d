package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ocx/compliance/internal/audit"
	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/gate"
	"github.com/ocx/compliance/internal/marketpack"
)

// Engine is the stateful compliance orchestrator. It holds no business
// logic of its own - rule evaluation lives in internal/rules and
// internal/fcha, gate composition in internal/gate - only the resources
// gates need across calls: the pack cache, optional collaborators, and a
// logger. A fresh Engine can always be constructed with no collaborators
// for tests.
type Engine struct {
	cache         PackStore
	configFetcher MarketConfigFetcher
	flagResolver  FeatureFlagResolver
	auditSink     AuditSink
	checkSink     ComplianceCheckSink
	metrics       *Metrics
	logger        *slog.Logger
	controlID     string
	auditDisabled bool
	dispatcher    audit.Dispatcher
	publisher     EventPublisher
	ledger        *audit.DecisionLedger
}

// EventPublisher fans recorded decision events out for downstream
// analytics. Satisfied by audit.DecisionEventPublisher.
type EventPublisher interface {
	Publish(event audit.Event)
}

const defaultControlID = "CC7.3"

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithPackStore overrides the default in-process cache, e.g. with a
// RedisPackCache for multi-instance deployments.
func WithPackStore(store PackStore) Option {
	return func(e *Engine) { e.cache = store }
}

// WithMarketConfigFetcher injects a database-backed configuration overlay.
func WithMarketConfigFetcher(f MarketConfigFetcher) Option {
	return func(e *Engine) { e.configFetcher = f }
}

// WithFeatureFlagResolver injects a feature-flag collaborator.
func WithFeatureFlagResolver(r FeatureFlagResolver) Option {
	return func(e *Engine) { e.flagResolver = r }
}

// WithAuditSink injects an audit collaborator.
func WithAuditSink(s AuditSink) Option {
	return func(e *Engine) { e.auditSink = s }
}

// WithComplianceCheckSink injects a compliance-check collaborator.
func WithComplianceCheckSink(s ComplianceCheckSink) Option {
	return func(e *Engine) { e.checkSink = s }
}

// WithMetrics attaches a Prometheus metrics instance.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger overrides the default slog.Default() logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithControlID overrides the control-framework tag stamped on every audit
// entry (default CC7.3).
func WithControlID(id string) Option {
	return func(e *Engine) { e.controlID = id }
}

// WithAuditDisabled turns off audit and compliance-check emission entirely;
// RecordGateResult becomes a metrics-only no-op.
func WithAuditDisabled() Option {
	return func(e *Engine) { e.auditDisabled = true }
}

// WithAuditDispatcher overrides the default goroutine dispatcher for
// detached emission, e.g. with an audit.CloudTasksDispatcher for
// at-least-once delivery across restarts.
func WithAuditDispatcher(d audit.Dispatcher) Option {
	return func(e *Engine) { e.dispatcher = d }
}

// WithDecisionPublisher fans every recorded gate result out as a decision
// event, e.g. to an audit.DecisionEventPublisher's Pub/Sub topic.
func WithDecisionPublisher(p EventPublisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithDecisionLedger additionally appends every recorded gate result to a
// tamper-evident hash-chained ledger.
func WithDecisionLedger(l *audit.DecisionLedger) Option {
	return func(e *Engine) { e.ledger = l }
}

// New constructs an Engine. With no options it is a fully self-contained,
// side-effect-free instance suitable for unit tests.
func New(opts ...Option) *Engine {
	e := &Engine{
		cache:     NewInProcessPackCache(),
		logger:    slog.Default(),
		controlID: defaultControlID,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.dispatcher == nil {
		e.dispatcher = audit.NewGoroutineDispatcher(e.handleAuditEvent, e.logger)
	}
	return e
}

// GetEffectiveMarketPack resolves marketID to its effective MarketPack:
// cache hit returns immediately; a miss loads the in-code default, merges
// any configured database overlay exactly once, caches the merged result,
// and returns it. Unknown markets fall back to US_STANDARD, which is not a
// failure.
func (e *Engine) GetEffectiveMarketPack(ctx context.Context, marketID string) (marketpack.MarketPack, error) {
	normalized := strings.ToLower(strings.TrimSpace(marketID))

	if pack, ok := e.cache.Get(ctx, normalized); ok {
		e.recordCacheLookup(true)
		return pack, nil
	}
	e.recordCacheLookup(false)

	id, fellBack := marketpack.MarketPackIDFromMarketWithFallback(marketID)
	if fellBack {
		e.logger.Info("market pack fallback to US_STANDARD", "market_id", marketID)
	}

	pack, err := marketpack.GetMarketPack(id)
	if err != nil {
		return marketpack.MarketPack{}, err
	}

	if e.configFetcher != nil {
		cfg, err := e.configFetcher.FetchConfig(ctx, marketID)
		if err != nil {
			e.logger.Warn("market config fetch failed; using in-code defaults", "market_id", marketID, "error", err)
		} else {
			pack = marketpack.MergeMarketPackWithConfig(pack, cfg)
		}
	}

	e.cache.Set(ctx, normalized, pack)
	return pack, nil
}

// Gates returns a gate.Runner bound to this engine's effective-pack
// resolution, so every gate invocation sees database-merged packs rather
// than the bare registry defaults.
func (e *Engine) Gates() *gate.Runner {
	return gate.NewRunner(e.GetEffectiveMarketPack)
}

// InvalidatePack clears marketID's cached pack, forcing the next
// GetEffectiveMarketPack call to reload and re-merge.
func (e *Engine) InvalidatePack(ctx context.Context, marketID string) {
	e.cache.Invalidate(ctx, strings.ToLower(strings.TrimSpace(marketID)))
}

func (e *Engine) recordCacheLookup(hit bool) {
	if e.metrics != nil {
		e.metrics.RecordCacheLookup(hit)
	}
}

// featureToPackField maps a feature-flag token to the pack rule it mirrors
// when no flag resolver overrides it.
var featureToPackField = map[string]func(marketpack.Rules) bool{
	"fare_act_enforcement": func(r marketpack.Rules) bool { return r.FAREAct != nil && r.FAREAct.Enabled },
	"fcha_enforcement":     func(r marketpack.Rules) bool { return r.FCHA != nil && r.FCHA.Enabled },
	"good_cause_enforcement": func(r marketpack.Rules) bool {
		return r.GoodCause != nil && r.GoodCause.Enabled
	},
	"rent_stabilization_enforcement": func(r marketpack.Rules) bool {
		return r.RentStabilization != nil && r.RentStabilization.Enabled
	},
	"gdpr_enforcement": func(r marketpack.Rules) bool { return r.GDPR != nil && r.GDPR.Enabled },
}

// IsComplianceFeatureEnabled consults the feature-flag resolver first -
// false short-circuits - then falls back to testing the effective pack's
// own enabled flag for the named feature.
func (e *Engine) IsComplianceFeatureEnabled(ctx context.Context, feature, marketID string) (bool, error) {
	if e.flagResolver != nil {
		enabled, err := e.flagResolver.IsEnabled(ctx, feature, marketID)
		if err != nil {
			return false, err
		}
		if !enabled {
			return false, nil
		}
	}

	pack, err := e.GetEffectiveMarketPack(ctx, marketID)
	if err != nil {
		return false, err
	}

	check, ok := featureToPackField[feature]
	if !ok {
		return true, nil
	}
	return check(pack.Rules), nil
}

// RecordGateResult is the engine's best-effort, non-blocking audit and
// compliance-check write, detached from the gate's decision path. Failures
// are logged, never propagated: the gate's decision has already been
// returned to the caller by the time this runs.
func (e *Engine) RecordGateResult(ctx context.Context, gateName, marketID string, result core.GateResult) {
	e.dispatcher.Dispatch(ctx, e.decisionEvent(gateName, marketID, result))
}

// handleAuditEvent is the engine's own dispatcher handler: it unwraps the
// in-process gate result from the event and performs the sink writes.
func (e *Engine) handleAuditEvent(ctx context.Context, event audit.Event) error {
	if event.GateResult == nil {
		return nil
	}
	e.recordGateResultSync(ctx, event.GateName, event.MarketID, *event.GateResult)
	return nil
}

// decisionEvent builds the detached audit.Event for one gate result,
// carrying the full result in-process for the engine's own handler.
func (e *Engine) decisionEvent(gateName, marketID string, result core.GateResult) audit.Event {
	action := "compliance_gate_passed"
	if !result.Allowed {
		action = "compliance_gate_blocked"
	}
	codes := make([]core.Code, len(result.Decision.Violations))
	for i, v := range result.Decision.Violations {
		codes[i] = v.Code
	}
	return audit.Event{
		EventType:      action,
		MarketID:       marketID,
		GateName:       gateName,
		ViolationCodes: codes,
		Metadata:       sanitizedMetadata(result),
		OccurredAt:     result.Decision.CheckedAt,
		GateResult:     &result,
	}
}

// RecordGateResultSync is the synchronous variant for callers that must
// obtain the audit id before responding.
func (e *Engine) RecordGateResultSync(ctx context.Context, gateName, marketID string, result core.GateResult) (auditID string) {
	return e.recordGateResultSync(ctx, gateName, marketID, result)
}

func (e *Engine) recordGateResultSync(ctx context.Context, gateName, marketID string, result core.GateResult) (auditID string) {
	if e.metrics != nil {
		e.metrics.RecordGate(gateName, result.Allowed, 0)
		for _, v := range result.Decision.Violations {
			e.metrics.RecordViolation(string(v.Code), string(v.Severity))
			if v.Code == core.CodeGoodCauseCPIFallbackUsed {
				e.metrics.CPIFallbacks.Inc()
			}
		}
	}

	if e.auditDisabled {
		return ""
	}

	action := "compliance_gate_passed"
	if !result.Allowed {
		action = "compliance_gate_blocked"
	}

	codes := make([]core.Code, len(result.Decision.Violations))
	for i, v := range result.Decision.Violations {
		codes[i] = v.Code
	}

	entityType, entityID := entityFromDecision(result.Decision)

	if e.auditSink != nil {
		id, err := e.auditSink.RecordAudit(ctx, AuditEntry{
			Action:         action,
			EntityType:     entityType,
			EntityID:       entityID,
			MarketID:       marketID,
			GateName:       gateName,
			ViolationCodes: codes,
			Metadata:       sanitizedMetadata(result),
			RequestID:      metadataString(result.Decision, "requestId"),
			ActorID:        metadataString(result.Decision, "actorId"),
			ControlID:      e.controlID,
		})
		if err != nil {
			e.logger.Warn("audit sink write failed", "gate", gateName, "error", fmt.Errorf("%w: %w", core.ErrSinkUnavailable, err))
		} else {
			auditID = id
		}
	}

	if e.checkSink != nil && len(result.Decision.Violations) > 0 {
		status := CheckStatusPendingReview
		if !result.Allowed {
			status = CheckStatusFailed
		}
		record := ComplianceCheckRecord{
			EntityType:     entityType,
			EntityID:       entityID,
			MarketID:       marketID,
			CheckType:      gateName,
			Status:         status,
			Severity:       worstSeverity(result.Decision.Violations),
			Title:          fmt.Sprintf("%s gate %s", gateName, action),
			Description:    fmt.Sprintf("%d violation(s) found by the %s gate", len(result.Decision.Violations), gateName),
			Details:        sanitizedMetadata(result),
			ViolationCodes: codes,
		}
		if len(result.Decision.Fixes) > 0 {
			record.Recommendation = result.Decision.Fixes[0].Description
		}
		if _, err := e.checkSink.RecordComplianceCheck(ctx, record); err != nil {
			e.logger.Warn("compliance-check sink write failed", "gate", gateName, "error", fmt.Errorf("%w: %w", core.ErrSinkUnavailable, err))
		}
	}

	if e.ledger != nil || e.publisher != nil {
		event := e.decisionEvent(gateName, marketID, result)
		event.GateResult = nil
		if e.ledger != nil {
			e.ledger.Append(event)
		}
		if e.publisher != nil {
			e.publisher.Publish(event)
		}
	}

	return auditID
}

// entityKeys maps the metadata keys gates attach to the entity kind each
// implies, checked in declaration order.
var entityKeys = []struct {
	key  string
	kind core.EntityKind
}{
	{"listingId", core.EntityListing},
	{"applicationId", core.EntityApplication},
	{"leaseId", core.EntityLease},
	{"entityId", core.EntityKind("")},
}

// entityFromDecision recovers the entity a gate decision concerns from the
// contextual metadata the gate attached.
func entityFromDecision(d core.ComplianceDecision) (core.EntityKind, string) {
	for _, ek := range entityKeys {
		if id := metadataString(d, ek.key); id != "" {
			kind := ek.kind
			if kind == "" {
				if k, ok := d.Metadata["entityKind"].(core.EntityKind); ok {
					kind = k
				}
			}
			return kind, id
		}
	}
	return "", ""
}

func metadataString(d core.ComplianceDecision, key string) string {
	if d.Metadata == nil {
		return ""
	}
	s, _ := d.Metadata[key].(string)
	return s
}

// sanitizedMetadata strips the decision down to PII-free counts and codes
// for the audit log - no raw applicant/tenant data, only shape.
func sanitizedMetadata(result core.GateResult) map[string]interface{} {
	return map[string]interface{}{
		"violationCount": len(result.Decision.Violations),
		"fixCount":       len(result.Decision.Fixes),
		"marketPack":     result.Decision.MarketPack,
		"policyVersion":  result.Decision.PolicyVersion,
	}
}

var severityRank = map[core.Severity]int{
	core.SeverityInfo:      0,
	core.SeverityWarning:   1,
	core.SeverityViolation: 2,
	core.SeverityCritical:  3,
}

func worstSeverity(violations []core.Violation) core.Severity {
	worst := core.SeverityInfo
	for _, v := range violations {
		if severityRank[v.Severity] > severityRank[worst] {
			worst = v.Severity
		}
	}
	return worst
}
