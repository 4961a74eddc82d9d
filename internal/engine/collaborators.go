// Package engine implements the Compliance Engine: a stateful orchestrator
// holding the market-pack cache, feature-flag resolver, audit sink,
// compliance-check sink, and logger.
package engine

import (
	"context"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/marketpack"
)

// MarketConfigFetcher supplies a database-backed configuration overlay for
// a market, merged over the in-code pack defaults. Satisfied by the
// internal/database Supabase and Spanner adapters.
type MarketConfigFetcher interface {
	FetchConfig(ctx context.Context, marketID string) (*marketpack.DBConfig, error)
}

// FeatureFlagResolver answers whether a named compliance feature is enabled
// for a market, independent of the pack's own enabled flags.
type FeatureFlagResolver interface {
	IsEnabled(ctx context.Context, feature, marketID string) (bool, error)
}

// AuditSink records a best-effort audit entry. Implementations must not
// block the caller's decision path; failures are logged, never propagated.
type AuditSink interface {
	RecordAudit(ctx context.Context, entry AuditEntry) (string, error)
}

// ComplianceCheckSink records a compliance-check artifact when a gate
// result contains at least one violation.
type ComplianceCheckSink interface {
	RecordComplianceCheck(ctx context.Context, check ComplianceCheckRecord) (string, error)
}

// AuditEntry is the sanitized, PII-free audit record the engine writes
// after every gate invocation. Action carries the gate outcome token
// (compliance_gate_passed | compliance_gate_blocked); ControlID tags the
// entry for the audit-control framework (default CC7.3).
type AuditEntry struct {
	ActorID        string                 `json:"actorId,omitempty"`
	ActorEmail     string                 `json:"actorEmail,omitempty"`
	Action         string                 `json:"action"`
	EntityType     core.EntityKind        `json:"entityType,omitempty"`
	EntityID       string                 `json:"entityId,omitempty"`
	MarketID       string                 `json:"marketId"`
	GateName       string                 `json:"gateName"`
	ViolationCodes []core.Code            `json:"violationCodes,omitempty"`
	Changes        map[string]interface{} `json:"changes,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	IPAddress      string                 `json:"ipAddress,omitempty"`
	UserAgent      string                 `json:"userAgent,omitempty"`
	RequestID      string                 `json:"requestId,omitempty"`
	ControlID      string                 `json:"controlId"`
}

// CheckStatus is the outcome recorded on a compliance-check artifact.
type CheckStatus string

const (
	CheckStatusPassed        CheckStatus = "passed"
	CheckStatusFailed        CheckStatus = "failed"
	CheckStatusPendingReview CheckStatus = "pending_review"
)

// ComplianceCheckRecord is the artifact the engine writes when a gate
// result has violations, at the worst severity present. A blocked gate is
// recorded as failed; an allowed gate with non-critical violations is
// recorded as pending_review.
type ComplianceCheckRecord struct {
	EntityType     core.EntityKind        `json:"entityType,omitempty"`
	EntityID       string                 `json:"entityId,omitempty"`
	MarketID       string                 `json:"marketId"`
	CheckType      string                 `json:"checkType"`
	Status         CheckStatus            `json:"status"`
	Severity       core.Severity          `json:"severity"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Details        map[string]interface{} `json:"details,omitempty"`
	Recommendation string                 `json:"recommendation,omitempty"`
	ViolationCodes []core.Code            `json:"violationCodes"`
}
