// Package audit provides the detached delivery mechanisms the compliance
// engine uses to record gate outcomes without blocking the decision path:
// a default in-process goroutine dispatcher, an optional Cloud
// Tasks-backed dispatcher for at-least-once delivery across restarts, an
// optional Pub/Sub publisher for downstream analytics, and an optional
// hash-chained append-only ledger for tamper-evident long-term storage.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/ocx/compliance/internal/core"
)

// Event is the detached record a Dispatcher delivers: everything the
// engine already sanitized before handing it off (see
// engine.sanitizedMetadata) plus the fields needed to route and log it.
type Event struct {
	EventType      string                 `json:"eventType"`
	MarketID       string                 `json:"marketId"`
	GateName       string                 `json:"gateName"`
	ViolationCodes []core.Code            `json:"violationCodes,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt     time.Time              `json:"occurredAt"`

	// GateResult is an in-process-only payload for handlers that need the
	// full decision (e.g. the engine's own sink writes). Never serialized;
	// remote dispatchers deliver only the sanitized fields above.
	GateResult *core.GateResult `json:"-"`
}

// Dispatcher delivers an Event without the caller waiting on delivery to
// complete. Implementations must never panic the caller's goroutine.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event)
}

// Handler performs the actual write - typically an engine.AuditSink's
// RecordAudit call wrapped to match this signature.
type Handler func(ctx context.Context, event Event) error

// GoroutineDispatcher is the default Dispatcher: each Dispatch call spawns
// one goroutine running Handler, with its own background context so the
// caller's context cancellation (e.g. an HTTP request ending) doesn't cut
// the write short. Failures are logged, never propagated - there is no
// caller left to propagate them to.
type GoroutineDispatcher struct {
	Handler Handler
	Logger  *slog.Logger
}

// NewGoroutineDispatcher constructs a GoroutineDispatcher. A nil logger
// falls back to slog.Default().
func NewGoroutineDispatcher(handler Handler, logger *slog.Logger) *GoroutineDispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &GoroutineDispatcher{Handler: handler, Logger: logger}
}

// Dispatch runs Handler in a detached goroutine with a fresh background
// context carrying no deadline from ctx.
func (d *GoroutineDispatcher) Dispatch(_ context.Context, event Event) {
	go func() {
		if err := d.Handler(context.Background(), event); err != nil {
			d.Logger.Warn("audit dispatch failed", "gate", event.GateName, "event_type", event.EventType, "error", err)
		}
	}()
}
