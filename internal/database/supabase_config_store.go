// Package database provides the Supabase- and Spanner-backed
// implementations of the compliance engine's collaborator interfaces:
// market-config overlay fetch, audit write, and compliance-check write.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/ocx/compliance/internal/core"
	"github.com/ocx/compliance/internal/engine"
	"github.com/ocx/compliance/internal/marketpack"
)

// MarketPackConfigRow mirrors the market_pack_config Supabase table: one
// row per market id holding a JSON-encoded marketpack.DBConfig overlay.
type MarketPackConfigRow struct {
	MarketID  string          `json:"market_id"`
	Config    json.RawMessage `json:"config"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

// ComplianceAuditLogRow mirrors the compliance_audit_log Supabase table.
type ComplianceAuditLogRow struct {
	LogID          string          `json:"log_id,omitempty"`
	Action         string          `json:"action"`
	EntityType     string          `json:"entity_type,omitempty"`
	EntityID       string          `json:"entity_id,omitempty"`
	ActorID        string          `json:"actor_id,omitempty"`
	RequestID      string          `json:"request_id,omitempty"`
	ControlID      string          `json:"control_id"`
	MarketID       string          `json:"market_id"`
	GateName       string          `json:"gate_name"`
	ViolationCodes []string        `json:"violation_codes,omitempty"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      string          `json:"created_at,omitempty"`
}

// ComplianceCheckLogRow mirrors the compliance_check_log Supabase table.
type ComplianceCheckLogRow struct {
	CheckID        string   `json:"check_id,omitempty"`
	EntityType     string   `json:"entity_type,omitempty"`
	EntityID       string   `json:"entity_id,omitempty"`
	MarketID       string   `json:"market_id"`
	CheckType      string   `json:"check_type"`
	Status         string   `json:"status"`
	Severity       string   `json:"severity"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation,omitempty"`
	ViolationCodes []string `json:"violation_codes,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

// SupabaseConfigStore satisfies engine.MarketConfigFetcher,
// engine.AuditSink, and engine.ComplianceCheckSink against a Supabase
// project.
type SupabaseConfigStore struct {
	client *supabase.Client
}

// NewSupabaseConfigStore constructs a store from SUPABASE_URL and
// SUPABASE_SERVICE_KEY environment variables.
func NewSupabaseConfigStore() (*SupabaseConfigStore, error) {
	url := os.Getenv("SUPABASE_URL")
	key := os.Getenv("SUPABASE_SERVICE_KEY")
	if url == "" || key == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_KEY must be set")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Supabase client: %w", err)
	}
	return &SupabaseConfigStore{client: client}, nil
}

// FetchConfig loads the market_pack_config overlay row for marketID, if
// any, and decodes it into a marketpack.DBConfig. A missing row is not an
// error - it simply means no overlay is configured.
func (s *SupabaseConfigStore) FetchConfig(_ context.Context, marketID string) (*marketpack.DBConfig, error) {
	var rows []MarketPackConfigRow
	_, err := s.client.From("market_pack_config").
		Select("*", "", false).
		Eq("market_id", marketID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch market pack config: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var cfg marketpack.DBConfig
	if err := json.Unmarshal(rows[0].Config, &cfg); err != nil {
		return nil, fmt.Errorf("decode market pack config: %w", err)
	}
	return &cfg, nil
}

// RecordAudit inserts one compliance_audit_log row.
func (s *SupabaseConfigStore) RecordAudit(_ context.Context, entry engine.AuditEntry) (string, error) {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return "", fmt.Errorf("encode audit metadata: %w", err)
	}

	id := uuid.NewString()
	row := ComplianceAuditLogRow{
		LogID:          id,
		Action:         entry.Action,
		EntityType:     string(entry.EntityType),
		EntityID:       entry.EntityID,
		ActorID:        entry.ActorID,
		RequestID:      entry.RequestID,
		ControlID:      entry.ControlID,
		MarketID:       entry.MarketID,
		GateName:       entry.GateName,
		ViolationCodes: codesToStrings(entry.ViolationCodes),
		Metadata:       metadata,
	}

	_, _, err = s.client.From("compliance_audit_log").Insert(row, false, "", "", "").Execute()
	if err != nil {
		return "", fmt.Errorf("insert audit log: %w", err)
	}
	return id, nil
}

// RecordComplianceCheck inserts one compliance_check_log row.
func (s *SupabaseConfigStore) RecordComplianceCheck(_ context.Context, check engine.ComplianceCheckRecord) (string, error) {
	id := uuid.NewString()
	row := ComplianceCheckLogRow{
		CheckID:        id,
		EntityType:     string(check.EntityType),
		EntityID:       check.EntityID,
		MarketID:       check.MarketID,
		CheckType:      check.CheckType,
		Status:         string(check.Status),
		Severity:       string(check.Severity),
		Title:          check.Title,
		Description:    check.Description,
		Recommendation: check.Recommendation,
		ViolationCodes: codesToStrings(check.ViolationCodes),
	}

	_, _, err := s.client.From("compliance_check_log").Insert(row, false, "", "", "").Execute()
	if err != nil {
		return "", fmt.Errorf("insert compliance check log: %w", err)
	}
	return id, nil
}

func codesToStrings(codes []core.Code) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = string(c)
	}
	return out
}
