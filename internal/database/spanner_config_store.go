package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/google/uuid"

	"github.com/ocx/compliance/internal/engine"
	"github.com/ocx/compliance/internal/marketpack"
)

// SpannerConfigStore is the Cloud Spanner alternative to
// SupabaseConfigStore, for deployments that already keep their
// operational state on Spanner.
type SpannerConfigStore struct {
	client *spanner.Client
}

// NewSpannerConfigStore creates a SpannerConfigStore backed by
// projects/<project>/instances/<instance>/databases/<dbName>.
func NewSpannerConfigStore(ctx context.Context, project, instance, dbName string) (*SpannerConfigStore, error) {
	dbPath := fmt.Sprintf("projects/%s/instances/%s/databases/%s", project, instance, dbName)

	client, err := spanner.NewClient(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	return &SpannerConfigStore{client: client}, nil
}

// FetchConfig reads the MarketPackConfig row for marketID using a
// 15-second stale read; overlay rows change rarely and the engine caches
// the merged pack anyway.
func (s *SpannerConfigStore) FetchConfig(ctx context.Context, marketID string) (*marketpack.DBConfig, error) {
	roTx := s.client.ReadOnlyTransaction().WithTimestampBound(spanner.MaxStaleness(15 * time.Second))
	defer roTx.Close()

	row, err := roTx.ReadRow(ctx, "MarketPackConfig", spanner.Key{marketID}, []string{"ConfigJSON"})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("read market pack config: %w", err)
	}

	var raw string
	if err := row.Columns(&raw); err != nil {
		return nil, fmt.Errorf("decode market pack config row: %w", err)
	}

	var cfg marketpack.DBConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal market pack config: %w", err)
	}
	return &cfg, nil
}

// RecordAudit inserts one ComplianceAuditLog row.
func (s *SpannerConfigStore) RecordAudit(ctx context.Context, entry engine.AuditEntry) (string, error) {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return "", fmt.Errorf("encode audit metadata: %w", err)
	}

	id := uuid.NewString()
	_, err = s.client.Apply(ctx, []*spanner.Mutation{
		spanner.Insert("ComplianceAuditLog",
			[]string{"LogID", "Action", "EntityType", "EntityID", "ActorID", "RequestID", "ControlID", "MarketID", "GateName", "ViolationCodes", "Metadata", "CreatedAt"},
			[]interface{}{id, entry.Action, string(entry.EntityType), entry.EntityID, entry.ActorID, entry.RequestID, entry.ControlID, entry.MarketID, entry.GateName, codesToStrings(entry.ViolationCodes), string(metadata), spanner.CommitTimestamp},
		),
	})
	if err != nil {
		return "", fmt.Errorf("insert audit log: %w", err)
	}
	return id, nil
}

// RecordComplianceCheck inserts one ComplianceCheckLog row.
func (s *SpannerConfigStore) RecordComplianceCheck(ctx context.Context, check engine.ComplianceCheckRecord) (string, error) {
	id := uuid.NewString()
	_, err := s.client.Apply(ctx, []*spanner.Mutation{
		spanner.Insert("ComplianceCheckLog",
			[]string{"CheckID", "EntityType", "EntityID", "MarketID", "CheckType", "Status", "Severity", "Title", "Description", "Recommendation", "ViolationCodes", "CreatedAt"},
			[]interface{}{id, string(check.EntityType), check.EntityID, check.MarketID, check.CheckType, string(check.Status), string(check.Severity), check.Title, check.Description, check.Recommendation, codesToStrings(check.ViolationCodes), spanner.CommitTimestamp},
		),
	})
	if err != nil {
		return "", fmt.Errorf("insert compliance check log: %w", err)
	}
	return id, nil
}

// RecentAuditsForMarket returns the most recent audit rows for a market,
// newest first. Used by operators investigating a single market's
// enforcement history.
func (s *SpannerConfigStore) RecentAuditsForMarket(ctx context.Context, marketID string, limit int) ([]ComplianceAuditLogRow, error) {
	stmt := spanner.Statement{
		SQL: `SELECT LogID, Action, MarketID, GateName, ViolationCodes, CreatedAt
		      FROM ComplianceAuditLog
		      WHERE MarketID = @marketID
		      ORDER BY CreatedAt DESC
		      LIMIT @limit`,
		Params: map[string]interface{}{"marketID": marketID, "limit": int64(limit)},
	}

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var rows []ComplianceAuditLogRow
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query recent audits: %w", err)
		}

		var entry ComplianceAuditLogRow
		var createdAt time.Time
		if err := row.Columns(&entry.LogID, &entry.Action, &entry.MarketID, &entry.GateName, &entry.ViolationCodes, &createdAt); err != nil {
			return nil, fmt.Errorf("decode audit row: %w", err)
		}
		entry.CreatedAt = createdAt.Format(time.RFC3339)
		rows = append(rows, entry)
	}
	return rows, nil
}

// Close releases the underlying Spanner client.
func (s *SpannerConfigStore) Close() error {
	s.client.Close()
	return nil
}
