// pkg/cleaner/audit.go
package cleaner

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/ucass-tools/paygap/pkg/model"
)

// AuditSink records normalization operations in the normalized_on_ingest
// tracking table. The pipeline itself keeps no state between runs; the sink
// is an optional external collaborator, created only when an audit database
// is configured.
type AuditSink struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAuditSink connects to the audit database and ensures the tracking table
// exists.
func NewAuditSink(ctx context.Context, dsn string, logger *zap.Logger) (*AuditSink, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	sink := &AuditSink{
		db:     db,
		logger: logger.Named("audit-sink"),
	}

	if err := sink.setupTrackingTable(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup tracking table: %w", err)
	}

	return sink, nil
}

// setupTrackingTable ensures the normalized_on_ingest tracking table exists
func (s *AuditSink) setupTrackingTable(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS public.normalized_on_ingest (
			id SERIAL PRIMARY KEY,
			run_id UUID NOT NULL,
			institution TEXT NOT NULL,
			gender TEXT NOT NULL,
			field TEXT NOT NULL,
			original_value TEXT,
			new_value TEXT,
			operation TEXT NOT NULL,
			reason TEXT NOT NULL,
			normalized_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	s.logger.Info("Ensured normalized_on_ingest table exists")
	return nil
}

// RecordOperations batch inserts normalization operations for one run.
func (s *AuditSink) RecordOperations(ctx context.Context, runID uuid.UUID, operations []model.NormalizationOperation) error {
	if len(operations) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertSQL := `
		INSERT INTO public.normalized_on_ingest
		(run_id, institution, gender, field, original_value, new_value, operation, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, op := range operations {
		if _, err := tx.ExecContext(ctx, insertSQL,
			runID,
			op.Institution,
			op.Gender,
			op.Field,
			op.OriginalValue,
			op.NewValue,
			op.Operation,
			op.Reason,
		); err != nil {
			return fmt.Errorf("failed to insert normalization operation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded normalization operations",
		zap.String("run_id", runID.String()),
		zap.Int("count", len(operations)))
	return nil
}

// Close releases the database connection.
func (s *AuditSink) Close() error {
	return s.db.Close()
}
