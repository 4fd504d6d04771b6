package storage

import (
	"context"

	"polymarket-shadow-lab/internal/domain"
)

// ShadowRecordStore provides access to archived shadow log rows.
type ShadowRecordStore interface {
	// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
	Insert(ctx context.Context, r *domain.ArchivedRecord) error

	// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
	InsertBulk(ctx context.Context, records []*domain.ArchivedRecord) error

	// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, recordID string) (*domain.ArchivedRecord, error)

	// GetByRunID retrieves all records for a run, ordered by row ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.ArchivedRecord, error)

	// GetByBucket retrieves a run's records for one bucket label, ordered by row ASC.
	GetByBucket(ctx context.Context, runID, bucket string) ([]*domain.ArchivedRecord, error)

	// GetByStrategy retrieves a run's records for one strategy label, ordered by row ASC.
	GetByStrategy(ctx context.Context, runID, strategy string) ([]*domain.ArchivedRecord, error)
}

// RunSummaryStore provides access to per-run aggregation results.
type RunSummaryStore interface {
	// Insert adds a new summary. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, s *domain.RunSummary) error

	// GetByRunID retrieves a summary by run ID. Returns ErrNotFound if not exists.
	GetByRunID(ctx context.Context, runID string) (*domain.RunSummary, error)

	// GetAll retrieves all summaries, ordered by run_id ASC.
	GetAll(ctx context.Context) ([]*domain.RunSummary, error)
}
