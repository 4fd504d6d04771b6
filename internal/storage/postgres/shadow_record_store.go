package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"polymarket-shadow-lab/internal/domain"
	"polymarket-shadow-lab/internal/storage"
)

// ShadowRecordStore implements storage.ShadowRecordStore using PostgreSQL.
type ShadowRecordStore struct {
	pool *Pool
}

// NewShadowRecordStore creates a new ShadowRecordStore.
func NewShadowRecordStore(pool *Pool) *ShadowRecordStore {
	return &ShadowRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.ShadowRecordStore = (*ShadowRecordStore)(nil)

const insertShadowRecordQuery = `
	INSERT INTO shadow_records (
		record_id, run_id, row_num,
		pnl_total, q_set, q_req, bucket, strategy
	) VALUES (
		$1, $2, $3,
		$4, $5, $6, $7, $8
	)
`

const selectShadowRecordColumns = `
	record_id, run_id, row_num,
	pnl_total, q_set, q_req, bucket, strategy
`

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *ShadowRecordStore) Insert(ctx context.Context, r *domain.ArchivedRecord) error {
	if r == nil || r.RecordID == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx, insertShadowRecordQuery,
		r.RecordID, r.RunID, r.Row,
		r.PnLTotal, r.QSet, r.QReq, r.Bucket, r.Strategy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert shadow record: %w", err)
	}
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *ShadowRecordStore) InsertBulk(ctx context.Context, records []*domain.ArchivedRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || r.RecordID == "" {
			return storage.ErrInvalidInput
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, r := range records {
		_, err := tx.Exec(ctx, insertShadowRecordQuery,
			r.RecordID, r.RunID, r.Row,
			r.PnLTotal, r.QSet, r.QReq, r.Bucket, r.Strategy,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert shadow record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *ShadowRecordStore) GetByID(ctx context.Context, recordID string) (*domain.ArchivedRecord, error) {
	query := `
		SELECT ` + selectShadowRecordColumns + `
		FROM shadow_records
		WHERE record_id = $1
	`

	row := s.pool.QueryRow(ctx, query, recordID)
	r, err := scanShadowRecord(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get shadow record by id: %w", err)
	}
	return r, nil
}

// GetByRunID retrieves all records for a run, ordered by row ASC.
func (s *ShadowRecordStore) GetByRunID(ctx context.Context, runID string) ([]*domain.ArchivedRecord, error) {
	query := `
		SELECT ` + selectShadowRecordColumns + `
		FROM shadow_records
		WHERE run_id = $1
		ORDER BY row_num ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get shadow records by run id: %w", err)
	}
	defer rows.Close()

	return scanShadowRecords(rows)
}

// GetByBucket retrieves a run's records for one bucket label, ordered by row ASC.
func (s *ShadowRecordStore) GetByBucket(ctx context.Context, runID, bucket string) ([]*domain.ArchivedRecord, error) {
	query := `
		SELECT ` + selectShadowRecordColumns + `
		FROM shadow_records
		WHERE run_id = $1 AND bucket = $2
		ORDER BY row_num ASC
	`

	rows, err := s.pool.Query(ctx, query, runID, bucket)
	if err != nil {
		return nil, fmt.Errorf("get shadow records by bucket: %w", err)
	}
	defer rows.Close()

	return scanShadowRecords(rows)
}

// GetByStrategy retrieves a run's records for one strategy label, ordered by row ASC.
func (s *ShadowRecordStore) GetByStrategy(ctx context.Context, runID, strategy string) ([]*domain.ArchivedRecord, error) {
	query := `
		SELECT ` + selectShadowRecordColumns + `
		FROM shadow_records
		WHERE run_id = $1 AND strategy = $2
		ORDER BY row_num ASC
	`

	rows, err := s.pool.Query(ctx, query, runID, strategy)
	if err != nil {
		return nil, fmt.Errorf("get shadow records by strategy: %w", err)
	}
	defer rows.Close()

	return scanShadowRecords(rows)
}

// scanShadowRecord scans a single row into an ArchivedRecord.
func scanShadowRecord(row pgx.Row) (*domain.ArchivedRecord, error) {
	var r domain.ArchivedRecord

	err := row.Scan(
		&r.RecordID, &r.RunID, &r.Row,
		&r.PnLTotal, &r.QSet, &r.QReq, &r.Bucket, &r.Strategy,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// scanShadowRecords scans multiple rows into a slice of ArchivedRecord.
func scanShadowRecords(rows pgx.Rows) ([]*domain.ArchivedRecord, error) {
	var records []*domain.ArchivedRecord

	for rows.Next() {
		var r domain.ArchivedRecord

		err := rows.Scan(
			&r.RecordID, &r.RunID, &r.Row,
			&r.PnLTotal, &r.QSet, &r.QReq, &r.Bucket, &r.Strategy,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shadow record row: %w", err)
		}

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shadow record rows: %w", err)
	}

	return records, nil
}
