package clickhouse

import (
	"context"
	"fmt"

	"polymarket-shadow-lab/internal/domain"
	"polymarket-shadow-lab/internal/storage"
)

// RunSummaryStore implements storage.RunSummaryStore using ClickHouse.
type RunSummaryStore struct {
	conn *Conn
}

// NewRunSummaryStore creates a new RunSummaryStore.
func NewRunSummaryStore(conn *Conn) *RunSummaryStore {
	return &RunSummaryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.RunSummaryStore = (*RunSummaryStore)(nil)

const selectRunSummaryColumns = `
	run_id, generated_at, row_count,
	total_pnl, total_q_set, total_q_req,
	set_ratio, worst_1pct, decision
`

// Insert adds a new summary. Returns ErrDuplicateKey if run_id exists.
func (s *RunSummaryStore) Insert(ctx context.Context, sum *domain.RunSummary) error {
	if sum == nil || sum.RunID == "" {
		return storage.ErrInvalidInput
	}

	// ReplacingMergeTree would silently replace, but summaries are append-only.
	exists, err := s.exists(ctx, sum.RunID)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := `
		INSERT INTO run_summaries (
			run_id, generated_at, row_count,
			total_pnl, total_q_set, total_q_req,
			set_ratio, worst_1pct, decision
		) VALUES (
			?, ?, ?,
			?, ?, ?,
			?, ?, ?
		)
	`

	err = s.conn.Exec(ctx, query,
		sum.RunID, sum.GeneratedAt, uint32(sum.RowCount),
		sum.TotalPnL, sum.TotalQSet, sum.TotalQReq,
		sum.SetRatio, sum.Worst1Pct, sum.Decision,
	)
	if err != nil {
		return fmt.Errorf("insert run summary: %w", err)
	}
	return nil
}

// GetByRunID retrieves a summary by run ID. Returns ErrNotFound if not exists.
func (s *RunSummaryStore) GetByRunID(ctx context.Context, runID string) (*domain.RunSummary, error) {
	query := `
		SELECT ` + selectRunSummaryColumns + `
		FROM run_summaries FINAL
		WHERE run_id = ?
		LIMIT 1
	`

	row := s.conn.QueryRow(ctx, query, runID)

	var sum domain.RunSummary
	var rowCount uint32
	err := row.Scan(
		&sum.RunID, &sum.GeneratedAt, &rowCount,
		&sum.TotalPnL, &sum.TotalQSet, &sum.TotalQReq,
		&sum.SetRatio, &sum.Worst1Pct, &sum.Decision,
	)
	if err != nil {
		return nil, storage.ErrNotFound
	}
	sum.RowCount = int(rowCount)

	return &sum, nil
}

// GetAll retrieves all summaries, ordered by run_id ASC.
func (s *RunSummaryStore) GetAll(ctx context.Context) ([]*domain.RunSummary, error) {
	query := `
		SELECT ` + selectRunSummaryColumns + `
		FROM run_summaries FINAL
		ORDER BY run_id ASC
	`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query all run summaries: %w", err)
	}
	defer rows.Close()

	var summaries []*domain.RunSummary
	for rows.Next() {
		var sum domain.RunSummary
		var rowCount uint32
		err := rows.Scan(
			&sum.RunID, &sum.GeneratedAt, &rowCount,
			&sum.TotalPnL, &sum.TotalQSet, &sum.TotalQReq,
			&sum.SetRatio, &sum.Worst1Pct, &sum.Decision,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run summary row: %w", err)
		}
		sum.RowCount = int(rowCount)
		summaries = append(summaries, &sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run summary rows: %w", err)
	}

	return summaries, nil
}

// exists checks if a summary with the given run ID exists.
func (s *RunSummaryStore) exists(ctx context.Context, runID string) (bool, error) {
	query := `
		SELECT count(*) FROM run_summaries FINAL
		WHERE run_id = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, runID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
