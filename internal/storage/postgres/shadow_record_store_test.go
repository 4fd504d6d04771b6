package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymarket-shadow-lab/internal/domain"
	"polymarket-shadow-lab/internal/storage"
)

func createTestRecord(recordID, runID string, row int, bucket, strategy string, pnl float64) *domain.ArchivedRecord {
	return &domain.ArchivedRecord{
		RecordID: recordID,
		RunID:    runID,
		Row:      row,
		ShadowRecord: domain.ShadowRecord{
			PnLTotal: pnl,
			QSet:     8.5,
			QReq:     10.0,
			Bucket:   bucket,
			Strategy: strategy,
		},
	}
}

func TestShadowRecordStore_InsertAndGetByID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	rec := createTestRecord("rec-001", "run-day14", 1, domain.BucketLiquid, domain.StrategyBinary, 2.5)

	err := store.Insert(ctx, rec)
	require.NoError(t, err)

	retrieved, err := store.GetByID(ctx, "rec-001")
	require.NoError(t, err)

	assert.Equal(t, rec.RecordID, retrieved.RecordID)
	assert.Equal(t, rec.RunID, retrieved.RunID)
	assert.Equal(t, rec.Row, retrieved.Row)
	assert.InDelta(t, rec.PnLTotal, retrieved.PnLTotal, 0.0001)
	assert.InDelta(t, rec.QSet, retrieved.QSet, 0.0001)
	assert.InDelta(t, rec.QReq, retrieved.QReq, 0.0001)
	assert.Equal(t, rec.Bucket, retrieved.Bucket)
	assert.Equal(t, rec.Strategy, retrieved.Strategy)
}

func TestShadowRecordStore_DuplicateInsert(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	rec := createTestRecord("rec-001", "run-day14", 1, domain.BucketLiquid, domain.StrategyBinary, 1.0)

	require.NoError(t, store.Insert(ctx, rec))

	err := store.Insert(ctx, rec)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestShadowRecordStore_GetByIDNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	_, err := store.GetByID(ctx, "nonexistent")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestShadowRecordStore_InsertBulkAndGetByRunID(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	records := []*domain.ArchivedRecord{
		createTestRecord("rec-003", "run-a", 3, domain.BucketThin, domain.StrategyBinary, -2.0),
		createTestRecord("rec-001", "run-a", 1, domain.BucketLiquid, domain.StrategyBinary, 10.0),
		createTestRecord("rec-002", "run-a", 2, domain.BucketLiquid, domain.StrategyTriangle, 5.0),
		createTestRecord("rec-004", "run-b", 1, domain.BucketLiquid, domain.StrategyBinary, 1.0),
	}

	require.NoError(t, store.InsertBulk(ctx, records))

	result, err := store.GetByRunID(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, result, 3)

	// Ordered by row ASC
	assert.Equal(t, 1, result[0].Row)
	assert.Equal(t, 2, result[1].Row)
	assert.Equal(t, 3, result[2].Row)
}

func TestShadowRecordStore_InsertBulkRollsBackOnDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	first := createTestRecord("rec-001", "run-a", 1, domain.BucketLiquid, domain.StrategyBinary, 1.0)
	require.NoError(t, store.Insert(ctx, first))

	records := []*domain.ArchivedRecord{
		createTestRecord("rec-002", "run-a", 2, domain.BucketLiquid, domain.StrategyBinary, 2.0),
		createTestRecord("rec-001", "run-a", 3, domain.BucketLiquid, domain.StrategyBinary, 3.0), // duplicate
	}

	err := store.InsertBulk(ctx, records)
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Transaction rolled back, only the original row remains
	all, err := store.GetByRunID(ctx, "run-a")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestShadowRecordStore_GetByBucket(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	records := []*domain.ArchivedRecord{
		createTestRecord("rec-001", "run-a", 1, domain.BucketLiquid, domain.StrategyBinary, 1.0),
		createTestRecord("rec-002", "run-a", 2, domain.BucketThin, domain.StrategyBinary, 2.0),
		createTestRecord("rec-003", "run-a", 3, domain.BucketLiquid, domain.StrategyTriangle, 3.0),
	}
	require.NoError(t, store.InsertBulk(ctx, records))

	result, err := store.GetByBucket(ctx, "run-a", domain.BucketLiquid)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "rec-001", result[0].RecordID)
	assert.Equal(t, "rec-003", result[1].RecordID)
}

func TestShadowRecordStore_GetByStrategy(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	records := []*domain.ArchivedRecord{
		createTestRecord("rec-001", "run-a", 1, domain.BucketLiquid, domain.StrategyBinary, 1.0),
		createTestRecord("rec-002", "run-a", 2, domain.BucketThin, domain.StrategyTriangle, 2.0),
		createTestRecord("rec-003", "run-b", 1, domain.BucketLiquid, domain.StrategyBinary, 3.0),
	}
	require.NoError(t, store.InsertBulk(ctx, records))

	result, err := store.GetByStrategy(ctx, "run-a", domain.StrategyBinary)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "rec-001", result[0].RecordID)
}

func TestShadowRecordStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewShadowRecordStore(pool)

	err := store.Insert(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)

	err = store.Insert(ctx, &domain.ArchivedRecord{RecordID: ""})
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}
