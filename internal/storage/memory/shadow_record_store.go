// Package memory provides in-memory implementations of the storage
// interfaces, used by tests and the archive fixture mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"polymarket-shadow-lab/internal/domain"
	"polymarket-shadow-lab/internal/storage"
)

// ShadowRecordStore is an in-memory implementation of storage.ShadowRecordStore.
type ShadowRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ArchivedRecord // keyed by record_id
}

// NewShadowRecordStore creates a new in-memory shadow record store.
func NewShadowRecordStore() *ShadowRecordStore {
	return &ShadowRecordStore{
		data: make(map[string]*domain.ArchivedRecord),
	}
}

// Insert adds a new record. Returns ErrDuplicateKey if record_id exists.
func (s *ShadowRecordStore) Insert(_ context.Context, r *domain.ArchivedRecord) error {
	if r == nil || r.RecordID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RecordID]; exists {
		return storage.ErrDuplicateKey
	}

	copy := *r
	s.data[r.RecordID] = &copy
	return nil
}

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *ShadowRecordStore) InsertBulk(_ context.Context, records []*domain.ArchivedRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.RecordID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.RecordID] = struct{}{}
	}

	for _, r := range records {
		copy := *r
		s.data[r.RecordID] = &copy
	}
	return nil
}

// GetByID retrieves a record by its ID. Returns ErrNotFound if not exists.
func (s *ShadowRecordStore) GetByID(_ context.Context, recordID string) (*domain.ArchivedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[recordID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	copy := *r
	return &copy, nil
}

// GetByRunID retrieves all records for a run, ordered by row ASC.
func (s *ShadowRecordStore) GetByRunID(_ context.Context, runID string) ([]*domain.ArchivedRecord, error) {
	return s.filter(func(r *domain.ArchivedRecord) bool {
		return r.RunID == runID
	}), nil
}

// GetByBucket retrieves a run's records for one bucket label, ordered by row ASC.
func (s *ShadowRecordStore) GetByBucket(_ context.Context, runID, bucket string) ([]*domain.ArchivedRecord, error) {
	return s.filter(func(r *domain.ArchivedRecord) bool {
		return r.RunID == runID && r.Bucket == bucket
	}), nil
}

// GetByStrategy retrieves a run's records for one strategy label, ordered by row ASC.
func (s *ShadowRecordStore) GetByStrategy(_ context.Context, runID, strategy string) ([]*domain.ArchivedRecord, error) {
	return s.filter(func(r *domain.ArchivedRecord) bool {
		return r.RunID == runID && r.Strategy == strategy
	}), nil
}

func (s *ShadowRecordStore) filter(keep func(*domain.ArchivedRecord) bool) []*domain.ArchivedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.ArchivedRecord
	for _, r := range s.data {
		if keep(r) {
			copy := *r
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out
}
