package domain

// ArchivedRecord is one shadow log row persisted for a run.
// RecordID is the deterministic hash of (run_id, row); see internal/idhash.
type ArchivedRecord struct {
	RecordID string
	RunID    string
	Row      int // 1-based data row index within the source log

	ShadowRecord
}
