// Package idhash computes deterministic identifiers for archived records.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ComputeRecordID computes a deterministic shadow record ID using SHA256.
// Formula: SHA256(run_id|row)
// Returns hex-encoded hash (64 characters). Re-archiving the same log row
// always produces the same ID, so duplicate inserts are rejected by the
// append-only store.
func ComputeRecordID(runID string, row int) string {
	data := fmt.Sprintf("%s|%d", runID, row)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
