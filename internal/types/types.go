// internal/types/types.go - Common type definitions
package types

import "fmt"

// IndexData is a block summary proposed for validation.
type IndexData struct {
	Slot             uint64   `json:"slot"`
	BlockHash        [32]byte `json:"block_hash"`
	ParentSlot       uint64   `json:"parent_slot"`
	Timestamp        int64    `json:"timestamp"`
	TransactionCount uint64   `json:"transaction_count"`
}

func (d IndexData) String() string {
	return fmt.Sprintf("IndexData{Slot:%d, Parent:%d, Txs:%d, Ts:%d}",
		d.Slot, d.ParentSlot, d.TransactionCount, d.Timestamp)
}

// ValidationResult is the outcome of a consensus computation.
type ValidationResult struct {
	IsValid             bool              `json:"is_valid"`
	ConsensusPercentage float64           `json:"consensus_percentage"`
	ParticipatingStake  uint64            `json:"participating_stake"`
	Metadata            map[string]string `json:"metadata"`
}

// Clone returns a deep copy so retained snapshots never alias caller maps.
func (r ValidationResult) Clone() ValidationResult {
	out := r
	out.Metadata = make(map[string]string, len(r.Metadata))
	for k, v := range r.Metadata {
		out.Metadata[k] = v
	}
	return out
}
