// Package store persists the ledger as one structured document under a
// single key: every mutation reads the whole document, changes it in
// memory and writes the whole document back. There is no cross-process
// locking; two writers against the same backend can overwrite each
// other, and that stays a documented limitation rather than a bug to
// fix here.
package store

import (
	"encoding/json"

	"go-agrichain/internal/model"
)

// StorageKey is the single key the whole ledger document lives under.
const StorageKey = "agri_chain_demo_v4_qr"

// LedgerStore holds the authoritative ledger document.
//
// Load returns the current document; a missing or malformed blob
// yields the well-defined empty document, never an error. Only
// transport failures (backend unreachable) surface as errors.
// Save replaces the prior document in full.
type LedgerStore interface {
	Load() (*model.LedgerState, error)
	Save(state *model.LedgerState) error
}

// decodeState turns a raw blob into a ledger document. Corruption is
// treated as "start fresh" — a deliberate, lossy recovery policy — and
// nil collections from older blobs are re-defaulted.
func decodeState(raw []byte) *model.LedgerState {
	if len(raw) == 0 {
		return model.NewLedgerState()
	}
	var state model.LedgerState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.NewLedgerState()
	}
	state.Normalize()
	return &state
}

func encodeState(state *model.LedgerState) ([]byte, error) {
	return json.Marshal(state)
}
