// Package codec converts transaction collections to and from their persisted
// and export text encodings.
package codec

import (
	"encoding/json"
	"fmt"

	"hushbudget/internal/core"
)

// EncodePersisted renders the full-fidelity JSON encoding used for the
// storage round trip. Field names, numeric amounts, and ids are preserved
// exactly.
func EncodePersisted(records []core.Transaction) (string, error) {
	if records == nil {
		records = []core.Transaction{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshal transactions: %w", err)
	}
	return string(raw), nil
}

// DecodePersisted is the inverse of EncodePersisted. Missing, empty, or
// malformed input yields an empty collection: corruption is absorbed, never
// surfaced to the caller. The optional onCorrupt hook gives implementers
// visibility into absorbed parse failures without changing that behavior; a
// nil hook is allowed.
func DecodePersisted(raw string, onCorrupt func(error)) []core.Transaction {
	if raw == "" {
		return nil
	}
	var records []core.Transaction
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		if onCorrupt != nil {
			onCorrupt(fmt.Errorf("unmarshal transactions: %w", err))
		}
		return nil
	}
	return records
}
