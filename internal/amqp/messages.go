package amqp

import (
	"encoding/json"
	"time"
)

// Ledger change operations carried by event messages.
const (
	OpCreated = "created"
	OpDeleted = "deleted"
)

// LedgerEventMessage announces a completed ledger mutation. Consumers fetch
// whatever state they need from storage; the message carries only the id.
type LedgerEventMessage struct {
	Op        string    `json:"op"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEvent(op string, id int64) *LedgerEventMessage {
	return &LedgerEventMessage{
		Op:        op,
		ID:        id,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON creates a message from JSON bytes.
func LedgerEventFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
