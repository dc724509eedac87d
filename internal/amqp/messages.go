package amqp

import (
	"encoding/json"
	"time"
)

// PurchaseSyncMessage asks the backup worker to export one purchase.
// It carries only the ID and version; the worker reads the full record
// from the database so a stale message never exports stale data.
type PurchaseSyncMessage struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPurchaseSyncMessage(id string, version int64) *PurchaseSyncMessage {
	return &PurchaseSyncMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *PurchaseSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PurchaseSyncMessageFromJSON(data []byte) (*PurchaseSyncMessage, error) {
	var msg PurchaseSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
