package amqp

import (
	"testing"
	"time"
)

func TestNewPurchaseSyncMessage(t *testing.T) {
	msg := NewPurchaseSyncMessage("a7a8e26a-4f81-4a0e-bb6b-0a6a5f8c2d11", 2)

	if msg.ID != "a7a8e26a-4f81-4a0e-bb6b-0a6a5f8c2d11" {
		t.Errorf("NewPurchaseSyncMessage() ID = %v", msg.ID)
	}
	if msg.Version != 2 {
		t.Errorf("NewPurchaseSyncMessage() Version = %v, want 2", msg.Version)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewPurchaseSyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewPurchaseSyncMessage() Timestamp should be recent")
	}
}

func TestPurchaseSyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	msg := &PurchaseSyncMessage{
		ID:        "p-1",
		Version:   3,
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := PurchaseSyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("PurchaseSyncMessageFromJSON() error = %v", err)
	}

	if parsed.ID != msg.ID {
		t.Errorf("Parsed ID = %v, want %v", parsed.ID, msg.ID)
	}
	if parsed.Version != msg.Version {
		t.Errorf("Parsed Version = %v, want %v", parsed.Version, msg.Version)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestPurchaseSyncMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"id": 42, "version": "not_a_number"}`)

	if _, err := PurchaseSyncMessageFromJSON(invalidJSON); err == nil {
		t.Error("PurchaseSyncMessageFromJSON() should fail with invalid JSON")
	}
}
